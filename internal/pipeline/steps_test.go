package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bitconf/internal/config"
	"github.com/vk/bitconf/internal/flags"
)

var testFlags = flags.NewTable("test", map[string]uint32{
	"one": 1,
	"two": 2,
})

func TestRequire(t *testing.T) {
	t.Parallel()
	tbl := config.Table(config.Field("a", config.Int(1)))

	got, err := Require("a")(tbl)
	require.NoError(t, err)
	assert.True(t, got.Equal(tbl))

	_, err = Require("b")(tbl)
	assert.True(t, config.IsMissing(err))
}

func TestLoadArray(t *testing.T) {
	t.Parallel()
	tbl := config.Table(config.Field("xs", config.Array(config.Int(4), config.Int(5))))

	dst := make([]int, 4)
	var n int
	_, err := LoadArray("xs", dst, &n)(tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, dst[:n])

	small := make([]int, 1)
	_, err = LoadArray("xs", small, &n)(tbl)
	var capErr *config.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
}

func TestExactly(t *testing.T) {
	t.Parallel()
	tbl := config.Table(config.Field("rgb", config.Array(config.Int(1), config.Int(2), config.Int(3))))

	var rgb [3]uint8
	_, err := Exactly("rgb", rgb[:])(tbl)
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{1, 2, 3}, rgb)

	var rgba [4]uint8
	_, err = Exactly("rgb", rgba[:])(tbl)
	var lenErr *config.LengthError
	require.ErrorAs(t, err, &lenErr)
}

func TestFlags(t *testing.T) {
	t.Parallel()
	tbl := config.Table(config.Field("flags", config.Array(config.String("ONE"), config.String("three"), config.String("two"))))

	sink := flags.NewBoundedSink(4)
	var mask uint32
	_, err := Flags("flags", &mask, testFlags, sink)(tbl)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), mask)
	assert.Equal(t, []string{"three"}, sink.Names())

	_, err = Flags("missing", &mask, testFlags, sink)(tbl)
	assert.True(t, config.IsMissing(err))
}

func TestOptionalFlags(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		tbl     config.Node
		want    uint32
		wantErr bool
	}{
		{
			name: "missing list is empty",
			tbl:  config.Table(),
			want: 0,
		},
		{
			name: "present list is resolved",
			tbl:  config.Table(config.Field("flags", config.Array(config.String("two")))),
			want: 2,
		},
		{
			name:    "malformed list fails",
			tbl:     config.Table(config.Field("flags", config.String("two"))),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mask := uint32(0xff)
			_, err := OptionalFlags("flags", &mask, testFlags, flags.Discard)(tc.tbl)
			if tc.wantErr {
				var notArray *config.NotAnArrayError
				require.ErrorAs(t, err, &notArray)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, mask)
		})
	}
}
