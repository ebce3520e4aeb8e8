package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertUnknownNames checks that each name was reported once as an unknown
// flag name of domain.
func AssertUnknownNames(t *testing.T, logOutput, domain string, names ...string) {
	t.Helper()
	for _, name := range names {
		needle := `msg="unknown flag name, skipping" domain=` + domain + " name=" + name
		assert.Equal(t, 1, strings.Count(logOutput, needle), "expected %q to be reported once in:\n%s", needle, logOutput)
	}
}
