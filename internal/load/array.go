package load

import "github.com/vk/bitconf/internal/config"

// Array loads the homogeneous array stored at path below tbl into dst, whose
// length is the capacity. It returns the number of items written, which is
// always the array's length.
//
// An array longer than dst is a CapacityExceededError and nothing is written.
// On any other error the contents of dst are unspecified.
func Array[T Value](tbl config.Node, path string, dst []T) (int, error) {
	n, err := config.Resolve(tbl, path)
	if err != nil {
		return 0, err
	}
	if n.Kind() != config.KindArray {
		return 0, &config.NotAnArrayError{Path: n.Path().String(), Actual: n.Kind()}
	}

	want := Kind[T]()
	items := n.Items()
	for i, item := range items {
		if item.Kind() != want {
			return 0, &config.HeterogeneousArrayError{
				Path:     n.Path().String(),
				Index:    i,
				Expected: want,
				Actual:   item.Kind(),
			}
		}
	}
	if len(items) > len(dst) {
		return 0, &config.CapacityExceededError{Path: n.Path().String(), Capacity: len(dst), Length: len(items)}
	}

	for i, item := range items {
		v, err := As[T](item)
		if err != nil {
			return 0, err
		}
		dst[i] = v
	}
	return len(items), nil
}

// Slice is Array into freshly allocated storage of the given capacity.
func Slice[T Value](tbl config.Node, path string, capacity int) ([]T, error) {
	dst := make([]T, capacity)
	n, err := Array(tbl, path, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// Exactly loads an array that must hold exactly len(dst) items.
func Exactly[T Value](tbl config.Node, path string, dst []T) error {
	n, err := Array(tbl, path, dst)
	if err != nil {
		return err
	}
	if n != len(dst) {
		return &config.LengthError{Path: joinPath(tbl, path), Want: len(dst), Length: n}
	}
	return nil
}

func joinPath(tbl config.Node, path string) string {
	p, err := config.ParsePath(path)
	if err != nil {
		return path
	}
	return tbl.Path().Join(p).String()
}
