package meshindex

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BuildAttributeArray materializes one attribute in vertex id order.
// src is addressed by the attribute's raw index found at column offset of
// each representative corner.
func BuildAttributeArray[T any](src []T, offset int, indices []uint32, stride int, t *Table) ([]T, error) {
	if err := checkArgs(offset, indices, stride, t); err != nil {
		return nil, err
	}
	dst := make([]T, len(t.corners))
	for id, c := range t.corners {
		raw := indices[int(c)*stride+offset]
		if int64(raw) >= int64(len(src)) {
			return nil, &RangeError{Corner: int(c), Index: raw, Len: len(src)}
		}
		dst[id] = src[raw]
	}
	return dst, nil
}

func checkArgs(offset int, indices []uint32, stride int, t *Table) error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidArgument)
	}
	if stride != t.stride {
		return fmt.Errorf("%w: stride %d, table built with %d", ErrInvalidArgument, stride, t.stride)
	}
	if offset < 0 || offset >= stride {
		return fmt.Errorf("%w: offset %d outside stride %d", ErrInvalidArgument, offset, stride)
	}
	if len(indices) != len(t.ids)*stride {
		return fmt.Errorf("%w: %d indices, table has %d corners", ErrInvalidArgument, len(indices), len(t.ids))
	}
	return nil
}

// Attribute is one column of the interleaved stream together with its
// source values.
type Attribute[T any] struct {
	Name   string
	Offset int
	Source []T
}

// BuildAttributes builds every attribute against the same table.
// Attributes are independent and are built concurrently. Either all arrays
// are returned or none.
func BuildAttributes[T any](attrs []Attribute[T], indices []uint32, stride int, t *Table) ([][]T, error) {
	result := make([][]T, len(attrs))
	var g errgroup.Group
	for i := range attrs {
		i := i
		g.Go(func() error {
			a := attrs[i]
			arr, err := BuildAttributeArray(a.Source, a.Offset, indices, stride, t)
			if err != nil {
				if re, ok := err.(*RangeError); ok {
					re.Attribute = a.Name
					return re
				}
				return fmt.Errorf("%s: %w", a.Name, err)
			}
			result[i] = arr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
