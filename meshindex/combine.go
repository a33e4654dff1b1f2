// Package meshindex converts independently indexed vertex attribute streams
// into a single index buffer over deduplicated vertices.
package meshindex

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Table maps each distinct index tuple to a dense vertex id.
// It is immutable once returned by Combine.
type Table struct {
	stride  int
	corners []uint32 // id -> representative corner
	ids     []uint32 // corner -> id
}

// Entry is one (representative corner, vertex id) pair.
type Entry struct {
	Corner int
	ID     int
}

var hashTuple = func(buf []byte) uint64 {
	return xxhash.Sum64(buf)
}

// Combine scans the interleaved index stream and assigns ids in order of
// first occurrence.
func Combine(indices []uint32, stride int) (*Table, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("%w: stride %d", ErrInvalidArgument, stride)
	}
	if len(indices)%stride != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of stride %d", ErrInvalidArgument, len(indices), stride)
	}
	n := len(indices) / stride
	t := &Table{
		stride: stride,
		ids:    make([]uint32, n),
	}

	buckets := map[uint64][]uint32{}
	buf := make([]byte, stride*4)
	for c := 0; c < n; c++ {
		tuple := indices[c*stride : (c+1)*stride]
		for i, v := range tuple {
			binary.LittleEndian.PutUint32(buf[i*4:], v)
		}
		h := hashTuple(buf)

		found := -1
		for _, id := range buckets[h] {
			r := int(t.corners[id])
			if equalTuple(tuple, indices[r*stride:(r+1)*stride]) {
				found = int(id)
				break
			}
		}
		if found < 0 {
			found = len(t.corners)
			t.corners = append(t.corners, uint32(c))
			buckets[h] = append(buckets[h], uint32(found))
		}
		t.ids[c] = uint32(found)
	}
	return t, nil
}

func equalTuple(a, b []uint32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Len returns the number of distinct tuples.
func (t *Table) Len() int {
	return len(t.corners)
}

func (t *Table) Stride() int {
	return t.stride
}

// Corners returns the number of corners in the source stream.
func (t *Table) Corners() int {
	return len(t.ids)
}

// Representative returns the first corner that produced id.
func (t *Table) Representative(id int) int {
	return int(t.corners[id])
}

// ID returns the vertex id of a corner.
func (t *Table) ID(corner int) int {
	return int(t.ids[corner])
}

// Entries returns the table in id order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.corners))
	for id, c := range t.corners {
		entries[id] = Entry{Corner: int(c), ID: id}
	}
	return entries
}

// Map returns representative corner -> vertex id.
func (t *Table) Map() map[int]int {
	m := make(map[int]int, len(t.corners))
	for id, c := range t.corners {
		m[int(c)] = id
	}
	return m
}

// Indices returns the vertex id of every corner in stream order.
func (t *Table) Indices() []uint32 {
	dst := make([]uint32, len(t.ids))
	copy(dst, t.ids)
	return dst
}
