package meshindex

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestCombine(t *testing.T) {
	indices := []uint32{0, 0, 1, 1, 0, 0, 2, 0}
	table, err := Combine(indices, 2)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 3 {
		t.Fatal("distinct tuples:", table.Len())
	}
	want := []Entry{{Corner: 0, ID: 0}, {Corner: 1, ID: 1}, {Corner: 3, ID: 2}}
	if !reflect.DeepEqual(table.Entries(), want) {
		t.Error("Entries()", table.Entries())
	}
	if table.ID(2) != 0 {
		t.Error("corner 2 should share id with corner 0:", table.ID(2))
	}
	if !reflect.DeepEqual(table.Indices(), []uint32{0, 1, 0, 2}) {
		t.Error("Indices()", table.Indices())
	}
	if !reflect.DeepEqual(table.Map(), map[int]int{0: 0, 1: 1, 3: 2}) {
		t.Error("Map()", table.Map())
	}
}

func TestCombineEmpty(t *testing.T) {
	table, err := Combine(nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 0 || table.Corners() != 0 {
		t.Error("not empty")
	}
}

func TestCombineInvalidStride(t *testing.T) {
	for _, stride := range []int{0, -1} {
		if _, err := Combine([]uint32{1, 2}, stride); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("stride %d: %v", stride, err)
		}
	}
	if _, err := Combine([]uint32{1, 2, 3}, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Error("partial tuple accepted:", err)
	}
}

func TestCombineHashCollision(t *testing.T) {
	saved := hashTuple
	hashTuple = func([]byte) uint64 { return 42 }
	defer func() { hashTuple = saved }()

	table, err := Combine([]uint32{1, 2, 2, 1, 1, 2, 3, 3}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 3 {
		t.Fatal("colliding tuples merged:", table.Len())
	}
	if !reflect.DeepEqual(table.Indices(), []uint32{0, 1, 0, 2}) {
		t.Error("Indices()", table.Indices())
	}
}

func TestCombineProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	const stride = 3
	indices := make([]uint32, 3000*stride)
	for i := range indices {
		indices[i] = uint32(rnd.Intn(4))
	}

	a, err := Combine(indices, stride)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Combine(indices, stride)
	if !reflect.DeepEqual(a.Indices(), b.Indices()) || !reflect.DeepEqual(a.Entries(), b.Entries()) {
		t.Error("not deterministic")
	}

	// ids are dense and appear in first-occurrence order
	next := 0
	for c := 0; c < a.Corners(); c++ {
		id := a.ID(c)
		if id > next {
			t.Fatalf("corner %d: id %d skips %d", c, id, next)
		}
		if id == next {
			if a.Representative(id) != c {
				t.Fatalf("id %d: representative %d, want %d", id, a.Representative(id), c)
			}
			next++
		}
	}
	if next != a.Len() {
		t.Error("id count", next, a.Len())
	}

	seen := map[[stride]uint32]int{}
	for c := 0; c < a.Corners(); c++ {
		var key [stride]uint32
		copy(key[:], indices[c*stride:])
		if id, ok := seen[key]; ok {
			if id != a.ID(c) {
				t.Fatalf("equal tuples %v got ids %d and %d", key, id, a.ID(c))
			}
		} else {
			seen[key] = a.ID(c)
		}
	}
	if len(seen) != a.Len() {
		t.Error("distinct tuples", len(seen), a.Len())
	}
}
