package geom

import (
	"testing"
)

func TestTriangulate(t *testing.T) {
	tris := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
	})
	if len(tris) != 1 {
		t.Error("triangle:", tris)
	}

	quad := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
		{0, 0, 1},
	})
	if len(quad) != 2 {
		t.Error("quad:", quad)
	}

	// non-convex
	concave := []*Vector3{
		{0, 0, 0},
		{2, 0, 0},
		{2, 2, 0},
		{1, 0.5, 0},
		{0, 2, 0},
	}
	tris3 := Triangulate(concave)
	if len(tris3) != 3 {
		t.Fatal("concave:", tris3)
	}
	var area float32
	for _, tri := range tris3 {
		a, b, c := concave[tri[0]], concave[tri[1]], concave[tri[2]]
		area += b.Sub(a).Cross(c.Sub(a)).Len() / 2
	}
	// a clipped reflex vertex would cover area outside the polygon
	if area < 2.49 || area > 2.51 {
		t.Error("area:", area, tris3)
	}
	used := map[int]bool{}
	for _, tri := range tris3 {
		for _, i := range tri {
			used[i] = true
		}
	}
	if len(used) != len(concave) {
		t.Error("not all vertices used", tris3)
	}

	// Empty
	if len(Triangulate(nil)) != 0 {
		t.Error("not empty")
	}
}

func TestPolygonNormal(t *testing.T) {
	n := PolygonNormal([]*Vector3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	if n.Z == 0 || n.X != 0 || n.Y != 0 {
		t.Error("normal:", n)
	}
}
