package geom

func IsInTriangle(p, a, b, c *Vector3) bool {
	ab, bc, ca := b.Sub(a), c.Sub(b), a.Sub(c)
	c1, c2, c3 := ab.Cross(p.Sub(a)), bc.Cross(p.Sub(b)), ca.Cross(p.Sub(c))
	return c1.Dot(c2) > 0 && c2.Dot(c3) > 0 && c3.Dot(c1) > 0
}

// PolygonNormal returns the Newell normal of a polygon.
func PolygonNormal(poly []*Vector3) *Vector3 {
	n := &Vector3{}
	for i := range poly {
		v0 := poly[(i+len(poly)-1)%len(poly)]
		v1 := poly[i]
		v2 := poly[(i+1)%len(poly)]
		n = n.Add(v0.Sub(v1).Cross(v2.Sub(v1)))
	}
	return n.Normalize()
}

// Triangulate splits a polygon into triangles by ear clipping.
// Returned triangles refer to positions in poly.
func Triangulate(poly []*Vector3) [][3]int {
	var dst [][3]int
	if len(poly) < 3 {
		return dst
	}
	if len(poly) == 3 {
		return append(dst, [3]int{0, 1, 2})
	}
	n := PolygonNormal(poly)

	remain := make([]int, len(poly))
	for i := range poly {
		remain[i] = i
	}

	for len(remain) >= 3 {
		clipped := false
		count := len(remain)
		for i := count - 1; i >= 0 && len(remain) >= 3; i-- {
			count = len(remain)
			if i >= count {
				continue
			}
			i0 := remain[(i+count-1)%count]
			i1 := remain[i]
			i2 := remain[(i+1)%count]
			v0, v1, v2 := poly[i0], poly[i1], poly[i2]
			if v0.Sub(v1).Cross(v2.Sub(v1)).Dot(n) < 0 {
				continue
			}
			ear := true
			for j, k := range remain {
				if j == i || k == i0 || k == i2 {
					continue
				}
				if IsInTriangle(poly[k], v0, v1, v2) {
					ear = false
					break
				}
			}
			if ear {
				dst = append(dst, [3]int{i0, i1, i2})
				remain = append(remain[:i:i], remain[i+1:]...)
				clipped = true
			}
		}
		if !clipped {
			// self-intersecting polygon
			for i := 1; i < len(remain)-1; i++ {
				dst = append(dst, [3]int{remain[0], remain[i], remain[i+1]})
			}
			break
		}
	}
	return dst
}
