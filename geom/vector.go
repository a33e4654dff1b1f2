package geom

import "math"

type Element = float32

type Vector3 struct {
	X Element
	Y Element
	Z Element
}

func NewVector3(x, y, z float32) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func NewVector3FromArray(arr [3]Element) *Vector3 {
	return &Vector3{X: arr[0], Y: arr[1], Z: arr[2]}
}

func (v *Vector3) Add(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X + v2.X, Y: v.Y + v2.Y, Z: v.Z + v2.Z}
}

func (v *Vector3) Sub(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X - v2.X, Y: v.Y - v2.Y, Z: v.Z - v2.Z}
}

func (v *Vector3) Dot(v2 *Vector3) Element {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z
}

func (v *Vector3) Cross(v2 *Vector3) *Vector3 {
	return &Vector3{
		X: v.Y*v2.Z - v.Z*v2.Y,
		Y: v.Z*v2.X - v.X*v2.Z,
		Z: v.X*v2.Y - v.Y*v2.X,
	}
}

func (v *Vector3) Len() Element {
	return Element(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize modifies v. A zero vector becomes +X.
func (v *Vector3) Normalize() *Vector3 {
	l := v.Len()
	if l > 0 {
		v.X /= l
		v.Y /= l
		v.Z /= l
	} else {
		v.X = 1
	}
	return v
}

func (v *Vector3) ToArray(array []Element) {
	array[0] = v.X
	array[1] = v.Y
	array[2] = v.Z
}

// Box3 is an axis aligned bounding box.
type Box3 struct {
	Min Vector3
	Max Vector3
}

func NewBox3FromPoints(points [][3]Element) *Box3 {
	if len(points) == 0 {
		return &Box3{}
	}
	b := &Box3{Min: *NewVector3FromArray(points[0]), Max: *NewVector3FromArray(points[0])}
	for _, p := range points[1:] {
		b.Min.X = Element(math.Min(float64(b.Min.X), float64(p[0])))
		b.Min.Y = Element(math.Min(float64(b.Min.Y), float64(p[1])))
		b.Min.Z = Element(math.Min(float64(b.Min.Z), float64(p[2])))
		b.Max.X = Element(math.Max(float64(b.Max.X), float64(p[0])))
		b.Max.Y = Element(math.Max(float64(b.Max.Y), float64(p[1])))
		b.Max.Z = Element(math.Max(float64(b.Max.Z), float64(p[2])))
	}
	return b
}

func (b *Box3) Size() *Vector3 {
	return b.Max.Sub(&b.Min)
}
