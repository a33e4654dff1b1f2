package geom

// column-major matrix
type Matrix4 [16]Element

type UpAxis string

const (
	XUp UpAxis = "X_UP"
	YUp UpAxis = "Y_UP"
	ZUp UpAxis = "Z_UP"
)

func NewMatrix4() *Matrix4 {
	return &Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func NewScaleMatrix4(x, y, z Element) *Matrix4 {
	return &Matrix4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// NewUpAxisMatrix4 returns the rotation that maps the given up axis to +Y.
func NewUpAxisMatrix4(up UpAxis) *Matrix4 {
	switch up {
	case ZUp:
		// (x, y, z) -> (x, z, -y)
		return &Matrix4{
			1, 0, 0, 0,
			0, 0, -1, 0,
			0, 1, 0, 0,
			0, 0, 0, 1,
		}
	case XUp:
		// (x, y, z) -> (-y, x, z)
		return &Matrix4{
			0, 1, 0, 0,
			-1, 0, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}
	}
	return NewMatrix4()
}

func (b *Matrix4) Mul(a *Matrix4) *Matrix4 {
	r := &Matrix4{}
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[c*4+row] = a[c*4+0]*b[row] + a[c*4+1]*b[4+row] + a[c*4+2]*b[8+row] + a[c*4+3]*b[12+row]
		}
	}
	return r
}

func (mat *Matrix4) ApplyTo(v *Vector3) *Vector3 {
	return &Vector3{
		mat[0]*v.X + mat[4]*v.Y + mat[8]*v.Z + mat[12],
		mat[1]*v.X + mat[5]*v.Y + mat[9]*v.Z + mat[13],
		mat[2]*v.X + mat[6]*v.Y + mat[10]*v.Z + mat[14],
	}
}

// ApplyToDirection ignores translation. Result is not normalized.
func (mat *Matrix4) ApplyToDirection(v *Vector3) *Vector3 {
	return &Vector3{
		mat[0]*v.X + mat[4]*v.Y + mat[8]*v.Z,
		mat[1]*v.X + mat[5]*v.Y + mat[9]*v.Z,
		mat[2]*v.X + mat[6]*v.Y + mat[10]*v.Z,
	}
}

func (mat *Matrix4) IsIdentity() bool {
	return *mat == *NewMatrix4()
}
