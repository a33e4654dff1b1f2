package geom

import (
	"testing"
)

func TestVector3(t *testing.T) {
	zero := NewVector3(0, 0, 0)
	if zero.Len() != 0 || zero.Dot(zero) != 0 {
		t.Error("len != 0")
	}

	if *zero.Normalize() != *NewVector3(1, 0, 0) {
		t.Error("Normalize shoud returns unit vector.", zero.Normalize())
	}

	if *NewVector3(1, 0, 0).Add(NewVector3(0, 1, 0)) != *NewVector3(1, 1, 0) {
		t.Error("Vector.Add()")
	}

	if *NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0)) != *NewVector3(0, 0, 1) {
		t.Error("Vector.Cross()")
	}
}

func TestBox3(t *testing.T) {
	b := NewBox3FromPoints([][3]float32{{1, 2, 3}, {-1, 5, 0}, {0, 0, 4}})
	if b.Min != *NewVector3(-1, 0, 0) || b.Max != *NewVector3(1, 5, 4) {
		t.Error("bounds:", b)
	}
	if *b.Size() != *NewVector3(2, 5, 4) {
		t.Error("size:", b.Size())
	}
	if *NewBox3FromPoints(nil) != (Box3{}) {
		t.Error("empty")
	}
}

func TestUpAxisMatrix4(t *testing.T) {
	v := NewVector3(1, 2, 3)
	if *NewUpAxisMatrix4(ZUp).ApplyTo(v) != *NewVector3(1, 3, -2) {
		t.Error("Z_UP:", NewUpAxisMatrix4(ZUp).ApplyTo(v))
	}
	if *NewUpAxisMatrix4(XUp).ApplyTo(v) != *NewVector3(-2, 1, 3) {
		t.Error("X_UP:", NewUpAxisMatrix4(XUp).ApplyTo(v))
	}
	if !NewUpAxisMatrix4(YUp).IsIdentity() {
		t.Error("Y_UP should be identity")
	}

	m := NewScaleMatrix4(2, 2, 2).Mul(NewUpAxisMatrix4(ZUp))
	if *m.ApplyTo(v) != *NewVector3(2, 6, -4) {
		t.Error("Mul:", m.ApplyTo(v))
	}
	if *m.ApplyToDirection(NewVector3(0, 0, 1)) != *NewVector3(0, 2, 0) {
		t.Error("ApplyToDirection:", m.ApplyToDirection(NewVector3(0, 0, 1)))
	}
}
