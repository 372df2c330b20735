package core

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateVector is returned when normalizing a vector of (near) zero length.
var ErrDegenerateVector = errors.New("core: cannot normalize zero-length vector")

// MinLength is the shortest vector Normalize accepts.
const MinLength = 1e-12

// Normalize returns v scaled to unit length.
func Normalize(v mgl32.Vec3) (mgl32.Vec3, error) {
	l := v.Len()
	if l < MinLength || math32.IsNaN(l) {
		return mgl32.Vec3{}, ErrDegenerateVector
	}
	return v.Mul(1.0 / l), nil
}

// Normalize2 is Normalize for 2D vectors.
func Normalize2(v mgl32.Vec2) (mgl32.Vec2, error) {
	l := v.Len()
	if l < MinLength || math32.IsNaN(l) {
		return mgl32.Vec2{}, ErrDegenerateVector
	}
	return v.Mul(1.0 / l), nil
}

// TransformPoints applies model to every point (w = 1) and returns a new slice.
func TransformPoints(points []mgl32.Vec3, model mgl32.Mat4) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(points))
	TransformPointsInto(out, points, model)
	return out
}

// TransformPointsInto is TransformPoints writing into dst, which must be at least len(points) long.
func TransformPointsInto(dst, points []mgl32.Vec3, model mgl32.Mat4) {
	for i, p := range points {
		dst[i] = model.Mul4x1(p.Vec4(1.0)).Vec3()
	}
}

// Centroid returns the average of points, or the zero vector for an empty set.
func Centroid(points []mgl32.Vec3) mgl32.Vec3 {
	var sum mgl32.Vec3
	if len(points) == 0 {
		return sum
	}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float32(len(points)))
}
