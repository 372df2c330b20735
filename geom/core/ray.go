package core

import "github.com/go-gl/mathgl/mgl32"

// Ray is a half-line. Direction is expected to be unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay normalizes dir and fails with ErrDegenerateVector when it is zero.
func NewRay(origin, dir mgl32.Vec3) (Ray, error) {
	n, err := Normalize(dir)
	if err != nil {
		return Ray{}, err
	}
	return Ray{Origin: origin, Direction: n}, nil
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
