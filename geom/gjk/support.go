// Package gjk decides whether two convex point sets overlap using the
// Gilbert-Johnson-Keerthi algorithm, and estimates contact depth with EPA.
//
// Both shapes must already be in the same (world) space. The solver keeps a
// fixed-capacity simplex on the stack and never allocates in its main loop.
package gjk

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrEmptyShape is returned by Support for an empty point set.
	ErrEmptyShape = errors.New("gjk: support of empty shape")
	// ErrInvalidShape is returned by the solver when either shape has no points.
	ErrInvalidShape = errors.New("gjk: shape has no points")
	// ErrAnomalousNoIntersection reports that the iteration cap was hit without a verdict.
	// The accompanying result is always false.
	ErrAnomalousNoIntersection = errors.New("gjk: iteration limit reached without resolution")
)

// Support returns the point of points farthest along d. Ties keep the first point seen.
func Support(points []mgl32.Vec3, d mgl32.Vec3) (mgl32.Vec3, error) {
	if len(points) == 0 {
		return mgl32.Vec3{}, ErrEmptyShape
	}
	return support(points, d), nil
}

func support(points []mgl32.Vec3, d mgl32.Vec3) mgl32.Vec3 {
	best := points[0]
	bestDot := best.Dot(d)
	for _, p := range points[1:] {
		if dot := p.Dot(d); dot > bestDot {
			best, bestDot = p, dot
		}
	}
	return best
}

// SupportMinkowski returns the support point of the Minkowski difference A - B along d.
func SupportMinkowski(a, b []mgl32.Vec3, d mgl32.Vec3) (mgl32.Vec3, error) {
	if len(a) == 0 || len(b) == 0 {
		return mgl32.Vec3{}, ErrEmptyShape
	}
	return supportMinkowski(a, b, d), nil
}

func supportMinkowski(a, b []mgl32.Vec3, d mgl32.Vec3) mgl32.Vec3 {
	return support(a, d).Sub(support(b, d.Mul(-1)))
}
