// Package raycast builds world-space pick rays from screen coordinates and
// intersects them with triangles.
package raycast

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/core"
)

var (
	// ErrDegenerateCamera is returned when the view-projection matrix cannot be inverted
	// or unprojection produces no usable ray.
	ErrDegenerateCamera = errors.New("raycast: degenerate camera")
	// ErrInvalidViewport is returned for non-positive viewport dimensions.
	ErrInvalidViewport = errors.New("raycast: invalid viewport")
)

// DefaultDeterminantEpsilon is the smallest |det(viewProjection)| ScreenToRay accepts.
const DefaultDeterminantEpsilon = 1e-10

// Viewport is the pixel size of the surface pointer coordinates refer to.
type Viewport struct {
	Width, Height int
}

func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Unprojector converts pointer positions into rays. The zero value uses DefaultDeterminantEpsilon.
type Unprojector struct {
	DeterminantEpsilon float32
}

// ScreenToRay converts the pixel (x, y), with y growing downwards, into a world-space ray
// starting on the near plane.
func ScreenToRay(x, y float32, viewport Viewport, viewProjection mgl32.Mat4) (core.Ray, error) {
	return Unprojector{}.ScreenToRay(x, y, viewport, viewProjection)
}

func (u Unprojector) ScreenToRay(x, y float32, viewport Viewport, viewProjection mgl32.Mat4) (core.Ray, error) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return core.Ray{}, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, viewport.Width, viewport.Height)
	}

	eps := u.DeterminantEpsilon
	if eps <= 0 {
		eps = DefaultDeterminantEpsilon
	}
	det := viewProjection.Det()
	if math32.Abs(det) < eps || math32.IsNaN(det) || math32.IsInf(det, 0) {
		return core.Ray{}, fmt.Errorf("%w: determinant %g", ErrDegenerateCamera, det)
	}
	inv := viewProjection.Inv()

	ndcX := 2*x/float32(viewport.Width) - 1
	ndcY := 1 - 2*y/float32(viewport.Height)

	near, err := unproject(inv, mgl32.Vec4{ndcX, ndcY, -1, 1})
	if err != nil {
		return core.Ray{}, err
	}
	far, err := unproject(inv, mgl32.Vec4{ndcX, ndcY, 1, 1})
	if err != nil {
		return core.Ray{}, err
	}

	ray, err := core.NewRay(near, far.Sub(near))
	if err != nil {
		return core.Ray{}, fmt.Errorf("%w: near and far points coincide", ErrDegenerateCamera)
	}
	return ray, nil
}

func unproject(inv mgl32.Mat4, clip mgl32.Vec4) (mgl32.Vec3, error) {
	p := inv.Mul4x1(clip)
	if math32.Abs(p.W()) < core.MinLength {
		return mgl32.Vec3{}, fmt.Errorf("%w: w is zero after unprojection", ErrDegenerateCamera)
	}
	return p.Vec3().Mul(1 / p.W()), nil
}
