package raycast

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/core"
)

// ParallelEpsilon is the smallest |det| treated as a non-parallel ray.
const ParallelEpsilon = 1e-8

// Hit is a ray-surface intersection in world space.
type Hit struct {
	T      float32
	Point  mgl32.Vec3
	Normal mgl32.Vec3 // unit length, facing the ray origin
}

// IntersectTriangle tests ray against the model-space triangle tri placed by model
// (Moller-Trumbore). Only hits strictly in front of the origin count.
func IntersectTriangle(ray core.Ray, tri [3]mgl32.Vec3, model mgl32.Mat4) (Hit, bool) {
	v0 := model.Mul4x1(tri[0].Vec4(1)).Vec3()
	v1 := model.Mul4x1(tri[1].Vec4(1)).Vec3()
	v2 := model.Mul4x1(tri[2].Vec4(1)).Vec3()
	return intersectWorld(ray, v0, v1, v2)
}

func intersectWorld(ray core.Ray, v0, v1, v2 mgl32.Vec3) (Hit, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := ray.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < ParallelEpsilon {
		return Hit{}, false
	}
	invDet := 1 / det

	s := ray.Origin.Sub(v0)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return Hit{}, false
	}
	q := s.Cross(e1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}
	t := e2.Dot(q) * invDet
	if t <= 0 {
		return Hit{}, false
	}

	normal, err := core.Normalize(e1.Cross(e2))
	if err != nil {
		return Hit{}, false
	}
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Mul(-1)
	}
	return Hit{T: t, Point: ray.At(t), Normal: normal}, true
}
