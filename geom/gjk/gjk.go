package gjk

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/core"
)

const (
	// DefaultMaxIterations bounds the simplex evolution loop. Box-like shapes resolve in under 10.
	DefaultMaxIterations = 64
	// DefaultEpsilon is the tolerance for separation and containment tests, in world units.
	// Shapes closer than this are reported as touching.
	DefaultEpsilon = 1e-5
)

// Solver runs GJK with explicit bounds. The zero value uses the defaults.
type Solver struct {
	MaxIterations int
	Epsilon       float32
	// Contacts enables EPA in Collide.
	Contacts bool
}

func NewSolver() Solver {
	return Solver{
		MaxIterations: DefaultMaxIterations,
		Epsilon:       DefaultEpsilon,
		Contacts:      true,
	}
}

// Intersects reports whether the convex hulls of a and b overlap, using the default solver.
func Intersects(a, b []mgl32.Vec3) (bool, error) {
	return NewSolver().Intersects(a, b)
}

// Intersects reports whether the convex hulls of a and b overlap.
// Hitting the iteration cap returns false together with ErrAnomalousNoIntersection.
func (s Solver) Intersects(a, b []mgl32.Vec3) (bool, error) {
	var simplex Simplex
	return s.run(a, b, &simplex)
}

// Collide is Intersects with a best-effort contact. On overlap it returns either
// OverlapWithContact (EPA converged) or OverlapOnly.
func (s Solver) Collide(a, b []mgl32.Vec3) (Overlap, bool, error) {
	var simplex Simplex
	hit, err := s.run(a, b, &simplex)
	if err != nil || !hit {
		return nil, false, err
	}
	if !s.Contacts {
		return OverlapOnly{}, true, nil
	}
	if contact, ok := s.epa(a, b, &simplex); ok {
		return contact, true, nil
	}
	return OverlapOnly{}, true, nil
}

func (s Solver) maxIterations() int {
	if s.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return s.MaxIterations
}

func (s Solver) epsilon() float32 {
	if s.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return s.Epsilon
}

func (s Solver) run(a, b []mgl32.Vec3, simplex *Simplex) (bool, error) {
	if len(a) == 0 {
		return false, fmt.Errorf("%w: first shape", ErrInvalidShape)
	}
	if len(b) == 0 {
		return false, fmt.Errorf("%w: second shape", ErrInvalidShape)
	}
	eps := s.epsilon()

	dir := core.Centroid(b).Sub(core.Centroid(a))
	if dir.Len() < eps {
		dir = mgl32.Vec3{1, 0, 0}
	}

	simplex.set(supportMinkowski(a, b, dir))
	dir = simplex.Points[0].Mul(-1)

	iterations := s.maxIterations()
	for i := 0; i < iterations; i++ {
		// The origin sits on the current feature.
		if dir.Len() < eps {
			return true, nil
		}
		d, err := core.Normalize(dir)
		if err != nil {
			return true, nil
		}

		p := supportMinkowski(a, b, d)
		proj := p.Dot(d)
		if proj < -eps {
			return false, nil
		}
		// No progress past the retained feature: the hull ends within eps of the origin.
		if proj-simplex.maxDot(d) <= eps {
			return true, nil
		}

		simplex.push(p)
		var contains bool
		if contains, dir = s.doSimplex(simplex); contains {
			return true, nil
		}
	}
	return false, fmt.Errorf("%w after %d iterations", ErrAnomalousNoIntersection, iterations)
}

// doSimplex reduces the simplex to the feature closest to the origin and returns
// the next search direction, or reports that the origin is enclosed.
func (s Solver) doSimplex(simplex *Simplex) (bool, mgl32.Vec3) {
	switch simplex.Count {
	case 2:
		return s.line(simplex)
	case 3:
		return s.triangle(simplex)
	case 4:
		return s.tetrahedron(simplex)
	}
	return false, simplex.Points[0].Mul(-1)
}

func (s Solver) line(simplex *Simplex) (bool, mgl32.Vec3) {
	eps := s.epsilon()
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	abLen := ab.Len()
	if abLen < eps || ab.Dot(ao) <= 0 {
		simplex.set(a)
		return false, ao
	}

	cross := ab.Cross(ao)
	if cross.Len()/abLen < eps {
		return true, mgl32.Vec3{}
	}
	return false, cross.Cross(ab)
}

func (s Solver) triangle(simplex *Simplex) (bool, mgl32.Vec3) {
	eps := s.epsilon()
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)
	abc := ab.Cross(ac)

	// c lies on line ab
	if abc.Len() <= eps*ab.Len() {
		simplex.set(b, a)
		return s.line(simplex)
	}

	if ab.Cross(abc).Dot(ao) > 0 {
		simplex.set(b, a)
		return s.line(simplex)
	}
	if abc.Cross(ac).Dot(ao) > 0 {
		simplex.set(c, a)
		return s.line(simplex)
	}

	dist := abc.Dot(ao) / abc.Len()
	switch {
	case dist > eps:
		return false, abc
	case dist < -eps:
		simplex.set(b, c, a)
		return false, abc.Mul(-1)
	default:
		return true, mgl32.Vec3{}
	}
}

func (s Solver) tetrahedron(simplex *Simplex) (bool, mgl32.Vec3) {
	eps := s.epsilon()
	a := simplex.Points[3]
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)
	// d lies in plane abc
	if l := abc.Len(); l < eps*eps || math32.Abs(abc.Dot(ad))/l < eps {
		simplex.set(c, b, a)
		return s.triangle(simplex)
	}

	// Face normals point away from the vertex they exclude.
	if abc.Dot(ad) > 0 {
		abc = abc.Mul(-1)
	}
	acd := ac.Cross(ad)
	if acd.Dot(ab) > 0 {
		acd = acd.Mul(-1)
	}
	adb := ad.Cross(ab)
	if adb.Dot(ac) > 0 {
		adb = adb.Mul(-1)
	}

	if outside(abc, ao, eps) {
		simplex.set(c, b, a)
		return s.triangle(simplex)
	}
	if outside(acd, ao, eps) {
		simplex.set(d, c, a)
		return s.triangle(simplex)
	}
	if outside(adb, ao, eps) {
		simplex.set(b, d, a)
		return s.triangle(simplex)
	}
	return true, mgl32.Vec3{}
}

func outside(n, ao mgl32.Vec3, eps float32) bool {
	l := n.Len()
	if l < eps*eps {
		return false
	}
	return n.Dot(ao)/l > eps
}
