package gjk

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// EPAMaxIterations caps polytope expansion; the closest face so far is returned when hit.
	EPAMaxIterations = 64
	// EPATolerance is the distance improvement below which the expansion has converged.
	EPATolerance = 1e-4
)

// Overlap is the outcome of a positive collision test. It is either OverlapOnly
// or OverlapWithContact.
type Overlap interface {
	overlap()
}

// OverlapOnly reports an overlap without contact detail.
type OverlapOnly struct{}

// OverlapWithContact carries the minimum translation to separate the shapes:
// moving B by Normal*Depth (or A by -Normal*Depth) resolves the overlap.
type OverlapWithContact struct {
	Normal mgl32.Vec3
	Depth  float32
}

func (OverlapOnly) overlap()        {}
func (OverlapWithContact) overlap() {}

type epaFace struct {
	i, j, k int
	normal  mgl32.Vec3
	dist    float32
}

var searchAxes = [6]mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// epa expands the terminating GJK simplex toward the boundary of A - B closest
// to the origin.
func (s Solver) epa(a, b []mgl32.Vec3, simplex *Simplex) (OverlapWithContact, bool) {
	eps := s.epsilon()
	if !s.completeSimplex(a, b, simplex) {
		return OverlapWithContact{}, false
	}

	verts := make([]mgl32.Vec3, 0, 32)
	verts = append(verts, simplex.Points[:4]...)
	// The polytope stays convex, so its initial centroid stays inside and orients every face.
	interior := verts[0].Add(verts[1]).Add(verts[2]).Add(verts[3]).Mul(0.25)

	faces := make([]epaFace, 0, 32)
	for _, f := range [4][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}} {
		if face, ok := makeFace(verts, f[0], f[1], f[2], interior, eps); ok {
			faces = append(faces, face)
		}
	}
	if len(faces) < 4 {
		return OverlapWithContact{}, false
	}

	var closest epaFace
	edges := make([][2]int, 0, 16)
	for iter := 0; iter < EPAMaxIterations; iter++ {
		closest = faces[0]
		for _, f := range faces[1:] {
			if f.dist < closest.dist {
				closest = f
			}
		}

		p := supportMinkowski(a, b, closest.normal)
		if p.Dot(closest.normal)-closest.dist < EPATolerance {
			break
		}

		// Remove every face the new point can see and keep the horizon.
		edges = edges[:0]
		kept := faces[:0]
		for _, f := range faces {
			if f.normal.Dot(p.Sub(verts[f.i])) > eps {
				edges = addHorizonEdge(edges, f.i, f.j)
				edges = addHorizonEdge(edges, f.j, f.k)
				edges = addHorizonEdge(edges, f.k, f.i)
				continue
			}
			kept = append(kept, f)
		}
		faces = kept
		if len(edges) == 0 {
			break
		}

		verts = append(verts, p)
		n := len(verts) - 1
		for _, e := range edges {
			if face, ok := makeFace(verts, e[0], e[1], n, interior, eps); ok {
				faces = append(faces, face)
			}
		}
		if len(faces) == 0 {
			return OverlapWithContact{}, false
		}
	}

	depth := closest.dist
	if depth < 0 {
		depth = 0
	}
	return OverlapWithContact{Normal: closest.normal, Depth: depth}, true
}

func makeFace(verts []mgl32.Vec3, i, j, k int, interior mgl32.Vec3, eps float32) (epaFace, bool) {
	n := verts[j].Sub(verts[i]).Cross(verts[k].Sub(verts[i]))
	l := n.Len()
	if l < eps*eps {
		return epaFace{}, false
	}
	n = n.Mul(1 / l)
	if n.Dot(interior.Sub(verts[i])) > 0 {
		j, k = k, j
		n = n.Mul(-1)
	}
	return epaFace{i: i, j: j, k: k, normal: n, dist: n.Dot(verts[i])}, true
}

// addHorizonEdge adds edge (i, j) unless its reverse is already present, in
// which case both are interior to the removed region and the reverse is dropped.
func addHorizonEdge(edges [][2]int, i, j int) [][2]int {
	for idx, e := range edges {
		if e[0] == j && e[1] == i {
			return append(edges[:idx], edges[idx+1:]...)
		}
	}
	return append(edges, [2]int{i, j})
}

// completeSimplex grows a degenerate terminating simplex into a tetrahedron of
// non-zero volume using extra support queries. It fails for flat shapes.
func (s Solver) completeSimplex(a, b []mgl32.Vec3, simplex *Simplex) bool {
	eps := s.epsilon()

	if simplex.Count == 1 {
		for _, axis := range searchAxes {
			p := supportMinkowski(a, b, axis)
			if p.Sub(simplex.Points[0]).Len() > eps {
				simplex.push(p)
				break
			}
		}
	}

	if simplex.Count == 2 {
		p0 := simplex.Points[0]
		ab := simplex.Points[1].Sub(p0)
		abLen := ab.Len()
	lineSearch:
		for i := 0; i < len(searchAxes) && abLen > eps; i += 2 {
			n := ab.Cross(searchAxes[i])
			if n.Len() < eps {
				continue
			}
			for _, dir := range [2]mgl32.Vec3{n, n.Mul(-1)} {
				p := supportMinkowski(a, b, dir)
				if ab.Cross(p.Sub(p0)).Len()/abLen > eps {
					simplex.push(p)
					break lineSearch
				}
			}
		}
	}

	if simplex.Count == 3 {
		p0 := simplex.Points[0]
		n := simplex.Points[1].Sub(p0).Cross(simplex.Points[2].Sub(p0))
		if l := n.Len(); l > eps*eps {
			n = n.Mul(1 / l)
			for _, dir := range [2]mgl32.Vec3{n, n.Mul(-1)} {
				p := supportMinkowski(a, b, dir)
				if math32.Abs(n.Dot(p.Sub(p0))) > eps {
					simplex.push(p)
					break
				}
			}
		}
	}

	if simplex.Count != 4 {
		return false
	}
	p0 := simplex.Points[0]
	ab := simplex.Points[1].Sub(p0)
	ac := simplex.Points[2].Sub(p0)
	ad := simplex.Points[3].Sub(p0)
	n := ab.Cross(ac)
	l := n.Len()
	return l > eps*eps && math32.Abs(n.Dot(ad))/l > eps
}
