package gjk

import "github.com/go-gl/mathgl/mgl32"

// Simplex holds 1-4 support points of the Minkowski difference.
// The most recently added point is always last.
type Simplex struct {
	Points [4]mgl32.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

func (s *Simplex) push(p mgl32.Vec3) {
	s.Points[s.Count] = p
	s.Count++
}

func (s *Simplex) set(points ...mgl32.Vec3) {
	s.Count = copy(s.Points[:], points)
}

// maxDot returns the largest projection of the simplex points onto d.
func (s *Simplex) maxDot(d mgl32.Vec3) float32 {
	m := s.Points[0].Dot(d)
	for i := 1; i < s.Count; i++ {
		if v := s.Points[i].Dot(d); v > m {
			m = v
		}
	}
	return m
}
