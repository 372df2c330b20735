package gjk

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollide_Contact(t *testing.T) {
	tests := []struct {
		name   string
		b      []mgl32.Vec3
		normal mgl32.Vec3
		depth  float32
	}{
		{"overlap along x", cubeAt(0.5, 0, 0), mgl32.Vec3{1, 0, 0}, 0.5},
		{"overlap along y", cubeAt(0, 0.5, 0), mgl32.Vec3{0, 1, 0}, 0.5},
		{"shallow along -x", cubeAt(-0.3, 0, 0.1), mgl32.Vec3{-1, 0, 0}, 0.7},
	}
	a := cubeAt(0, 0, 0)
	s := NewSolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlap, hit, err := s.Collide(a, tt.b)
			require.NoError(t, err)
			require.True(t, hit)

			contact, ok := overlap.(OverlapWithContact)
			require.True(t, ok, "expected contact, got %T", overlap)
			assert.InDelta(t, tt.depth, contact.Depth, 1e-3)
			assert.Greater(t, contact.Normal.Dot(tt.normal), float32(0.99))
		})
	}
}

func TestCollide_CoincidentCubes(t *testing.T) {
	overlap, hit, err := NewSolver().Collide(cubeAt(0, 0, 0), cubeAt(0, 0, 0))
	require.NoError(t, err)
	require.True(t, hit)

	contact, ok := overlap.(OverlapWithContact)
	require.True(t, ok)
	assert.InDelta(t, 1, contact.Depth, 1e-3)
	assert.InDelta(t, 1, contact.Normal.Len(), 1e-4)
}

func TestCollide_Separated(t *testing.T) {
	overlap, hit, err := NewSolver().Collide(cubeAt(0, 0, 0), cubeAt(3, 0, 0))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, overlap)
}

func TestCollide_ContactsDisabled(t *testing.T) {
	s := NewSolver()
	s.Contacts = false
	overlap, hit, err := s.Collide(cubeAt(0, 0, 0), cubeAt(0.5, 0, 0))
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, OverlapOnly{}, overlap)
}

func TestCollide_FlatShapeFallsBackToOverlapOnly(t *testing.T) {
	// Two coplanar squares: A - B is flat, so no polytope can be built.
	square := func(x float32) []mgl32.Vec3 {
		return []mgl32.Vec3{{x - 0.5, -0.5, 0}, {x + 0.5, -0.5, 0}, {x + 0.5, 0.5, 0}, {x - 0.5, 0.5, 0}}
	}
	overlap, hit, err := NewSolver().Collide(square(0), square(0.5))
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, OverlapOnly{}, overlap)
}

func TestAddHorizonEdge(t *testing.T) {
	var edges [][2]int
	edges = addHorizonEdge(edges, 0, 1)
	edges = addHorizonEdge(edges, 1, 2)
	edges = addHorizonEdge(edges, 1, 0)
	assert.Equal(t, [][2]int{{1, 2}}, edges)
}
