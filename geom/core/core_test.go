package core

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n, err := Normalize(mgl32.Vec3{3, 0, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, n.X(), 1e-6)
	assert.InDelta(t, 0.8, n.Z(), 1e-6)

	_, err = Normalize(mgl32.Vec3{})
	assert.ErrorIs(t, err, ErrDegenerateVector)

	_, err = Normalize2(mgl32.Vec2{})
	assert.ErrorIs(t, err, ErrDegenerateVector)
}

func TestTransform_ObjectToWorld(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	tr.Rotation = mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 0, 1})

	// (1,0,0) scaled to (2,0,0), rotated to (0,2,0), translated to (1,4,3)
	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 4, p.Y(), 1e-5)
	assert.InDelta(t, 3, p.Z(), 1e-5)

	back := tr.WorldToObject().Mul4x1(p.Vec4(1)).Vec3()
	assert.InDelta(t, 1, back.X(), 1e-5)
	assert.InDelta(t, 0, back.Y(), 1e-5)
	assert.InDelta(t, 0, back.Z(), 1e-5)

	assert.Equal(t, tr.Position, tr.WorldTranslation())
}

func TestTransform_CloneIsIndependent(t *testing.T) {
	a := NewTransform()
	b := a.Clone()
	b.Position[0] = 5
	b.Scale[1] = 3

	assert.Equal(t, float32(0), a.Position.X())
	assert.Equal(t, float32(1), a.Scale.Y())
}

func TestNewGeometry(t *testing.T) {
	tri := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}

	g, err := NewGeometry(tri, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, g.TriangleCount())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, g.Triangle(0)[1])

	// Caller buffers are copied
	tri[0] = 9
	assert.Equal(t, float32(0), g.Triangle(0)[0].X())

	quad, err := NewGeometry([]float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, nil, []uint32{0, 1, 2, 0, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, quad.TriangleCount())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, quad.Triangle(1)[2])
	assert.Len(t, quad.Vertices(), 4)

	empty, err := NewGeometry(nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, empty.Empty())

	tests := []struct {
		name      string
		positions []float32
		normals   []float32
		indices   []uint32
	}{
		{"partial vertex", []float32{0, 0}, nil, nil},
		{"partial triangle", []float32{0, 0, 0, 1, 1, 1}, nil, nil},
		{"normals mismatch", tri, []float32{0, 0, 1}, nil},
		{"index out of range", tri, nil, []uint32{0, 1, 3}},
		{"partial index triangle", tri, nil, []uint32{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeometry(tt.positions, tt.normals, tt.indices)
			assert.ErrorIs(t, err, ErrMalformedGeometry)
		})
	}
}

func TestNewCube(t *testing.T) {
	g := NewCube()
	assert.Equal(t, 12, g.TriangleCount())
	for _, v := range g.Vertices() {
		assert.InDelta(t, 0.5, math32.Abs(v.X()), 1e-7)
		assert.InDelta(t, 0.5, math32.Abs(v.Y()), 1e-7)
		assert.InDelta(t, 0.5, math32.Abs(v.Z()), 1e-7)
	}
}

func TestTransformPoints(t *testing.T) {
	pts := []mgl32.Vec3{{0, 0, 0}, {1, 1, 1}}
	out := TransformPoints(pts, mgl32.Translate3D(1, 0, -2))
	assert.Equal(t, mgl32.Vec3{1, 0, -2}, out[0])
	assert.Equal(t, mgl32.Vec3{2, 1, -1}, out[1])
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, pts[0])

	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, Centroid(pts))
	assert.Equal(t, mgl32.Vec3{}, Centroid(nil))
}

func TestCamera_ViewProjectionLooksDownNegativeZ(t *testing.T) {
	cam := NewCamera()
	cam.FovY = math32.Pi / 2
	cam.Near = 1
	cam.Far = 100

	clip := cam.ViewProjection(1).Mul4x1(mgl32.Vec4{0, 0, -10, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)
}

func TestRay(t *testing.T) {
	r, err := NewRay(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -2})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 0, -3}, r.At(3))

	_, err = NewRay(mgl32.Vec3{}, mgl32.Vec3{})
	assert.ErrorIs(t, err, ErrDegenerateVector)
}
