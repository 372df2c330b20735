package gekkoedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*App, *Commands, *AssetServer) {
	app := NewAppBuilder().UseModule(AssetServerModule{}).Build()
	return app, app.Commands(), Resource[AssetServer](app)
}

func TestCloneEntity(t *testing.T) {
	app, cmd, server := newTestApp()
	src := SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{1, 2, 3}, Color: mgl32.Vec3{0, 0, 1}})
	app.FlushCommands()
	GetComponent[ColliderComponent](cmd, src).Colliding = true

	copied := CloneEntity(cmd, src, false)
	linked := CloneEntity(cmd, src, true)
	require.NotZero(t, copied)
	assert.Greater(t, uint64(linked), uint64(copied))
	app.FlushCommands()

	srcTr := GetComponent[TransformComponent](cmd, src)
	cpTr := GetComponent[TransformComponent](cmd, copied)
	assert.Equal(t, srcTr.Position, cpTr.Position)
	cpTr.Position = mgl32.Vec3{9, 9, 9}
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, srcTr.Position, "transform must be deep-copied")

	assert.Equal(t, GetComponent[GeometryComponent](cmd, src).Asset, GetComponent[GeometryComponent](cmd, copied).Asset)
	assert.False(t, GetComponent[ColliderComponent](cmd, copied).Colliding)

	srcMat := GetComponent[MaterialComponent](cmd, src).Material
	assert.NotSame(t, srcMat, GetComponent[MaterialComponent](cmd, copied).Material)
	assert.Equal(t, *srcMat, *GetComponent[MaterialComponent](cmd, copied).Material)
	assert.Same(t, srcMat, GetComponent[MaterialComponent](cmd, linked).Material)
}

func TestCloneEntity_MissingSource(t *testing.T) {
	_, cmd, _ := newTestApp()
	assert.Zero(t, CloneEntity(cmd, 42, false))
}

func TestSpawnScene(t *testing.T) {
	app, cmd, server := newTestApp()
	ids := SpawnScene(cmd, server, SceneDef{Shapes: []ShapeDef{
		{Name: "a", Position: mgl32.Vec3{-1, 0, 0}},
		{Name: "b", Position: mgl32.Vec3{1, 0, 0}, Rotation: mgl32.Vec3{0, 90, 0}},
		{HalfExtents: mgl32.Vec3{2, 2, 2}, Scale: mgl32.Vec3{1, 2, 1}, NoCollider: true},
	}})
	app.FlushCommands()
	require.Len(t, ids, 3)

	// Unit boxes share geometry.
	assert.Equal(t, 2, server.GeometryCount())
	assert.Equal(t, GetComponent[GeometryComponent](cmd, ids[0]).Asset, GetComponent[GeometryComponent](cmd, ids[1]).Asset)

	assert.Equal(t, "a", GetComponent[NameComponent](cmd, ids[0]).Name)
	assert.Nil(t, GetComponent[NameComponent](cmd, ids[2]))
	assert.NotNil(t, GetComponent[ColliderComponent](cmd, ids[1]))
	assert.Nil(t, GetComponent[ColliderComponent](cmd, ids[2]))

	tr := GetComponent[TransformComponent](cmd, ids[0])
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tr.Scale)
	assert.Equal(t, defaultShapeColor, GetComponent[MaterialComponent](cmd, ids[0]).Material.Color)
	assert.Equal(t, mgl32.Vec3{1, 2, 1}, GetComponent[TransformComponent](cmd, ids[2]).Scale)

	// 90 degrees about Y turns +X into -Z.
	rotated := GetComponent[TransformComponent](cmd, ids[1]).Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, rotated.X(), 1e-5)
	assert.InDelta(t, -1, rotated.Z(), 1e-5)
}
