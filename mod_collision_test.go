package gekkoedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-editor/geom/collision"
	"github.com/gekko3d/gekko-editor/geom/gjk"
)

func newCollisionTestApp(cfg CollisionConfig) (*App, *Commands, *AssetServer, *CollisionState) {
	app := NewAppBuilder().
		UseModule(AssetServerModule{}, CollisionModule{Config: cfg}).
		Build()
	return app, app.Commands(), Resource[AssetServer](app), Resource[CollisionState](app)
}

func TestCollisionSystem_FlagsCollidingEntities(t *testing.T) {
	app, cmd, server, state := newCollisionTestApp(DefaultConfig().Collision)

	a := SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{0, 0, 0}})
	b := SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{0.8, 0, 0}})
	far := SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{3, 0, 0}})
	ghost := SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{0.4, 0, 0}, NoCollider: true})
	app.Tick()

	assert.True(t, GetComponent[ColliderComponent](cmd, a).Colliding)
	assert.True(t, GetComponent[ColliderComponent](cmd, b).Colliding)
	assert.False(t, GetComponent[ColliderComponent](cmd, far).Colliding)
	assert.Nil(t, GetComponent[ColliderComponent](cmd, ghost))

	require.Len(t, state.Last.Collisions, 1)
	assert.Equal(t, collision.BodyID(a), state.Last.Collisions[0].A)
	assert.Equal(t, collision.BodyID(b), state.Last.Collisions[0].B)
	contact, ok := state.Last.Collisions[0].Overlap.(gjk.OverlapWithContact)
	require.True(t, ok)
	assert.InDelta(t, 0.2, contact.Depth, 1e-3)
	assert.True(t, state.Colliding(a))
	assert.False(t, state.Colliding(far))
}

func TestCollisionSystem_RebuildsEveryFrame(t *testing.T) {
	app, cmd, server, state := newCollisionTestApp(DefaultConfig().Collision)

	a := SpawnShape(cmd, server, ShapeDef{})
	b := SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{0.5, 0, 0}})
	app.Tick()
	require.True(t, GetComponent[ColliderComponent](cmd, a).Colliding)

	GetComponent[TransformComponent](cmd, b).Position = mgl32.Vec3{5, 0, 0}
	app.Tick()
	assert.False(t, GetComponent[ColliderComponent](cmd, a).Colliding)
	assert.False(t, GetComponent[ColliderComponent](cmd, b).Colliding)
	assert.Empty(t, state.Last.Collisions)

	GetComponent[TransformComponent](cmd, b).Position = mgl32.Vec3{0.5, 0, 0}
	app.Tick()
	require.True(t, GetComponent[ColliderComponent](cmd, b).Colliding)
	cmd.RemoveEntity(a)
	app.Tick()
	assert.False(t, GetComponent[ColliderComponent](cmd, b).Colliding)
}

func TestCollisionSystem_PairsFollowCreationOrder(t *testing.T) {
	app, cmd, server, state := newCollisionTestApp(DefaultConfig().Collision)

	// Queries visit the unnamed archetype first, so second is seen before first.
	SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{10, 0, 0}})
	first := SpawnShape(cmd, server, ShapeDef{Name: "named"})
	second := SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{0.5, 0, 0}})
	app.Tick()

	require.Len(t, state.Last.Collisions, 1)
	assert.Equal(t, collision.BodyID(first), state.Last.Collisions[0].A)
	assert.Equal(t, collision.BodyID(second), state.Last.Collisions[0].B)
}

func TestCollisionSystem_SkipsMissingGeometry(t *testing.T) {
	app, cmd, server, state := newCollisionTestApp(DefaultConfig().Collision)

	SpawnShape(cmd, server, ShapeDef{})
	cmd.AddEntity(NewTransformComponent(mgl32.Vec3{}), GeometryComponent{Asset: "missing"}, ColliderComponent{})
	app.Tick()

	assert.Equal(t, 1, state.Last.Skipped)
	assert.Empty(t, state.Last.Collisions)
}

func TestCollisionSystem_ParallelTransform(t *testing.T) {
	cfg := DefaultConfig().Collision
	cfg.Workers = 4
	app, cmd, server, state := newCollisionTestApp(cfg)

	for i := 0; i < 8; i++ {
		SpawnShape(cmd, server, ShapeDef{Position: mgl32.Vec3{float32(i) * 0.9, 0, 0}})
	}
	app.Tick()

	// Neighbours overlap by 0.1, nothing else touches.
	assert.Len(t, state.Last.Collisions, 7)
	assert.Equal(t, 8, state.Last.Colliding.Size())
}
