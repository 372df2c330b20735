package gekkoedit

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SceneDef defines the initial state of a scene.
type SceneDef struct {
	Shapes []ShapeDef `yaml:"shapes"`
}

// ShapeDef defines a box instantiation. Boxes with equal extents share one geometry.
type ShapeDef struct {
	Name string `yaml:"name"`
	// HalfExtents defaults to a unit cube.
	HalfExtents mgl32.Vec3 `yaml:"half_extents"`
	Position    mgl32.Vec3 `yaml:"position"`
	// Rotation is XYZ Euler angles in degrees.
	Rotation mgl32.Vec3 `yaml:"rotation"`
	// Scale defaults to (1,1,1).
	Scale      mgl32.Vec3 `yaml:"scale"`
	Color      mgl32.Vec3 `yaml:"color"`
	NoCollider bool       `yaml:"no_collider"`
}

var defaultShapeColor = mgl32.Vec3{0.8, 0.8, 0.8}

// SpawnScene queues one entity per shape and returns their ids in definition order.
func SpawnScene(cmd *Commands, server *AssetServer, def SceneDef) []EntityId {
	ids := make([]EntityId, 0, len(def.Shapes))
	for _, shape := range def.Shapes {
		ids = append(ids, SpawnShape(cmd, server, shape))
	}
	return ids
}

func SpawnShape(cmd *Commands, server *AssetServer, shape ShapeDef) EntityId {
	half := shape.HalfExtents
	if half == (mgl32.Vec3{}) {
		half = mgl32.Vec3{0.5, 0.5, 0.5}
	}
	tr := NewTransformComponent(shape.Position)
	if shape.Scale != (mgl32.Vec3{}) {
		tr.Scale = shape.Scale
	}
	if shape.Rotation != (mgl32.Vec3{}) {
		tr.Rotation = mgl32.AnglesToQuat(
			mgl32.DegToRad(shape.Rotation.X()),
			mgl32.DegToRad(shape.Rotation.Y()),
			mgl32.DegToRad(shape.Rotation.Z()),
			mgl32.XYZ,
		)
	}
	color := shape.Color
	if color == (mgl32.Vec3{}) {
		color = defaultShapeColor
	}

	comps := []any{
		tr,
		GeometryComponent{Asset: server.LoadBox(half)},
		NewMaterialComponent(color),
	}
	if shape.Name != "" {
		comps = append(comps, NameComponent{Name: shape.Name})
	}
	if !shape.NoCollider {
		comps = append(comps, ColliderComponent{})
	}
	return cmd.AddEntity(comps...)
}

// SceneModule spawns a scene at startup. It needs the AssetServerModule installed first.
type SceneModule struct {
	Scene SceneDef
}

func (mod SceneModule) Install(app *App, cmd *Commands) {
	server := Resource[AssetServer](app)
	if server == nil {
		panic("SceneModule requires AssetServerModule")
	}
	ids := SpawnScene(cmd, server, mod.Scene)
	app.Logger().Infof("scene: spawned %d shapes", len(ids))
}
