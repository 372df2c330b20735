package gekkoedit

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/core"
	"github.com/gekko3d/gekko-editor/geom/editor"
)

// Highlight colours, in priority order: colliding wins over selected.
var (
	CollidingColor = mgl32.Vec3{1, 0.35, 0.1}
	SelectedColor  = mgl32.Vec3{1, 0.9, 0.25}

	GizmoAxisColors = [3]mgl32.Vec3{
		{0.95, 0.25, 0.25},
		{0.25, 0.95, 0.35},
		{0.35, 0.45, 0.95},
	}
)

// DrawItem is one geometry instance for the renderer. Entity is 0 for gizmo arms.
type DrawItem struct {
	Entity   EntityId
	Geometry *core.Geometry
	Model    mgl32.Mat4
	Color    mgl32.Vec3
}

type CameraSnapshot struct {
	Position       mgl32.Vec3
	ViewProjection mgl32.Mat4
}

// RenderSnapshot is an immutable description of one frame.
type RenderSnapshot struct {
	Frame  uint64
	Items  []DrawItem
	Gizmo  []DrawItem
	Camera CameraSnapshot
}

// RenderSnapshotContainer hands the latest snapshot to a renderer running on another goroutine.
type RenderSnapshotContainer struct {
	latest atomic.Pointer[RenderSnapshot]
	// frames is only touched by RenderSnapshotSystem.
	frames uint64
}

func (c *RenderSnapshotContainer) Update(s *RenderSnapshot) {
	c.latest.Store(s)
}

// Get returns the latest snapshot, or nil before the first frame.
func (c *RenderSnapshotContainer) Get() *RenderSnapshot {
	return c.latest.Load()
}

type RenderSnapshotModule struct{}

func (RenderSnapshotModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&RenderSnapshotContainer{})
	app.UseSystem(
		System(RenderSnapshotSystem).
			InStage(PostUpdate),
	)
}

// RenderSnapshotSystem publishes the frame's draw list. It runs after the gizmo sync so
// the arms sit on the selection's current position.
func RenderSnapshotSystem(cmd *Commands, out *RenderSnapshotContainer, cam *core.Camera,
	input *Input, ed *ObjectEditor, server *AssetServer) {
	selected := ed.Selected()
	snap := &RenderSnapshot{
		Frame: out.frames,
		Camera: CameraSnapshot{
			Position:       cam.Position,
			ViewProjection: cam.ViewProjection(input.Viewport.Aspect()),
		},
	}

	MakeQuery2[TransformComponent, GeometryComponent](cmd).Map(
		func(eid EntityId, tr *TransformComponent, geo *GeometryComponent) bool {
			g, ok := server.Geometry(geo.Asset)
			if !ok {
				return true
			}
			snap.Items = append(snap.Items, DrawItem{
				Entity:   eid,
				Geometry: g,
				Model:    tr.ObjectToWorld(),
				Color:    entityColor(cmd, eid, selected),
			})
			return true
		})

	if ed.Gizmo.Active() {
		for _, arm := range ed.Gizmo.Arms() {
			snap.Gizmo = append(snap.Gizmo, DrawItem{
				Geometry: arm.Geometry,
				Model:    arm.Model,
				Color:    GizmoAxisColors[editor.Axis(arm.ID)-editor.AxisX],
			})
		}
	}

	out.Update(snap)
	out.frames++
}

func entityColor(cmd *Commands, eid, selected EntityId) mgl32.Vec3 {
	if c := GetComponent[ColliderComponent](cmd, eid); c != nil && c.Colliding {
		return CollidingColor
	}
	if eid == selected {
		return SelectedColor
	}
	if m := GetComponent[MaterialComponent](cmd, eid); m != nil && m.Material != nil {
		return m.Material.Color
	}
	return defaultShapeColor
}
