package gekkoedit

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/core"
	"github.com/gekko3d/gekko-editor/geom/editor"
	"github.com/gekko3d/gekko-editor/geom/raycast"
)

// ObjectEditor holds the editor's single gizmo and the entity it has selected.
type ObjectEditor struct {
	Gizmo       *editor.Gizmo
	Unprojector raycast.Unprojector

	targets []editor.Target
}

// Selected returns the selected entity, or 0.
func (ed *ObjectEditor) Selected() EntityId {
	id, ok := ed.Gizmo.Selection()
	if !ok {
		return 0
	}
	return EntityId(id)
}

type ObjectEditorModule struct {
	Gizmo   GizmoConfig
	Picking PickingConfig
}

func (mod ObjectEditorModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&ObjectEditor{
		Gizmo:       editor.NewGizmo(mod.Gizmo.Editor()),
		Unprojector: raycast.Unprojector{DeterminantEpsilon: mod.Picking.DeterminantEpsilon},
	})
	app.UseSystem(
		System(EditorInteractionSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(EditorGizmoSyncSystem).
			InStage(PostUpdate),
	)
}

// EditorInteractionSystem turns this frame's pointer input into gizmo events: a press
// picks or grabs an arm, motion while pressed drags the selection, a release ends the drag.
func EditorInteractionSystem(cmd *Commands, input *Input, cam *core.Camera, ed *ObjectEditor, server *AssetServer) {
	log := cmd.Logger()

	if input.JustPressed[MouseButtonLeft] {
		ray, err := ed.Unprojector.ScreenToRay(input.MouseX, input.MouseY, input.Viewport,
			cam.ViewProjection(input.Viewport.Aspect()))
		if err != nil {
			log.Warnf("editor: pick ray at (%.1f, %.1f): %v", input.MouseX, input.MouseY, err)
		} else {
			state := ed.Gizmo.PointerDown(ray, ed.pickTargets(cmd, server))
			log.Debugf("editor: pointer down -> %s (axis %s, entity %d)", state, ed.Gizmo.Axis(), ed.Selected())
		}
	} else if input.Pressed[MouseButtonLeft] && input.Delta != (mgl32.Vec2{}) {
		if t, ok := ed.Gizmo.Drag(input.Delta); ok {
			if tr := GetComponent[TransformComponent](cmd, ed.Selected()); tr != nil {
				tr.Position = t.Apply(tr.Position)
			}
		}
	}

	if input.JustReleased[MouseButtonLeft] {
		ed.Gizmo.PointerUp()
	}
}

// EditorGizmoSyncSystem recenters the gizmo on the selection, or drops a selection whose
// entity no longer exists.
func EditorGizmoSyncSystem(cmd *Commands, ed *ObjectEditor) {
	eid := ed.Selected()
	if eid == 0 {
		return
	}
	tr := GetComponent[TransformComponent](cmd, eid)
	if tr == nil {
		cmd.Logger().Debugf("editor: selected entity %d is gone", eid)
		ed.Gizmo.Deselect()
		return
	}
	ed.Gizmo.Sync(tr.WorldTranslation())
}

// pickTargets lists every entity with geometry, in creation order.
func (ed *ObjectEditor) pickTargets(cmd *Commands, server *AssetServer) []editor.Target {
	ed.targets = ed.targets[:0]
	MakeQuery2[TransformComponent, GeometryComponent](cmd).Map(
		func(eid EntityId, tr *TransformComponent, geo *GeometryComponent) bool {
			g, ok := server.Geometry(geo.Asset)
			if !ok {
				return true
			}
			ed.targets = append(ed.targets, editor.Target{
				ID:       uint64(eid),
				Geometry: g,
				Model:    tr.ObjectToWorld(),
			})
			return true
		})
	slices.SortFunc(ed.targets, func(a, b editor.Target) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return ed.targets
}
