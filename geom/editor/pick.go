// Package editor implements object picking and the translate gizmo of the scene editor.
// It holds no scene references: callers pass the targets and rays for every operation.
package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/core"
	"github.com/gekko3d/gekko-editor/geom/raycast"
)

// Target is a pickable surface: a shared geometry placed in the world by Model.
type Target struct {
	ID       uint64
	Geometry *core.Geometry
	Model    mgl32.Mat4
}

// PickHit is the closest intersection found by Pick.
type PickHit struct {
	Index int // position of the target in the slice passed to Pick
	ID    uint64
	raycast.Hit
}

// Pick returns the target whose surface ray hits first. Targets without triangles are
// ignored. On equal distance the earlier target and triangle win.
func Pick(ray core.Ray, targets []Target) (PickHit, bool) {
	var best PickHit
	found := false
	for i, target := range targets {
		n := target.Geometry.TriangleCount()
		for tri := 0; tri < n; tri++ {
			hit, ok := raycast.IntersectTriangle(ray, target.Geometry.Triangle(tri), target.Model)
			if !ok {
				continue
			}
			if !found || hit.T < best.T {
				best = PickHit{Index: i, ID: target.ID, Hit: hit}
				found = true
			}
		}
	}
	return best, found
}
