package gekkoedit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/core"
)

// CameraModule installs the editor camera as a *core.Camera resource.
type CameraModule struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32
}

func (mod CameraModule) Install(app *App, cmd *Commands) {
	cam := core.NewCamera()
	cam.Position = mod.Position
	cam.Yaw = mod.Yaw
	cam.Pitch = mod.Pitch
	cmd.AddResources(cam)
}
