// Command gekkoedit runs the editor core headless: it spawns a scene, replays a scripted
// click and drag through the input resource and logs the collisions of every frame.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	gekkoedit "github.com/gekko3d/gekko-editor"
	"github.com/gekko3d/gekko-editor/geom/core"
)

var (
	configFlag = flag.String("config", "", "YAML config file; defaults are used when empty")
	framesFlag = flag.Int("frames", 12, "number of frames to simulate")
	debugFlag  = flag.Bool("debug", false, "enable debug logging")
	dragFlag   = flag.Float64("drag", 15, "pointer motion per frame while dragging, in pixels")
)

var defaultScene = gekkoedit.SceneDef{Shapes: []gekkoedit.ShapeDef{
	{Name: "left", Position: mgl32.Vec3{-2, 0, 0}, Color: mgl32.Vec3{0.2, 0.6, 0.9}},
	{Name: "right", Position: mgl32.Vec3{0, 0, 0}, Color: mgl32.Vec3{0.9, 0.6, 0.2}},
}}

func main() {
	flag.Parse()

	cfg := gekkoedit.DefaultConfig()
	if *configFlag != "" {
		var err error
		cfg, err = gekkoedit.LoadConfigFile(*configFlag)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *debugFlag {
		cfg.Logging.Debug = true
	}
	if len(cfg.Scene.Shapes) == 0 {
		cfg.Scene = defaultScene
	}

	app := gekkoedit.NewEditorApp(cfg)
	if err := run(app, *framesFlag, float32(*dragFlag)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run selects the first entity, grabs its X arm and drags it for the remaining frames.
func run(app *gekkoedit.App, frames int, drag float32) error {
	logger := app.Logger()
	input := gekkoedit.Resource[gekkoedit.Input](app)
	cam := gekkoedit.Resource[core.Camera](app)
	ed := gekkoedit.Resource[gekkoedit.ObjectEditor](app)
	state := gekkoedit.Resource[gekkoedit.CollisionState](app)
	clock := gekkoedit.Resource[gekkoedit.Time](app)
	cmd := app.Commands()

	const first = gekkoedit.EntityId(1)
	tr := gekkoedit.GetComponent[gekkoedit.TransformComponent](cmd, first)
	if tr == nil {
		return fmt.Errorf("scene has no entities")
	}
	vp := cam.ViewProjection(input.Viewport.Aspect())
	center := tr.WorldTranslation()
	half := ed.Gizmo.Config().ArmThickness / 2

	for frame := 0; frame < frames; frame++ {
		switch frame {
		case 0:
			// The face of the cube closest to the camera.
			x, y := toScreen(center.Add(mgl32.Vec3{0, 0, 0.5}), vp, input)
			input.PressAt(gekkoedit.MouseButtonLeft, x, y)
		case 1:
			input.Release(gekkoedit.MouseButtonLeft)
		case 2:
			armPoint := center.Add(mgl32.Vec3{ed.Gizmo.Config().ArmLength * 2 / 3, 0, half})
			x, y := toScreen(armPoint, vp, input)
			input.PressAt(gekkoedit.MouseButtonLeft, x, y)
		case frames - 1:
			input.Release(gekkoedit.MouseButtonLeft)
		default:
			input.MoveBy(drag, 0)
		}

		app.Tick()

		logger.Debugf("frame %d took %s", clock.Frame, clock.Dt)
		pos := gekkoedit.GetComponent[gekkoedit.TransformComponent](cmd, first).Position
		logger.Infof("frame %d: gizmo %s axis %s, entity %d at (%.3f, %.3f, %.3f), %d collisions, colliding %s",
			frame, ed.Gizmo.State(), ed.Gizmo.Axis(), ed.Selected(),
			pos.X(), pos.Y(), pos.Z(), len(state.Last.Collisions), state.Last.Colliding)
	}
	if l, ok := logger.(*gekkoedit.DefaultLogger); ok {
		_ = l.Sync()
	}
	return nil
}

func toScreen(p mgl32.Vec3, vp mgl32.Mat4, input *gekkoedit.Input) (float32, float32) {
	clip := vp.Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	x := (ndc.X() + 1) / 2 * float32(input.Viewport.Width)
	y := (1 - ndc.Y()) / 2 * float32(input.Viewport.Height)
	return x, y
}
