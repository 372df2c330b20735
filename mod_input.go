package gekkoedit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/raycast"
)

const (
	MouseButtonLeft int = iota
	MouseButtonRight
	MouseButtonMiddle
	mouseButtonCount
)

// Input is the pointer state for the current frame. The host feeds events through
// PressAt, MoveTo and Release; the edge flags and the accumulated delta are cleared
// at the end of every frame.
type Input struct {
	Pressed      [mouseButtonCount]bool
	JustPressed  [mouseButtonCount]bool
	JustReleased [mouseButtonCount]bool

	MouseX, MouseY float32
	// Delta is the pointer motion since the previous frame, in pixels. Moves within
	// one frame accumulate.
	Delta mgl32.Vec2

	Viewport raycast.Viewport
}

type InputModule struct {
	Viewport raycast.Viewport
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{Viewport: mod.Viewport})
	app.UseSystem(
		System(inputEndFrameSystem).
			InStage(Finale),
	)
}

func (input *Input) PressAt(button int, x, y float32) {
	input.MoveTo(x, y)
	if !input.Pressed[button] {
		input.JustPressed[button] = true
	}
	input.Pressed[button] = true
}

func (input *Input) MoveTo(x, y float32) {
	input.Delta = input.Delta.Add(mgl32.Vec2{x - input.MouseX, y - input.MouseY})
	input.MouseX, input.MouseY = x, y
}

func (input *Input) MoveBy(dx, dy float32) {
	input.MoveTo(input.MouseX+dx, input.MouseY+dy)
}

func (input *Input) Release(button int) {
	if input.Pressed[button] {
		input.JustReleased[button] = true
	}
	input.Pressed[button] = false
}

func (input *Input) SetViewport(width, height int) {
	input.Viewport = raycast.Viewport{Width: width, Height: height}
}

func inputEndFrameSystem(input *Input) {
	input.JustPressed = [mouseButtonCount]bool{}
	input.JustReleased = [mouseButtonCount]bool{}
	input.Delta = mgl32.Vec2{}
}
