package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a Y-up perspective camera. Yaw 0 / Pitch 0 looks down -Z.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // radians, around +Y
	Pitch    float32 // radians
	FovY     float32 // radians
	Near     float32
	Far      float32
}

func NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 0, 0},
		FovY:     100.0 / 180.0 * math32.Pi,
		Near:     1e-3,
		Far:      1e3,
	}
}

func (c *Camera) Forward() mgl32.Vec3 {
	return mgl32.Vec3{
		math32.Cos(c.Pitch) * math32.Sin(c.Yaw),
		math32.Sin(c.Pitch),
		-math32.Cos(c.Pitch) * math32.Cos(c.Yaw),
	}
}

func (c *Camera) View() mgl32.Mat4 {
	eye := c.Position
	return mgl32.LookAtV(eye, eye.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View for the given viewport aspect ratio.
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}
