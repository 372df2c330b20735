package editor

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/geom/core"
)

const (
	// DefaultDragScale is k in the drag mapping (dx*k + -dy*k)/2, world units per pixel.
	DefaultDragScale = 1.0 / 30.0

	DefaultArmLength    = 1.5
	DefaultArmThickness = 0.1
)

type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "none"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Vector returns the world axis as a unit vector, zero for AxisNone.
func (a Axis) Vector() mgl32.Vec3 {
	var v mgl32.Vec3
	if a >= AxisX && a <= AxisZ {
		v[a-1] = 1
	}
	return v
}

type GizmoState int

const (
	Idle GizmoState = iota
	Selected
	Dragging
)

func (s GizmoState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("GizmoState(%d)", int(s))
}

// Translation is a move along a single world axis.
type Translation struct {
	Axis   Axis
	Amount float32
}

// Apply adds the translation to the matching component of p only, so the other two
// components keep their exact bit patterns.
func (t Translation) Apply(p mgl32.Vec3) mgl32.Vec3 {
	if t.Axis >= AxisX && t.Axis <= AxisZ {
		p[t.Axis-1] += t.Amount
	}
	return p
}

func (t Translation) Vec3() mgl32.Vec3 {
	return t.Axis.Vector().Mul(t.Amount)
}

type GizmoConfig struct {
	DragScale    float32
	ArmLength    float32
	ArmThickness float32
}

func DefaultGizmoConfig() GizmoConfig {
	return GizmoConfig{
		DragScale:    DefaultDragScale,
		ArmLength:    DefaultArmLength,
		ArmThickness: DefaultArmThickness,
	}
}

// Gizmo is the translate widget: three axis arms that follow the selection.
type Gizmo struct {
	cfg GizmoConfig

	state    GizmoState
	axis     Axis
	selected uint64
	// anchor is the world point where the active arm was grabbed, moved along with the drag.
	anchor mgl32.Vec3

	arms        [3]core.Transform
	armGeometry *core.Geometry
}

func NewGizmo(cfg GizmoConfig) *Gizmo {
	def := DefaultGizmoConfig()
	if cfg.DragScale == 0 {
		cfg.DragScale = def.DragScale
	}
	if cfg.ArmLength <= 0 {
		cfg.ArmLength = def.ArmLength
	}
	if cfg.ArmThickness <= 0 {
		cfg.ArmThickness = def.ArmThickness
	}

	g := &Gizmo{
		cfg:         cfg,
		armGeometry: NewArmGeometry(cfg.ArmLength, cfg.ArmThickness),
	}
	for i := range g.arms {
		g.arms[i] = core.NewTransform()
	}
	// The arm mesh points along +X; rotate copies onto +Y and +Z.
	g.arms[1].Rotation = mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 0, 1})
	g.arms[2].Rotation = mgl32.QuatRotate(-math32.Pi/2, mgl32.Vec3{0, 1, 0})
	return g
}

// NewArmGeometry returns a square bar from the origin to length along +X.
func NewArmGeometry(length, thickness float32) *core.Geometry {
	half := thickness / 2
	bar := core.NewBox(mgl32.Vec3{length / 2, half, half})
	positions := append([]float32(nil), bar.Positions()...)
	for i := 0; i < len(positions); i += 3 {
		positions[i] += length / 2
	}
	g, err := core.NewGeometry(positions, nil, nil)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Gizmo) State() GizmoState { return g.state }
func (g *Gizmo) Axis() Axis        { return g.axis }

// Active reports whether there is a selection, i.e. the arms are shown.
func (g *Gizmo) Active() bool { return g.state != Idle }

// Selection returns the selected target id.
func (g *Gizmo) Selection() (uint64, bool) {
	return g.selected, g.state != Idle
}

func (g *Gizmo) Anchor() mgl32.Vec3 { return g.anchor }

func (g *Gizmo) Config() GizmoConfig { return g.cfg }

// Arms returns the three arm proxies as pick targets, X, Y, Z in that order.
// Their IDs are the matching Axis values.
func (g *Gizmo) Arms() [3]Target {
	var out [3]Target
	for i := range g.arms {
		out[i] = Target{
			ID:       uint64(AxisX) + uint64(i),
			Geometry: g.armGeometry,
			Model:    g.arms[i].ObjectToWorld(),
		}
	}
	return out
}

// ArmTransform returns the transform of the arm for axis.
func (g *Gizmo) ArmTransform(axis Axis) core.Transform {
	return g.arms[axis-1]
}

// PointerDown handles a press. With a selection, grabbing an arm starts a drag along
// that arm's axis; otherwise the press picks among targets, selecting the closest hit or
// clearing the selection on a miss. Returns the resulting state.
func (g *Gizmo) PointerDown(ray core.Ray, targets []Target) GizmoState {
	if g.state != Idle {
		arms := g.Arms()
		if hit, ok := Pick(ray, arms[:]); ok {
			g.state = Dragging
			g.axis = Axis(hit.ID)
			g.anchor = hit.Point
			return g.state
		}
	}

	hit, ok := Pick(ray, targets)
	if !ok {
		g.Deselect()
		return g.state
	}
	g.state = Selected
	g.axis = AxisNone
	g.selected = hit.ID
	g.anchor = hit.Point
	g.Sync(targets[hit.Index].Model.Col(3).Vec3())
	return g.state
}

// Drag converts a pointer delta in pixels into a translation along the active axis and
// moves the arms by it. The caller applies the same translation to the selected entity.
func (g *Gizmo) Drag(delta mgl32.Vec2) (Translation, bool) {
	if g.state != Dragging || g.axis == AxisNone {
		return Translation{}, false
	}
	k := g.cfg.DragScale
	t := Translation{
		Axis:   g.axis,
		Amount: (delta.X()*k + -delta.Y()*k) / 2,
	}
	for i := range g.arms {
		g.arms[i].Position = t.Apply(g.arms[i].Position)
	}
	g.anchor = t.Apply(g.anchor)
	return t, true
}

// PointerUp ends a drag. The selection is kept.
func (g *Gizmo) PointerUp() {
	if g.state == Dragging {
		g.state = Selected
	}
	g.axis = AxisNone
}

// Sync recenters the arms on the selection's world translation.
func (g *Gizmo) Sync(worldTranslation mgl32.Vec3) {
	if g.state == Idle {
		return
	}
	for i := range g.arms {
		g.arms[i].Position = worldTranslation
	}
}

// Deselect clears the selection and the active axis.
func (g *Gizmo) Deselect() {
	g.state = Idle
	g.axis = AxisNone
	g.selected = 0
	g.anchor = mgl32.Vec3{}
}
