package gekkoedit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/gekko-editor/geom/editor"
	"github.com/gekko3d/gekko-editor/geom/gjk"
	"github.com/gekko3d/gekko-editor/geom/raycast"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the editor configuration. Zero fields loaded from YAML keep their defaults.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Viewport  ViewportConfig  `yaml:"viewport"`
	Camera    CameraConfig    `yaml:"camera"`
	Collision CollisionConfig `yaml:"collision"`
	Picking   PickingConfig   `yaml:"picking"`
	Gizmo     GizmoConfig     `yaml:"gizmo"`
	Scene     SceneDef        `yaml:"scene"`
}

type LoggingConfig struct {
	Prefix   string `yaml:"prefix"`
	Debug    bool   `yaml:"debug"`
	Encoding string `yaml:"encoding"` // console or json
	// File redirects logs to a rotated file when set.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type CameraConfig struct {
	Position mgl32.Vec3 `yaml:"position"`
	// Yaw and Pitch are in radians; yaw 0 looks down -Z.
	Yaw   float32 `yaml:"yaw"`
	Pitch float32 `yaml:"pitch"`
}

type CollisionConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Epsilon       float32 `yaml:"epsilon"`
	// Contacts enables best-effort penetration depth and normal.
	Contacts bool `yaml:"contacts"`
	// Workers parallelizes the world-space vertex transform; pair tests stay sequential.
	Workers int `yaml:"workers"`
}

type PickingConfig struct {
	DeterminantEpsilon float32 `yaml:"determinant_epsilon"`
}

type GizmoConfig struct {
	DragScale    float32 `yaml:"drag_scale"`
	ArmLength    float32 `yaml:"arm_length"`
	ArmThickness float32 `yaml:"arm_thickness"`
}

func DefaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Prefix: "gekkoedit", Encoding: "console", MaxSizeMB: 50, MaxBackups: 3},
		Viewport: ViewportConfig{Width: 1280, Height: 720},
		Camera:   CameraConfig{Position: mgl32.Vec3{0, 0, 5}},
		Collision: CollisionConfig{
			MaxIterations: gjk.DefaultMaxIterations,
			Epsilon:       gjk.DefaultEpsilon,
			Contacts:      true,
			Workers:       1,
		},
		Picking: PickingConfig{DeterminantEpsilon: raycast.DefaultDeterminantEpsilon},
		Gizmo: GizmoConfig{
			DragScale:    editor.DefaultDragScale,
			ArmLength:    editor.DefaultArmLength,
			ArmThickness: editor.DefaultArmThickness,
		},
	}
}

// LoadConfig decodes YAML over DefaultConfig and validates the result. Unknown keys are errors.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Logging.Encoding != "" && c.Logging.Encoding != "console" && c.Logging.Encoding != "json":
		return fmt.Errorf("%w: logging.encoding %q", ErrInvalidConfig, c.Logging.Encoding)
	case c.Logging.File != "" && c.Logging.MaxSizeMB <= 0:
		return fmt.Errorf("%w: logging.max_size_mb must be positive", ErrInvalidConfig)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	case c.Collision.MaxIterations <= 0:
		return fmt.Errorf("%w: collision.max_iterations must be positive", ErrInvalidConfig)
	case c.Collision.Epsilon <= 0:
		return fmt.Errorf("%w: collision.epsilon must be positive", ErrInvalidConfig)
	case c.Collision.Workers < 0:
		return fmt.Errorf("%w: collision.workers must not be negative", ErrInvalidConfig)
	case c.Picking.DeterminantEpsilon <= 0:
		return fmt.Errorf("%w: picking.determinant_epsilon must be positive", ErrInvalidConfig)
	case c.Gizmo.DragScale == 0:
		return fmt.Errorf("%w: gizmo.drag_scale must not be zero", ErrInvalidConfig)
	case c.Gizmo.ArmLength <= 0 || c.Gizmo.ArmThickness <= 0:
		return fmt.Errorf("%w: gizmo arm size must be positive", ErrInvalidConfig)
	}
	for i, shape := range c.Scene.Shapes {
		for axis := 0; axis < 3; axis++ {
			if shape.HalfExtents[axis] < 0 || shape.Scale[axis] < 0 {
				return fmt.Errorf("%w: scene.shapes[%d] has negative size", ErrInvalidConfig, i)
			}
		}
	}
	return nil
}

func (c CollisionConfig) Solver() gjk.Solver {
	return gjk.Solver{MaxIterations: c.MaxIterations, Epsilon: c.Epsilon, Contacts: c.Contacts}
}

func (c GizmoConfig) Editor() editor.GizmoConfig {
	return editor.GizmoConfig{DragScale: c.DragScale, ArmLength: c.ArmLength, ArmThickness: c.ArmThickness}
}
