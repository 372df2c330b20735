package gekkoedit

import (
	"github.com/gekko3d/gekko-editor/geom/raycast"
)

// DefaultModules returns the editor modules configured from cfg, logging first so
// every later module can log while installing.
func DefaultModules(cfg Config) []Module {
	return []Module{
		LoggingModule{
			Prefix:   cfg.Logging.Prefix,
			Debug:    cfg.Logging.Debug,
			Encoding: cfg.Logging.Encoding,
			File: LogFile{
				Path:       cfg.Logging.File,
				MaxSizeMB:  cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
			},
		},
		TimeModule{},
		AssetServerModule{},
		InputModule{Viewport: raycast.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}},
		CameraModule{Position: cfg.Camera.Position, Yaw: cfg.Camera.Yaw, Pitch: cfg.Camera.Pitch},
		ObjectEditorModule{Gizmo: cfg.Gizmo, Picking: cfg.Picking},
		CollisionModule{Config: cfg.Collision},
		RenderSnapshotModule{},
		SceneModule{Scene: cfg.Scene},
	}
}

// NewEditorApp builds an app with DefaultModules(cfg) followed by extra.
func NewEditorApp(cfg Config, extra ...Module) *App {
	return NewAppBuilder().
		UseModule(DefaultModules(cfg)...).
		UseModule(extra...).
		Build()
}
