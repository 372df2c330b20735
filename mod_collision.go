package gekkoedit

import (
	"cmp"
	"slices"

	"github.com/gekko3d/gekko-editor/geom/collision"
)

// CollisionState holds the collision world and the result of the last frame.
type CollisionState struct {
	World *collision.World
	Last  collision.Result

	bodies []collision.Body
}

// Colliding reports whether eid overlapped any other collider in the last frame.
func (s *CollisionState) Colliding(eid EntityId) bool {
	return s.Last.Colliding.Contains(collision.BodyID(eid))
}

type CollisionModule struct {
	Config CollisionConfig
}

func (mod CollisionModule) Install(app *App, cmd *Commands) {
	cfg := mod.Config
	if cfg.MaxIterations == 0 {
		cfg = DefaultConfig().Collision
	}
	cmd.AddResources(&CollisionState{
		World: collision.NewWorld(cfg.Solver(), cfg.Workers, app.Logger()),
	})
	app.UseSystem(
		System(CollisionSystem).
			InStage(Update),
	)
}

// CollisionSystem tests every pair of collider entities, in creation order, and rewrites
// their Colliding flags.
func CollisionSystem(cmd *Commands, state *CollisionState, server *AssetServer) {
	state.bodies = state.bodies[:0]
	MakeQuery3[TransformComponent, GeometryComponent, ColliderComponent](cmd).Map(
		func(eid EntityId, tr *TransformComponent, geo *GeometryComponent, _ *ColliderComponent) bool {
			g, _ := server.Geometry(geo.Asset)
			state.bodies = append(state.bodies, collision.Body{
				ID:     collision.BodyID(eid),
				Points: g.Vertices(),
				Model:  tr.ObjectToWorld(),
			})
			return true
		})
	slices.SortFunc(state.bodies, func(a, b collision.Body) int {
		return cmp.Compare(a.ID, b.ID)
	})

	state.Last = state.World.Update(state.bodies)

	MakeQuery1[ColliderComponent](cmd).Map(func(eid EntityId, c *ColliderComponent) bool {
		c.Colliding = state.Last.Colliding.Contains(collision.BodyID(eid))
		return true
	})

	log := cmd.Logger()
	if log.DebugEnabled() {
		for _, c := range state.Last.Collisions {
			log.Debugf("collision: %d <-> %d", c.A, c.B)
		}
	}
}
