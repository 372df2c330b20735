// Package collision runs narrow-phase GJK over every pair of bodies each frame.
package collision

import (
	"errors"

	"github.com/ErikKalkoken/go-set"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"github.com/gekko3d/gekko-editor/geom/core"
	"github.com/gekko3d/gekko-editor/geom/gjk"
)

type BodyID uint64

// Body is a convex point set in model space placed by Model.
type Body struct {
	ID     BodyID
	Points []mgl32.Vec3
	Model  mgl32.Mat4
}

// Collision is one overlapping pair. A precedes B in the input order.
type Collision struct {
	A, B    BodyID
	Overlap gjk.Overlap
}

type Result struct {
	Collisions []Collision
	Colliding  set.Set[BodyID]
	// Skipped counts bodies without points.
	Skipped int
	// Anomalies counts pairs where the solver hit its iteration cap.
	Anomalies int
}

// Logger is the subset of the app logger the world reports anomalies to.
type Logger interface {
	Warnf(format string, args ...any)
}

// World owns the scratch buffers reused across Update calls.
type World struct {
	Solver gjk.Solver
	// Workers bounds the goroutines transforming bodies to world space; <= 1 runs inline.
	Workers int
	Log     Logger

	world [][]mgl32.Vec3
}

func NewWorld(solver gjk.Solver, workers int, log Logger) *World {
	return &World{Solver: solver, Workers: workers, Log: log}
}

// Update recomputes the full collision set for bodies. Nothing is carried over from
// previous calls. Pairs are tested sequentially in input order (i < j).
func (w *World) Update(bodies []Body) Result {
	res := Result{}
	w.transform(bodies)

	for i := range bodies {
		if len(bodies[i].Points) == 0 {
			res.Skipped++
		}
	}

	for i := 0; i < len(bodies); i++ {
		a := w.world[i]
		if len(a) == 0 {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			b := w.world[j]
			if len(b) == 0 {
				continue
			}
			overlap, hit, err := w.Solver.Collide(a, b)
			if err != nil {
				if errors.Is(err, gjk.ErrAnomalousNoIntersection) {
					res.Anomalies++
				}
				w.warnf("collision: bodies %d and %d: %v", bodies[i].ID, bodies[j].ID, err)
				continue
			}
			if !hit {
				continue
			}
			res.Collisions = append(res.Collisions, Collision{A: bodies[i].ID, B: bodies[j].ID, Overlap: overlap})
			res.Colliding.Add(bodies[i].ID, bodies[j].ID)
		}
	}
	return res
}

func (w *World) transform(bodies []Body) {
	if cap(w.world) < len(bodies) {
		w.world = make([][]mgl32.Vec3, len(bodies))
	}
	w.world = w.world[:len(bodies)]

	one := func(i int) {
		pts := bodies[i].Points
		if cap(w.world[i]) < len(pts) {
			w.world[i] = make([]mgl32.Vec3, len(pts))
		}
		w.world[i] = w.world[i][:len(pts)]
		core.TransformPointsInto(w.world[i], pts, bodies[i].Model)
	}

	if w.Workers <= 1 || len(bodies) < 2 {
		for i := range bodies {
			one(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(w.Workers)
	for i := range bodies {
		g.Go(func() error {
			one(i)
			return nil
		})
	}
	_ = g.Wait()
}

func (w *World) warnf(format string, args ...any) {
	if w.Log != nil {
		w.Log.Warnf(format, args...)
	}
}
