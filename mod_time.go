package gekkoedit

import (
	"time"
)

// Time is the wall clock of the current frame. Dt is zero on the first frame.
type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64

	now func() time.Time
}

type TimeModule struct {
	// Now overrides the clock, for tests and replays.
	Now func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := mod.Now
	if now == nil {
		now = time.Now
	}
	cmd.AddResources(&Time{now: now})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(timeResource *Time) {
	now := timeResource.now()
	if !timeResource.Time.IsZero() {
		timeResource.Dt = now.Sub(timeResource.Time)
		timeResource.Frame++
	}
	timeResource.Time = now
}
