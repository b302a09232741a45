package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/cccsat/cccsat/solver"
)

// progressShift maps a counter to a position on the bar.
const progressShift = 48

// A progressObserver shows how much of the counter space a sweep went through.
// Bombs do not sweep the space in order, so only the number of steps is shown for them.
type progressObserver struct {
	bar   *progressbar.ProgressBar
	dir   solver.Direction
	steps bool
}

func newProgressObserver(w io.Writer, cfg *Config) *progressObserver {
	if cfg.Strategy == "bombs" {
		bar := progressbar.NewOptions64(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("bombing"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
		return &progressObserver{bar: bar, steps: true}
	}
	bar := progressbar.NewOptions64(1<<(solver.MaxVars-progressShift),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("sweeping "+cfg.Direction),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	return &progressObserver{bar: bar, dir: cfg.direction()}
}

func (o *progressObserver) Observe(step solver.Step) {
	if o.steps {
		_ = o.bar.Add(1)
		return
	}
	pos := step.Counter
	if o.dir == solver.Descending {
		pos = ^pos
	}
	_ = o.bar.Set64(int64(pos >> progressShift))
}

func (o *progressObserver) finish() {
	_ = o.bar.Finish()
}

// observers notifies each of its elements in turn.
type observers []solver.Observer

func (obs observers) Observe(step solver.Step) {
	for _, o := range obs {
		o.Observe(step)
	}
}
