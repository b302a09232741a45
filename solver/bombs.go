package solver

import (
	"fmt"
	"math/rand/v2"
)

// maxBombs is the biggest number of counters a Bombs can run.
const maxBombs = 1 << 16

// A BombConfig describes how the counter space is split between bombs.
// The distance between two consecutive bombs is 2^(MinStep + r), r being drawn uniformly in [0, Spread].
type BombConfig struct {
	MinStep int
	Spread  int
	Seed    uint64
}

// DefaultBombConfig drops between 64 and 1024 bombs.
var DefaultBombConfig = BombConfig{MinStep: MaxVars - 10, Spread: 4, Seed: 1}

// Bombs runs many bounded searches instead of one.
// Each bomb is dropped at a random place in the counter space and sweeps up to the next bomb.
// The more bombs, the better the chance that one of them lands close to a model,
// but the overhead is also bigger.
// Bombs take turns on the calling goroutine, one step each.
type Bombs struct {
	cs       *ClauseSet
	counters []*Solver // All bombs, in increasing order
	live     []*Solver // Bombs that did not reach the next one yet
	winner   *Solver
	status   Status
}

// NewBombs drops bombs over the whole counter space, according to cfg.
// Direction, start and bound options are ignored, since each bomb has its own range.
func NewBombs(cs *ClauseSet, cfg BombConfig, options ...Option) (*Bombs, error) {
	if cfg.MinStep < 0 || cfg.Spread < 0 || cfg.MinStep+cfg.Spread >= MaxVars {
		return nil, fmt.Errorf("invalid bomb steps 2^%d to 2^%d", cfg.MinStep, cfg.MinStep+cfg.Spread)
	}
	rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	starts := []uint64{0}
	for cur := uint64(0); ; {
		next := offset(cur, cfg.MinStep+rnd.IntN(cfg.Spread+1))
		if next == 0 { // This one would be beyond the counter space
			break
		}
		if len(starts) == maxBombs {
			return nil, fmt.Errorf("too many bombs: more than %d with steps 2^%d to 2^%d", maxBombs, cfg.MinStep, cfg.MinStep+cfg.Spread)
		}
		starts = append(starts, next)
		cur = next
	}
	b := &Bombs{cs: cs, counters: make([]*Solver, len(starts))}
	for i, start := range starts {
		opts := append(options[:len(options):len(options)], WithDirection(Ascending), WithFrom(start))
		if i < len(starts)-1 {
			opts = append(opts, WithTill(starts[i+1]))
		}
		b.counters[i] = New(cs, opts...)
	}
	b.live = append([]*Solver(nil), b.counters...)
	return b, nil
}

// NbBombs returns the number of bombs that were dropped.
func (b *Bombs) NbBombs() int {
	return len(b.counters)
}

// Step lets each live bomb make one step.
// It returns Indet if the search must go on, the final status otherwise.
func (b *Bombs) Step() Status {
	if b.status != Indet {
		return b.status
	}
	live := b.live[:0]
	for _, s := range b.live {
		switch s.Step() {
		case Sat:
			b.winner = s
			b.status = Sat
			return b.status
		case Indet:
			live = append(live, s)
		}
	}
	b.live = live
	if len(b.live) == 0 { // Every range was swept
		b.status = Unsat
	}
	return b.status
}

// Solve runs the bombs until one finds a model or all of them are over.
func (b *Bombs) Solve() Status {
	for b.Step() == Indet {
	}
	return b.status
}

// Status returns the current status of the search.
func (b *Bombs) Status() Status {
	return b.status
}

// Statistics returns the sum of the statistics of all bombs.
func (b *Bombs) Statistics() Stats {
	var st Stats
	for _, s := range b.counters {
		st.add(s.Stats)
	}
	return st
}

// Solution returns the model found by the winning bomb.
func (b *Bombs) Solution() (BitVec, error) {
	if b.winner == nil {
		return BitVec{}, ErrNoSolution
	}
	return b.winner.Solution()
}

// Model returns the binding of each variable in the model found by the winning bomb.
func (b *Bombs) Model() ([]bool, error) {
	if b.winner == nil {
		return nil, ErrNoSolution
	}
	return b.winner.Model()
}
