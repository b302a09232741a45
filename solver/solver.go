package solver

// Stats are statistics about the search.
// They are provided for information purpose only.
type Stats struct {
	NbSteps     int // How many candidates were checked
	NbViolators int // How many times a clause subsumed a candidate
	MaxSkip     int // Biggest jump, as a power of two
}

func (st *Stats) add(o Stats) {
	st.NbSteps += o.NbSteps
	st.NbViolators += o.NbViolators
	if o.MaxSkip > st.MaxSkip {
		st.MaxSkip = o.MaxSkip
	}
}

// A Solver sweeps the counter space looking for a total assignment that no clause subsumes.
//
// On each candidate that is subsumed, it looks for the violating clause with the longest run of
// free slots at the low end: every counter in the aligned block of that size is subsumed by the
// same clause, so the whole block is jumped over at once.
type Solver struct {
	Stats    Stats // Statistics about the search.
	cs       *ClauseSet
	observer Observer
	dir      Direction
	from     uint64
	fromSet  bool
	till     uint64 // Exclusive bound, if bounded
	bounded  bool
	counter  uint64
	status   Status
	buf      []BitVec // Violators of the current candidate
}

// An Option configures a Solver.
type Option func(s *Solver)

// WithFrom sets the first candidate.
// By default, ascending searches start from 0 and descending ones from the biggest counter.
func WithFrom(counter uint64) Option {
	return func(s *Solver) {
		s.from = counter
		s.fromSet = true
	}
}

// WithDirection sets the direction of the search. The default is Ascending.
func WithDirection(dir Direction) Option {
	return func(s *Solver) {
		s.dir = dir
	}
}

// WithTill bounds the search: it stops with the Exhausted status as soon as the counter would reach
// the bound, or go past it.
// The bound itself is never checked.
func WithTill(bound uint64) Option {
	return func(s *Solver) {
		s.till = bound
		s.bounded = true
	}
}

// WithObserver sets an observer that will be notified after each step.
func WithObserver(o Observer) Option {
	return func(s *Solver) {
		s.observer = o
	}
}

// New makes a solver for the given clause set.
// cs must not be modified until the search is over.
func New(cs *ClauseSet, options ...Option) *Solver {
	s := &Solver{cs: cs}
	for _, option := range options {
		option(s)
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if !s.fromSet && s.dir == Descending {
		s.from = full
	}
	s.counter = s.from
	if s.bounded && !s.inRange(s.from) {
		s.status = Exhausted
	}
	return s
}

// SolveFrom0 sweeps the whole counter space upwards, starting from 0.
// It returns the model found, if any, and the final status, either Sat or Unsat.
func SolveFrom0(cs *ClauseSet) (BitVec, Status) {
	return run(New(cs))
}

// SolveFromMax sweeps the whole counter space downwards, starting from the biggest counter.
func SolveFromMax(cs *ClauseSet) (BitVec, Status) {
	return run(New(cs, WithDirection(Descending)))
}

// SolveRange looks for a model among the counters in [from, till).
// The final status is either Sat or Exhausted.
func SolveRange(cs *ClauseSet, from, till uint64) (BitVec, Status) {
	return run(New(cs, WithFrom(from), WithTill(till)))
}

func run(s *Solver) (BitVec, Status) {
	if s.Solve() != Sat {
		return BitVec{}, s.status
	}
	sol, _ := s.Solution()
	return sol, Sat
}

// inRange is true iff counter c has not reached the bound yet.
func (s *Solver) inRange(c uint64) bool {
	if s.dir == Descending {
		return c > s.till
	}
	return c < s.till
}

// advance returns the first counter after the aligned block of 2^skip counters containing c.
// wrapped is true iff there is no such counter in the search direction.
// When c is aligned on the block, as is always the case in sweeps starting from 0 or
// from the biggest counter, next is c + 2^skip (resp. c - 2^skip).
func (s *Solver) advance(c uint64, skip int) (next uint64, wrapped bool) {
	low := full
	if skip < MaxVars {
		low = uint64(1)<<uint(skip) - 1
	}
	if s.dir == Descending {
		start := c &^ low
		return start - 1, start == 0
	}
	end := c | low
	return end + 1, end == full
}

// jump moves the counter past the aligned block of 2^skip counters containing it,
// or ends the search if there is no candidate left.
func (s *Solver) jump(skip int) (next uint64) {
	next, wrapped := s.advance(s.counter, skip)
	switch {
	case s.bounded && (wrapped || !s.inRange(next)):
		s.status = Exhausted
	case wrapped:
		s.status = Unsat
	default:
		s.counter = next
	}
	return next
}

// Step checks the current candidate and jumps to the next one.
// It returns Indet if the search must go on, the final status otherwise.
// Calling Step once the search is over does nothing.
// Each step is short, so callers can check for cancellation between two steps.
func (s *Solver) Step() Status {
	if s.status != Indet {
		return s.status
	}
	s.Stats.NbSteps++
	counter := s.counter
	s.buf = s.cs.appendViolators(s.buf[:0], FromCounter(counter))
	step := Step{Counter: counter, Direction: s.dir, Violators: s.buf}
	if len(s.buf) == 0 {
		s.status = Sat
		step.Next = counter
		step.Status = Sat
		s.observer.Observe(step)
		return s.status
	}
	skip := 0
	for _, c := range s.buf { // selects the best violator
		if n := c.LowFreeRun(); n > skip {
			skip = n
		}
	}
	s.Stats.NbViolators += len(s.buf)
	if skip > s.Stats.MaxSkip {
		s.Stats.MaxSkip = skip
	}
	next := s.jump(skip)
	step.Skip = skip
	step.Next = next
	step.Status = s.status
	s.observer.Observe(step)
	return s.status
}

// Solve runs the search until it is over and returns its status.
func (s *Solver) Solve() Status {
	for s.Step() == Indet {
	}
	return s.status
}

// Status returns the current status of the search.
func (s *Solver) Status() Status {
	return s.status
}

// Counter returns the candidate that will be checked by the next step.
// Once a model was found, it returns the counter of that model.
func (s *Solver) Counter() uint64 {
	return s.counter
}

// Statistics returns s.Stats.
func (s *Solver) Statistics() Stats {
	return s.Stats
}

// Solution returns the model that was found, as a total assignment.
// The counter holds the negation of the model: the candidate is not subsumed by any clause,
// so its negation falsifies no clause.
func (s *Solver) Solution() (BitVec, error) {
	if s.status != Sat {
		return BitVec{}, ErrNoSolution
	}
	return FromCounter(s.counter).Negate(), nil
}

// Model returns the binding of each variable of the problem in the model that was found.
// model[i] is the value of the CNF variable i+1.
func (s *Solver) Model() ([]bool, error) {
	sol, err := s.Solution()
	if err != nil {
		return nil, err
	}
	return sol.Model(s.cs.NbVars), nil
}
