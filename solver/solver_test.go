package solver

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A test associates a problem with an expected output.
type solverTest struct {
	name     string
	cnf      string
	expected Status
}

var solverTests = []solverTest{
	{"trivial", "p cnf 1 1\n1 0\n", Sat},
	{"no clause", "p cnf 0 0\n", Sat},
	{"all binary clauses", "p cnf 2 4\n1 2 0\n1 -2 0\n-1 2 0\n-1 -2 0\n", Unsat},
	{"contradiction", "p cnf 1 2\n1 0\n-1 0\n", Unsat},
	{"implications", "p cnf 3 3\n1 2 0\n-1 3 0\n-2 -3 0\n", Sat},
	{"chain", "p cnf 4 5\n1 0\n-1 2 0\n-2 3 0\n-3 4 0\n-4 0\n", Unsat},
	{"low slots", "p cnf 64 2\n63 64 0\n-63 -64 0\n", Sat},
}

func parseString(t *testing.T, cnf string) *ClauseSet {
	t.Helper()
	cs, err := ParseCNF(strings.NewReader(cnf))
	require.NoError(t, err)
	return cs
}

// satisfies is true iff model, a total assignment, satisfies every clause in cs.
func satisfies(cs *ClauseSet, model BitVec) bool {
	for _, c := range cs.Clauses() {
		sat := false
		for _, lit := range c.Lits() {
			if model.LitOf(abs(lit)) == lit {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

func TestSolver(t *testing.T) {
	for _, tt := range solverTests {
		t.Run(tt.name, func(t *testing.T) {
			cs := parseString(t, tt.cnf)
			sol, status := SolveFrom0(cs)
			assert.Equal(t, tt.expected, status, "ascending sweep")
			if status == Sat {
				assert.True(t, satisfies(cs, sol), "%v is not a model", sol)
			}
			sol, status = SolveFromMax(cs)
			assert.Equal(t, tt.expected, status, "descending sweep")
			if status == Sat {
				assert.True(t, satisfies(cs, sol), "%v is not a model", sol)
			}
		})
	}
}

// recorder keeps a copy of every step.
type recorder struct {
	steps []Step
}

func (r *recorder) Observe(step Step) {
	step.Violators = append([]BitVec(nil), step.Violators...)
	r.steps = append(r.steps, step)
}

func TestUnsatCountsSteps(t *testing.T) {
	cs, err := ParseSlice([][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}})
	require.NoError(t, err)
	var r recorder
	s := New(cs, WithObserver(&r))
	require.Equal(t, Unsat, s.Solve())
	assert.Equal(t, Stats{NbSteps: 4, NbViolators: 4, MaxSkip: 62}, s.Statistics())
	counters := make([]uint64, len(r.steps))
	for i, step := range r.steps {
		counters[i] = step.Counter
		assert.Len(t, step.Violators, 1)
		assert.Equal(t, 62, step.Skip)
	}
	assert.Equal(t, []uint64{0, 1 << 62, 2 << 62, 3 << 62}, counters)
	assert.Equal(t, Unsat, r.steps[3].Status)
	_, err = s.Solution()
	assert.ErrorIs(t, err, ErrNoSolution)
	_, err = s.Model()
	assert.ErrorIs(t, err, ErrNoSolution)

	_, status := SolveFromMax(cs)
	assert.Equal(t, Unsat, status)
}

func TestJumpOverFirstVar(t *testing.T) {
	cs := NewClauseSet(mustLits(t, -1))
	var r recorder
	s := New(cs, WithObserver(&r))
	require.Equal(t, Sat, s.Solve())
	require.Len(t, r.steps, 2)
	first := r.steps[0]
	assert.Equal(t, uint64(0), first.Counter)
	assert.Equal(t, 63, first.Skip)
	assert.Equal(t, uint64(1)<<63, first.Next)
	assert.Equal(t, Indet, first.Status)
	assert.Equal(t, []BitVec{mustLits(t, -1)}, first.Violators)
	assert.Equal(t, Sat, r.steps[1].Status)
	assert.Empty(t, r.steps[1].Violators)
	assert.Equal(t, 2, s.Stats.NbSteps)
	assert.Equal(t, uint64(1)<<63, s.Counter())

	sol, err := s.Solution()
	require.NoError(t, err)
	assert.Equal(t, -1, sol.LitOf(1))
	model, err := s.Model()
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, model)
}

func TestSatAtZero(t *testing.T) {
	cs := NewClauseSet(mustLits(t, 1))
	s := New(cs)
	require.Equal(t, Sat, s.Solve())
	assert.Equal(t, 1, s.Stats.NbSteps)
	sol, err := s.Solution()
	require.NoError(t, err)
	assert.Equal(t, 1, sol.LitOf(1))
}

func TestSolutionRoundTrip(t *testing.T) {
	cs := parseString(t, "p cnf 2 1\n1 2 0\n")
	s := New(cs)
	require.Equal(t, Sat, s.Solve())
	model, err := s.Model()
	require.NoError(t, err)
	require.Len(t, model, 2)
	assert.True(t, model[0] || model[1])

	sol, err := s.Solution()
	require.NoError(t, err)
	parsed := parseString(t, sol.CNF())
	require.Equal(t, 1, parsed.Len())
	assert.True(t, parsed.Clauses()[0].Equivalent(sol))
	assert.Equal(t, MaxVars, parsed.NbVars)
}

func TestSolveRange(t *testing.T) {
	cs := NewClauseSet(mustLits(t, -1))
	_, status := SolveRange(cs, 0, 1<<63)
	assert.Equal(t, Exhausted, status)

	sol, status := SolveRange(cs, 0, 1<<63+1)
	require.Equal(t, Sat, status)
	assert.Equal(t, -1, sol.LitOf(1))
}

func TestUnalignedStart(t *testing.T) {
	// Counters 1 to 2^63-1 are subsumed, 2^63 is the first model.
	// Jumping 2^63 from 1 would miss it.
	cs := NewClauseSet(mustLits(t, -1))
	sol, status := SolveRange(cs, 1, 1<<63+1)
	require.Equal(t, Sat, status)
	assert.True(t, sol.Equivalent(FromCounter(1<<63).Negate()))

	s := New(cs, WithFrom(3), WithTill(1<<63+1))
	s.Step()
	assert.Equal(t, uint64(1)<<63, s.Counter())
}

func TestDescending(t *testing.T) {
	cs := NewClauseSet(mustLits(t, 1))
	var r recorder
	s := New(cs, WithDirection(Descending), WithObserver(&r))
	assert.Equal(t, full, s.Counter())
	require.Equal(t, Sat, s.Solve())
	require.Len(t, r.steps, 2)
	assert.Equal(t, Descending, r.steps[0].Direction)
	assert.Equal(t, uint64(1)<<63-1, r.steps[0].Next)
	sol, err := s.Solution()
	require.NoError(t, err)
	assert.Equal(t, 1, sol.LitOf(1))

	// Unaligned descending start.
	s = New(NewClauseSet(mustLits(t, 64)), WithDirection(Descending), WithFrom(7))
	require.Equal(t, Sat, s.Solve())
	assert.Equal(t, uint64(6), s.Counter())
}

func TestDescendingBounded(t *testing.T) {
	cs := NewClauseSet(mustLits(t, 1))
	_, status := run(New(cs, WithDirection(Descending), WithTill(1<<63-1)))
	assert.Equal(t, Exhausted, status)
	_, status = run(New(cs, WithDirection(Descending), WithTill(1<<63-2)))
	assert.Equal(t, Sat, status)
}

func TestEmptyClause(t *testing.T) {
	cs, err := ParseSlice([][]int{{1, 2}, {}})
	require.NoError(t, err)
	s := New(cs)
	assert.Equal(t, Unsat, s.Solve())
	assert.Equal(t, 1, s.Stats.NbSteps)
	assert.Equal(t, MaxVars, s.Stats.MaxSkip)

	s = New(cs, WithDirection(Descending))
	assert.Equal(t, Unsat, s.Solve())
	assert.Equal(t, 1, s.Stats.NbSteps)

	_, status := SolveRange(cs, 12, 1000)
	assert.Equal(t, Exhausted, status)
}

func TestEmptyRange(t *testing.T) {
	cs := NewClauseSet()
	for _, s := range []*Solver{
		New(cs, WithFrom(5), WithTill(5)),
		New(cs, WithFrom(6), WithTill(5)),
		New(cs, WithFrom(5), WithTill(5), WithDirection(Descending)),
		New(cs, WithFrom(4), WithTill(5), WithDirection(Descending)),
	} {
		assert.Equal(t, Exhausted, s.Status())
		assert.Equal(t, Exhausted, s.Solve())
		assert.Equal(t, 0, s.Stats.NbSteps)
	}
}

func TestStepIsIdempotentOnceOver(t *testing.T) {
	cs := NewClauseSet(mustLits(t, -1))
	s := New(cs)
	assert.Equal(t, Indet, s.Status())
	_, err := s.Solution()
	assert.ErrorIs(t, err, ErrNoSolution)
	assert.Equal(t, Indet, s.Step())
	assert.Equal(t, Sat, s.Step())
	for i := 0; i < 3; i++ {
		assert.Equal(t, Sat, s.Step())
	}
	assert.Equal(t, 2, s.Stats.NbSteps)
}

// pigeons returns the clauses stating that n+1 pigeons fit in n holes.
func pigeons(n int) [][]int {
	lit := func(pigeon, hole int) int { return pigeon*n + hole + 1 }
	var cnf [][]int
	for p := 0; p <= n; p++ {
		clause := make([]int, n)
		for h := 0; h < n; h++ {
			clause[h] = lit(p, h)
		}
		cnf = append(cnf, clause)
	}
	for h := 0; h < n; h++ {
		for p1 := 0; p1 <= n; p1++ {
			for p2 := p1 + 1; p2 <= n; p2++ {
				cnf = append(cnf, []int{-lit(p1, h), -lit(p2, h)})
			}
		}
	}
	return cnf
}

func TestPigeons(t *testing.T) {
	for n := 1; n <= 3; n++ {
		cs, err := ParseSlice(pigeons(n))
		require.NoError(t, err)
		_, status := SolveFrom0(cs)
		assert.Equal(t, Unsat, status, "%d pigeons in %d holes", n+1, n)
	}
}

// giniSolve solves cnf with gini and returns true iff it is satisfiable.
func giniSolve(cnf [][]int) bool {
	g := gini.New()
	for _, clause := range cnf {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}
	return g.Solve() == 1
}

// random3CNF returns nbClauses clauses over the variables base+1..base+nbVars.
func random3CNF(rnd *rand.Rand, base, nbVars, nbClauses int) [][]int {
	cnf := make([][]int, nbClauses)
	for i := range cnf {
		clause := make([]int, 3)
		for j := range clause {
			clause[j] = base + 1 + rnd.IntN(nbVars)
			if rnd.IntN(2) == 0 {
				clause[j] = -clause[j]
			}
		}
		cnf[i] = clause
	}
	return cnf
}

func TestAgainstGini(t *testing.T) {
	const nbVars = 10
	rnd := rand.New(rand.NewPCG(42, 43))
	nbSat := 0
	for i := 0; i < 100; i++ {
		base := rnd.IntN(MaxVars - nbVars + 1)
		cnf := random3CNF(rnd, base, nbVars, 35+rnd.IntN(15))
		cs, err := ParseSlice(cnf)
		require.NoError(t, err)
		sat := giniSolve(cnf)
		if sat {
			nbSat++
		}
		var (
			sol    BitVec
			status Status
		)
		if base == 0 {
			sol, status = SolveFrom0(cs)
			if !sat {
				assert.Equal(t, Unsat, status, "instance #%d: %v", i, cnf)
				continue
			}
		} else {
			// Higher slots are free in every clause, sweeping them is pointless.
			sol, status = SolveRange(cs, 0, 1<<uint(MaxVars-base))
			if !sat {
				assert.Equal(t, Exhausted, status, "instance #%d: %v", i, cnf)
				continue
			}
		}
		require.Equal(t, Sat, status, "instance #%d: %v", i, cnf)
		assert.True(t, satisfies(cs, sol), "instance #%d: %v is not a model of %v", i, sol, cnf)
	}
	t.Logf("%d satisfiable instances out of 100", nbSat)
}

func TestLoggingObserver(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	cs := NewClauseSet(mustLits(t, -1))
	s := New(cs, WithObserver(LoggingObserver{Logger: logger}))
	require.Equal(t, Sat, s.Solve())
	entries := hook.AllEntries()
	require.Len(t, entries, s.Stats.NbSteps)
	assert.Equal(t, "jump", entries[0].Message)
	assert.Equal(t, 63, entries[0].Data["skip"])
	assert.Equal(t, uint64(1)<<63, entries[0].Data["next"])
	assert.Equal(t, "model found", hook.LastEntry().Message)

	hook.Reset()
	logger.SetLevel(logrus.TraceLevel)
	s = New(NewClauseSet(Empty()), WithObserver(LoggingObserver{Logger: logger}))
	require.Equal(t, Unsat, s.Solve())
	entries = hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "violated", entries[0].Message)
	assert.Equal(t, "search over", entries[1].Message)
	assert.Equal(t, Unsat, entries[1].Data["status"])
}

func TestObserverFunc(t *testing.T) {
	nb := 0
	cs := NewClauseSet(mustLits(t, -1, -2))
	s := New(cs, WithObserver(ObserverFunc(func(step Step) { nb++ })))
	s.Solve()
	assert.Equal(t, s.Stats.NbSteps, nb)
}

func TestStatusString(t *testing.T) {
	for status, want := range map[Status]string{
		Indet:     "INDETERMINATE",
		Sat:       "SATISFIABLE",
		Unsat:     "UNSATISFIABLE",
		Exhausted: "EXHAUSTED",
	} {
		assert.Equal(t, want, status.String())
	}
	assert.Panics(t, func() { _ = Status(12).String() })
}

func runBench(cnf [][]int, b *testing.B) {
	cs, err := ParseSlice(cnf)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		SolveFrom0(cs)
	}
}

func BenchmarkPigeons3(b *testing.B) {
	runBench(pigeons(3), b)
}

func BenchmarkRandom(b *testing.B) {
	runBench(random3CNF(rand.New(rand.NewPCG(1, 1)), 0, 16, 68), b)
}
