package solver

// Describes basic types and constants that are used in the solver

// Status is the status of a search at a given moment.
type Status byte

const (
	// Indet means the search is not over yet.
	Indet = Status(iota)
	// Sat means a model was found.
	Sat
	// Unsat means the counter wrapped around without finding a model.
	Unsat
	// Exhausted means a bounded search reached its bound without finding a model.
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SATISFIABLE"
	case Unsat:
		return "UNSATISFIABLE"
	case Exhausted:
		return "EXHAUSTED"
	default:
		panic("invalid status")
	}
}

// MaxVars is the number of variables a BitVec can hold.
const MaxVars = 64

const full = ^uint64(0)

// slot returns the bit index of the CNF variable v.
// Variable 1 is the most significant bit, variable 64 the least significant one.
func slot(v int) uint {
	return uint(MaxVars - v)
}

// varOf is the inverse of slot.
func varOf(i uint) int {
	return MaxVars - int(i)
}

// abs returns the variable of the CNF literal lit.
func abs(lit int) int {
	if lit < 0 {
		return -lit
	}
	return lit
}

// validLit is true iff lit is a CNF literal that fits in a BitVec.
func validLit(lit int) bool {
	v := abs(lit)
	return v >= 1 && v <= MaxVars
}

// Direction is the way the counter moves during a search.
type Direction byte

const (
	// Ascending searches add to the counter.
	Ascending = Direction(iota)
	// Descending searches subtract from the counter.
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}
