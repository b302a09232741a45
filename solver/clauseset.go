package solver

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// A ClauseSet is an ordered list of clauses & a nb of vars.
// It must not be modified while a Solver is using it.
type ClauseSet struct {
	NbVars  int // Number of vars, from the header if any, else the biggest var met
	clauses []BitVec
}

// NewClauseSet returns a set holding the given clauses, in order.
func NewClauseSet(clauses ...BitVec) *ClauseSet {
	cs := &ClauseSet{clauses: make([]BitVec, 0, len(clauses))}
	for _, c := range clauses {
		cs.Add(c)
	}
	return cs
}

// ParseSlice parses a slice of slice of lits and returns the equivalent clause set.
// Like when parsing a DIMACS stream, a clause containing both a literal and its negation is dropped.
func ParseSlice(cnf [][]int) (*ClauseSet, error) {
	cs := &ClauseSet{clauses: make([]BitVec, 0, len(cnf))}
	for i, lits := range cnf {
		c, taut, err := buildClause(lits)
		if err != nil {
			return nil, fmt.Errorf("invalid clause #%d %v: %w", i+1, lits, err)
		}
		if !taut {
			cs.Add(c)
		}
	}
	return cs, nil
}

// buildClause makes a clause from lits, calling SetLitUnsafe once per variable.
// taut is true iff lits contains a literal and its negation.
func buildClause(lits []int) (c BitVec, taut bool, err error) {
	for _, lit := range lits {
		if !validLit(lit) {
			return BitVec{}, false, &VariableOutOfRangeError{Lit: lit}
		}
		switch c.LitOf(abs(lit)) {
		case 0:
			c.SetLitUnsafe(lit)
		case -lit:
			taut = true
		}
	}
	return c, taut, nil
}

// Add appends c to the set.
func (cs *ClauseSet) Add(c BitVec) {
	cs.clauses = append(cs.clauses, c)
	if v := MaxVars - c.LowFreeRun(); v > cs.NbVars {
		cs.NbVars = v
	}
}

// Remove removes the first clause equal to c, if any.
// It returns true iff a clause was removed.
func (cs *ClauseSet) Remove(c BitVec) bool {
	idx := lo.IndexOf(cs.clauses, c)
	if idx == -1 {
		return false
	}
	cs.clauses = append(cs.clauses[:idx], cs.clauses[idx+1:]...)
	return true
}

// Len returns the number of clauses.
func (cs *ClauseSet) Len() int {
	return len(cs.clauses)
}

// Clauses returns a copy of the clauses, in order.
func (cs *ClauseSet) Clauses() []BitVec {
	res := make([]BitVec, len(cs.clauses))
	copy(res, cs.clauses)
	return res
}

// Violators returns the clauses that subsume the candidate, in order.
// When candidate is a total assignment, these are the clauses falsified by its negation.
func (cs *ClauseSet) Violators(candidate BitVec) []BitVec {
	return cs.appendViolators(nil, candidate)
}

func (cs *ClauseSet) appendViolators(dst []BitVec, candidate BitVec) []BitVec {
	for _, c := range cs.clauses {
		if c.Subsumes(candidate) {
			dst = append(dst, c)
		}
	}
	return dst
}

// CNF returns a DIMACS CNF representation of the clause set.
func (cs *ClauseSet) CNF() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", cs.NbVars, len(cs.clauses))
	for _, c := range cs.clauses {
		sb.WriteString(c.CNF())
		sb.WriteByte('\n')
	}
	return sb.String()
}
