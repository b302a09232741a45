package explain

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cccsat/cccsat/solver"
)

// ErrSatisfiable is returned when a MUS is requested for a satisfiable problem.
var ErrSatisfiable = errors.New("cannot extract MUS from satisfiable problem")

func makeMus(nbVars int, clauses []solver.BitVec) *Problem {
	return &Problem{
		Clauses: lo.Map(clauses, func(c solver.BitVec, _ int) []int { return c.Lits() }),
		NbVars:  nbVars,
	}
}

// unsatClauseSet returns the solver's view of pb, after making sure it is UNSAT.
func (pb *Problem) unsatClauseSet() (*solver.ClauseSet, error) {
	cs, err := pb.ClauseSet()
	if err != nil {
		return nil, errors.Wrap(err, "could not extract MUS")
	}
	if _, status := solver.SolveFrom0(cs); status == solver.Sat {
		return nil, ErrSatisfiable
	}
	return cs, nil
}

// MUSDeletion returns a Minimal Unsatisfiable Subset for the problem using the deletion method.
// A MUS is an unsatisfiable subset such that, if any of its clause is removed,
// the problem becomes satisfiable.
// A MUS can be useful to understand why a problem is UNSAT, but MUSes are expensive to compute since
// a SAT solver must be called several times on parts of the original problem to find them.
// The deletion algorithm is guaranteed to call exactly n+1 SAT solvers, where n is the number of clauses in the problem.
// Clauses of the MUS are written in variable order, without repeated literals.
func (pb *Problem) MUSDeletion() (mus *Problem, err error) {
	cs, err := pb.unsatClauseSet()
	if err != nil {
		return nil, err
	}
	log := pb.logger()
	clauses := cs.Clauses()
	for i, c := range clauses {
		cs.Remove(c)
		if _, status := solver.SolveFrom0(cs); status == solver.Sat {
			// It is now sat; reinsert the clause
			cs.Add(c)
			log.WithField("clause", i+1).Debugf("clause %d/%d: kept", i+1, len(clauses))
		} else {
			log.WithField("clause", i+1).Debugf("clause %d/%d: removed", i+1, len(clauses))
		}
	}
	return makeMus(pb.NbVars, cs.Clauses()), nil
}

// MUSInsertion returns a Minimal Unsatisfiable Subset for the problem using the insertion method.
// A MUS is an unsatisfiable subset such that, if any of its clause is removed,
// the problem becomes satisfiable.
// The insertion algorithm adds clauses one at a time to the subset until it becomes UNSAT:
// the last added clause is part of the MUS, and the ones after it can be discarded.
// If called on a formula that is already a MUS, it will perform n*(n-1) calls to SAT, where
// n is the number of clauses of the problem.
func (pb *Problem) MUSInsertion() (mus *Problem, err error) {
	cs, err := pb.unsatClauseSet()
	if err != nil {
		return nil, err
	}
	log := pb.logger()
	clauses := cs.Clauses()
	var musClauses []solver.BitVec
	for {
		log.Debugf("mus currently contains %d clauses", len(musClauses))
		sub := solver.NewClauseSet(musClauses...)
		if _, status := solver.SolveFrom0(sub); status != solver.Sat { // Found the MUS
			return makeMus(pb.NbVars, musClauses), nil
		}
		// Add clauses until the problem becomes UNSAT
		idx := 0
		for ; idx < len(clauses); idx++ {
			sub.Add(clauses[idx])
			if _, status := solver.SolveFrom0(sub); status != solver.Sat {
				break
			}
		}
		if idx == len(clauses) {
			return nil, errors.New("could not extract MUS: subset became satisfiable")
		}
		musClauses = append(musClauses, clauses[idx]) // Last clause is part of the MUS
		log.Debugf("removing %d/%d clause(s)", len(clauses)-idx, len(clauses))
		clauses = clauses[:idx] // Remaining clauses are not part of the MUS
	}
}

// MUS returns a Minimal Unsatisfiable Subset for the problem.
// A MUS is an unsatisfiable subset such that, if any of its clause is removed,
// the problem becomes satisfiable.
// The exact algorithm used to compute the MUS is not guaranteed. If you want to use a given algorithm,
// use the relevant functions.
func (pb *Problem) MUS() (mus *Problem, err error) {
	return pb.MUSDeletion()
}
