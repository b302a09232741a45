// Package explain provides facilities to check and understand the answers of the solver.
package explain

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cccsat/cccsat/solver"
)

// satLit is true iff lit is true in model. Vars missing from model are false.
func satLit(lit int, model []bool) bool {
	if lit > 0 {
		return lit <= len(model) && model[lit-1]
	}
	return -lit <= len(model) && !model[-lit-1]
}

// true iff the clause is satisfied by the model
func satClause(clause []int, model []bool) bool {
	return lo.SomeBy(clause, func(lit int) bool { return satLit(lit, model) })
}

// Falsified returns the index of the first clause falsified by model, if any.
// ok is false iff model satisfies every clause.
func (pb *Problem) Falsified(model []bool) (idx int, ok bool) {
	_, idx, ok = lo.FindIndexOf(pb.Clauses, func(clause []int) bool {
		return !satClause(clause, model)
	})
	return idx, ok
}

// Satisfies is true iff model satisfies every clause of pb.
func (pb *Problem) Satisfies(model []bool) bool {
	_, falsified := pb.Falsified(model)
	return !falsified
}

// Oracle solves pb with an independent CDCL solver.
// It returns either solver.Sat and a model or solver.Unsat and nil.
func (pb *Problem) Oracle() (solver.Status, []bool) {
	g := gini.New()
	for _, clause := range pb.Clauses {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}
	if g.Solve() != 1 {
		return solver.Unsat, nil
	}
	// Vars declared in the header but absent from every clause are unknown to g: they are bound to false.
	model := make([]bool, pb.NbVars)
	for i := range model {
		if v := z.Var(i + 1); v <= g.MaxVar() {
			model[i] = g.Value(v.Pos())
		}
	}
	return solver.Sat, model
}

// Check makes sure the status and model returned by a search are right.
// A Sat model must satisfy every clause, and an Unsat problem must have no model at all.
// An Exhausted bounded search proves nothing, so it is always accepted.
func (pb *Problem) Check(status solver.Status, model []bool) error {
	switch status {
	case solver.Sat:
		if len(model) < pb.NbVars {
			return errors.Errorf("model has %d bindings, expected %d", len(model), pb.NbVars)
		}
		if idx, ok := pb.Falsified(model); ok {
			return errors.Errorf("model falsifies clause #%d %v", idx+1, pb.Clauses[idx])
		}
		return nil
	case solver.Unsat:
		if st, m := pb.Oracle(); st == solver.Sat {
			return errors.Errorf("problem is satisfiable, e.g by %v", m)
		}
		return nil
	case solver.Exhausted:
		return nil
	default:
		return errors.Errorf("cannot check status %v", status)
	}
}
