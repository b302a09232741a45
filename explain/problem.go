package explain

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cccsat/cccsat/solver"
)

// A Problem is a conjunction of Clauses.
// This package does not use solver's representation.
// We want this code to be as simple as possible to be easy to audit.
// On the other hand, solver's code must be as efficient as possible.
type Problem struct {
	Clauses [][]int
	NbVars  int
	Options Options
}

// Options is a set of options that can be set during the checking process.
type Options struct {
	// If Logger is not nil, information about MUS extraction will be logged at debug level.
	Logger logrus.FieldLogger
}

func (pb *Problem) logger() logrus.FieldLogger {
	if pb.Options.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		return logger
	}
	return pb.Options.Logger
}

// FromClauseSet returns the plain view of cs.
func FromClauseSet(cs *solver.ClauseSet) *Problem {
	pb := &Problem{NbVars: cs.NbVars}
	for _, c := range cs.Clauses() {
		pb.Clauses = append(pb.Clauses, c.Lits())
	}
	return pb
}

// ClauseSet returns the solver's view of pb.
// Clauses containing a literal and its negation are dropped.
func (pb *Problem) ClauseSet() (*solver.ClauseSet, error) {
	if pb.NbVars > solver.MaxVars {
		return nil, errors.Wrapf(&solver.VariableOutOfRangeError{Lit: pb.NbVars}, "problem has %d vars", pb.NbVars)
	}
	cs, err := solver.ParseSlice(pb.Clauses)
	if err != nil {
		return nil, errors.Wrap(err, "could not convert problem")
	}
	if pb.NbVars > cs.NbVars {
		cs.NbVars = pb.NbVars
	}
	return cs, nil
}

// CNF returns a representation of the problem using the Dimacs syntax.
func (pb *Problem) CNF() string {
	lines := make([]string, 1, len(pb.Clauses)+1)
	lines[0] = fmt.Sprintf("p cnf %d %d", pb.NbVars, len(pb.Clauses))
	for _, clause := range pb.Clauses {
		strClause := make([]string, len(clause)+1)
		for i, lit := range clause {
			strClause[i] = fmt.Sprintf("%d", lit)
		}
		strClause[len(clause)] = "0"
		lines = append(lines, strings.Join(strClause, " "))
	}
	return strings.Join(lines, "\n")
}
