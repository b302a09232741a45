package explain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parseClause parses a line representing a clause in the DIMACS CNF syntax.
func parseClause(fields []string) ([]int, error) {
	clause := make([]int, 0, len(fields)-1)
	for _, rawLit := range fields {
		lit, err := strconv.Atoi(rawLit)
		if err != nil {
			return nil, fmt.Errorf("could not parse clause %v: %v", fields, err)
		}
		if lit == 0 {
			break
		}
		clause = append(clause, lit)
	}
	return clause, nil
}

// ParseCNF parses a CNF and returns the associated problem.
// Clauses are kept as they are written, tautologies and repeated literals included.
func ParseCNF(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<24)
	var pb Problem
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || (len(fields) == 1 && fields[0] == "0") {
			continue
		}
		switch fields[0][0] {
		case 'c', '%':
			continue
		case 'p':
			if err := pb.parseHeader(fields); err != nil {
				return nil, errors.Wrapf(err, "could not parse header %q", line)
			}
		default:
			if err := pb.parseClause(fields); err != nil {
				return nil, errors.Wrapf(err, "could not parse clause %q", line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "could not parse problem")
	}
	return &pb, nil
}

func (pb *Problem) parseHeader(fields []string) error {
	if len(fields) != 4 {
		return fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	strVars := fields[2]
	strClauses := fields[3]
	nbVars, err := strconv.Atoi(strVars)
	if err != nil {
		return fmt.Errorf("invalid number of vars %q: %v", strVars, err)
	}
	if nbVars < 0 {
		return fmt.Errorf("negative number of vars %d", nbVars)
	}
	if nbVars > pb.NbVars {
		pb.NbVars = nbVars
	}
	nbClauses, err := strconv.Atoi(strClauses)
	if err != nil {
		return fmt.Errorf("invalid number of clauses %s: %v", strClauses, err)
	}
	if nbClauses < 0 {
		return fmt.Errorf("negative number of clauses %d", nbClauses)
	}
	if pb.Clauses == nil {
		pb.Clauses = make([][]int, 0, nbClauses)
	}
	return nil
}

func (pb *Problem) parseClause(fields []string) error {
	clause, err := parseClause(fields)
	if err != nil {
		return err
	}
	pb.Clauses = append(pb.Clauses, clause)
	for _, lit := range clause {
		v := lit
		if lit < 0 {
			v = -v
		}
		if v > pb.NbVars {
			pb.NbVars = v
		}
	}
	return nil
}
