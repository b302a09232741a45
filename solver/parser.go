package solver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize is the length of the longest line ParseCNF accepts.
const maxLineSize = 1 << 24

// skipped is true iff the line carries no clause:
// empty lines, comments, the problem line, the '%' end marker and lone terminators.
func skipped(line string) bool {
	if line == "" || line == "0" {
		return true
	}
	switch line[0] {
	case 'c', 'p', '%':
		return true
	}
	return false
}

// parseHeader reads the number of vars from a "p cnf <nbvars> <nbclauses>" line.
func parseHeader(fields []string) (nbVars int, err error) {
	if len(fields) < 3 {
		return 0, fmt.Errorf("invalid syntax %q in header", strings.Join(fields, " "))
	}
	nbVars, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, fmt.Errorf("nbvars not an int : %q", fields[2])
	}
	if nbVars < 0 {
		return 0, fmt.Errorf("negative number of vars %d", nbVars)
	}
	if nbVars > MaxVars {
		return 0, &VariableOutOfRangeError{Lit: nbVars}
	}
	return nbVars, nil
}

// parseClause parses the fields of a clause line, terminated by a 0.
// A missing terminator is tolerated, but nothing may follow it.
func parseClause(fields []string) ([]int, error) {
	lits := make([]int, 0, len(fields))
	for i, raw := range fields {
		lit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot read int: %q is not a literal", raw)
		}
		if lit == 0 {
			if i != len(fields)-1 {
				return nil, fmt.Errorf("unexpected %q after clause terminator", fields[i+1])
			}
			break
		}
		lits = append(lits, lit)
	}
	return lits, nil
}

// ParseCNF parses a DIMACS CNF stream and returns the corresponding ClauseSet.
// It stops at the first invalid line.
func ParseCNF(r io.Reader) (*ClauseSet, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineSize)
	var cs ClauseSet
	nbLine := 0
	for sc.Scan() {
		nbLine++
		line := strings.TrimSpace(sc.Text())
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "p" {
			nbVars, err := parseHeader(fields)
			if err != nil {
				return nil, &ParseError{Line: nbLine, Text: line, Err: err}
			}
			if nbVars > cs.NbVars {
				cs.NbVars = nbVars
			}
			continue
		}
		if skipped(line) {
			continue
		}
		lits, err := parseClause(fields)
		if err != nil {
			return nil, &ParseError{Line: nbLine, Text: line, Err: err}
		}
		c, taut, err := buildClause(lits)
		if err != nil {
			return nil, &ParseError{Line: nbLine, Text: line, Err: err}
		}
		if !taut {
			cs.Add(c)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: nbLine + 1, Err: err}
		}
		return nil, &IOError{Err: err}
	}
	return &cs, nil
}

// ParseFile opens the DIMACS file at path and parses it.
func ParseFile(path string) (*ClauseSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()
	cs, err := ParseCNF(f)
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		ioErr.Path = path
	}
	return cs, err
}
