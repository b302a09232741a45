package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrVariableOutOfRange is wrapped by every VariableOutOfRangeError.
	ErrVariableOutOfRange = errors.New("variable out of range")
	// ErrNoSolution is returned when a solution is requested from a search that did not find one.
	ErrNoSolution = errors.New("no solution")
	// ErrRepeatedVariable is returned when a literal list mentions the same variable twice.
	ErrRepeatedVariable = errors.New("variable appears more than once")
)

// A ParseError is returned when a line of a DIMACS stream cannot be parsed.
type ParseError struct {
	Line int    // 1-based line number
	Text string // Raw content of the line
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// A VariableOutOfRangeError indicates a literal or a variable count that does not fit in 64 slots.
type VariableOutOfRangeError struct {
	Lit int
}

func (e *VariableOutOfRangeError) Error() string {
	return fmt.Sprintf("invalid literal %d: variables must be in 1..%d", e.Lit, MaxVars)
}

func (e *VariableOutOfRangeError) Unwrap() error { return ErrVariableOutOfRange }

// An IOError is returned when the DIMACS source could not be opened or read.
type IOError struct {
	Path string // Empty when reading from an io.Reader
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("could not read input: %v", e.Err)
	}
	return fmt.Sprintf("could not read %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
