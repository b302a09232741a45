package solver

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `c This is a comment
c Another one
p cnf 4 3

1 -2 0
  -1 3   0
c comment in the middle
2 4
0
%
`

func TestParseCNF(t *testing.T) {
	cs, err := ParseCNF(strings.NewReader(example))
	require.NoError(t, err)
	assert.Equal(t, 4, cs.NbVars)
	want := []BitVec{mustLits(t, 1, -2), mustLits(t, -1, 3), mustLits(t, 2, 4)}
	assert.Equal(t, want, cs.Clauses())
}

func TestParseCNFNbVars(t *testing.T) {
	cs, err := ParseCNF(strings.NewReader("p cnf 2 1\n1 -5 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cs.NbVars, "nb vars should be at least the biggest var")

	cs, err = ParseCNF(strings.NewReader("1 -5 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cs.NbVars, "header is optional")
}

func TestParseCNFClauses(t *testing.T) {
	cs, err := ParseCNF(strings.NewReader("1 -1 2 0\n3 3 -4 0\n"))
	require.NoError(t, err)
	assert.Equal(t, []BitVec{mustLits(t, 3, -4)}, cs.Clauses())
}

func TestParseCNFErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"not an int", "1 2 0\n1 x 0\n", 2},
		{"after terminator", "1 0 2\n", 1},
		{"var too big", "c comment\n65 0\n", 2},
		{"header too big", "p cnf 65 1\n1 0\n", 1},
		{"invalid header", "p cnf\n", 1},
		{"negative header", "p cnf -3 1\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCNF(strings.NewReader(tt.input))
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected a parse error, got %v", err)
			assert.Equal(t, tt.line, parseErr.Line)
		})
	}
}

func TestParseCNFOutOfRange(t *testing.T) {
	for _, input := range []string{"65 0\n", "1 -70 0\n", "p cnf 65 1\n"} {
		_, err := ParseCNF(strings.NewReader(input))
		var rangeErr *VariableOutOfRangeError
		require.True(t, errors.As(err, &rangeErr), "%q: expected an out of range error, got %v", input, err)
		assert.ErrorIs(t, err, ErrVariableOutOfRange)
	}
}

func TestParseCNFReadError(t *testing.T) {
	_, err := ParseCNF(iotest.ErrReader(iotest.ErrTimeout))
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.ErrorIs(t, err, iotest.ErrTimeout)
	assert.Empty(t, ioErr.Path)
}

func TestParseCNFLongLines(t *testing.T) {
	long := "c " + strings.Repeat("x", 1<<17) + "\n" + "1 " + strings.Repeat("-2 2 ", 1<<15) + "0\n-1 3 0\n"
	cs, err := ParseCNF(strings.NewReader(long))
	require.NoError(t, err)
	assert.Equal(t, 1, cs.Len(), "the long tautology should have been dropped")
	assert.Equal(t, 3, cs.NbVars)

	_, err = ParseCNF(strings.NewReader("p cnf 2 1\nc " + strings.Repeat("x", maxLineSize) + "\n1 2 0\n"))
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "expected a parse error, got %v", err)
	assert.Equal(t, 2, parseErr.Line)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.cnf")
	require.NoError(t, os.WriteFile(path, []byte(example), 0o600))
	cs, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cs.Len())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.cnf"))
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Contains(t, ioErr.Path, "missing.cnf")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
