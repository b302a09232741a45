package solver

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// A BitVec is a pattern over the 64 variable slots.
// It represents either a clause or a total assignment.
//
// mask tells which slots are constrained. For a constrained slot, bits gives its polarity:
// 1 for a positive literal, 0 for a negative one. Bits outside mask are meaningless.
// In a shorter form (mask,bits:literal): (0,_: free), (1,0: -), (1,1: +).
//
// A total assignment is a BitVec whose mask is full; its bits is the value of the search counter.
type BitVec struct {
	mask uint64
	bits uint64
}

// Empty returns the pattern that constrains no slot.
func Empty() BitVec {
	return BitVec{}
}

// FromCounter returns the total assignment whose bits are c.
func FromCounter(c uint64) BitVec {
	return BitVec{mask: full, bits: c}
}

// FromLits returns the clause made of the given CNF literals.
// Each variable must appear at most once and be in 1..64.
func FromLits(lits []int) (BitVec, error) {
	var v BitVec
	for _, lit := range lits {
		if !validLit(lit) {
			return BitVec{}, &VariableOutOfRangeError{Lit: lit}
		}
		if v.HasVar(abs(lit)) {
			return BitVec{}, fmt.Errorf("invalid literal %d: %w", lit, ErrRepeatedVariable)
		}
		v.SetLitUnsafe(lit)
	}
	return v, nil
}

// Mask returns the set of constrained slots.
func (v BitVec) Mask() uint64 { return v.mask }

// Bits returns the polarity word. Only the bits in Mask are meaningful.
func (v BitVec) Bits() uint64 { return v.bits }

// SetLitUnsafe constrains the slot of lit's variable with lit's polarity.
// It must be called at most once per variable on a given BitVec:
// calling it on a slot that is already constrained can leave an inconsistent pattern.
// It panics if lit's variable is not in 1..64.
func (v *BitVec) SetLitUnsafe(lit int) {
	if !validLit(lit) {
		panic(&VariableOutOfRangeError{Lit: lit})
	}
	b := uint64(1) << slot(abs(lit))
	v.mask |= b
	if lit > 0 {
		v.bits |= b
	}
}

// SetLit is like SetLitUnsafe, but can be called several times for the same variable.
// If the slot is already constrained with the opposite polarity, it is freed instead:
// a clause containing both x and -x says nothing about x.
func (v *BitVec) SetLit(lit int) {
	if !validLit(lit) {
		panic(&VariableOutOfRangeError{Lit: lit})
	}
	b := uint64(1) << slot(abs(lit))
	wasSet := v.mask&b != 0
	wasTrue := v.bits&b != 0
	v.mask |= b
	if lit > 0 {
		v.bits |= b
		if wasSet && !wasTrue {
			v.mask &^= b
		}
	} else {
		v.bits &^= b
		if wasSet && wasTrue {
			v.mask &^= b
		}
	}
}

// HasVar is true iff the slot of variable x is constrained.
func (v BitVec) HasVar(x int) bool {
	return v.mask&(uint64(1)<<slot(x)) != 0
}

// LitOf returns x or -x depending on the polarity of x's slot, or 0 if the slot is free.
func (v BitVec) LitOf(x int) int {
	b := uint64(1) << slot(x)
	switch {
	case v.mask&b == 0:
		return 0
	case v.bits&b != 0:
		return x
	default:
		return -x
	}
}

// Negate returns the pattern with the same mask and all polarities flipped.
func (v BitVec) Negate() BitVec {
	return BitVec{mask: v.mask, bits: ^v.bits}
}

// Subsumes is true iff every slot constrained by v is also constrained by o, with the same polarity.
func (v BitVec) Subsumes(o BitVec) bool {
	return v.mask&o.mask == v.mask && (v.bits^o.bits)&v.mask == 0
}

// Compatible is true iff v and o agree on every slot they both constrain.
func (v BitVec) Compatible(o BitVec) bool {
	return (v.bits^o.bits)&v.mask&o.mask == 0
}

// Equivalent is true iff v and o constrain the same slots with the same polarities.
// Unlike ==, it ignores the meaningless bits.
func (v BitVec) Equivalent(o BitVec) bool {
	return v.mask == o.mask && (v.bits^o.bits)&v.mask == 0
}

// LowFreeRun returns how many consecutive slots are free starting from the least significant one.
// This is how many variables, counting down from variable 64, are absent after the last literal.
func (v BitVec) LowFreeRun() int {
	return bits.TrailingZeros64(v.mask)
}

// HighFreeRun returns how many consecutive slots are free starting from the most significant one.
func (v BitVec) HighFreeRun() int {
	return bits.LeadingZeros64(v.mask)
}

// FreeCount returns the number of free slots.
func (v BitVec) FreeCount() int {
	return MaxVars - bits.OnesCount64(v.mask)
}

// Len returns the number of constrained slots, i.e the number of literals of a clause.
func (v BitVec) Len() int {
	return bits.OnesCount64(v.mask)
}

// Lits returns the CNF literals of v, variable 1 first.
func (v BitVec) Lits() []int {
	lits := make([]int, 0, v.Len())
	for x := 1; x <= MaxVars; x++ {
		if lit := v.LitOf(x); lit != 0 {
			lits = append(lits, lit)
		}
	}
	return lits
}

// Model returns the binding of the first nbVars variables: model[i] is the value of variable i+1.
// Free slots are reported as false.
func (v BitVec) Model(nbVars int) []bool {
	if nbVars > MaxVars {
		nbVars = MaxVars
	}
	model := make([]bool, nbVars)
	for i := range model {
		model[i] = v.LitOf(i+1) > 0
	}
	return model
}

// CNF returns a DIMACS representation of v, most significant slot first, terminated by 0.
func (v BitVec) CNF() string {
	var sb strings.Builder
	for i := MaxVars - 1; i >= 0; i-- {
		b := uint64(1) << uint(i)
		if v.mask&b == 0 {
			continue
		}
		lit := varOf(uint(i))
		if v.bits&b == 0 {
			lit = -lit
		}
		sb.WriteString(strconv.Itoa(lit))
		sb.WriteByte(' ')
	}
	sb.WriteByte('0')
	return sb.String()
}

func (v BitVec) String() string {
	return v.CNF()
}
