package solver

// Run-length helpers used to jump over several blocks of counters at once.
// The sweep in Solver only needs LowFreeRun; these generalize it.

// RunLengths returns the lengths of the alternating runs of free and constrained slots,
// starting from the least significant slot with a (possibly empty) free run.
// The result always holds (free, constrained) pairs: an odd-length list is padded with a 0.
func (v BitVec) RunLengths() []int {
	var runs []int
	free := true
	n := 0
	for i := 0; i < MaxVars; i++ {
		constrained := v.mask&(uint64(1)<<uint(i)) != 0
		if constrained == free { // The current run ends here
			runs = append(runs, n)
			n = 0
			free = !free
		}
		n++
	}
	runs = append(runs, n)
	if len(runs)%2 == 1 {
		runs = append(runs, 0)
	}
	return runs
}

// SubsumedIntervals returns, for each (free, constrained) pair of RunLengths,
// an interval [from, until) of counter values the pattern can be jumped over from.
// The first interval is exactly the block of counters matching v that only differ in the low free run.
// Each following interval starts at the first counter of the next free run.
// An until of 0 stands for 2^64, the end of the counter space.
func (v BitVec) SubsumedIntervals() map[uint64]uint64 {
	runs := v.RunLengths()
	base := v.bits & v.mask
	intervals := make(map[uint64]uint64, len(runs)/2)
	from := base
	length := 0
	for i := 0; i < len(runs); i += 2 {
		length += runs[i]
		intervals[from] = offset(base, length)
		length += runs[i+1]
		from = offset(base, length)
	}
	return intervals
}

// offset returns base + 2^n, or 0 if that value does not fit in the counter space.
func offset(base uint64, n int) uint64 {
	if n >= MaxVars {
		return 0
	}
	res := base + uint64(1)<<uint(n)
	if res < base {
		return 0
	}
	return res
}
