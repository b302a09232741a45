package solver

// Interface is any type implementing a search over the counter space.
// Both Solver and Bombs implement it.
type Interface interface {
	// Step makes one atomic step of the search.
	// It returns Indet as long as the search is not over.
	Step() Status
	// Solve runs the search until it is over and returns the final status.
	Solve() Status
	// Status returns the current status.
	Status() Status
	// Solution returns the model as a total assignment, or ErrNoSolution if the status is not Sat.
	Solution() (BitVec, error)
	// Model returns the model as one binding per variable, or ErrNoSolution if the status is not Sat.
	Model() ([]bool, error)
	// Statistics returns information about the search so far.
	Statistics() Stats
}

var (
	_ Interface = (*Solver)(nil)
	_ Interface = (*Bombs)(nil)
)
