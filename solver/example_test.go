package solver_test

import (
	"fmt"
	"strings"

	"github.com/cccsat/cccsat/solver"
)

func ExampleNew() {
	cs, err := solver.ParseSlice([][]int{{1, 2}, {-1, 3}, {-2, -3}})
	if err != nil {
		fmt.Printf("could not parse problem: %v\n", err)
		return
	}
	s := solver.New(cs)
	fmt.Println(s.Solve())
	model, _ := s.Model()
	fmt.Println(model)
	fmt.Println(s.Statistics().NbSteps)
	// Output:
	// SATISFIABLE
	// [true false true]
	// 3
}

func ExampleParseCNF() {
	const problem = `c a contradiction
p cnf 2 4
1 2 0
1 -2 0
-1 2 0
-1 -2 0
`
	cs, err := solver.ParseCNF(strings.NewReader(problem))
	if err != nil {
		fmt.Printf("could not parse problem: %v\n", err)
		return
	}
	_, status := solver.SolveFrom0(cs)
	fmt.Println(status)
	// Output:
	// UNSATISFIABLE
}

func ExampleSolveRange() {
	cs, _ := solver.ParseSlice([][]int{{-1}})
	_, status := solver.SolveRange(cs, 0, 1<<63)
	fmt.Println(status)
	sol, status := solver.SolveRange(cs, 0, 1<<63+1)
	fmt.Println(status, sol.LitOf(1))
	// Output:
	// EXHAUSTED
	// SATISFIABLE -1
}
