/*
Package solver gives access to a Count Clear Clauses (CCC) SAT solver.
Its input is either a DIMACS CNF file or a list of lists of literals,
holding at most 64 distinct variables.

Rather than building a partial assignment, the solver enumerates total assignments,
held in a 64-bit counter, until it finds one that falsifies no clause.
It does not look at every value of the counter: when a candidate is rejected by a clause,
all the candidates that only differ from it on the variables missing at the end of that clause
are rejected too, so the counter jumps over all of them at once.

Describing a problem

Clauses and assignments share one representation, BitVec.
Variable 1 is held by the most significant bit, variable 64 by the least significant one.

1. parse a DIMACS stream (io.Reader). If the io.Reader produces the following content:

    p cnf 3 3
    1 2 0
    -1 3 0
    -2 -3 0

the programmer can create the ClauseSet by doing:

    cs, err := solver.ParseCNF(f)

2. create the equivalent list of list of literals:

    cs, err := solver.ParseSlice([][]int{{1, 2}, {-1, 3}, {-2, -3}})

Solving a problem

The sweep starts from 0 and goes upwards by default:

    s := solver.New(cs)
    status := s.Solve()

If the status is Sat, the programmer can ask for a model:

    m, err := s.Model()

The search can also go downwards with WithDirection(Descending), start elsewhere with WithFrom,
or be confined to a range of counters with WithTill.
Bombs split the counter space between many bounded searches that take turns.

The solver does not print anything. An Observer given with WithObserver is notified after each step;
LoggingObserver sends steps to a logrus logger.
*/
package solver
