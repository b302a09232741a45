package solver

// freeSlots is the number of low slots that no var of the problem uses.
// Candidates that only differ on those slots are the same model of the problem.
func (s *Solver) freeSlots() int {
	if s.cs.NbVars >= MaxVars {
		return 0
	}
	return MaxVars - s.cs.NbVars
}

// Enumerate sweeps the range of the solver and counts the models of the problem it finds there.
// Two candidates that only differ on slots beyond s.cs.NbVars yield the same model, which is
// counted once.
// If models is not nil, each model is sent on it, as Model would return it, and models is
// closed once the enumeration is over.
// If stop is not nil, the enumeration ends as soon as it is closed.
// Once the enumeration is complete, the status is Unsat, or Exhausted for a bounded search,
// as no model is left.
func (s *Solver) Enumerate(models chan<- []bool, stop <-chan struct{}) int {
	if models != nil {
		defer close(models)
	}
	nb := 0
	for {
		if stop != nil {
			select {
			case <-stop:
				return nb
			default:
			}
		}
		switch s.Step() {
		case Indet:
			continue
		case Sat:
		default:
			return nb
		}
		nb++
		if models != nil {
			model, _ := s.Model()
			models <- model
		}
		s.status = Indet
		s.jump(s.freeSlots())
	}
}

// CountModels returns the number of models of the problem in the range of the solver.
func (s *Solver) CountModels() int {
	return s.Enumerate(nil, nil)
}
