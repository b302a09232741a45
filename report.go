package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/cccsat/cccsat/solver"
)

type reportStats struct {
	NbSteps     int `yaml:"nb_steps"`
	NbViolators int `yaml:"nb_violators"`
	MaxSkip     int `yaml:"max_skip"`
	NbBombs     int `yaml:"nb_bombs,omitempty"`
}

// A report is the outcome of a run.
type report struct {
	Status string      `yaml:"status"`
	Model  []int       `yaml:"model,omitempty"` // One literal per var, as in a DIMACS v line
	Count  *int        `yaml:"nb_models,omitempty"`
	Stats  reportStats `yaml:"stats"`
}

func newReport(status solver.Status, model []bool, s solver.Interface) *report {
	st := s.Statistics()
	res := &report{
		Status: status.String(),
		Stats: reportStats{
			NbSteps:     st.NbSteps,
			NbViolators: st.NbViolators,
			MaxSkip:     st.MaxSkip,
		},
	}
	if b, ok := s.(*solver.Bombs); ok {
		res.Stats.NbBombs = b.NbBombs()
	}
	for i, val := range model {
		if val {
			res.Model = append(res.Model, i+1)
		} else {
			res.Model = append(res.Model, -i-1)
		}
	}
	return res
}

func (r *report) writeStats(w io.Writer) {
	fmt.Fprintf(w, "c nb steps: %d\nc nb violators: %d\nc max skip: 2^%d\n", r.Stats.NbSteps, r.Stats.NbViolators, r.Stats.MaxSkip)
	if r.Stats.NbBombs > 0 {
		fmt.Fprintf(w, "c nb bombs: %d\n", r.Stats.NbBombs)
	}
}

func (r *report) writeDimacs(w io.Writer) {
	if r.Status != solver.Sat.String() {
		fmt.Fprintf(w, "s %s\n", r.Status)
		return
	}
	var sb strings.Builder
	sb.WriteString("s SATISFIABLE\nv ")
	for _, lit := range r.Model {
		fmt.Fprintf(&sb, "%d ", lit)
	}
	sb.WriteString("0\n")
	_, _ = io.WriteString(w, sb.String())
}

func (r *report) writeYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w, yaml.Indent(2))
	defer encoder.Close()
	if err := encoder.Encode(r); err != nil {
		return errors.Wrap(err, "could not write report")
	}
	return nil
}
