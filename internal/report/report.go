// Package report renders a knapsack.Comparison for people and for files:
// a short console block, an optional YAML document, a summary CSV with one
// row per instance, and a per-instance CSV of selected item weights.
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/knapsack/knapsack"
)

// Console labels, padded so the value columns line up.
var consoleLabel = map[string]string{
	knapsack.SolverBranchAndBound: "[BnB]  ",
	knapsack.SolverGenetic:        "[GenGA]",
}

// Leg is the YAML view of one solver result.
type Leg struct {
	Solver   string `yaml:"solver"`
	Value    int    `yaml:"value"`
	Weight   int    `yaml:"weight"`
	TimeMS   int64  `yaml:"time_ms"`
	Selected []int  `yaml:"selected"`
	Gap      *int   `yaml:"gap,omitempty"`
}

// Summary is the YAML document written for one instance.
type Summary struct {
	File     string `yaml:"file"`
	Items    int    `yaml:"items"`
	Capacity int    `yaml:"capacity"`
	Seed     int64  `yaml:"seed"`
	Optimum  *int   `yaml:"optimum,omitempty"`
	Legs     []Leg  `yaml:"results"`
}

// legs returns the non-skipped results in run order.
func legs(c knapsack.Comparison) []knapsack.SolverResult {
	out := make([]knapsack.SolverResult, 0, 2)
	for _, r := range []knapsack.SolverResult{c.BranchAndBound, c.Genetic} {
		if !r.Skipped {
			out = append(out, r)
		}
	}
	return out
}

// selectedIndices lists the positions set in sel.
func selectedIndices(sel []bool) []int {
	idx := make([]int, 0, len(sel))
	for i, in := range sel {
		if in {
			idx = append(idx, i)
		}
	}
	return idx
}

// NewSummary builds the YAML view. optimum is nil when no exact value is known.
func NewSummary(file string, set *knapsack.ItemSet, seed int64, c knapsack.Comparison, optimum *int) Summary {
	s := Summary{
		File:     file,
		Items:    set.Len(),
		Capacity: set.Capacity(),
		Seed:     seed,
		Optimum:  optimum,
	}
	for _, r := range legs(c) {
		leg := Leg{
			Solver:   r.Solver,
			Value:    r.Value,
			Weight:   r.Weight,
			TimeMS:   r.ElapsedMillis(),
			Selected: selectedIndices(r.Selection),
		}
		if optimum != nil {
			gap := *optimum - r.Value
			leg.Gap = &gap
		}
		s.Legs = append(s.Legs, leg)
	}
	return s
}

// WriteText prints the console block for one instance.
func WriteText(w io.Writer, file string, c knapsack.Comparison) error {
	if _, err := fmt.Fprintf(w, "File: %s\n", file); err != nil {
		return err
	}
	for _, r := range legs(c) {
		if _, err := fmt.Fprintf(w, "  %s Value=%d, Weight=%d, Time=%d ms\n",
			consoleLabel[r.Solver], r.Value, r.Weight, r.ElapsedMillis()); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML encodes s as a YAML document.
func WriteYAML(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
