package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/knapsack/knapsack"
)

// SummaryHeader is written once, when the summary file is empty.
var SummaryHeader = []string{
	"File", "weight_BnB", "time_BnB_ms", "weight_GA", "time_GA_ms", "value_BnB", "value_GA",
}

// openAppend opens path for appending and reports whether it was empty.
func openAppend(path string) (*os.File, bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, false, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, false, err
	}
	return f, st.Size() == 0, nil
}

// cells returns weight, time and value of r, or empty cells for a skipped leg.
func cells(r knapsack.SolverResult) (string, string, string) {
	if r.Skipped {
		return "", "", ""
	}
	return strconv.Itoa(r.Weight), strconv.FormatInt(r.ElapsedMillis(), 10), strconv.Itoa(r.Value)
}

// AppendSummary appends one row for file to the summary CSV at path.
func AppendSummary(path, file string, c knapsack.Comparison) error {
	f, empty, err := openAppend(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if empty {
		_ = w.Write(SummaryHeader)
	}
	wBB, tBB, vBB := cells(c.BranchAndBound)
	wGA, tGA, vGA := cells(c.Genetic)
	_ = w.Write([]string{file, wBB, tBB, wGA, tGA, vBB, vGA})
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// selectionRow renders label followed by each item's weight when selected, 0 otherwise.
func selectionRow(label string, set *knapsack.ItemSet, sel []bool) []string {
	row := make([]string, 0, set.Len()+1)
	row = append(row, label)
	for i := 0; i < set.Len(); i++ {
		if i < len(sel) && sel[i] {
			row = append(row, strconv.Itoa(set.Item(i).Weight))
		} else {
			row = append(row, "0")
		}
	}
	return row
}

// SelectionPath returns the per-instance CSV path under dir.
func SelectionPath(dir, name string) string {
	return filepath.Join(dir, name+".csv")
}

// AppendSelections appends one row per non-skipped leg to dir/<name>.csv,
// creating dir when needed. Rows are in original item order.
func AppendSelections(dir, name string, set *knapsack.ItemSet, c knapsack.Comparison) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	f, _, err := openAppend(SelectionPath(dir, name))
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	for _, r := range legs(c) {
		_ = w.Write(selectionRow(r.Solver, set, r.Selection))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
