package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/knapsack/knapsack"
)

func scenario() (*knapsack.ItemSet, knapsack.Comparison) {
	set, err := knapsack.NewItemSet([]knapsack.Item{
		{Weight: 5, Value: 6},
		{Weight: 4, Value: 5},
		{Weight: 2, Value: 9},
	}, 6)
	Expect(err).NotTo(HaveOccurred())

	c := knapsack.Comparison{
		BranchAndBound: knapsack.SolverResult{
			Solver: knapsack.SolverBranchAndBound, Value: 14, Weight: 6,
			Elapsed: 12 * time.Millisecond, Selection: []bool{false, true, true},
			Sorted: []bool{true, true, false},
		},
		Genetic: knapsack.SolverResult{
			Solver: knapsack.SolverGenetic, Value: 9, Weight: 2,
			Elapsed: 1500 * time.Microsecond, Selection: []bool{false, false, true},
		},
	}
	return set, c
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	Expect(err).NotTo(HaveOccurred())
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

var _ = Describe("WriteText", func() {
	It("should print both legs with aligned labels", func() {
		_, c := scenario()
		var buf bytes.Buffer
		Expect(WriteText(&buf, "data/ks_3_0", c)).To(Succeed())
		Expect(buf.String()).To(Equal(
			"File: data/ks_3_0\n" +
				"  [BnB]   Value=14, Weight=6, Time=12 ms\n" +
				"  [GenGA] Value=9, Weight=2, Time=1 ms\n"))
	})

	It("should omit a skipped leg", func() {
		_, c := scenario()
		c.Genetic = knapsack.SolverResult{Solver: knapsack.SolverGenetic, Skipped: true}
		var buf bytes.Buffer
		Expect(WriteText(&buf, "f", c)).To(Succeed())
		Expect(buf.String()).NotTo(ContainSubstring("GenGA"))
	})
})

var _ = Describe("WriteYAML", func() {
	It("should round-trip the summary", func() {
		set, c := scenario()
		optimum := 14
		s := NewSummary("ks_3_0", set, 42, c, &optimum)
		Expect(s.Legs).To(HaveLen(2))
		Expect(s.Legs[0].Selected).To(Equal([]int{1, 2}))
		Expect(*s.Legs[1].Gap).To(Equal(5))

		var buf bytes.Buffer
		Expect(WriteYAML(&buf, s)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("time_ms: 12"))

		var back Summary
		Expect(yaml.Unmarshal(buf.Bytes(), &back)).To(Succeed())
		Expect(back).To(Equal(s))
	})

	It("should leave out the gap without an optimum", func() {
		set, c := scenario()
		var buf bytes.Buffer
		Expect(WriteYAML(&buf, NewSummary("f", set, 1, c, nil))).To(Succeed())
		Expect(buf.String()).NotTo(ContainSubstring("gap"))
		Expect(buf.String()).NotTo(ContainSubstring("optimum"))
	})
})

var _ = Describe("AppendSummary", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "results_BnB_GA.csv")
	})

	It("should write the header exactly once", func() {
		_, c := scenario()
		Expect(AppendSummary(path, "a.txt", c)).To(Succeed())
		Expect(AppendSummary(path, "b.txt", c)).To(Succeed())

		lines := readLines(path)
		Expect(lines).To(Equal([]string{
			"File,weight_BnB,time_BnB_ms,weight_GA,time_GA_ms,value_BnB,value_GA",
			"a.txt,6,12,2,1,14,9",
			"b.txt,6,12,2,1,14,9",
		}))
	})

	It("should not add a header to a file that already has content", func() {
		Expect(os.WriteFile(path, []byte("existing\n"), 0o644)).To(Succeed())
		_, c := scenario()
		Expect(AppendSummary(path, "a.txt", c)).To(Succeed())
		Expect(readLines(path)).To(Equal([]string{"existing", "a.txt,6,12,2,1,14,9"}))
	})

	It("should leave skipped cells empty", func() {
		_, c := scenario()
		c.BranchAndBound = knapsack.SolverResult{Solver: knapsack.SolverBranchAndBound, Skipped: true}
		Expect(AppendSummary(path, "a.txt", c)).To(Succeed())
		Expect(readLines(path)[1]).To(Equal("a.txt,,,2,1,,9"))
	})
})

var _ = Describe("AppendSelections", func() {
	It("should create the directory and write weights in input order", func() {
		dir := filepath.Join(GinkgoT().TempDir(), "result_BnB_GA")
		set, c := scenario()

		Expect(AppendSelections(dir, "ks_3_0", set, c)).To(Succeed())
		Expect(AppendSelections(dir, "ks_3_0", set, c)).To(Succeed())

		Expect(readLines(SelectionPath(dir, "ks_3_0"))).To(Equal([]string{
			"BnB,0,4,2",
			"GA,0,0,2",
			"BnB,0,4,2",
			"GA,0,0,2",
		}))
	})
})
