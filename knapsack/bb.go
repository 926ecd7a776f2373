// Package knapsack - best-first Branch-and-Bound.
//
// BranchAndBound explores include/exclude decisions over items sorted by
// descending density. The frontier is a max-heap keyed by each node's upper
// bound, so the most promising partial selection is always expanded next.
//
// Search rules:
//  1. The incumbent is updated as soon as a feasible include-child improves
//     on it, before the child is pushed.
//  2. Children are fresh values; a node's selection prefix is copied, never
//     shared with a sibling or the parent.
//  3. The deadline is computed once at start and compared on every pop. A
//     node expansion is never interrupted.
//  4. Nodes at MaxDepth are dropped without expansion. On instances with more
//     items than MaxDepth the result is feasible but may be suboptimal.
//
// Complexity:
//   - Worst case exponential in n; per node O(n) for the bound and O(level)
//     for the selection copy, plus O(log F) heap work for a frontier of size F.
package knapsack

import (
	"container/heap"
	"sort"
	"time"

	"k8s.io/utils/clock"
)

// bbNode is one frontier entry. sel holds decisions for sorted positions [0, level).
type bbNode struct {
	level  int
	weight int
	value  int
	bound  float64
	sel    []bool
	seq    int
}

// frontier is a max-heap on bound; equal bounds pop in push order.
type frontier []*bbNode

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].bound == f[j].bound {
		return f[i].seq < f[j].seq
	}

	return f[i].bound > f[j].bound
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any) { *f = append(*f, x.(*bbNode)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]

	return x
}

// bbEngine holds the search state for a single run.
type bbEngine struct {
	sorted     []Item
	order      []int
	capacity   int
	maxDepth   int
	tightening float64

	clk         clock.PassiveClock
	useDeadline bool
	deadline    time.Time

	pq  frontier
	seq int

	// Incumbent.
	bestValue  int
	bestWeight int
	bestSel    []bool

	stats       BBStats
	onIncumbent func(Incumbent)
}

// sortByDensity returns the items in descending density together with the
// permutation order[k] = original index of sorted position k. Ties keep
// input order.
//
// Complexity: O(n log n).
func sortByDensity(items []Item) ([]Item, []int) {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Density() > items[order[b]].Density()
	})

	sorted := make([]Item, len(items))
	for k, orig := range order {
		sorted[k] = items[orig]
	}

	return sorted, order
}

// push assigns a sequence number and adds nd to the frontier.
func (e *bbEngine) push(nd *bbNode) {
	nd.seq = e.seq
	e.seq++
	heap.Push(&e.pq, nd)
	e.stats.Pushed++
}

// child builds the include or exclude successor of u as a fresh node.
func (e *bbEngine) child(u *bbNode, include bool) *bbNode {
	sel := make([]bool, u.level+1)
	copy(sel, u.sel)

	nd := &bbNode{
		level:  u.level + 1,
		weight: u.weight,
		value:  u.value,
		sel:    sel,
	}
	if include {
		it := e.sorted[u.level]
		nd.weight += it.Weight
		nd.value += it.Value
		nd.sel[u.level] = true
	}

	return nd
}

// boundOf computes the upper bound of nd. Never cached: each node has its own prefix.
func (e *bbEngine) boundOf(nd *bbNode) float64 {
	return upperBound(e.sorted, e.capacity, nd.level, nd.weight, nd.value, e.tightening)
}

// record commits nd as the new incumbent.
func (e *bbEngine) record(nd *bbNode) {
	e.bestValue = nd.value
	e.bestWeight = nd.weight
	e.bestSel = nd.sel
	if e.onIncumbent != nil {
		e.onIncumbent(Incumbent{Value: nd.value, Weight: nd.weight, Level: nd.level})
	}
}

// expand generates both children of u and pushes the ones that can still
// beat the incumbent.
func (e *bbEngine) expand(u *bbNode) {
	e.stats.Expanded++

	inc := e.child(u, true)
	if inc.weight <= e.capacity && inc.value > e.bestValue {
		e.record(inc)
	}
	inc.bound = e.boundOf(inc)
	if inc.bound > float64(e.bestValue) {
		e.push(inc)
	}

	exc := e.child(u, false)
	exc.bound = e.boundOf(exc)
	if exc.bound > float64(e.bestValue) {
		e.push(exc)
	}
}

// expired reports whether the deadline has passed.
func (e *bbEngine) expired() bool {
	return e.useDeadline && e.clk.Now().After(e.deadline)
}

// run drains the frontier until it is empty or the deadline passes.
func (e *bbEngine) run() {
	var (
		n = len(e.sorted)
		u *bbNode
	)
	for e.pq.Len() > 0 {
		if e.expired() {
			e.stats.Termination = Deadline
			return
		}

		u = heap.Pop(&e.pq).(*bbNode)
		if e.maxDepth >= 0 && u.level >= e.maxDepth {
			e.stats.DepthCutoffs++
			continue
		}
		if u.bound <= float64(e.bestValue) {
			e.stats.Pruned++
			continue
		}
		if u.level >= n {
			continue
		}
		e.expand(u)
	}
	e.stats.Termination = Exhausted
}

// BranchAndBound runs the best-first search on set.
//
// The returned BBResult always describes a feasible selection (weight ≤
// capacity). When the deadline passes, the best incumbent found so far is
// returned with Stats.Termination == Deadline; this is not an error.
//
// Errors: ErrNilItemSet and option sentinels (ErrBadTimeLimit, ErrBadTightening).
func BranchAndBound(set *ItemSet, opts BBOptions) (BBResult, error) {
	if set == nil {
		return BBResult{}, ErrNilItemSet
	}
	if err := validateBBOptions(opts); err != nil {
		return BBResult{}, err
	}

	var e bbEngine
	e.sorted, e.order = sortByDensity(set.items)
	e.capacity = set.capacity
	e.maxDepth = opts.MaxDepth
	e.tightening = opts.Tightening
	e.onIncumbent = opts.OnIncumbent
	e.clk = opts.Clock
	if e.clk == nil {
		e.clk = clock.RealClock{}
	}
	if hasDeadline(opts.TimeLimit) {
		e.useDeadline = true
		e.deadline = e.clk.Now().Add(opts.TimeLimit)
	}

	n := len(e.sorted)
	if n > 0 {
		root := &bbNode{sel: []bool{}}
		root.bound = e.boundOf(root)
		e.push(root)
		e.run()
	}

	res := BBResult{
		Value:  e.bestValue,
		Weight: e.bestWeight,
		Sorted: make([]bool, n),
		Order:  e.order,
		Stats:  e.stats,
	}
	copy(res.Sorted, e.bestSel)

	return res, nil
}
