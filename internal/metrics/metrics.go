// Package metrics records solver runs as Prometheus series on a private
// registry, written out as a node-exporter style textfile at the end of a run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/knapsack/knapsack"
)

const namespace = "knapsack"

// Node events counted by NodesTotal.
const (
	EventExpanded    = "expanded"
	EventPruned      = "pruned"
	EventDepthCutoff = "depth_cutoff"
	EventPushed      = "pushed"
)

// Recorder owns the collectors of one process.
type Recorder struct {
	Registry *prometheus.Registry

	SolveDuration  *prometheus.HistogramVec
	BestValue      *prometheus.GaugeVec
	BestWeight     *prometheus.GaugeVec
	OptimalityGap  *prometheus.GaugeVec
	NodesTotal     *prometheus.CounterVec
	DeadlinesTotal prometheus.Counter
	Generations    prometheus.Counter
	Incumbents     *prometheus.CounterVec
}

// NewRecorder creates and registers all collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		SolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock time of one solver run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"solver"}),
		BestValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_value",
			Help:      "Value of the best selection found.",
		}, []string{"instance", "solver"}),
		BestWeight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_weight",
			Help:      "Total weight of the best selection found.",
		}, []string{"instance", "solver"}),
		OptimalityGap: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "optimality_gap",
			Help:      "Exact optimum minus the value found, when verification ran.",
		}, []string{"instance", "solver"}),
		NodesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bnb",
			Name:      "nodes_total",
			Help:      "Branch-and-bound search events by kind.",
		}, []string{"event"}),
		DeadlinesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bnb",
			Name:      "deadline_total",
			Help:      "Branch-and-bound searches stopped by the time limit.",
		}),
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ga",
			Name:      "generations_total",
			Help:      "Genetic generations evaluated.",
		}),
		Incumbents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incumbent_improvements_total",
			Help:      "Improvements of the best known selection.",
		}, []string{"solver"}),
	}
	r.Registry.MustRegister(
		r.SolveDuration, r.BestValue, r.BestWeight, r.OptimalityGap,
		r.NodesTotal, r.DeadlinesTotal, r.Generations, r.Incumbents,
	)

	return r
}

// ObserveResult records the outcome of one solver leg. Skipped legs are ignored.
func (r *Recorder) ObserveResult(instance string, res knapsack.SolverResult) {
	if res.Skipped {
		return
	}
	r.SolveDuration.WithLabelValues(res.Solver).Observe(res.Elapsed.Seconds())
	r.BestValue.WithLabelValues(instance, res.Solver).Set(float64(res.Value))
	r.BestWeight.WithLabelValues(instance, res.Solver).Set(float64(res.Weight))
}

// ObserveBBStats adds the search counters of one branch-and-bound run.
func (r *Recorder) ObserveBBStats(st knapsack.BBStats) {
	r.NodesTotal.WithLabelValues(EventExpanded).Add(float64(st.Expanded))
	r.NodesTotal.WithLabelValues(EventPruned).Add(float64(st.Pruned))
	r.NodesTotal.WithLabelValues(EventDepthCutoff).Add(float64(st.DepthCutoffs))
	r.NodesTotal.WithLabelValues(EventPushed).Add(float64(st.Pushed))
	if st.Termination == knapsack.Deadline {
		r.DeadlinesTotal.Inc()
	}
}

// ObserveGap records optimum minus found value for solver on instance.
func (r *Recorder) ObserveGap(instance, solver string, optimum, found int) {
	r.OptimalityGap.WithLabelValues(instance, solver).Set(float64(optimum - found))
}

// Generation is an OnGeneration hook.
func (r *Recorder) Generation(knapsack.GenerationStats) { r.Generations.Inc() }

// Incumbent is an OnIncumbent hook for the branch-and-bound leg.
func (r *Recorder) Incumbent(knapsack.Incumbent) {
	r.Incumbents.WithLabelValues(knapsack.SolverBranchAndBound).Inc()
}

// WriteTextfile writes the registry in the text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
