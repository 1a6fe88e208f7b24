package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "vaultsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	entries       *prom.CounterVec
	links         *prom.CounterVec
	graphNodes    prom.Gauge
	graphEdges    prom.Gauge
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		entries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Processed export entries by kind",
		}, []string{"kind"}),
		links: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Rewritten internal links by resolution result",
		}, []string{"result"}),
		graphNodes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Nodes in the last emitted graph",
		}),
		graphEdges: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges in the last emitted graph",
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total conversion duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Conversion runs by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.entries, pr.links, pr.graphNodes, pr.graphEdges, pr.buildDuration, pr.buildOutcome)
	return pr
}

// Registry exposes the underlying registry.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) IncEntry(kind EntryKind) {
	p.entries.WithLabelValues(string(kind)).Inc()
}

func (p *PrometheusRecorder) AddLinks(resolved, broken int) {
	p.links.WithLabelValues("resolved").Add(float64(resolved))
	p.links.WithLabelValues("broken").Add(float64(broken))
}

func (p *PrometheusRecorder) SetGraphSize(nodes, edges int) {
	p.graphNodes.Set(float64(nodes))
	p.graphEdges.Set(float64(edges))
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes every registered metric to path in the text
// exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
