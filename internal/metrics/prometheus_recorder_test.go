package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gathered returns the value of the sample named name whose labels include
// label=value ("" matches unlabeled samples).
func gathered(t *testing.T, reg *prom.Registry, name, label, value string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := label == ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					match = true
				}
			}
			if !match {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s{%s=%q} not found", name, label, value)
	return 0
}

func TestPrometheusRecorder_Counts(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncEntry(EntryPage)
	pr.IncEntry(EntryPage)
	pr.IncEntry(EntryResource)
	pr.AddLinks(5, 2)
	pr.SetGraphSize(3, 4)
	pr.ObserveBuildDuration(250 * time.Millisecond)
	pr.IncBuildOutcome("success")

	assert.Equal(t, 2.0, gathered(t, reg, "vaultsite_entries_total", "kind", "page"))
	assert.Equal(t, 1.0, gathered(t, reg, "vaultsite_entries_total", "kind", "resource"))
	assert.Equal(t, 5.0, gathered(t, reg, "vaultsite_links_total", "result", "resolved"))
	assert.Equal(t, 2.0, gathered(t, reg, "vaultsite_links_total", "result", "broken"))
	assert.Equal(t, 3.0, gathered(t, reg, "vaultsite_graph_nodes", "", ""))
	assert.Equal(t, 4.0, gathered(t, reg, "vaultsite_graph_edges", "", ""))
	assert.Equal(t, 1.0, gathered(t, reg, "vaultsite_build_duration_seconds", "", ""))
	assert.Equal(t, 1.0, gathered(t, reg, "vaultsite_build_outcomes_total", "outcome", "success"))
	assert.Same(t, reg, pr.Registry())
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncEntry(EntrySection)

	path := filepath.Join(t.TempDir(), "vaultsite.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `vaultsite_entries_total{kind="section"} 1`)
}
