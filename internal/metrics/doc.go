// Package metrics records conversion counters and timings.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay
// optional:
//
//	rec := metrics.NewPrometheusRecorder(prom.NewRegistry())
//	builder := site.NewBuilder(cfg, logger, site.WithRecorder(rec))
//
// The Prometheus implementation can dump its registry in the node_exporter
// textfile format after a run (WriteTextfile), which suits a batch converter
// better than a scrape endpoint.
package metrics
