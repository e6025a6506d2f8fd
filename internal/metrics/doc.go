// Package metrics records build metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics code
// needs no nil checks:
//
//	gen := build.NewGenerator(opts) // NoopRecorder
//	gen.WithRecorder(metrics.NewPrometheusRecorder(nil))
//
// PrometheusRecorder keeps its own registry and can write it in the Prometheus
// text format for the node_exporter textfile collector.
package metrics
