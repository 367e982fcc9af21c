// Package metrics records what a documentation run did.
//
// Components receive a Recorder through their constructor and default to
// NoopRecorder, so nothing needs a nil check:
//
//	gen := generator.New(deps) // NoopRecorder
//	gen := generator.New(deps, generator.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The Prometheus implementation is meant for one-shot runs: metrics are
// gathered into a node_exporter textfile with WriteTextfile rather than
// scraped over HTTP.
package metrics
