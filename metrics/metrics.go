// Package metrics exposes Prometheus counters for comment checks.
//
// The checker usually runs as a short-lived hook process, so instead of
// serving /metrics the counters are written to a node_exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "comment_checker"

// Recorder holds the counters on a private registry. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	detected   *prometheus.CounterVec
	suppressed *prometheus.CounterVec
	decisions  *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		detected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_detected_total",
			Help:      "Comments that survived novelty and policy filtering.",
		}, []string{"language", "kind"}),
		suppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_suppressed_total",
			Help:      "Comments dropped by a policy filter.",
		}, []string{"filter"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Hook decisions by outcome.",
		}, []string{"decision"}),
	}
	r.registry.MustRegister(r.detected, r.suppressed, r.decisions)
	return r
}

// Detected counts one reported comment.
func (r *Recorder) Detected(language, kind string) {
	if r == nil {
		return
	}
	r.detected.WithLabelValues(language, kind).Inc()
}

// Suppressed counts n comments dropped by the named filter.
func (r *Recorder) Suppressed(filter string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.suppressed.WithLabelValues(filter).Add(float64(n))
}

// Decision counts one hook outcome ("pass", "block" or "skip").
func (r *Recorder) Decision(decision string) {
	if r == nil {
		return
	}
	r.decisions.WithLabelValues(decision).Inc()
}

// Gatherer exposes the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// WriteTextfile writes the current counters in the text exposition format.
// The write is atomic (temp file and rename).
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
