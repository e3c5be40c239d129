package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "meeting_fatigue"

// Recorder exports categorizer and analysis metrics. A nil Recorder records nothing.
type Recorder struct {
	categorized     *prometheus.CounterVec
	oracleBatches   *prometheus.CounterVec
	analyses        *prometheus.CounterVec
	analysisSeconds prometheus.Histogram
}

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		categorized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meetings_categorized_total",
			Help:      "Meetings categorized, by the stage that decided the category.",
		}, []string{"stage"}),
		oracleBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_batches_total",
			Help:      "Oracle batch calls by outcome.",
		}, []string{"outcome"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Calendar analyses by outcome.",
		}, []string{"outcome"}),
		analysisSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Latency of a full calendar analysis.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{r.categorized, r.oracleBatches, r.analyses, r.analysisSeconds} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return r, nil
}

// Categorized counts meetings whose category was decided by stage (fast_path, oracle, fallback).
func (r *Recorder) Categorized(stage string, count int) {
	if r == nil || count == 0 {
		return
	}
	r.categorized.WithLabelValues(stage).Add(float64(count))
}

func (r *Recorder) OracleBatch(success bool) {
	if r == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.oracleBatches.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Analysis(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(outcome).Inc()
	r.analysisSeconds.Observe(elapsed.Seconds())
}
