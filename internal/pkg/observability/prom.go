package observability

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "mapbook"
)

var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "pipeline", "stage_duration_seconds"),
		Help:    "Duration of a pipeline stage in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"stage"})
	TargetOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "pipeline", "target_outcomes_total"),
		Help: "Per-target outcomes of the best-effort pipeline stages",
	}, []string{"stage", "status"})
	LootEntriesAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "loot", "entries_appended_total"),
		Help: "Loot entries appended to static loot containers",
	})
	VerifierResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "validator", "results_total"),
		Help: "Post-mutation validation results by verifier",
	}, []string{"verifier", "result"})
)

// WriteTextfile flushes every registered collector to path in the text exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.Wrap(err, "failed to write metrics textfile")
	}
	return nil
}
