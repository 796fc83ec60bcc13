package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshesTotal counts snapshot refreshes by result (success/failure).
	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiro_refreshes_total",
			Help: "Total number of collection snapshot refreshes",
		},
		[]string{"result"},
	)

	// MutationsTotal counts create/update/delete requests by operation and result.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiro_mutations_total",
			Help: "Total number of job collection mutations",
		},
		[]string{"operation", "result"},
	)

	// SnapshotJobs tracks the number of jobs in the current snapshot.
	SnapshotJobs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hiro_snapshot_jobs",
			Help: "Number of job records in the current snapshot",
		},
	)

	// StreamClients tracks the number of connected snapshot stream subscribers.
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hiro_stream_clients",
			Help: "Number of connected snapshot stream clients",
		},
	)
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
