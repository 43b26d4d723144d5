package prometheus

import "github.com/prometheus/client_golang/prometheus"

var (
	CommandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Count of processed bot commands",
		},
		[]string{"command", "status"},
	)
	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_command_duration_seconds",
			Help:    "Time taken to process a bot command or step",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"command"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_active_sessions_total",
			Help: "Current number of in-flight creation conversations",
		},
	)
	EventsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_created_total",
			Help: "Count of finalized events",
		},
	)
	GuestUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guest_uploads_total",
			Help: "Count of guest upload attempts by admission result",
		},
		[]string{"result"},
	)
	StorageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_uploads_total",
			Help: "Count of object-storage transfers",
		},
		[]string{"kind", "status"},
	)
	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_cache_operations_total",
			Help: "Event cache lookups by outcome",
		},
		[]string{"result"},
	)
)

func Init() {
	prometheus.MustRegister(
		CommandCounter,
		CommandDuration,
		ActiveSessions,
		EventsCreated,
		GuestUploads,
		StorageUploads,
		CacheOperations,
	)
}
