package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio_bot",
			Name:      "updates_processed_total",
			Help:      "Count of processed Telegram updates by kind.",
		},
		[]string{"kind"},
	)

	appointmentsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio_bot",
			Name:      "appointments_saved_total",
			Help:      "Count of saved appointments by status.",
		},
		[]string{"status"},
	)

	slotsUnlocked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studio_bot",
			Name:      "slots_unlocked_total",
			Help:      "Count of slots unlocked by the owner.",
		},
	)

	storageErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studio_bot",
			Name:      "storage_errors_total",
			Help:      "Count of datastore errors surfaced to users.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(updatesProcessed, appointmentsSaved, slotsUnlocked, storageErrors)
	})
}

func IncUpdateProcessed(kind string) {
	updatesProcessed.WithLabelValues(kind).Inc()
}

func IncAppointmentSaved(status string) {
	appointmentsSaved.WithLabelValues(status).Inc()
}

func AddSlotsUnlocked(n int) {
	slotsUnlocked.Add(float64(n))
}

func IncStorageError() {
	storageErrors.Inc()
}
