package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the flight-event pipeline.
// ApplyFailures is the operator signal for the ack-on-failure policy: a
// message acknowledged despite a failed transaction shows up only here and
// in the error log.
type Metrics struct {
	EventsPublished prometheus.Counter
	EventsApplied   *prometheus.CounterVec
	ApplyFailures   prometheus.Counter
	UnknownFlights  prometheus.Counter
	StreamClients   prometheus.Gauge
	DroppedFrames   prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Flight events published to the broker",
		}),
		EventsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_applied_total",
			Help:      "Flight events applied to durable state",
		}, []string{"event_type"}),
		ApplyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_apply_failures_total",
			Help:      "Events acknowledged despite a failed apply transaction",
		}),
		UnknownFlights: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_flight_events_total",
			Help:      "Events received for flights missing from the store",
		}),
		StreamClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Currently connected stream clients",
		}),
		DroppedFrames: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_dropped_frames_total",
			Help:      "Frames dropped because a client queue was full",
		}),
	}
}
