package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the visit booking flow.
type BookingMetrics struct {
	bookingsTotal     *prometheus.CounterVec
	decisionsTotal    *prometheus.CounterVec
	slotQueryDuration prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wardpass",
			Subsystem: "booking",
			Name:      "requests_total",
			Help:      "Total booking attempts by outcome",
		}, []string{"outcome"}),
		decisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wardpass",
			Subsystem: "review",
			Name:      "decisions_total",
			Help:      "Total staff decisions by resulting status",
		}, []string{"status"}),
		slotQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wardpass",
			Subsystem: "booking",
			Name:      "slot_query_seconds",
			Help:      "Latency of slot calendar queries",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.decisionsTotal, m.slotQueryDuration)
	return m
}

func (m *BookingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveDecision(status string) {
	if m == nil {
		return
	}
	m.decisionsTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveSlotQuery(seconds float64) {
	if m == nil {
		return
	}
	m.slotQueryDuration.Observe(seconds)
}
