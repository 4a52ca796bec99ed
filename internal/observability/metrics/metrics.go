package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the search and booking flows.
type BookingMetrics struct {
	searchesTotal      *prometheus.CounterVec
	searchLatency      prometheus.Histogram
	searchResultCount  prometheus.Histogram
	bookingsTotal      *prometheus.CounterVec
	confirmationsTotal *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total slot searches",
		}, []string{"status"}),
		searchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "medibook",
			Subsystem: "search",
			Name:      "latency_seconds",
			Help:      "Latency of the search pipeline",
			Buckets:   prometheus.DefBuckets,
		}),
		searchResultCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "medibook",
			Subsystem: "search",
			Name:      "result_count",
			Help:      "Slots returned per search after the radius filter",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "booking",
			Name:      "attempts_total",
			Help:      "Total booking attempts",
		}, []string{"outcome"}),
		confirmationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "booking",
			Name:      "confirmation_emails_total",
			Help:      "Confirmation email delivery attempts",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.searchesTotal, m.searchLatency, m.searchResultCount,
		m.bookingsTotal, m.confirmationsTotal)
	return m
}

func (m *BookingMetrics) ObserveSearch(status string, seconds float64, results int) {
	if m == nil {
		return
	}
	m.searchesTotal.WithLabelValues(status).Inc()
	m.searchLatency.Observe(seconds)
	if status == "ok" {
		m.searchResultCount.Observe(float64(results))
	}
}

func (m *BookingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveConfirmation(status string) {
	if m == nil {
		return
	}
	m.confirmationsTotal.WithLabelValues(status).Inc()
}
