package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the front-desk flows. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	bookingsTotal      *prometheus.CounterVec
	cancellationsTotal *prometheus.CounterVec
	reschedulesTotal   *prometheus.CounterVec
	faqTotal           *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "schedule",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		cancellationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "schedule",
			Name:      "cancellations_total",
			Help:      "Cancellation attempts by outcome",
		}, []string{"outcome"}),
		reschedulesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "schedule",
			Name:      "reschedules_total",
			Help:      "Reschedule attempts by outcome",
		}, []string{"outcome"}),
		faqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "faq",
			Name:      "answers_total",
			Help:      "FAQ answers by source (faq, cache, ai)",
		}, []string{"source"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Email notifications by kind and delivery status",
		}, []string{"kind", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.cancellationsTotal, m.reschedulesTotal, m.faqTotal, m.notificationsTotal)
	return m
}

func (m *Metrics) BookingProcessed(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CancellationProcessed(outcome string) {
	if m == nil {
		return
	}
	m.cancellationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RescheduleProcessed(outcome string) {
	if m == nil {
		return
	}
	m.reschedulesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AnswerServed(source string) {
	if m == nil {
		return
	}
	m.faqTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) EmailSent(kind, status string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(kind, status).Inc()
}
