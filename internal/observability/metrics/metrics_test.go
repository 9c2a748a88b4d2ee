package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.BookingProcessed("booked")
	m.CancellationProcessed("cancelled")
	m.RescheduleProcessed("rescheduled")
	m.AnswerServed("faq")
	m.EmailSent("booking", "sent")
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.BookingProcessed("booked")
	m.CancellationProcessed("cancelled")
	m.RescheduleProcessed("rescheduled")
	m.AnswerServed("ai")
	m.EmailSent("cancellation", "failed")
}
