package notify

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/doctors"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/patients"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/schedule"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/store"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) messages() []EmailMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EmailMessage, len(r.sent))
	copy(out, r.sent)
	return out
}

func newDoctorRepo(t *testing.T) *doctors.Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doctors.json")
	require.NoError(t, store.Save(path, []doctors.Doctor{
		{Name: "Dr. Smith", Specialization: "Cardiology", Contact: "smith@example.com"},
	}))
	repo, err := doctors.NewRepository(path)
	require.NoError(t, err)
	return repo
}

func testPatient() patients.Patient {
	return patients.Patient{
		ID:    "P001",
		Name:  "Ayesha Khan",
		Email: "ayesha@example.com",
	}
}

func testAppointment() schedule.Appointment {
	return schedule.Appointment{
		PatientName: "Ayesha Khan",
		PatientID:   "P001",
		Date:        "2026-03-11",
		Time:        "10:00",
		Doctor:      "Dr. Smith",
	}
}

// drain pulls one queued message and processes it synchronously.
func drain(t *testing.T, svc *Service, queue *MemoryQueue) {
	t.Helper()
	messages, err := queue.Receive(context.Background(), 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, messages)
	for _, msg := range messages {
		svc.process(context.Background(), msg)
	}
}

func TestBookingNotification_SendsPatientAndDoctorEmails(t *testing.T) {
	queue := NewMemoryQueue(8)
	sender := &recordingSender{}
	svc := NewService(queue, sender, newDoctorRepo(t), nil, logging.New("error"))

	svc.BookingConfirmed(context.Background(), testPatient(), testAppointment())
	drain(t, svc, queue)

	sent := sender.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "ayesha@example.com", sent[0].To)
	assert.Equal(t, "Appointment Booking Confirmation", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "Dear Ayesha Khan")
	assert.Contains(t, sent[0].Body, "Doctor: Dr. Smith")

	assert.Equal(t, "smith@example.com", sent[1].To)
	assert.Equal(t, "New Appointment Booked", sent[1].Subject)
	assert.Contains(t, sent[1].Body, "Patient ID: P001")
}

func TestCancellationNotification_Subjects(t *testing.T) {
	queue := NewMemoryQueue(8)
	sender := &recordingSender{}
	svc := NewService(queue, sender, newDoctorRepo(t), nil, logging.New("error"))

	svc.BookingCancelled(context.Background(), testPatient(), testAppointment())
	drain(t, svc, queue)

	sent := sender.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "Appointment Cancelled", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "has been cancelled")
	assert.Equal(t, "Appointment Cancelled", sent[1].Subject)
}

func TestRescheduleNotification_Subjects(t *testing.T) {
	queue := NewMemoryQueue(8)
	sender := &recordingSender{}
	svc := NewService(queue, sender, newDoctorRepo(t), nil, logging.New("error"))

	svc.AppointmentRescheduled(context.Background(), testPatient(), testAppointment())
	drain(t, svc, queue)

	sent := sender.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "Appointment Rescheduled Confirmation", sent[0].Subject)
	assert.Equal(t, "Appointment Rescheduled", sent[1].Subject)
}

func TestInvalidPatientEmailSkipped(t *testing.T) {
	queue := NewMemoryQueue(8)
	sender := &recordingSender{}
	svc := NewService(queue, sender, newDoctorRepo(t), nil, logging.New("error"))

	patient := testPatient()
	patient.Email = "not-an-address"
	svc.BookingConfirmed(context.Background(), patient, testAppointment())
	drain(t, svc, queue)

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "smith@example.com", sent[0].To)
}

func TestUnknownDoctorSkipsDoctorEmail(t *testing.T) {
	queue := NewMemoryQueue(8)
	sender := &recordingSender{}
	svc := NewService(queue, sender, newDoctorRepo(t), nil, logging.New("error"))

	appt := testAppointment()
	appt.Doctor = "Dr. Unknown"
	svc.BookingConfirmed(context.Background(), testPatient(), appt)
	drain(t, svc, queue)

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ayesha@example.com", sent[0].To)
}

func TestSenderFailureIsSwallowed(t *testing.T) {
	queue := NewMemoryQueue(8)
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewService(queue, sender, newDoctorRepo(t), nil, logging.New("error"))

	svc.BookingConfirmed(context.Background(), testPatient(), testAppointment())
	drain(t, svc, queue)

	assert.Empty(t, sender.messages())
}

func TestRunDrainsQueue(t *testing.T) {
	queue := NewMemoryQueue(8)
	sender := &recordingSender{}
	svc := NewService(queue, sender, newDoctorRepo(t), nil, logging.New("error"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	svc.BookingConfirmed(ctx, testPatient(), testAppointment())

	require.Eventually(t, func() bool {
		return len(sender.messages()) == 2
	}, 2*time.Second, 10*time.Millisecond)
}
