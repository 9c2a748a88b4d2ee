package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/doctors"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/observability/metrics"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/patients"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/schedule"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service queues appointment notifications and delivers them from a
// background worker. Delivery is best-effort: a failed email is logged
// and dropped, never surfaced to the booking path.
type Service struct {
	queue   queueClient
	sender  EmailSender
	doctors *doctors.Repository
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewService constructs a notification service. m may be nil.
func NewService(queue queueClient, sender EmailSender, doctorRepo *doctors.Repository, m *metrics.Metrics, logger *logging.Logger) *Service {
	if queue == nil {
		panic("notify: queue required")
	}
	if sender == nil {
		sender = NewStubEmailSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		queue:   queue,
		sender:  sender,
		doctors: doctorRepo,
		metrics: m,
		logger:  logger,
	}
}

// BookingConfirmed queues confirmation emails for a fresh booking.
func (s *Service) BookingConfirmed(ctx context.Context, patient patients.Patient, appt schedule.Appointment) {
	s.enqueue(ctx, kindBooking, patient, appt)
}

// BookingCancelled queues notification emails for a cancellation.
func (s *Service) BookingCancelled(ctx context.Context, patient patients.Patient, appt schedule.Appointment) {
	s.enqueue(ctx, kindCancellation, patient, appt)
}

// AppointmentRescheduled queues notification emails for a reschedule.
func (s *Service) AppointmentRescheduled(ctx context.Context, patient patients.Patient, appt schedule.Appointment) {
	s.enqueue(ctx, kindReschedule, patient, appt)
}

func (s *Service) enqueue(ctx context.Context, kind notificationKind, patient patients.Patient, appt schedule.Appointment) {
	payload, body, err := encodePayload(queuePayload{
		Kind:        kind,
		Patient:     patient,
		Appointment: appt,
	})
	if err != nil {
		s.logger.Error("failed to encode notification", "error", err, "kind", kind)
		return
	}
	if err := s.queue.Send(ctx, body); err != nil {
		s.logger.Error("failed to enqueue notification", "error", err, "kind", kind, "id", payload.ID)
		s.metrics.EmailSent(string(kind), "dropped")
		return
	}
	s.logger.Debug("notification queued", "kind", kind, "id", payload.ID)
}

// Run drains the queue until ctx is cancelled. Intended to be started
// once as a background goroutine.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("notification worker started")
	for {
		messages, err := s.queue.Receive(ctx, 10, 5)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("notification worker stopped")
				return
			}
			s.logger.Error("failed to receive notifications", "error", err)
			continue
		}
		for _, msg := range messages {
			s.process(ctx, msg)
			if err := s.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
				s.logger.Warn("failed to delete notification message", "error", err, "id", msg.ID)
			}
		}
	}
}

func (s *Service) process(ctx context.Context, msg queueMessage) {
	var payload queuePayload
	if err := json.Unmarshal([]byte(msg.Body), &payload); err != nil {
		s.logger.Error("failed to decode notification", "error", err, "id", msg.ID)
		return
	}

	s.sendPatientEmail(ctx, payload)
	s.sendDoctorEmail(ctx, payload)
}

func (s *Service) sendPatientEmail(ctx context.Context, payload queuePayload) {
	if !emailPattern.MatchString(payload.Patient.Email) {
		s.logger.Warn("skipping patient email, invalid address", "patient_id", payload.Patient.ID)
		s.metrics.EmailSent(string(payload.Kind), "skipped")
		return
	}

	var subject, opening string
	switch payload.Kind {
	case kindBooking:
		subject = "Appointment Booking Confirmation"
		opening = "Your appointment has been successfully booked."
	case kindReschedule:
		subject = "Appointment Rescheduled Confirmation"
		opening = "Your appointment has been successfully rescheduled."
	default:
		subject = "Appointment Cancelled"
		opening = "Your appointment has been cancelled."
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n%s\n\nDetails:\nDoctor: %s\nDate: %s\nTime: %s\n\nThank you for choosing our hospital.\n",
		payload.Patient.Name, opening,
		payload.Appointment.Doctor, payload.Appointment.Date, payload.Appointment.Time,
	)

	err := s.sender.Send(ctx, EmailMessage{
		To:      payload.Patient.Email,
		ToName:  payload.Patient.Name,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		s.logger.Error("patient notification failed", "error", err, "kind", payload.Kind, "patient_id", payload.Patient.ID)
		s.metrics.EmailSent(string(payload.Kind), "failed")
		return
	}
	s.metrics.EmailSent(string(payload.Kind), "sent")
}

func (s *Service) sendDoctorEmail(ctx context.Context, payload queuePayload) {
	if s.doctors == nil {
		return
	}
	contact, err := s.doctors.ContactFor(ctx, payload.Appointment.Doctor)
	if err != nil || !emailPattern.MatchString(contact) {
		s.logger.Warn("skipping doctor email, no contact address", "doctor", payload.Appointment.Doctor)
		s.metrics.EmailSent(string(payload.Kind), "skipped")
		return
	}

	var subject, opening string
	switch payload.Kind {
	case kindBooking:
		subject = "New Appointment Booked"
		opening = "A new appointment has been booked for a patient."
	case kindReschedule:
		subject = "Appointment Rescheduled"
		opening = "An appointment has been rescheduled."
	default:
		subject = "Appointment Cancelled"
		opening = "An appointment has been cancelled."
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n%s\n\nAppointment Details:\nPatient ID: %s\nDate: %s\nTime: %s\n\nThank you.",
		payload.Appointment.Doctor, opening,
		payload.Patient.ID, payload.Appointment.Date, payload.Appointment.Time,
	)

	err = s.sender.Send(ctx, EmailMessage{
		To:      contact,
		ToName:  payload.Appointment.Doctor,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		s.logger.Error("doctor notification failed", "error", err, "kind", payload.Kind, "doctor", payload.Appointment.Doctor)
		s.metrics.EmailSent(string(payload.Kind), "failed")
		return
	}
	s.metrics.EmailSent(string(payload.Kind), "sent")
}

var _ schedule.Notifier = (*Service)(nil)
