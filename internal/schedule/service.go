package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/fuzzy"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/observability/metrics"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/patients"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

var scheduleTracer = otel.Tracer("hospital.internal.schedule")

// doctorMatchCutoff is the minimum fuzzy score (0-100) for resolving a
// free-text doctor name against the schedule.
const doctorMatchCutoff = 60

// Notifier receives appointment lifecycle events. Implementations are
// best-effort: they must not block the caller or surface delivery
// failures back into the booking path.
type Notifier interface {
	BookingConfirmed(ctx context.Context, patient patients.Patient, appt Appointment)
	BookingCancelled(ctx context.Context, patient patients.Patient, appt Appointment)
	AppointmentRescheduled(ctx context.Context, patient patients.Patient, appt Appointment)
}

// BookingResult is the outcome of a booking attempt. A false Success
// with PaymentDetails set is the payment-required state, not a failure.
type BookingResult struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	PaymentDetails   string       `json:"payment_details,omitempty"`
	AvailableDoctors []string     `json:"available_doctors,omitempty"`
	Appointment      *Appointment `json:"appointment,omitempty"`
}

// CancelResult is the outcome of a cancellation attempt.
type CancelResult struct {
	Success              bool         `json:"success"`
	Message              string       `json:"message"`
	CancelledAppointment *Appointment `json:"cancelled_appointment,omitempty"`
}

// RescheduleOptions lists the choices for moving an existing appointment.
type RescheduleOptions struct {
	Success            bool   `json:"success"`
	Message            string `json:"message,omitempty"`
	CurrentAppointment *Slot  `json:"current_appointment,omitempty"`
	AvailableSlots     []Slot `json:"available_slots,omitempty"`
	Doctor             string `json:"doctor,omitempty"`
}

// RescheduleResult is the outcome of committing a reschedule choice.
type RescheduleResult struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message"`
	NewAppointment *Appointment `json:"new_appointment,omitempty"`
}

// Service runs the slot lifecycle: booking, cancellation, reschedule
// and expiry rollover.
type Service struct {
	repo                *Repository
	patients            patients.Repository
	notifier            Notifier
	metrics             *metrics.Metrics
	logger              *logging.Logger
	paymentInstructions string
	now                 func() time.Time
}

// NewService constructs a schedule service. notifier and m may be nil.
func NewService(repo *Repository, patientRepo patients.Repository, notifier Notifier, m *metrics.Metrics, logger *logging.Logger, paymentInstructions string) *Service {
	if repo == nil {
		panic("schedule: repository required")
	}
	if patientRepo == nil {
		panic("schedule: patient repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:                repo,
		patients:            patientRepo,
		notifier:            notifier,
		metrics:             m,
		logger:              logger,
		paymentInstructions: paymentInstructions,
		now:                 time.Now,
	}
}

// Book assigns the earliest future available slot of the matched doctor
// to the patient. Expired slots are rolled over one day before the
// search so yesterday's schedule keeps serving as tomorrow's.
func (s *Service) Book(ctx context.Context, patientID, doctorName string, paymentConfirmed bool) (*BookingResult, error) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("hospital.patient_id", patientID),
		attribute.String("hospital.doctor", doctorName),
	)

	if !paymentConfirmed {
		s.metrics.BookingProcessed("payment_required")
		return &BookingResult{
			Success:        false,
			Message:        "Payment confirmation required",
			PaymentDetails: s.paymentInstructions,
		}, nil
	}

	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		s.metrics.BookingProcessed("patient_not_found")
		return &BookingResult{Success: false, Message: "Patient not found"}, nil
	}

	now := s.now()
	var result *BookingResult
	err = s.repo.Mutate(ctx, func(slots []Slot) (bool, error) {
		changed := rollover(slots, now)

		names := distinctDoctors(slots)
		matched, _, ok := fuzzy.BestMatch(doctorName, names, doctorMatchCutoff)
		if !ok {
			result = &BookingResult{
				Success:          false,
				Message:          fmt.Sprintf("No close match found for doctor name '%s'. Please try again.", doctorName),
				AvailableDoctors: availableDoctors(slots),
			}
			return changed, nil
		}

		for i := range slots {
			if slots[i].Status != StatusAvailable || !slots[i].IsFuture(now) || !slots[i].BelongsTo(matched) {
				continue
			}
			slots[i].Status = StatusBooked
			slots[i].PatientID = patient.ID
			slots[i].PatientName = patient.Name
			result = &BookingResult{
				Success: true,
				Message: "Appointment booked successfully",
				Appointment: &Appointment{
					PatientName: patient.Name,
					PatientID:   patient.ID,
					Date:        slots[i].Date,
					Time:        slots[i].Time,
					Doctor:      slots[i].Doctor,
				},
			}
			return true, nil
		}

		result = &BookingResult{
			Success:          false,
			Message:          fmt.Sprintf("No future slots are available for %s at the moment.", doctorName),
			AvailableDoctors: availableDoctors(slots),
		}
		return changed, nil
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.BookingProcessed("error")
		return nil, err
	}

	if result.Success {
		s.metrics.BookingProcessed("booked")
		s.logger.Info("appointment booked",
			"patient_id", patient.ID,
			"doctor", result.Appointment.Doctor,
			"date", result.Appointment.Date,
			"time", result.Appointment.Time,
		)
		if s.notifier != nil {
			s.notifier.BookingConfirmed(ctx, *patient, *result.Appointment)
		}
	} else {
		s.metrics.BookingProcessed("no_slot")
	}
	return result, nil
}

// Cancel frees the patient's active appointment.
func (s *Service) Cancel(ctx context.Context, patientName string) (*CancelResult, error) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.cancel")
	defer span.End()
	span.SetAttributes(attribute.String("hospital.patient_name", patientName))

	patient, err := s.patients.GetByName(ctx, patientName)
	if err != nil {
		s.metrics.CancellationProcessed("patient_not_found")
		return &CancelResult{Success: false, Message: "Patient not found"}, nil
	}

	var result *CancelResult
	err = s.repo.Mutate(ctx, func(slots []Slot) (bool, error) {
		for i := range slots {
			if slots[i].Status != StatusBooked || slots[i].PatientID != patient.ID {
				continue
			}
			appt := Appointment{
				PatientName: patientName,
				PatientID:   patient.ID,
				Date:        slots[i].Date,
				Time:        slots[i].Time,
				Doctor:      slots[i].Doctor,
			}
			slots[i].Status = StatusAvailable
			slots[i].PatientID = ""
			slots[i].PatientName = ""
			result = &CancelResult{
				Success:              true,
				Message:              "Appointment cancelled successfully",
				CancelledAppointment: &appt,
			}
			return true, nil
		}
		result = &CancelResult{Success: false, Message: "No active appointment found"}
		return false, nil
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.CancellationProcessed("error")
		return nil, err
	}

	if result.Success {
		s.metrics.CancellationProcessed("cancelled")
		s.logger.Info("appointment cancelled", "patient_id", patient.ID, "doctor", result.CancelledAppointment.Doctor)
		if s.notifier != nil {
			s.notifier.BookingCancelled(ctx, *patient, *result.CancelledAppointment)
		}
	} else {
		s.metrics.CancellationProcessed("no_appointment")
	}
	return result, nil
}

// RescheduleSlots lists the future openings a patient could move their
// active appointment into. With sameDoctor set the current doctor is
// used; otherwise doctorName selects the target schedule.
func (s *Service) RescheduleSlots(ctx context.Context, patientName, doctorName string, sameDoctor bool) (*RescheduleOptions, error) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.reschedule_slots")
	defer span.End()
	span.SetAttributes(attribute.String("hospital.patient_name", patientName))

	patient, err := s.patients.GetByName(ctx, patientName)
	if err != nil {
		return &RescheduleOptions{Success: false, Message: "Patient not found"}, nil
	}

	now := s.now()
	var result *RescheduleOptions
	s.repo.View(ctx, func(slots []Slot) {
		current := currentAppointment(slots, patient.ID)
		if current == nil {
			result = &RescheduleOptions{Success: false, Message: "No previous appointment found to reschedule"}
			return
		}

		selected := doctorName
		if sameDoctor {
			selected = current.Doctor
		}
		candidates := openSlotsFor(slots, selected, now)
		if len(candidates) == 0 {
			result = &RescheduleOptions{
				Success: false,
				Message: fmt.Sprintf("No available future slots for Dr. %s", selected),
			}
			return
		}
		cur := *current
		result = &RescheduleOptions{
			Success:            true,
			CurrentAppointment: &cur,
			AvailableSlots:     candidates,
			Doctor:             selected,
		}
	})
	if result != nil && !result.Success {
		span.SetAttributes(attribute.String("hospital.miss", result.Message))
	}
	return result, nil
}

// Reschedule moves the patient's active appointment into the slot at
// slotIndex within the candidate list that RescheduleSlots would return
// right now. The swap is committed as a single persisted change.
func (s *Service) Reschedule(ctx context.Context, patientName string, slotIndex int, newDoctor string) (*RescheduleResult, error) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.reschedule")
	defer span.End()
	span.SetAttributes(
		attribute.String("hospital.patient_name", patientName),
		attribute.Int("hospital.slot_index", slotIndex),
	)

	patient, err := s.patients.GetByName(ctx, patientName)
	if err != nil {
		s.metrics.RescheduleProcessed("patient_not_found")
		return &RescheduleResult{Success: false, Message: "Patient not found"}, nil
	}

	now := s.now()
	var result *RescheduleResult
	err = s.repo.Mutate(ctx, func(slots []Slot) (bool, error) {
		oldIdx := -1
		for i := range slots {
			if slots[i].Status == StatusBooked && slots[i].PatientID == patient.ID {
				oldIdx = i
				break
			}
		}
		if oldIdx == -1 {
			result = &RescheduleResult{Success: false, Message: "No previous appointment found"}
			return false, nil
		}

		selected := newDoctor
		if selected == "" {
			selected = slots[oldIdx].Doctor
		}
		candidates := openSlotIndexes(slots, selected, now)
		if slotIndex < 0 || slotIndex >= len(candidates) {
			result = &RescheduleResult{Success: false, Message: "Invalid slot selection"}
			return false, nil
		}
		newIdx := candidates[slotIndex]

		slots[oldIdx].Status = StatusAvailable
		slots[oldIdx].PatientID = ""
		slots[oldIdx].PatientName = ""

		slots[newIdx].Status = StatusBooked
		slots[newIdx].PatientID = patient.ID
		slots[newIdx].PatientName = patient.Name

		result = &RescheduleResult{
			Success: true,
			Message: "Appointment rescheduled successfully",
			NewAppointment: &Appointment{
				PatientName: patientName,
				PatientID:   patient.ID,
				Date:        slots[newIdx].Date,
				Time:        slots[newIdx].Time,
				Doctor:      selected,
			},
		}
		return true, nil
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.RescheduleProcessed("error")
		return nil, err
	}

	if result.Success {
		s.metrics.RescheduleProcessed("rescheduled")
		s.logger.Info("appointment rescheduled",
			"patient_id", patient.ID,
			"doctor", result.NewAppointment.Doctor,
			"date", result.NewAppointment.Date,
			"time", result.NewAppointment.Time,
		)
		if s.notifier != nil {
			s.notifier.AppointmentRescheduled(ctx, *patient, *result.NewAppointment)
		}
	} else {
		s.metrics.RescheduleProcessed("invalid_selection")
	}
	return result, nil
}

// AvailableSlots returns every open slot that is still in the future.
func (s *Service) AvailableSlots(ctx context.Context) []Slot {
	now := s.now()
	var open []Slot
	s.repo.View(ctx, func(slots []Slot) {
		for _, slot := range slots {
			if slot.Status == StatusAvailable && slot.IsFuture(now) {
				open = append(open, slot)
			}
		}
	})
	return open
}

// AppointmentsFor returns the patient's booked slots.
func (s *Service) AppointmentsFor(ctx context.Context, patientName string) ([]Slot, error) {
	patient, err := s.patients.GetByName(ctx, patientName)
	if err != nil {
		return nil, ErrPatientNotFound
	}
	var booked []Slot
	s.repo.View(ctx, func(slots []Slot) {
		for _, slot := range slots {
			if slot.Status == StatusBooked && slot.PatientID == patient.ID {
				booked = append(booked, slot)
			}
		}
	})
	return booked, nil
}

// rollover advances every expired slot one day and returns it to the
// available pool. Reports whether any slot changed.
func rollover(slots []Slot, now time.Time) bool {
	changed := false
	for i := range slots {
		at, err := slots[i].At()
		if err != nil || !at.Before(now) {
			continue
		}
		slots[i].Date = at.AddDate(0, 0, 1).Format(dateLayout)
		slots[i].Status = StatusAvailable
		slots[i].PatientID = ""
		slots[i].PatientName = ""
		changed = true
	}
	return changed
}

// distinctDoctors returns the trimmed doctor names on the schedule in
// first-seen order.
func distinctDoctors(slots []Slot) []string {
	seen := make(map[string]struct{}, len(slots))
	var names []string
	for _, slot := range slots {
		name := strings.TrimSpace(slot.Doctor)
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names
}

// availableDoctors returns the distinct doctors that currently have at
// least one open slot.
func availableDoctors(slots []Slot) []string {
	seen := make(map[string]struct{}, len(slots))
	var names []string
	for _, slot := range slots {
		if slot.Status != StatusAvailable {
			continue
		}
		name := strings.TrimSpace(slot.Doctor)
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names
}

func currentAppointment(slots []Slot, patientID string) *Slot {
	for i := range slots {
		if slots[i].Status == StatusBooked && slots[i].PatientID == patientID {
			s := slots[i]
			return &s
		}
	}
	return nil
}

func openSlotsFor(slots []Slot, doctor string, now time.Time) []Slot {
	var open []Slot
	for _, slot := range slots {
		if slot.Status == StatusAvailable && slot.IsFuture(now) && slot.BelongsTo(doctor) {
			open = append(open, slot)
		}
	}
	return open
}

func openSlotIndexes(slots []Slot, doctor string, now time.Time) []int {
	var idx []int
	for i := range slots {
		if slots[i].Status == StatusAvailable && slots[i].IsFuture(now) && slots[i].BelongsTo(doctor) {
			idx = append(idx, i)
		}
	}
	return idx
}
