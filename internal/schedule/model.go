package schedule

import (
	"strings"
	"time"
)

// Slot states. Cancellation and expiry both return a slot to available;
// there are no other states.
const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = dateLayout + " " + timeLayout
)

// Slot is one bookable time unit for one doctor on one date.
// Invariant: booked slots carry the patient id and name; available slots
// carry neither.
type Slot struct {
	Doctor      string `json:"doctor"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
}

// At parses the slot's wall-clock date and time.
func (s *Slot) At() (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, s.Date+" "+s.Time, time.Local)
}

// IsFuture reports whether the slot is strictly after now. Slots with
// malformed timestamps are never considered future.
func (s *Slot) IsFuture(now time.Time) bool {
	at, err := s.At()
	if err != nil {
		return false
	}
	return at.After(now)
}

// BelongsTo matches the slot's doctor against name, ignoring case and
// surrounding whitespace.
func (s *Slot) BelongsTo(name string) bool {
	return strings.EqualFold(strings.TrimSpace(s.Doctor), strings.TrimSpace(name))
}

// Appointment is the detail payload returned by booking operations.
type Appointment struct {
	PatientName string `json:"patient_name"`
	PatientID   string `json:"patient_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Doctor      string `json:"doctor"`
}
