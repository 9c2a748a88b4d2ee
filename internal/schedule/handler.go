package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

// Handler exposes the appointment lifecycle over HTTP.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new schedule handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

type bookRequest struct {
	PatientID        *string `json:"patient_id"`
	DoctorName       *string `json:"doctor_name"`
	PaymentConfirmed bool    `json:"payment_confirmed"`
}

// Book handles POST /api/book-appointment requests. The payment-required
// outcome is a valid workflow state and is returned with 200.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}
	if req.PatientID == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing required field: patient_id",
		})
		return
	}
	if req.DoctorName == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing required field: doctor_name",
		})
		return
	}

	result, err := h.svc.Book(r.Context(), *req.PatientID, *req.DoctorName, req.PaymentConfirmed)
	if err != nil {
		h.logger.Error("booking failed", "error", err, "patient_id", *req.PatientID)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	switch {
	case result.Success:
		writeJSON(w, http.StatusOK, result)
	case result.PaymentDetails != "":
		writeJSON(w, http.StatusOK, result)
	default:
		writeJSON(w, http.StatusBadRequest, result)
	}
}

type cancelRequest struct {
	Name *string `json:"name"`
}

// Cancel handles POST /api/cancel-appointment requests.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}
	if req.Name == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing patient name",
		})
		return
	}

	result, err := h.svc.Cancel(r.Context(), *req.Name)
	if err != nil {
		h.logger.Error("cancellation failed", "error", err, "name", *req.Name)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusNotFound, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type rescheduleSlotsRequest struct {
	Name       *string `json:"name"`
	DoctorName *string `json:"doctor_name"`
	SameDoctor *bool   `json:"same_doctor"`
}

// RescheduleSlots handles POST /api/reschedule-slots requests.
func (h *Handler) RescheduleSlots(w http.ResponseWriter, r *http.Request) {
	var req rescheduleSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}
	if req.Name == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing patient name",
		})
		return
	}
	if req.DoctorName == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing doctor name",
		})
		return
	}

	sameDoctor := true
	if req.SameDoctor != nil {
		sameDoctor = *req.SameDoctor
	}
	result, err := h.svc.RescheduleSlots(r.Context(), *req.Name, *req.DoctorName, sameDoctor)
	if err != nil {
		h.logger.Error("reschedule slot lookup failed", "error", err, "name", *req.Name)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusNotFound, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type rescheduleRequest struct {
	Name      *string `json:"name"`
	SlotIndex *int    `json:"slot_index"`
	NewDoctor string  `json:"new_doctor"`
}

// Reschedule handles POST /api/reschedule-appointment requests.
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}
	if req.Name == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing required field: name",
		})
		return
	}
	if req.SlotIndex == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing required field: slot_index",
		})
		return
	}

	result, err := h.svc.Reschedule(r.Context(), *req.Name, *req.SlotIndex, req.NewDoctor)
	if err != nil {
		h.logger.Error("reschedule failed", "error", err, "name", *req.Name)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AvailableSlots handles GET /api/available-slots requests.
func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots := h.svc.AvailableSlots(r.Context())
	if slots == nil {
		slots = []Slot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"available_slots": slots,
	})
}

// Appointments handles GET /api/appointments/{name} requests.
func (h *Handler) Appointments(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	booked, err := h.svc.AppointmentsFor(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "Patient not found",
			})
			return
		}
		h.logger.Error("appointment lookup failed", "error", err, "name", name)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	if booked == nil {
		booked = []Slot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"appointments": booked,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
