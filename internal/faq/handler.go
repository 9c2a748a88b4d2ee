package faq

import (
	"encoding/json"
	"net/http"

	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

// Handler exposes FAQ lookup and direct assistant queries over HTTP.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new FAQ handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

type faqRequest struct {
	Question *string `json:"question"`
}

// Answer handles POST /api/faq requests. Curated answers come back
// plain; generated ones are tagged with "source": "ai".
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}
	if req.Question == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing question",
		})
		return
	}

	result, err := h.svc.Resolve(r.Context(), *req.Question)
	if err != nil {
		h.logger.Error("faq lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	payload := map[string]any{
		"success": true,
		"answer":  result.Answer,
	}
	if result.Source == "ai" {
		payload["source"] = "ai"
	}
	writeJSON(w, http.StatusOK, payload)
}

type aiQueryRequest struct {
	Query *string `json:"query"`
}

// Query handles POST /api/ai-query requests, sending the query straight
// to the assistant.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req aiQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}
	if req.Query == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing query",
		})
		return
	}

	answer, err := h.svc.Ask(r.Context(), *req.Query)
	if err != nil {
		h.logger.Error("ai query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": answer,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
