package doctors

import (
	"encoding/json"
	"net/http"
)

// Handler serves the doctor directory.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new doctors handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /api/doctors requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"doctors": h.repo.List(r.Context()),
	})
}
