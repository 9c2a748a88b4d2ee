package patients

import "strings"

// Patient is a registered patient record. Records are append-only: patients
// are never deleted, so sequential ids stay strictly increasing.
type Patient struct {
	ID             string   `json:"patient_id"`
	Name           string   `json:"name"`
	DOB            string   `json:"dob"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Address        string   `json:"address"`
	MedicalHistory []string `json:"medical_history"`
}

// RegisterRequest is the request body for registering a patient.
type RegisterRequest struct {
	Name    string `json:"name"`
	DOB     string `json:"dob"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Validate checks that every required registration field is present.
func (r *RegisterRequest) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"dob", r.DOB},
		{"address", r.Address},
		{"phone", r.Phone},
		{"email", r.Email},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	return nil
}
