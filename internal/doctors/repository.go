package doctors

import (
	"context"
	"errors"
	"strings"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/store"
)

// ErrDoctorNotFound is returned when no doctor matches a lookup.
var ErrDoctorNotFound = errors.New("doctor not found")

// Repository serves the read-only doctor collection.
type Repository struct {
	doctors []Doctor
}

// NewRepository loads the doctor collection from its JSON file.
func NewRepository(path string) (*Repository, error) {
	r := &Repository{}
	if err := store.Load(path, &r.doctors); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns every doctor in collection order.
func (r *Repository) List(ctx context.Context) []Doctor {
	out := make([]Doctor, len(r.doctors))
	copy(out, r.doctors)
	return out
}

// FirstBySpecialty returns the first doctor whose specialization contains
// specialty, case-insensitively.
func (r *Repository) FirstBySpecialty(ctx context.Context, specialty string) (*Doctor, error) {
	needle := strings.ToLower(specialty)
	for i := range r.doctors {
		if strings.Contains(strings.ToLower(r.doctors[i].Specialization), needle) {
			d := r.doctors[i]
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

// ContactFor returns the contact address for the named doctor.
func (r *Repository) ContactFor(ctx context.Context, name string) (string, error) {
	for i := range r.doctors {
		if strings.EqualFold(strings.TrimSpace(r.doctors[i].Name), strings.TrimSpace(name)) {
			return r.doctors[i].Contact, nil
		}
	}
	return "", ErrDoctorNotFound
}
