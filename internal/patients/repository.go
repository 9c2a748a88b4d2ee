package patients

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/store"
)

// Repository defines the interface for patient storage
type Repository interface {
	Register(ctx context.Context, req *RegisterRequest) (*Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	GetByName(ctx context.Context, name string) (*Patient, error)
}

// FileRepository keeps the patient collection in memory, persisting the whole
// collection to its JSON file after every mutation.
type FileRepository struct {
	mu       sync.RWMutex
	path     string
	patients []Patient
}

// NewFileRepository loads the patient collection from path. A missing file is
// treated as an empty collection; it is created on first registration.
func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{path: path}
	if err := store.Load(path, &r.patients); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		r.patients = nil
	}
	return r, nil
}

// Register appends a new patient with the next sequential id and persists the
// collection.
func (r *FileRepository) Register(ctx context.Context, req *RegisterRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := Patient{
		ID:             fmt.Sprintf("P%03d", len(r.patients)+1),
		Name:           req.Name,
		DOB:            req.DOB,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		MedicalHistory: []string{},
	}
	r.patients = append(r.patients, p)

	if err := store.Save(r.path, r.patients); err != nil {
		r.patients = r.patients[:len(r.patients)-1]
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a patient by id.
func (r *FileRepository) GetByID(ctx context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.patients {
		if r.patients[i].ID == id {
			p := r.patients[i]
			return &p, nil
		}
	}
	return nil, ErrPatientNotFound
}

// GetByName retrieves the first patient whose name matches case-insensitively.
func (r *FileRepository) GetByName(ctx context.Context, name string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.patients {
		if strings.EqualFold(r.patients[i].Name, name) {
			p := r.patients[i]
			return &p, nil
		}
	}
	return nil, ErrPatientNotFound
}
