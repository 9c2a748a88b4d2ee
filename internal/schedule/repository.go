package schedule

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/store"
)

// Repository owns the slot collection and its backing file. Every
// read-modify-write runs under a single lock so concurrent requests
// observe a serial history.
type Repository struct {
	mu    sync.Mutex
	path  string
	slots []Slot
}

// NewRepository loads the slot collection from path. A missing file is
// treated as an empty schedule.
func NewRepository(path string) (*Repository, error) {
	r := &Repository{path: path}
	if err := store.Load(path, &r.slots); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		r.slots = []Slot{}
	}
	return r, nil
}

// View calls fn with the current slots under the lock. fn must not
// retain or mutate the slice.
func (r *Repository) View(_ context.Context, fn func(slots []Slot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.slots)
}

// Mutate calls fn with the slot collection under the lock. fn mutates
// slots in place and reports whether anything changed; changes are
// persisted before the lock is released. If fn or the persist step
// fails the in-memory collection is restored from its prior state.
func (r *Repository) Mutate(_ context.Context, fn func(slots []Slot) (bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prior := make([]Slot, len(r.slots))
	copy(prior, r.slots)

	changed, err := fn(r.slots)
	if err != nil {
		r.slots = prior
		return err
	}
	if !changed {
		return nil
	}
	if err := store.Save(r.path, r.slots); err != nil {
		r.slots = prior
		return err
	}
	return nil
}
