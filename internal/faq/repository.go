package faq

import (
	"context"
	"strings"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/store"
)

// Repository serves the read-only FAQ collection.
type Repository struct {
	faqs []FAQ
}

// NewRepository loads the FAQ collection from its JSON file.
func NewRepository(path string) (*Repository, error) {
	r := &Repository{}
	if err := store.Load(path, &r.faqs); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns every FAQ in collection order.
func (r *Repository) List(ctx context.Context) []FAQ {
	out := make([]FAQ, len(r.faqs))
	copy(out, r.faqs)
	return out
}

// Match returns the first FAQ whose stored question contains the query,
// case-insensitively.
func (r *Repository) Match(ctx context.Context, query string) (*FAQ, bool) {
	needle := strings.ToLower(query)
	for i := range r.faqs {
		if strings.Contains(strings.ToLower(r.faqs[i].Question), needle) {
			f := r.faqs[i]
			return &f, true
		}
	}
	return nil, false
}
