// Package triage maps a free-text symptom description to a medical specialty
// and an available doctor.
package triage

import (
	"context"
	"errors"
	"strings"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/doctors"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/fuzzy"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

// Symptom keywords must clear this Ratcliff/Obershelp score to fuzzy-match.
const keywordCutoff = 0.4

// ErrNoConditionMatch is returned when no keyword resolves the symptom text.
var ErrNoConditionMatch = errors.New("no doctor found for condition")

// SpecialtyUnavailableError is returned when a specialty resolved but no
// doctor practices it.
type SpecialtyUnavailableError struct {
	Specialty string
}

func (e *SpecialtyUnavailableError) Error() string {
	return "no " + e.Specialty + " available"
}

// Suggestion pairs the resolved specialty with the first doctor serving it.
type Suggestion struct {
	Specialty string         `json:"specialty"`
	Doctor    doctors.Doctor `json:"doctor"`
}

// Matcher resolves symptoms against the ordered disease map.
type Matcher struct {
	entries []MapEntry
	doctors *doctors.Repository
	logger  *logging.Logger
}

// NewMatcher creates a matcher over the given disease map entries.
func NewMatcher(entries []MapEntry, repo *doctors.Repository, logger *logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Matcher{
		entries: entries,
		doctors: repo,
		logger:  logger,
	}
}

// Suggest resolves a symptom description to a specialty and doctor. Matching
// runs in strict priority order: keyword substring, then whole-token
// equality, then fuzzy match against the full symptom string; the first hit
// wins.
func (m *Matcher) Suggest(ctx context.Context, symptom string) (*Suggestion, error) {
	lowered := strings.ToLower(symptom)

	for _, e := range m.entries {
		if strings.Contains(lowered, e.Keyword) {
			return m.resolve(ctx, e.Specialty)
		}
	}

	for _, word := range strings.Fields(lowered) {
		for _, e := range m.entries {
			if word == e.Keyword {
				return m.resolve(ctx, e.Specialty)
			}
		}
	}

	keywords := make([]string, len(m.entries))
	for i, e := range m.entries {
		keywords[i] = e.Keyword
	}
	if kw, score, ok := fuzzy.ClosestMatch(lowered, keywords, keywordCutoff); ok {
		m.logger.Debug("symptom fuzzy-matched", "keyword", kw, "score", score)
		for _, e := range m.entries {
			if e.Keyword == kw {
				return m.resolve(ctx, e.Specialty)
			}
		}
	}

	return nil, ErrNoConditionMatch
}

func (m *Matcher) resolve(ctx context.Context, specialty string) (*Suggestion, error) {
	d, err := m.doctors.FirstBySpecialty(ctx, specialty)
	if err != nil {
		return nil, &SpecialtyUnavailableError{Specialty: specialty}
	}
	return &Suggestion{Specialty: specialty, Doctor: *d}, nil
}
