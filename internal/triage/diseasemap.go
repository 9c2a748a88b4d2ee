package triage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// MapEntry is one keyword → specialty pair from the disease map.
type MapEntry struct {
	Keyword   string
	Specialty string
}

// LoadDiseaseMap reads the disease map file, a single JSON object of keyword
// to specialty. Matching walks entries in definition order, which Go maps do
// not preserve, so the object is decoded through the token stream instead.
func LoadDiseaseMap(path string) ([]MapEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("triage: read disease map: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("triage: decode disease map: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("triage: disease map must be a JSON object")
	}

	var entries []MapEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("triage: decode disease map key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("triage: disease map key is not a string")
		}

		var specialty string
		if err := dec.Decode(&specialty); err != nil {
			return nil, fmt.Errorf("triage: decode specialty for %q: %w", key, err)
		}
		entries = append(entries, MapEntry{Keyword: key, Specialty: specialty})
	}
	return entries, nil
}
