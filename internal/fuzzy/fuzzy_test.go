package fuzzy

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"", "", 1, 1},
		{"abc", "abc", 1, 1},
		{"ABC", "abc", 1, 1},
		{"  abc  ", "abc", 1, 1},
		{"abc", "", 0, 0},
		{"abc", "xyz", 0, 0},
		{"Dr Smth", "Dr. Smith", 0.6, 1},
		{"toothache", "tooth", 0.6, 1},
	}

	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if got < tt.min || got > tt.max {
			t.Errorf("Similarity(%q, %q) = %v, want within [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a, b := "cardiology", "cardiac"
	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("similarity is not symmetric for %q/%q", a, b)
	}
}

func TestRatio_DoctorNameTypo(t *testing.T) {
	// The booking flow requires typo'd doctor names to clear 60.
	if got := Ratio("Dr Smth", "Dr. Smith"); got < 60 {
		t.Errorf("Ratio(Dr Smth, Dr. Smith) = %d, want >= 60", got)
	}
	if got := Ratio("Dr Smth", "Dr. Patel"); got >= 60 {
		t.Errorf("Ratio(Dr Smth, Dr. Patel) = %d, want < 60", got)
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"Dr. Sarah Smith", "Dr. Imran Patel", "Dr. Ayesha Khan"}

	name, score, ok := BestMatch("Dr Sarah Smth", candidates, 60)
	if !ok {
		t.Fatal("expected a match above cutoff")
	}
	if name != "Dr. Sarah Smith" {
		t.Errorf("matched %q, want Dr. Sarah Smith", name)
	}
	if score < 60 {
		t.Errorf("score %d below cutoff", score)
	}

	if _, _, ok := BestMatch("zzzzzz", candidates, 60); ok {
		t.Error("expected no match for gibberish")
	}
}

func TestClosestMatch(t *testing.T) {
	keywords := []string{"tooth", "fever", "rash", "chest pain"}

	kw, _, ok := ClosestMatch("toothake", keywords, 0.4)
	if !ok || kw != "tooth" {
		t.Errorf("ClosestMatch = %q, ok=%v; want tooth", kw, ok)
	}

	if _, _, ok := ClosestMatch("qqqqqq", keywords, 0.4); ok {
		t.Error("expected no keyword above cutoff")
	}
}
