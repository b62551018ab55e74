package dataset

import "testing"

func defaultOptions() Options {
	opts := Options{}
	opts.applyDefaults()
	return opts
}

// TestEducationCode checks the fixed six-entry mapping exactly, and that
// anything outside it is reported unknown rather than guessed.
func TestEducationCode(t *testing.T) {
	opts := defaultOptions()

	known := map[string]float64{
		"Aucun":      0,
		"Primaire":   1,
		"Secondaire": 2,
		"Lycée":      3,
		"Université": 4,
		"Autre":      5,
	}
	for text, want := range known {
		got, ok := opts.EducationCode(text)
		if !ok {
			t.Errorf("EducationCode(%q) not recognized", text)
			continue
		}
		if got != want {
			t.Errorf("EducationCode(%q) = %v, want %v", text, got, want)
		}
	}

	// Case and accent variants resolve to the same codes.
	variants := map[string]float64{
		"lycee":       3,
		"UNIVERSITE":  4,
		" secondaire": 2,
	}
	for text, want := range variants {
		got, ok := opts.EducationCode(text)
		if !ok || got != want {
			t.Errorf("EducationCode(%q) = %v, %v, want %v, true", text, got, ok, want)
		}
	}

	for _, text := range []string{"Doctorat", "Maternelle", "", "  "} {
		if _, ok := opts.EducationCode(text); ok {
			t.Errorf("EducationCode(%q) unexpectedly recognized", text)
		}
	}
}

// TestSexCode checks the two-value sex vocabulary and its aliases.
func TestSexCode(t *testing.T) {
	opts := defaultOptions()

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"M", 1, true},
		{"m", 1, true},
		{"Homme", 1, true},
		{" HOMME ", 1, true},
		{"F", 0, true},
		{"femme", 0, true},
		{"X", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := opts.SexCode(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("SexCode(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// TestLabel checks binary label derivation: folded equality against
// "eligible", anything else is class 0.
func TestLabel(t *testing.T) {
	opts := defaultOptions()

	tests := []struct {
		in   string
		want int
	}{
		{"Eligible", 1},
		{"ELIGIBLE", 1},
		{"Éligible", 1},
		{" eligible ", 1},
		{"Non éligible", 0},
		{"Temporairement Non-eligible", 0},
		{"Définitivement non-eligible", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := opts.Label(tt.in); got != tt.want {
			t.Errorf("Label(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestOptions_AlternateVocabulary checks the mapping tables are real
// configuration, not baked-in globals.
func TestOptions_AlternateVocabulary(t *testing.T) {
	opts := Options{
		EducationCodes: map[string]float64{"None": 0, "Degree": 1},
		SexAliases:     map[string]string{"male": "Male", "female": "Female"},
		SexCodes:       map[string]float64{"Male": 0, "Female": 1},
		EligibleLabel:  "yes",
	}
	opts.applyDefaults()

	if code, ok := opts.EducationCode("degree"); !ok || code != 1 {
		t.Errorf("EducationCode(degree) = %v, %v, want 1, true", code, ok)
	}
	if _, ok := opts.EducationCode("Lycée"); ok {
		t.Error("default vocabulary leaked into overridden table")
	}
	if code, ok := opts.SexCode("FEMALE"); !ok || code != 1 {
		t.Errorf("SexCode(FEMALE) = %v, %v, want 1, true", code, ok)
	}
	if got := opts.Label("Yes"); got != 1 {
		t.Errorf("Label(Yes) = %d, want 1", got)
	}
}
