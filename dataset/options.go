package dataset

// Default vocabulary tables. The source CSV is French: sex arrives as
// one-letter or full-word labels, education as one of six fixed levels.
var (
	defaultSexAliases = map[string]string{
		"m":     "Homme",
		"homme": "Homme",
		"f":     "Femme",
		"femme": "Femme",
	}

	defaultSexCodes = map[string]float64{
		"Homme": 1,
		"Femme": 0,
	}

	defaultEducationCodes = map[string]float64{
		"Aucun":      0,
		"Primaire":   1,
		"Secondaire": 2,
		"Lycée":      3,
		"Université": 4,
		"Autre":      5,
	}

	defaultHemoglobinColumns  = []string{"taux_hb", "taux d'hemoglobine", "hemoglobine"}
	defaultEligibilityColumns = []string{"eligibilite au don", "eligibilite", "eligibility"}
)

// DefaultEligibleLabel is the folded eligibility text that maps to class 1.
// Any other label text maps to class 0.
const DefaultEligibleLabel = "eligible"

// Options holds the preparation configuration. The zero value is usable:
// every unset field falls back to the built-in French vocabularies, so
// callers override only the parts they need.
type Options struct {
	// Comma is the CSV field delimiter. Defaults to ';'.
	Comma rune

	// HemoglobinColumns and EligibilityColumns identify the hemoglobin-rate
	// and eligibility-label source columns by folded substring match; the
	// source spells them inconsistently ("Taux d'hémoglobine (g/dl)" etc.),
	// so they are renamed to the canonical names in FeatureNames.
	HemoglobinColumns  []string
	EligibilityColumns []string

	// SexAliases maps folded sex text to its canonical label, and SexCodes
	// maps canonical labels to numeric codes.
	SexAliases map[string]string
	SexCodes   map[string]float64

	// EducationCodes maps education levels to ordinal codes. Lookup folds
	// both sides, so "lycee" and "Lycée" resolve identically.
	EducationCodes map[string]float64

	// EligibleLabel is the folded label text that yields class 1.
	EligibleLabel string
}

func (o *Options) applyDefaults() {
	if o.Comma == 0 {
		o.Comma = ';'
	}
	if o.HemoglobinColumns == nil {
		o.HemoglobinColumns = defaultHemoglobinColumns
	}
	if o.EligibilityColumns == nil {
		o.EligibilityColumns = defaultEligibilityColumns
	}
	if o.SexAliases == nil {
		o.SexAliases = defaultSexAliases
	}
	if o.SexCodes == nil {
		o.SexCodes = defaultSexCodes
	}
	if o.EducationCodes == nil {
		o.EducationCodes = defaultEducationCodes
	}
	if o.EligibleLabel == "" {
		o.EligibleLabel = DefaultEligibleLabel
	}
}

// SexCode resolves raw sex text to its numeric code. The second return is
// false when the text is outside the vocabulary or empty.
func (o Options) SexCode(text string) (float64, bool) {
	canonical, ok := o.SexAliases[Fold(text)]
	if !ok {
		return 0, false
	}
	code, ok := o.SexCodes[canonical]
	return code, ok
}

// EducationCode resolves education text to its ordinal code. The second
// return is false for text outside the six-entry vocabulary.
func (o Options) EducationCode(text string) (float64, bool) {
	code, ok := foldKeys(o.EducationCodes)[Fold(text)]
	return code, ok
}

// Label derives the binary eligibility label from raw label text.
func (o Options) Label(text string) int {
	if Fold(text) == o.EligibleLabel {
		return 1
	}
	return 0
}
