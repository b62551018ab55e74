package dataset

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// FeatureNames is the fixed column order consumed by the classifier.
// Position is significant: a feature vector is always encoded in this order.
var FeatureNames = []string{"Age", "Poids", "Taille", "Taux_Hb", "Genre", "Niveau_d_etude"}

// NumFeatures is the width of every feature vector.
const NumFeatures = 6

// ErrEmptyDataset is returned when no rows survive cleaning. It signals a
// schema or vocabulary mismatch between the CSV and the mapping tables, and
// callers must treat it as a fatal startup condition.
var ErrEmptyDataset = errors.New("no rows remain after cleaning")

// Candidate is one source row as parsed, before imputation and mapping.
// Numeric fields use NaN for missing or unparsable values; categorical
// fields keep their raw text.
type Candidate struct {
	Age         float64
	Weight      float64
	Height      float64
	Hemoglobin  float64
	Sex         string
	Education   string
	Eligibility string
}

// Dataset is the prepared training input: a dense feature matrix with no
// missing values and a binary label per row.
type Dataset struct {
	// X has one row per kept candidate, columns in FeatureNames order.
	X *mat.Dense

	// Y holds the binary eligibility label for each row of X.
	Y []int

	// Opts are the resolved preparation options, retained so that request
	// encoding at prediction time uses the same vocabularies as training.
	Opts Options
}

// Len returns the number of prepared rows.
func (d *Dataset) Len() int {
	if d.X == nil {
		return 0
	}
	r, _ := d.X.Dims()
	return r
}

// Report describes what preparation did to the source rows. Unrecognized
// vocabulary values are counted separately from genuinely missing ones so
// data-quality problems stay visible even though both end up dropped.
type Report struct {
	RowsRead    int
	RowsKept    int
	RowsDropped int

	ImputedAge    int
	ImputedWeight int
	ImputedHeight int

	UnrecognizedSex       int
	UnrecognizedEducation int
}
