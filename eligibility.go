// Package eligibility implements the donor eligibility predictor behind the
// dashboard's prediction tab: preparation of the candidate CSV feeds a
// standardize-then-random-forest model that maps a six-field form submission
// to an eligibility class, a confidence score and a gauge value.
package eligibility

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/hemoboard/eligibility/dataset"
	"github.com/hemoboard/eligibility/internal/forest"
	"github.com/hemoboard/eligibility/internal/scale"
)

// Human-readable class labels.
const (
	LabelEligible    = "Éligible"
	LabelNotEligible = "Non éligible"
)

// Model is a fitted eligibility classifier: a standardization transform and
// a forest, both fitted once by Train. Immutable afterwards, so concurrent
// Predict calls need no locking. A Model is always obtained from Train;
// there is no usable zero value.
type Model struct {
	scaler *scale.Standardizer
	forest *forest.Forest
	opts   dataset.Options
}

// Train fits the standardization transform and the tree ensemble on a
// prepared dataset. Called once at startup; the returned Model is the
// process-wide read-only state every prediction uses. Degenerate training
// data (a single label class) fails here, not at predict time.
func Train(ds *dataset.Dataset, cfg Config) (*Model, error) {
	cfg.applyDefaults()

	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("train: %w", dataset.ErrEmptyDataset)
	}

	scaler := scale.Fit(ds.X)
	scaled, err := scaler.Transform(ds.X)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	f, err := forest.Grow(matRows(scaled), ds.Y, forest.Config{
		Trees:    cfg.Trees,
		MaxDepth: cfg.MaxDepth,
		MinLeaf:  cfg.MinLeaf,
		Seed:     cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}

	return &Model{scaler: scaler, forest: f, opts: ds.Opts}, nil
}

// Predict maps one form submission to an eligibility prediction. Every
// field must be present: a nil field returns ErrMissingFields naming the
// gaps, and the model is never consulted. Sex and education text outside
// the training vocabulary returns ErrUnknownCategory. No retraining happens
// on this path.
func (m *Model) Predict(req Request) (*Prediction, error) {
	var missing []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"Age", req.Age != nil},
		{"Poids", req.Weight != nil},
		{"Taille", req.Height != nil},
		{"Taux_Hb", req.Hemoglobin != nil},
		{"Genre", req.Sex != nil},
		{"Niveau_d_etude", req.Education != nil},
	} {
		if !f.set {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	sexCode, ok := m.opts.SexCode(*req.Sex)
	if !ok {
		return nil, fmt.Errorf("%w: sex %q", ErrUnknownCategory, *req.Sex)
	}
	eduCode, ok := m.opts.EducationCode(*req.Education)
	if !ok {
		return nil, fmt.Errorf("%w: education %q", ErrUnknownCategory, *req.Education)
	}

	return m.predictRow([]float64{
		*req.Age, *req.Weight, *req.Height, *req.Hemoglobin, sexCode, eduCode,
	})
}

// predictRow runs one already-encoded feature vector through the fitted
// scaler and forest.
func (m *Model) predictRow(row []float64) (*Prediction, error) {
	dist, err := m.forest.Vote(m.scaler.TransformRow(row))
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	class := 0
	confidence := dist[0]
	for c, p := range dist {
		if p > confidence {
			class, confidence = c, p
		}
	}

	label := LabelNotEligible
	sentence := "Le candidat n'est pas éligible au don de sang"
	if class == 1 {
		label = LabelEligible
		sentence = "Le candidat est éligible au don de sang"
	}

	return &Prediction{
		Class:      class,
		Label:      label,
		Confidence: confidence,
		Message:    fmt.Sprintf("%s (confiance : %.1f%%).", sentence, confidence*100),
		Gauge:      newGauge(confidence),
	}, nil
}

// FeatureImportances returns the forest's learned per-feature importance
// scores paired with feature names, sorted by decreasing weight. Read-only
// and side-effect free.
func (m *Model) FeatureImportances() []FeatureImportance {
	weights := m.forest.Importances()
	out := make([]FeatureImportance, len(weights))
	for i, w := range weights {
		out[i] = FeatureImportance{Feature: dataset.FeatureNames[i], Weight: w}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Weight > out[b].Weight })
	return out
}

// matRows copies a dense matrix into per-row slices.
func matRows(x *mat.Dense) [][]float64 {
	rows, cols := x.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		mat.Row(out[i], i, x)
	}
	return out
}
