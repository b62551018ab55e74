package eligibility

// Request is one prediction submission from the form collaborator. Fields
// are pointers so an absent field is distinguishable from a zero value; any
// nil field makes Predict fail with ErrMissingFields before the model is
// consulted.
type Request struct {
	// Age in years.
	Age *float64

	// Weight in kilograms.
	Weight *float64

	// Height in centimeters.
	Height *float64

	// Hemoglobin level in g/dl.
	Hemoglobin *float64

	// Sex is one of the two enumerated labels ("Homme"/"Femme" or the
	// single-letter aliases).
	Sex *string

	// Education is one of the six enumerated levels.
	Education *string
}

// Prediction is the result of one Predict call. Ephemeral: created per
// request, never stored.
type Prediction struct {
	// Class is the predicted eligibility: 1 eligible, 0 not eligible.
	Class int

	// Label is the human-readable class label.
	Label string

	// Confidence is the probability of the predicted class, in [0, 1].
	// For a binary classifier it is always at least 0.5.
	Confidence float64

	// Message is the interpretation sentence shown to the donor candidate,
	// with the confidence percentage folded in.
	Message string

	// Gauge is the confidence rendered for the gauge visualization.
	Gauge Gauge
}

// FeatureImportance pairs one feature name with its learned importance
// score. Scores across all six features sum to 1.
type FeatureImportance struct {
	Feature string
	Weight  float64
}

// Evaluation summarises model quality on a held-out split.
type Evaluation struct {
	// Accuracy is the share of held-out rows classified correctly.
	Accuracy float64

	// Confusion counts, with "positive" meaning class 1 (eligible).
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int

	// TrainRows and TestRows are the split sizes.
	TrainRows int
	TestRows  int
}
