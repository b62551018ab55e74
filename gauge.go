package eligibility

// Band buckets a gauge value for display coloring.
type Band int

const (
	// BandLow is a gauge value below 50.
	BandLow Band = iota

	// BandMedium is a gauge value from 50 to 75.
	BandMedium

	// BandHigh is a gauge value above 75.
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMedium:
		return "medium"
	case BandHigh:
		return "high"
	}
	return "unknown"
}

// Gauge is the confidence of a prediction rendered for the dashboard's
// gauge visualization: a value in [0, 100] plus its threshold band.
type Gauge struct {
	Value float64
	Band  Band
}

func newGauge(confidence float64) Gauge {
	value := confidence * 100
	band := BandHigh
	switch {
	case value < 50:
		band = BandLow
	case value <= 75:
		band = BandMedium
	}
	return Gauge{Value: value, Band: band}
}
