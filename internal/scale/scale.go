// Package scale implements the per-feature standardization transform applied
// before classification: center on the training mean, divide by the training
// standard deviation, and reapply those same statistics unchanged at
// prediction time.
package scale

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Standardizer holds per-feature centering and scaling statistics fitted on
// training data. Immutable after Fit.
type Standardizer struct {
	mean  []float64
	scale []float64
}

// Fit computes per-column mean and standard deviation of x. Columns with
// zero variance get scale 1 so they pass through centered but undivided.
func Fit(x *mat.Dense) *Standardizer {
	_, cols := x.Dims()
	s := &Standardizer{
		mean:  make([]float64, cols),
		scale: make([]float64, cols),
	}
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, x)
		s.mean[j] = stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)
		if sd == 0 {
			sd = 1
		}
		s.scale[j] = sd
	}
	return s
}

// Transform returns a new matrix with every column of x standardized.
// x is not modified.
func (s *Standardizer) Transform(x *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if cols != len(s.mean) {
		return nil, fmt.Errorf("standardize: got %d columns, fitted on %d", cols, len(s.mean))
	}
	out := mat.NewDense(rows, cols, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, x)
		out.SetRow(i, s.TransformRow(row))
	}
	return out, nil
}

// TransformRow standardizes a single feature vector. The input slice is not
// modified; a new slice is returned.
func (s *Standardizer) TransformRow(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.mean[j]) / s.scale[j]
	}
	return out
}

// NumFeatures returns the width the transform was fitted on.
func (s *Standardizer) NumFeatures() int {
	return len(s.mean)
}
