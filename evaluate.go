package eligibility

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/hemoboard/eligibility/dataset"
)

// Evaluate measures classifier quality on a deterministic held-out split:
// rows are shuffled with cfg.Seed, the holdout fraction is set aside, a
// model is fitted on the rest and scored on the holdout. The served model
// is unaffected; this exists for the training summary shown by the CLI.
func Evaluate(ds *dataset.Dataset, cfg Config, holdout float64) (*Evaluation, error) {
	cfg.applyDefaults()

	if holdout <= 0 || holdout >= 1 {
		return nil, fmt.Errorf("holdout fraction %v outside (0, 1)", holdout)
	}
	n := ds.Len()
	testN := int(float64(n) * holdout)
	if testN < 1 {
		testN = 1
	}
	trainN := n - testN
	if trainN < 2 {
		return nil, fmt.Errorf("%d rows is too few to split with holdout %v", n, holdout)
	}

	perm := rand.New(rand.NewSource(cfg.Seed)).Perm(n)
	rows := matRows(ds.X)

	trainFlat := make([]float64, 0, trainN*dataset.NumFeatures)
	trainY := make([]int, 0, trainN)
	for _, i := range perm[:trainN] {
		trainFlat = append(trainFlat, rows[i]...)
		trainY = append(trainY, ds.Y[i])
	}

	model, err := Train(&dataset.Dataset{
		X:    mat.NewDense(trainN, dataset.NumFeatures, trainFlat),
		Y:    trainY,
		Opts: ds.Opts,
	}, cfg)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	ev := &Evaluation{TrainRows: trainN, TestRows: testN}
	correct := 0
	for _, i := range perm[trainN:] {
		p, err := model.predictRow(rows[i])
		if err != nil {
			return nil, fmt.Errorf("evaluate row %d: %w", i, err)
		}
		switch {
		case p.Class == 1 && ds.Y[i] == 1:
			ev.TruePositives++
		case p.Class == 0 && ds.Y[i] == 0:
			ev.TrueNegatives++
		case p.Class == 1 && ds.Y[i] == 0:
			ev.FalsePositives++
		default:
			ev.FalseNegatives++
		}
		if p.Class == ds.Y[i] {
			correct++
		}
	}
	ev.Accuracy = float64(correct) / float64(testN)
	return ev, nil
}
