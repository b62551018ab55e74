package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hemoboard/eligibility"
	"github.com/hemoboard/eligibility/dataset"
)

// trainingReport is the JSON document written after a training run, so a
// run's data-quality counters and evaluation numbers can be kept alongside
// the dashboard deployment.
type trainingReport struct {
	Source      string                          `json:"source"`
	TrainedAt   time.Time                       `json:"trained_at"`
	Trees       int                             `json:"trees"`
	Seed        int64                           `json:"seed"`
	Rows        *dataset.Report                 `json:"rows"`
	Evaluation  *eligibility.Evaluation         `json:"evaluation"`
	Importances []eligibility.FeatureImportance `json:"importances"`
}

// saveTrainingReport writes the report to a uniquely named file and returns
// its path.
func saveTrainingReport(source string, rep *dataset.Report, ev *eligibility.Evaluation, cfg eligibility.Config, importances []eligibility.FeatureImportance) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	random := uuid.New().String()[:8]
	filename := fmt.Sprintf("training_%s_%s.json", timestamp, random)

	doc := trainingReport{
		Source:      source,
		TrainedAt:   time.Now(),
		Trees:       cfg.Trees,
		Seed:        cfg.Seed,
		Rows:        rep,
		Evaluation:  ev,
		Importances: importances,
	}

	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return "", err
	}

	return filename, nil
}
