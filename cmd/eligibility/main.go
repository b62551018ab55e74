// Command eligibility trains the donor eligibility model from the candidate
// CSV and either prints a training summary or answers a one-off prediction.
// It stands in for the dashboard: the same load-train-predict sequence the
// prediction tab performs at startup and on each form submission.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/hemoboard/eligibility"
	"github.com/hemoboard/eligibility/dataset"
)

func main() {
	// .env is optional; flags and defaults cover everything it can set.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	var (
		csvPath = flag.String("csv", envOr("CANDIDATES_CSV", "data/candidates.csv"), "path to the semicolon-delimited candidate CSV")
		trees   = flag.Int("trees", eligibility.DefaultTrees, "number of trees in the ensemble")
		seed    = flag.Int64("seed", eligibility.DefaultSeed, "random seed for reproducible training")
		holdout = flag.Float64("holdout", 0.2, "held-out fraction for the evaluation summary")
		report  = flag.Bool("report", false, "write a JSON training report next to the binary")

		age    = flag.Float64("age", math.NaN(), "candidate age in years")
		weight = flag.Float64("poids", math.NaN(), "candidate weight in kg")
		height = flag.Float64("taille", math.NaN(), "candidate height in cm")
		hb     = flag.Float64("hb", math.NaN(), "candidate hemoglobin level in g/dl")
		sex    = flag.String("genre", "", "candidate sex (Homme or Femme)")
		edu    = flag.String("niveau", "", "candidate education level")
	)
	flag.Parse()

	cfg := eligibility.Config{Trees: *trees, Seed: *seed}

	ds, rep, err := dataset.Load(*csvPath, dataset.Options{})
	if err != nil {
		if errors.Is(err, dataset.ErrEmptyDataset) {
			log.Fatalf("unusable dataset, aborting: %v", err)
		}
		log.Fatalf("load %s: %v", *csvPath, err)
	}
	logReport(*csvPath, rep)

	model, err := eligibility.Train(ds, cfg)
	if err != nil {
		log.Fatalf("train: %v", err)
	}

	if isPredictionRun() {
		predict(model, *age, *weight, *height, *hb, *sex, *edu)
		return
	}

	ev, err := eligibility.Evaluate(ds, cfg, *holdout)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}

	importances := model.FeatureImportances()
	printSummary(ev, importances)

	if *report {
		path, err := saveTrainingReport(*csvPath, rep, ev, cfg, importances)
		if err != nil {
			log.Fatalf("write training report: %v", err)
		}
		log.Printf("training report written to %s", path)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// isPredictionRun reports whether any of the six candidate flags was given.
func isPredictionRun() bool {
	given := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "age", "poids", "taille", "hb", "genre", "niveau":
			given = true
		}
	})
	return given
}

func logReport(path string, rep *dataset.Report) {
	log.Printf("prepared %s: %d rows read, %d kept, %d dropped", path, rep.RowsRead, rep.RowsKept, rep.RowsDropped)
	if n := rep.ImputedAge + rep.ImputedWeight + rep.ImputedHeight; n > 0 {
		log.Printf("imputed %d missing numeric values (age %d, poids %d, taille %d)",
			n, rep.ImputedAge, rep.ImputedWeight, rep.ImputedHeight)
	}
	if rep.UnrecognizedSex > 0 || rep.UnrecognizedEducation > 0 {
		log.Printf("warning: %d unrecognized sex and %d unrecognized education values were treated as missing",
			rep.UnrecognizedSex, rep.UnrecognizedEducation)
	}
}

func printSummary(ev *eligibility.Evaluation, importances []eligibility.FeatureImportance) {
	color.Yellow("\nEvaluation (train %d / test %d)", ev.TrainRows, ev.TestRows)
	fmt.Printf("accuracy: %.1f%%\n\n", ev.Accuracy*100)

	confusion := tablewriter.NewWriter(os.Stdout)
	confusion.SetHeader([]string{"", "Predicted Éligible", "Predicted Non éligible"})
	confusion.Append([]string{"Éligible", fmt.Sprint(ev.TruePositives), fmt.Sprint(ev.FalseNegatives)})
	confusion.Append([]string{"Non éligible", fmt.Sprint(ev.FalsePositives), fmt.Sprint(ev.TrueNegatives)})
	confusion.Render()

	color.Yellow("\nFeature importances")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Feature", "Weight"})
	for _, fi := range importances {
		table.Append([]string{fi.Feature, fmt.Sprintf("%.4f", fi.Weight)})
	}
	table.Render()
}

func predict(model *eligibility.Model, age, weight, height, hb float64, sex, edu string) {
	req := eligibility.Request{}
	if !math.IsNaN(age) {
		req.Age = &age
	}
	if !math.IsNaN(weight) {
		req.Weight = &weight
	}
	if !math.IsNaN(height) {
		req.Height = &height
	}
	if !math.IsNaN(hb) {
		req.Hemoglobin = &hb
	}
	if sex != "" {
		req.Sex = &sex
	}
	if edu != "" {
		req.Education = &edu
	}

	p, err := model.Predict(req)
	if err != nil {
		if errors.Is(err, eligibility.ErrMissingFields) {
			log.Fatalf("veuillez remplir tous les champs: %v", err)
		}
		log.Fatalf("predict: %v", err)
	}

	bandColor(p.Gauge.Band).Printf("%s\n", p.Message)
	fmt.Printf("gauge: %.1f/100 (%s)\n", p.Gauge.Value, p.Gauge.Band)
}

func bandColor(b eligibility.Band) *color.Color {
	switch b {
	case eligibility.BandHigh:
		return color.New(color.FgGreen, color.Bold)
	case eligibility.BandMedium:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgRed)
}
