package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Load reads and prepares the candidate CSV at path. The source file is
// never modified.
func Load(path string, opts Options) (*Dataset, *Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read parses candidate rows from r and prepares them into a Dataset.
func Read(r io.Reader, opts Options) (*Dataset, *Report, error) {
	opts.applyDefaults()

	cands, err := parse(r, opts)
	if err != nil {
		return nil, nil, err
	}
	return Prepare(cands, opts)
}

// columnIndex locates each required column in the header row. The five
// plainly-named columns match by folded equality; the hemoglobin-rate and
// eligibility-label columns match by folded substring candidates, since the
// source spells them freely.
type columnIndex struct {
	age, weight, height, hb, sex, edu, label int
}

func findColumns(header []string, opts Options) (columnIndex, error) {
	idx := columnIndex{age: -1, weight: -1, height: -1, hb: -1, sex: -1, edu: -1, label: -1}

	for i, name := range header {
		folded := Fold(name)
		switch folded {
		case "age":
			idx.age = i
			continue
		case "poids":
			idx.weight = i
			continue
		case "taille":
			idx.height = i
			continue
		case "genre":
			idx.sex = i
			continue
		case "niveau_d_etude":
			idx.edu = i
			continue
		}
		if idx.hb < 0 && matchesAny(folded, opts.HemoglobinColumns) {
			idx.hb = i
			continue
		}
		if idx.label < 0 && matchesAny(folded, opts.EligibilityColumns) {
			idx.label = i
		}
	}

	var missing []string
	for _, c := range []struct {
		name string
		pos  int
	}{
		{"Age", idx.age}, {"Poids", idx.weight}, {"Taille", idx.height},
		{"Taux_Hb", idx.hb}, {"Genre", idx.sex}, {"Niveau_d_etude", idx.edu},
		{"eligibility label", idx.label},
	} {
		if c.pos < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("csv header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func matchesAny(folded string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(folded, c) {
			return true
		}
	}
	return false
}

// parse reads the CSV into Candidate records. Unparsable numeric cells
// become NaN; categorical cells keep their raw text for Prepare to map.
func parse(r io.Reader, opts Options) ([]Candidate, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx, err := findColumns(header, opts)
	if err != nil {
		return nil, err
	}

	var cands []Candidate
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}

		cands = append(cands, Candidate{
			Age:         numberAt(record, idx.age),
			Weight:      numberAt(record, idx.weight),
			Height:      numberAt(record, idx.height),
			Hemoglobin:  numberAt(record, idx.hb),
			Sex:         textAt(record, idx.sex),
			Education:   textAt(record, idx.edu),
			Eligibility: textAt(record, idx.label),
		})
	}
	return cands, nil
}

func numberAt(record []string, pos int) float64 {
	if pos >= len(record) {
		return math.NaN()
	}
	return parseNumber(record[pos])
}

func textAt(record []string, pos int) string {
	if pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// parseNumber accepts both "12.5" and the French "12,5".
func parseNumber(cell string) float64 {
	cell = strings.TrimSpace(strings.ReplaceAll(cell, ",", "."))
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Prepare cleans the parsed candidates into a Dataset: sex and education
// text are mapped through the vocabularies, missing age, weight and height
// are imputed with the column mean over the loaded data, and any row that
// still has a missing value is dropped. An empty result is a fatal
// ErrEmptyDataset, never a usable model.
func Prepare(cands []Candidate, opts Options) (*Dataset, *Report, error) {
	opts.applyDefaults()

	report := &Report{RowsRead: len(cands)}
	eduCodes := foldKeys(opts.EducationCodes)

	ageMean := columnMean(cands, func(c Candidate) float64 { return c.Age })
	weightMean := columnMean(cands, func(c Candidate) float64 { return c.Weight })
	heightMean := columnMean(cands, func(c Candidate) float64 { return c.Height })

	var rows []float64
	var labels []int
	for _, c := range cands {
		age := impute(c.Age, ageMean, &report.ImputedAge)
		weight := impute(c.Weight, weightMean, &report.ImputedWeight)
		height := impute(c.Height, heightMean, &report.ImputedHeight)

		sexCode := math.NaN()
		if code, ok := opts.SexCode(c.Sex); ok {
			sexCode = code
		} else if Fold(c.Sex) != "" {
			report.UnrecognizedSex++
		}

		eduCode := math.NaN()
		if code, ok := eduCodes[Fold(c.Education)]; ok {
			eduCode = code
		} else if Fold(c.Education) != "" {
			report.UnrecognizedEducation++
		}

		vec := []float64{age, weight, height, c.Hemoglobin, sexCode, eduCode}
		if hasNaN(vec) {
			report.RowsDropped++
			continue
		}
		rows = append(rows, vec...)
		labels = append(labels, opts.Label(c.Eligibility))
	}

	report.RowsKept = len(labels)
	if report.RowsKept == 0 {
		return nil, report, fmt.Errorf("prepare %d rows: %w", report.RowsRead, ErrEmptyDataset)
	}

	return &Dataset{
		X:    mat.NewDense(report.RowsKept, NumFeatures, rows),
		Y:    labels,
		Opts: opts,
	}, report, nil
}

// columnMean is the mean over the non-missing values of one numeric column,
// recomputed from the currently-loaded data on every call.
func columnMean(cands []Candidate, get func(Candidate) float64) float64 {
	var vals []float64
	for _, c := range cands {
		if v := get(c); !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

func impute(v, mean float64, counter *int) float64 {
	if math.IsNaN(v) && !math.IsNaN(mean) {
		*counter++
		return mean
	}
	return v
}

func hasNaN(vec []float64) bool {
	for _, v := range vec {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
