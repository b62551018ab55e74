package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// sourceHeader spells the hemoglobin and eligibility columns the way the
// source CSV does, so column detection is exercised rather than bypassed.
const sourceHeader = "Age;Poids;Taille;Taux d’hémoglobine (g/dl);Genre;Niveau_d_etude;ÉLIGIBILITÉ AU DON\n"

func readCSV(t *testing.T, body string) (*Dataset, *Report, error) {
	t.Helper()
	return Read(strings.NewReader(sourceHeader+body), Options{})
}

// TestRead_PreparesRows walks one CSV through the whole pipeline: column
// detection, sex and education mapping, mean imputation, row dropping and
// label derivation.
func TestRead_PreparesRows(t *testing.T) {
	body := strings.Join([]string{
		"25;70;180;13,5;M;Secondaire;Eligible",
		"30;;165;12.1;f;Université;Non éligible",
		";60;170;14.0;Femme;Lycée;ELIGIBLE",
		"40;80;175;15.0;X;Primaire;Eligible",
		"35;75;172;13.0;Homme;Doctorat;Eligible",
		"28;62;168;;F;Aucun;Non éligible",
	}, "\n")

	ds, rep, err := readCSV(t, body)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if rep.RowsRead != 6 || rep.RowsKept != 3 || rep.RowsDropped != 3 {
		t.Errorf("report rows = %d read, %d kept, %d dropped; want 6, 3, 3",
			rep.RowsRead, rep.RowsKept, rep.RowsDropped)
	}
	if rep.ImputedAge != 1 || rep.ImputedWeight != 1 || rep.ImputedHeight != 0 {
		t.Errorf("imputed = %d age, %d weight, %d height; want 1, 1, 0",
			rep.ImputedAge, rep.ImputedWeight, rep.ImputedHeight)
	}
	if rep.UnrecognizedSex != 1 || rep.UnrecognizedEducation != 1 {
		t.Errorf("unrecognized = %d sex, %d education; want 1, 1",
			rep.UnrecognizedSex, rep.UnrecognizedEducation)
	}

	if got, want := ds.Y, []int{1, 0, 1}; len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("label[%d] = %d, want %d", i, got[i], want[i])
			}
		}
	}

	// First row survives untouched: comma decimal parsed, "M" mapped to
	// Homme (code 1), Secondaire mapped to 2.
	wantRow0 := []float64{25, 70, 180, 13.5, 1, 2}
	for j, want := range wantRow0 {
		if got := ds.X.At(0, j); got != want {
			t.Errorf("X[0][%d] = %v, want %v", j, got, want)
		}
	}

	// Means are computed over all loaded rows, dropped ones included:
	// weight mean (70+60+80+75+62)/5, age mean (25+30+40+35+28)/5.
	if got, want := ds.X.At(1, 1), 69.4; math.Abs(got-want) > 1e-9 {
		t.Errorf("imputed weight = %v, want %v", got, want)
	}
	if got, want := ds.X.At(2, 0), 31.6; math.Abs(got-want) > 1e-9 {
		t.Errorf("imputed age = %v, want %v", got, want)
	}

	// Hemoglobin is never imputed, so the row missing it was dropped.
	if rows, _ := ds.X.Dims(); rows != 3 {
		t.Errorf("kept %d rows, want 3", rows)
	}
}

// TestRead_Deterministic re-runs preparation on the same bytes and expects
// identical matrices and labels.
func TestRead_Deterministic(t *testing.T) {
	body := strings.Join([]string{
		"25;70;180;13.5;M;Secondaire;Eligible",
		"30;;165;12.1;F;Université;Non éligible",
		";60;170;14.0;Femme;Lycée;Eligible",
	}, "\n")

	first, _, err := readCSV(t, body)
	if err != nil {
		t.Fatalf("first Read failed: %v", err)
	}
	second, _, err := readCSV(t, body)
	if err != nil {
		t.Fatalf("second Read failed: %v", err)
	}

	if !mat.Equal(first.X, second.X) {
		t.Error("feature matrices differ between identical runs")
	}
	for i := range first.Y {
		if first.Y[i] != second.Y[i] {
			t.Errorf("label[%d] differs between identical runs", i)
		}
	}
}

// TestRead_EmptyAfterCleaning expects the data-cleaning error, never an
// empty but "usable" dataset.
func TestRead_EmptyAfterCleaning(t *testing.T) {
	body := strings.Join([]string{
		"25;70;180;13.5;X;Secondaire;Eligible",
		"30;65;165;12.1;Y;Université;Non éligible",
	}, "\n")

	_, rep, err := readCSV(t, body)
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("err = %v, want ErrEmptyDataset", err)
	}
	if rep == nil || rep.RowsKept != 0 || rep.UnrecognizedSex != 2 {
		t.Errorf("report = %+v, want 0 kept and 2 unrecognized sex", rep)
	}
}

// TestPrepare_NoRows covers the degenerate empty input.
func TestPrepare_NoRows(t *testing.T) {
	_, _, err := Prepare(nil, Options{})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("err = %v, want ErrEmptyDataset", err)
	}
}

// TestRead_MissingColumns reports every absent required column by name.
func TestRead_MissingColumns(t *testing.T) {
	header := "Age;Poids;Taille;Taux_Hb;Niveau_d_etude\n"
	_, _, err := Read(strings.NewReader(header+"25;70;180;13.5;Secondaire\n"), Options{})
	if err == nil {
		t.Fatal("expected an error for a header without Genre and the eligibility label")
	}
	for _, want := range []string{"Genre", "eligibility label"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name missing column %s", err, want)
		}
	}
}

// TestRead_CanonicalHeaderNames accepts the internal canonical spellings
// directly, the form produced when the CSV has been pre-cleaned.
func TestRead_CanonicalHeaderNames(t *testing.T) {
	header := "Age;Poids;Taille;Taux_Hb;Genre;Niveau_d_etude;Eligibilite\n"
	ds, _, err := Read(strings.NewReader(header+"25;70;180;13.5;M;Secondaire;Eligible\n"), Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ds.Len() != 1 || ds.Y[0] != 1 {
		t.Errorf("got %d rows, labels %v; want 1 row labeled 1", ds.Len(), ds.Y)
	}
}
