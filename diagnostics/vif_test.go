package diagnostics

import (
	"math"
	"testing"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/formula"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

func TestVIFOrthogonalPredictors(t *testing.T) {
	table, err := dataset.NewTable(
		dataset.Column{Name: "Rate", Floats: []float64{1, 2, 3, 5}},
		dataset.Column{Name: "A", Floats: []float64{1, -1, 1, -1}},
		dataset.Column{Name: "B", Floats: []float64{1, 1, -1, -1}},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	m, err := regression.Fit(table, formula.New("Rate", formula.Num("A"), formula.Num("B")))
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	vifs, err := VIF(m)
	if err != nil {
		t.Fatalf("VIF failed: %v", err)
	}
	if len(vifs) != 2 {
		t.Fatalf("got %d VIF values, want 2", len(vifs))
	}
	for _, v := range vifs {
		if math.Abs(v.Value-1) > 1e-9 {
			t.Errorf("VIF(%s) = %v, want 1 for orthogonal predictors", v.Column, v.Value)
		}
	}
	if vifs[0].Column != "A" || vifs[1].Column != "B" {
		t.Errorf("columns = %v %v, want A B", vifs[0].Column, vifs[1].Column)
	}
}

func TestVIFCorrelatedPredictors(t *testing.T) {
	// Two predictors with sample correlation r² = 144/148 give
	// VIF = 1/(1 − r²) = 37 for both.
	table, err := dataset.NewTable(
		dataset.Column{Name: "Rate", Floats: []float64{2, 4, 5, 8, 12}},
		dataset.Column{Name: "A", Floats: []float64{1, 2, 3, 4, 5}},
		dataset.Column{Name: "B", Floats: []float64{1, 2, 3, 4, 6}},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	m, err := regression.Fit(table, formula.New("Rate", formula.Num("A"), formula.Num("B")))
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	vifs, err := VIF(m)
	if err != nil {
		t.Fatalf("VIF failed: %v", err)
	}
	for _, v := range vifs {
		if math.Abs(v.Value-37.0) > 1e-6 {
			t.Errorf("VIF(%s) = %v, want 37", v.Column, v.Value)
		}
	}
}

func TestVIFSinglePredictor(t *testing.T) {
	m := fitLine(t)
	vifs, err := VIF(m)
	if err != nil {
		t.Fatalf("VIF failed: %v", err)
	}
	if len(vifs) != 1 {
		t.Fatalf("got %d VIF values, want 1", len(vifs))
	}
	if math.Abs(vifs[0].Value-1) > 1e-9 {
		t.Errorf("VIF = %v, want 1 for a lone predictor", vifs[0].Value)
	}
}
