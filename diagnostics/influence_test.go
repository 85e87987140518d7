package diagnostics

import (
	"math"
	"reflect"
	"testing"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/formula"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

func TestComputeInfluence(t *testing.T) {
	m := fitLine(t)
	inf := ComputeInfluence(m)

	// D_i = e_i²/(p·s²) · h_i/(1−h_i)² with e = {0.2,−0.1,−0.4,0.3},
	// h = {0.7,0.3,0.3,0.7}, p = 2, s² = 0.15.
	wantD := []float64{28.0 / 27.0, 1.0 / 49.0, 16.0 / 49.0, 7.0 / 3.0}
	for i, want := range wantD {
		if math.Abs(inf.CooksDistance[i]-want) > 1e-9 {
			t.Errorf("D[%d] = %v, want %v", i, inf.CooksDistance[i], want)
		}
		if inf.CooksDistance[i] < 0 {
			t.Errorf("D[%d] negative", i)
		}
	}

	if inf.Threshold != 1.0 {
		t.Errorf("threshold = %v, want 4/n = 1", inf.Threshold)
	}
	if !reflect.DeepEqual(inf.Flagged, []int{0, 3}) {
		t.Errorf("flagged = %v, want [0 3]", inf.Flagged)
	}

	for i, h := range inf.Leverage {
		if h < 0 || h > 1 {
			t.Errorf("leverage[%d] = %v outside [0,1]", i, h)
		}
	}
}

func TestComputeInfluenceCustomMultiplier(t *testing.T) {
	m := fitLine(t)

	// Threshold 10/4 = 2.5 sits above the largest distance 7/3.
	relaxed := ComputeInfluence(m, WithCookMultiplier(10))
	if relaxed.Threshold != 2.5 {
		t.Errorf("threshold = %v, want 2.5", relaxed.Threshold)
	}
	if len(relaxed.Flagged) != 0 {
		t.Errorf("flagged = %v, want none", relaxed.Flagged)
	}

	// Threshold 1/4 also catches 16/49.
	strict := ComputeInfluence(m, WithCookMultiplier(1))
	if !reflect.DeepEqual(strict.Flagged, []int{0, 2, 3}) {
		t.Errorf("flagged = %v, want [0 2 3]", strict.Flagged)
	}

	// Non-positive values keep the default.
	if got := ComputeInfluence(m, WithCookMultiplier(0)).Threshold; got != 1.0 {
		t.Errorf("threshold = %v, want default 4/n = 1", got)
	}
}

func TestRemoveInfluential(t *testing.T) {
	table, err := dataset.NewTable(
		dataset.Column{Name: "Rate", Floats: []float64{3, 5, 7, 10}},
		dataset.Column{Name: "Votes", Floats: []float64{1, 2, 3, 4}},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	m := fitLine(t)

	trimmed, flagged, err := RemoveInfluential(table, m)
	if err != nil {
		t.Fatalf("RemoveInfluential failed: %v", err)
	}
	if !reflect.DeepEqual(flagged, []int{0, 3}) {
		t.Errorf("flagged = %v, want [0 3]", flagged)
	}
	if trimmed.NumRows() != 2 {
		t.Fatalf("trimmed rows = %d, want 2", trimmed.NumRows())
	}
	votes, err := trimmed.Floats("Votes")
	if err != nil {
		t.Fatalf("Floats failed: %v", err)
	}
	if votes[0] != 2 || votes[1] != 3 {
		t.Errorf("kept Votes = %v, want [2 3]", votes)
	}

	// Original table keeps all rows.
	if table.NumRows() != 4 {
		t.Error("input table was modified")
	}
}

func TestRemoveInfluentialNoFlags(t *testing.T) {
	// A balanced sample influences nothing past 4/n.
	table, err := dataset.NewTable(
		dataset.Column{Name: "Rate", Floats: []float64{1, 2, 3, 6}},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	m, err := regression.Fit(table, formula.New("Rate"))
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	trimmed, flagged, err := RemoveInfluential(table, m)
	if err != nil {
		t.Fatalf("RemoveInfluential failed: %v", err)
	}
	if flagged != nil {
		t.Errorf("flagged = %v, want none", flagged)
	}
	if trimmed != table {
		t.Error("with no flags the input table should come back unchanged")
	}
}

func TestRemoveInfluentialRowMismatch(t *testing.T) {
	m := fitLine(t)
	small, err := dataset.NewTable(
		dataset.Column{Name: "Rate", Floats: []float64{1, 2}},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if _, _, err := RemoveInfluential(small, m); err == nil {
		t.Error("row-count mismatch should fail")
	}
}
