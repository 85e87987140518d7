package diagnostics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

// normalScores returns n ideal Gaussian order statistics.
func normalScores(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
	}
	return out
}

func TestShapiroWilkGaussianSample(t *testing.T) {
	w, p, err := ShapiroWilk(normalScores(50))
	if err != nil {
		t.Fatalf("ShapiroWilk failed: %v", err)
	}
	if w <= 0.99 || w > 1 {
		t.Errorf("W = %v, want near 1 for ideal Gaussian scores", w)
	}
	if p < 0.9 {
		t.Errorf("p = %v, want large for ideal Gaussian scores", p)
	}
}

func TestShapiroWilkSkewedSample(t *testing.T) {
	scores := normalScores(50)
	skewed := make([]float64, len(scores))
	for i, z := range scores {
		skewed[i] = math.Exp(z)
	}

	w, p, err := ShapiroWilk(skewed)
	if err != nil {
		t.Fatalf("ShapiroWilk failed: %v", err)
	}
	if w <= 0 || w >= 0.95 {
		t.Errorf("W = %v, want well below 1 for a lognormal sample", w)
	}
	if p >= 0.01 {
		t.Errorf("p = %v, want < 0.01 for a lognormal sample", p)
	}
}

func TestShapiroWilkSmallBranch(t *testing.T) {
	// n = 10 exercises the 4..11 p-value branch. Equally spaced values
	// are close enough to Gaussian order statistics not to reject.
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	w, p, err := ShapiroWilk(x)
	if err != nil {
		t.Fatalf("ShapiroWilk failed: %v", err)
	}
	if w <= 0.9 || w > 1 {
		t.Errorf("W = %v, want high for equally spaced values", w)
	}
	if p < 0.5 {
		t.Errorf("p = %v, want no rejection for 10 equally spaced values", p)
	}
}

func TestShapiroWilkThreePoints(t *testing.T) {
	// Three equally spaced points correlate perfectly with the exact
	// n=3 weights, so W = 1 and the closed-form p-value is 1.
	w, p, err := ShapiroWilk([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("ShapiroWilk failed: %v", err)
	}
	if math.Abs(w-1) > 1e-12 {
		t.Errorf("W = %v, want 1", w)
	}
	if math.Abs(p-1) > 1e-9 {
		t.Errorf("p = %v, want 1", p)
	}

	_, p, err = ShapiroWilk([]float64{1, 1.05, 3})
	if err != nil {
		t.Fatalf("ShapiroWilk failed: %v", err)
	}
	if p < 0 || p > 1 {
		t.Errorf("p = %v outside [0,1]", p)
	}
}

func TestShapiroWilkRejectsBadInput(t *testing.T) {
	if _, _, err := ShapiroWilk([]float64{1, 2}); err == nil {
		t.Error("n = 2 should fail")
	}
	if _, _, err := ShapiroWilk(make([]float64, 5001)); err == nil {
		t.Error("n = 5001 should fail")
	}
	if _, _, err := ShapiroWilk([]float64{2, 2, 2, 2}); err == nil {
		t.Error("constant sample should fail")
	}
}

func TestSWWeightsAntisymmetric(t *testing.T) {
	for _, n := range []int{3, 4, 5, 6, 11, 12, 50} {
		a := swWeights(n)
		if len(a) != n {
			t.Fatalf("n=%d: got %d weights", n, len(a))
		}
		var sum float64
		for i := 0; i < n; i++ {
			sum += a[i]
			if mirror := a[n-1-i]; math.Abs(a[i]+mirror) > 1e-12 {
				t.Errorf("n=%d: a[%d]=%v and a[%d]=%v are not antisymmetric", n, i, a[i], n-1-i, mirror)
			}
		}
		if math.Abs(sum) > 1e-12 {
			t.Errorf("n=%d: weights sum to %v, want 0", n, sum)
		}
		if a[0] >= 0 || a[n-1] <= 0 {
			t.Errorf("n=%d: extreme weights (%v, %v) have wrong signs", n, a[0], a[n-1])
		}
	}
}

func TestPoly(t *testing.T) {
	// 1 + 2x + 3x² at x = 2.
	if got := poly([]float64{1, 2, 3}, 2); got != 17 {
		t.Errorf("poly = %v, want 17", got)
	}
}
