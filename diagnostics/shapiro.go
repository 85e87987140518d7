package diagnostics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// Royston's AS R94 coefficient sets, ascending powers.
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.544, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
)

// ShapiroWilk tests a sample against normality and returns the W
// statistic with its approximate p-value, following Royston's AS R94
// approximation. Valid for sample sizes 3 through 5000.
//
// Errors:
//   - ValueError: n outside [3, 5000], or all values identical
func ShapiroWilk(sample []float64) (w, p float64, err error) {
	defer regressErrors.Recover(&err, "diagnostics.ShapiroWilk")

	n := len(sample)
	if n < 3 || n > 5000 {
		return 0, 0, regressErrors.NewValueError("diagnostics.ShapiroWilk",
			fmt.Sprintf("sample size %d outside [3, 5000]", n))
	}

	x := append([]float64(nil), sample...)
	sort.Float64s(x)
	if x[n-1]-x[0] <= 0 {
		return 0, 0, regressErrors.NewValueError("diagnostics.ShapiroWilk", "zero sample range")
	}

	a := swWeights(n)

	// W is the squared correlation between the weights and the order
	// statistics; 1−W is carried separately so W near 1 keeps precision.
	var xbar, abar float64
	for i := 0; i < n; i++ {
		xbar += x[i]
		abar += a[i]
	}
	xbar /= float64(n)
	abar /= float64(n)

	var ssx, ssa, sax float64
	for i := 0; i < n; i++ {
		dx := x[i] - xbar
		da := a[i] - abar
		ssx += dx * dx
		ssa += da * da
		sax += da * dx
	}
	ssassx := math.Sqrt(ssa * ssx)
	w1 := (ssassx - sax) * (ssassx + sax) / (ssa * ssx)
	w = 1 - w1
	p = swPValue(n, w, w1)

	log.GetLoggerWithName("diagnostics").Debug("Shapiro-Wilk computed",
		log.OperationKey, log.OperationEvaluate,
		log.SamplesKey, n,
		"W", w,
		log.PValueKey, p,
	)
	return w, p, nil
}

// swWeights builds the full weight vector a_1..a_n (antisymmetric,
// ascending order statistics).
func swWeights(n int) []float64 {
	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
		return a
	}

	m := make([]float64, n)
	var summ2 float64
	an25 := float64(n) + 0.25
	for i := 0; i < n; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / an25)
		summ2 += m[i] * m[i]
	}
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(float64(n))

	aN := poly(swC1, rsn) + m[n-1]/ssumm2
	a[n-1], a[0] = aN, -aN
	if n > 5 {
		aN1 := poly(swC2, rsn) + m[n-2]/ssumm2
		a[n-2], a[1] = aN1, -aN1
		fac := math.Sqrt((summ2 - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) /
			(1 - 2*aN*aN - 2*aN1*aN1))
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / fac
		}
		return a
	}
	fac := math.Sqrt((summ2 - 2*m[n-1]*m[n-1]) / (1 - 2*aN*aN))
	for i := 1; i < n-1; i++ {
		a[i] = m[i] / fac
	}
	return a
}

// swPValue maps (W, 1−W) to the approximate upper-tail p-value.
func swPValue(n int, w, w1 float64) float64 {
	if n == 3 {
		const (
			pi6  = 1.90985931710274 // 6/π
			stqr = 1.04719755119660 // asin(√0.75)
		)
		p := pi6 * (math.Asin(math.Sqrt(w)) - stqr)
		return math.Max(0, math.Min(1, p))
	}

	y := math.Log(w1)
	an := float64(n)
	var m, s float64
	if n <= 11 {
		gamma := -2.273 + 0.459*an
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		m = poly(swC3, an)
		s = math.Exp(poly(swC4, an))
	} else {
		lnn := math.Log(an)
		m = poly(swC5, lnn)
		s = math.Exp(poly(swC6, lnn))
	}
	return distuv.UnitNormal.Survival((y - m) / s)
}

// poly evaluates a polynomial given ascending coefficients.
func poly(c []float64, x float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}
