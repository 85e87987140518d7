// Package diagnostics inspects fitted regression models: residual
// plots data, the Shapiro-Wilk normality test, influence measures
// (leverage and Cook's distance), and variance inflation factors.
//
// Every function takes a fitted *regression.Model and computes from its
// stored residuals, leverage, and design; nothing here refits or
// mutates a model.
package diagnostics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

// ScatterSeries is a paired x/y series ready for plotting or export.
type ScatterSeries struct {
	X []float64
	Y []float64
}

// ResidualsVsFitted pairs each fitted value with its raw residual, in
// observation order.
func ResidualsVsFitted(m *regression.Model) ScatterSeries {
	return ScatterSeries{
		X: append([]float64(nil), m.Fitted...),
		Y: append([]float64(nil), m.Residuals...),
	}
}

// StandardizedResiduals returns e_i / (s·√(1−h_i)) in observation
// order. An observation with leverage 1 has a forced zero residual and
// yields 0.
func StandardizedResiduals(m *regression.Model) []float64 {
	s := math.Sqrt(m.SigmaSq)
	out := make([]float64, m.N)
	for i, e := range m.Residuals {
		h := m.Leverage[i]
		if h >= 1 {
			out[i] = 0
			continue
		}
		out[i] = e / (s * math.Sqrt(1-h))
	}
	return out
}

// QQ returns the normal quantile-quantile series for the model's
// standardized residuals: X holds theoretical normal quantiles, Y the
// sorted standardized residuals. Plotting positions follow the ppoints
// convention, (i − a)/(n + 1 − 2a) with a = 3/8 for n ≤ 10 and a = 1/2
// otherwise.
func QQ(m *regression.Model) ScatterSeries {
	sample := StandardizedResiduals(m)
	sort.Float64s(sample)

	n := len(sample)
	a := 0.5
	if n <= 10 {
		a = 0.375
	}
	theoretical := make([]float64, n)
	for i := 0; i < n; i++ {
		p := (float64(i+1) - a) / (float64(n) + 1 - 2*a)
		theoretical[i] = distuv.UnitNormal.Quantile(p)
	}
	return ScatterSeries{X: theoretical, Y: sample}
}

// NormalityRejected reports whether a Shapiro-Wilk p-value rejects the
// residual normality hypothesis at level alpha.
func NormalityRejected(p, alpha float64) bool {
	return p < alpha
}
