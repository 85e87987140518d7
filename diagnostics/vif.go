package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

// ColumnVIF is the variance inflation factor of one design column.
type ColumnVIF struct {
	Column string
	Value  float64
}

// VIF computes the variance inflation factor of every non-intercept
// design column: 1/(1−R²) of that column regressed on all the other
// columns, intercept included. Values stay aligned with the model's
// coefficient names. A lone predictor gets the trivial value 1.
func VIF(m *regression.Model) ([]ColumnVIF, error) {
	d := m.Design()
	n, p := d.X.Dims()

	out := make([]ColumnVIF, 0, p-1)
	xj := make([]float64, n)
	for j := 1; j < p; j++ {
		mat.Col(xj, j, d.X)

		others := mat.NewDense(n, p-1, nil)
		col := make([]float64, n)
		dst := 0
		for k := 0; k < p; k++ {
			if k == j {
				continue
			}
			mat.Col(col, k, d.X)
			others.SetCol(dst, col)
			dst++
		}

		ols := regression.NewOLS()
		if err := ols.Fit(others, xj); err != nil {
			return nil, regressErrors.Wrap(err, "diagnostics.VIF: column "+d.Names[j])
		}

		var mean float64
		for _, v := range xj {
			mean += v
		}
		mean /= float64(n)
		var tss float64
		for _, v := range xj {
			dev := v - mean
			tss += dev * dev
		}

		value := math.Inf(1)
		if rss := ols.RSS(); rss > 0 {
			value = tss / rss
		}
		out = append(out, ColumnVIF{Column: d.Names[j], Value: value})
	}
	return out, nil
}
