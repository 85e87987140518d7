package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/formula"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// Model holds one fitted least squares model. Fields are set once by
// Fit and treated as read-only afterwards; refining a model (dropping a
// term, trimming rows, transforming the response) means fitting a new
// Model.
type Model struct {
	// Formula is the structure this model was fitted from.
	Formula *formula.Formula
	// Names holds one name per design column, "(Intercept)" first.
	Names []string
	// Coef holds the fitted coefficients, aligned with Names.
	Coef []float64

	Fitted    []float64
	Residuals []float64
	// Leverage is the hat-matrix diagonal per observation.
	Leverage []float64

	// N is the observation count, P the design column count.
	N, P int

	RSS     float64
	SigmaSq float64
	R2      float64
	AdjR2   float64
	LogLik  float64
	AIC     float64

	// StdErr, TStats, PValues hold per-coefficient inference, aligned
	// with Names. P-values are two-sided Student's t with n−p degrees
	// of freedom.
	StdErr  []float64
	TStats  []float64
	PValues []float64

	design *formula.Design
	xtxInv *mat.Dense
}

// Fit builds the formula's design matrix against t and fits a model to
// it. The table must hold every column the formula references; n must
// exceed the design column count so the error variance is estimable.
func Fit(t *dataset.Table, f *formula.Formula) (_ *Model, err error) {
	defer regressErrors.Recover(&err, "regression.Fit")

	d, err := f.Build(t)
	if err != nil {
		return nil, err
	}
	return fitDesign(f, d)
}

func fitDesign(f *formula.Formula, d *formula.Design) (*Model, error) {
	n, p := d.X.Dims()
	if n <= p {
		return nil, regressErrors.NewValueError("regression.Fit",
			fmt.Sprintf("%d observations leave no residual degrees of freedom for %d coefficients", n, p))
	}

	ols := NewOLS()
	if err := ols.Fit(d.X, d.Y); err != nil {
		return nil, err
	}

	m := &Model{
		Formula:   f,
		Names:     d.Names,
		Coef:      ols.Coefficients(),
		Fitted:    ols.Fitted(),
		Residuals: ols.Residuals(),
		Leverage:  ols.Leverage(),
		N:         n,
		P:         p,
		RSS:       ols.RSS(),
		design:    d,
		xtxInv:    ols.xtxInv,
	}
	var ybar float64
	for _, v := range d.Y {
		ybar += v
	}
	ybar /= float64(n)
	var tss float64
	for _, v := range d.Y {
		dev := v - ybar
		tss += dev * dev
	}
	if tss == 0 {
		return nil, regressErrors.NewValueError("regression.Fit", "response has zero variance")
	}
	if m.RSS == 0 {
		return nil, regressErrors.NewValueError("regression.Fit",
			"residual sum of squares is zero; response is an exact function of the design")
	}

	dof := float64(n - p)
	m.SigmaSq = m.RSS / dof
	m.R2 = 1 - m.RSS/tss
	m.AdjR2 = 1 - (1-m.R2)*float64(n-1)/dof

	// Gaussian log-likelihood at the MLE variance RSS/n; AIC counts the
	// p coefficients plus the variance.
	m.LogLik = -0.5 * float64(n) * (math.Log(2*math.Pi) + math.Log(m.RSS/float64(n)) + 1)
	m.AIC = -2*m.LogLik + 2*float64(p+1)

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	m.StdErr = make([]float64, p)
	m.TStats = make([]float64, p)
	m.PValues = make([]float64, p)
	for j := 0; j < p; j++ {
		se := math.Sqrt(m.SigmaSq * m.xtxInv.At(j, j))
		m.StdErr[j] = se
		tj := m.Coef[j] / se
		m.TStats[j] = tj
		m.PValues[j] = 2 * tDist.CDF(-math.Abs(tj))
	}

	log.GetLoggerWithName("regression").Info("Model fitted",
		log.OperationKey, log.OperationFit,
		log.FormulaKey, f.String(),
		log.SamplesKey, n,
		log.FeaturesKey, p,
		log.AICKey, m.AIC,
		log.RSquaredKey, m.R2,
	)
	return m, nil
}

// Predict builds the formula's design against t, reusing the
// categorical level layout captured at fit time, and returns X·β. The
// table must carry every formula column, the response included.
func (m *Model) Predict(t *dataset.Table) (_ []float64, err error) {
	defer regressErrors.Recover(&err, "Model.Predict")

	d, err := m.Formula.BuildWithLevels(t, m.design.Levels)
	if err != nil {
		return nil, err
	}
	n, p := d.X.Dims()
	if p != m.P {
		return nil, regressErrors.NewDimensionError("Model.Predict", m.P, p, 1)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var v float64
		for j := 0; j < p; j++ {
			v += d.X.At(i, j) * m.Coef[j]
		}
		out[i] = v
	}
	return out, nil
}

// Design returns the design the model was fitted on.
func (m *Model) Design() *formula.Design { return m.design }

// XTXInverse returns the unscaled coefficient covariance (XᵀX)⁻¹.
func (m *Model) XTXInverse() mat.Matrix { return m.xtxInv }
