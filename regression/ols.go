// Package regression fits ordinary least squares models to dataset
// tables and exposes the fitted quantities the diagnostic stages
// consume: coefficients with design-column names, residuals, leverage,
// error variance, fit statistics, and coefficient inference.
//
// The low-level OLS estimator works on a bare design matrix; the
// package-level Fit function threads a formula.Design into it and
// assembles an immutable Model. Every refinement of a model (dropping
// a term, trimming rows, transforming the response) fits a fresh Model
// rather than mutating an old one.
package regression

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/sawruhv/Less-Stress-More-Regress/core/model"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// condMax is the largest QR condition number accepted before the
// design matrix is treated as rank deficient.
const condMax = 1e12

// OLS solves ordinary least squares by QR decomposition. The design
// matrix is used exactly as given; callers wanting an intercept supply
// a constant column (formula.Build always does).
type OLS struct {
	state  *model.StateManager
	logger log.Logger

	coef      []float64
	fitted    []float64
	residuals []float64
	rss       float64
	leverage  []float64
	xtxInv    *mat.Dense
}

// NewOLS returns an untrained least squares solver.
func NewOLS() *OLS {
	return &OLS{
		state: model.NewStateManager(),
		logger: log.GetLoggerWithName("regression").With(
			log.ModelNameKey, "OLS",
		),
	}
}

// Fit solves X·β = y for β and records fitted values, residuals,
// leverage, and the unscaled coefficient covariance (XᵀX)⁻¹.
//
// Errors:
//   - ErrEmptyData: X has no rows or no columns
//   - DimensionError: len(y) differs from the row count of X
//   - ValueError: fewer rows than columns
//   - ErrSingularMatrix: X is rank deficient (condition number > 1e12)
func (o *OLS) Fit(X mat.Matrix, y []float64) (err error) {
	defer regressErrors.Recover(&err, "OLS.Fit")

	start := time.Now()
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return regressErrors.Wrap(regressErrors.ErrEmptyData, "OLS.Fit")
	}
	if len(y) != n {
		return regressErrors.NewDimensionError("OLS.Fit", n, len(y), 0)
	}
	if n < p {
		return regressErrors.NewValueError("OLS.Fit",
			fmt.Sprintf("%d rows cannot identify %d coefficients", n, p))
	}

	o.logger.Debug("Fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, p,
	)

	var qr mat.QR
	qr.Factorize(X)
	if cond := qr.Cond(); cond > condMax {
		return regressErrors.Wrapf(regressErrors.ErrSingularMatrix,
			"OLS.Fit: design matrix condition number %.3g", cond)
	}

	b := mat.NewDense(n, 1, append([]float64(nil), y...))
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, b); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return regressErrors.Wrap(regressErrors.ErrSingularMatrix, "OLS.Fit: solve")
		}
	}

	o.coef = make([]float64, p)
	for j := 0; j < p; j++ {
		o.coef[j] = beta.At(j, 0)
	}

	var fitted mat.Dense
	fitted.Mul(X, &beta)
	o.fitted = make([]float64, n)
	o.residuals = make([]float64, n)
	o.rss = 0
	for i := 0; i < n; i++ {
		o.fitted[i] = fitted.At(i, 0)
		e := y[i] - o.fitted[i]
		o.residuals[i] = e
		o.rss += e * e
	}

	// (XᵀX)⁻¹ backs the coefficient covariance and the hat diagonal.
	var xt mat.Dense
	xt.CloneFrom(X.T())
	var xtx mat.Dense
	xtx.Mul(&xt, X)
	o.xtxInv = &mat.Dense{}
	if err := o.xtxInv.Inverse(&xtx); err != nil {
		return regressErrors.Wrap(regressErrors.ErrSingularMatrix, "OLS.Fit: XᵀX inverse")
	}

	// h_i = x_iᵀ (XᵀX)⁻¹ x_i, read off X·(XᵀX)⁻¹ row by row so the
	// n×n hat matrix is never formed.
	var xk mat.Dense
	xk.Mul(X, o.xtxInv)
	o.leverage = make([]float64, n)
	for i := 0; i < n; i++ {
		var h float64
		for j := 0; j < p; j++ {
			h += xk.At(i, j) * X.At(i, j)
		}
		o.leverage[i] = h
	}

	o.state.SetFitted()
	o.state.SetDimensions(p, n)

	o.logger.Debug("Fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, p,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns X·β for a design matrix with the fitted column count.
func (o *OLS) Predict(X mat.Matrix) (_ []float64, err error) {
	defer regressErrors.Recover(&err, "OLS.Predict")
	if !o.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("OLS", "Predict")
	}
	n, p := X.Dims()
	if p != len(o.coef) {
		return nil, regressErrors.NewDimensionError("OLS.Predict", len(o.coef), p, 1)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var v float64
		for j := 0; j < p; j++ {
			v += X.At(i, j) * o.coef[j]
		}
		out[i] = v
	}
	return out, nil
}

// Coefficients returns the fitted coefficient vector.
func (o *OLS) Coefficients() []float64 { return o.coef }

// Fitted returns the in-sample fitted values.
func (o *OLS) Fitted() []float64 { return o.fitted }

// Residuals returns y − fitted.
func (o *OLS) Residuals() []float64 { return o.residuals }

// RSS returns the residual sum of squares.
func (o *OLS) RSS() float64 { return o.rss }

// Leverage returns the hat-matrix diagonal.
func (o *OLS) Leverage() []float64 { return o.leverage }

// IsFitted reports whether Fit has succeeded.
func (o *OLS) IsFitted() bool { return o.state.IsFitted() }
