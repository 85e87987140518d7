package preprocessing

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/sawruhv/Less-Stress-More-Regress/core/model"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// lambdaZero is the threshold under which a candidate exponent is
// treated as exactly zero (the log branch of the transform).
const lambdaZero = 1e-9

// BoxCoxTransformer selects the power-transform exponent maximizing the
// profile log-likelihood of an OLS fit and applies the transform to a
// response vector.
//
// For exponent λ and response y the transform is
//
//	λ ≠ 0: (y^λ - 1) / λ
//	λ = 0: ln(y)
//
// The response must be strictly positive. Responses containing zeros or
// negatives are rejected unless an explicit shift is configured with
// WithShift; the shift is recorded on the transformer and undone by
// InverseTransform.
type BoxCoxTransformer struct {
	state  *model.StateManager
	logger log.Logger

	// Lambda is the exponent selected by Fit.
	Lambda float64

	shift                      float64
	gridMin, gridMax, gridStep float64

	grid   []float64 // candidate exponents
	logLik []float64 // profile log-likelihood per candidate
}

// BoxCoxOption configures a BoxCoxTransformer.
type BoxCoxOption func(*BoxCoxTransformer)

// WithShift adds a constant to the response before transforming, for
// responses that are not strictly positive. The shift is reported in
// logs and undone by InverseTransform.
func WithShift(shift float64) BoxCoxOption {
	return func(t *BoxCoxTransformer) {
		t.shift = shift
	}
}

// WithGrid replaces the default candidate grid (-2 to 2 in steps of 0.1).
func WithGrid(min, max, step float64) BoxCoxOption {
	return func(t *BoxCoxTransformer) {
		t.gridMin, t.gridMax, t.gridStep = min, max, step
	}
}

// NewBoxCoxTransformer creates an unfitted transformer with the default
// exponent grid.
func NewBoxCoxTransformer(options ...BoxCoxOption) *BoxCoxTransformer {
	t := &BoxCoxTransformer{
		state:    model.NewStateManager(),
		gridMin:  -2.0,
		gridMax:  2.0,
		gridStep: 0.1,
	}
	for _, opt := range options {
		opt(t)
	}
	t.logger = log.GetLoggerWithName("preprocessing").With(
		log.ModelNameKey, "BoxCoxTransformer",
	)
	return t
}

// Fit evaluates the profile log-likelihood of each candidate exponent
// against the design matrix X and response y, and selects the maximum.
//
// For each candidate λ the response is transformed and regressed on X;
// the likelihood is
//
//	LL(λ) = -n/2 · ln(RSS_λ/n) + (λ-1) · Σ ln(y_i)
//
// Given the fixed grid and inputs the selection is deterministic.
//
// Errors:
//   - ErrEmptyData: if y is empty
//   - DimensionError: if X and y disagree on row count
//   - ErrNotPositive: if any shifted response value is ≤ 0
//   - ErrSingularMatrix: if X cannot support a least-squares solve
func (t *BoxCoxTransformer) Fit(X mat.Matrix, y []float64) (err error) {
	defer regressErrors.Recover(&err, "BoxCoxTransformer.Fit")
	start := time.Now()

	n := len(y)
	if n == 0 {
		return regressErrors.Wrap(regressErrors.ErrEmptyData, "BoxCoxTransformer.Fit")
	}
	rows, _ := X.Dims()
	if rows != n {
		return regressErrors.NewDimensionError("BoxCoxTransformer.Fit", n, rows, 0)
	}
	if t.gridStep <= 0 || t.gridMax < t.gridMin {
		return regressErrors.NewValueError("BoxCoxTransformer.Fit",
			fmt.Sprintf("invalid grid [%v,%v] step %v", t.gridMin, t.gridMax, t.gridStep))
	}
	if err := t.checkPositive("BoxCoxTransformer.Fit", y); err != nil {
		return err
	}

	// Σ ln(y_i) term of the profile likelihood; constant across the grid.
	var sumLog float64
	for _, v := range y {
		sumLog += math.Log(v + t.shift)
	}

	var qr mat.QR
	qr.Factorize(X)

	t.grid = buildGrid(t.gridMin, t.gridMax, t.gridStep)
	t.logLik = make([]float64, len(t.grid))

	z := make([]float64, n)
	for gi, lambda := range t.grid {
		for i, v := range y {
			z[i] = boxCoxApply(v+t.shift, lambda)
		}
		rss, err := residualSumOfSquares(&qr, X, z)
		if err != nil {
			return regressErrors.Wrap(err, "BoxCoxTransformer.Fit")
		}
		ll := math.Inf(1)
		if rss > 0 {
			ll = -float64(n)/2*math.Log(rss/float64(n)) + (lambda-1)*sumLog
		}
		t.logLik[gi] = ll
	}

	t.Lambda = t.grid[floats.MaxIdx(t.logLik)]
	t.state.SetFitted()
	t.state.SetDimensions(1, n)

	t.logger.Info("exponent selected",
		log.OperationKey, log.OperationFit,
		log.LambdaKey, t.Lambda,
		log.SamplesKey, n,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Transform applies the selected exponent to y, returning a new slice.
func (t *BoxCoxTransformer) Transform(y []float64) (_ []float64, err error) {
	defer regressErrors.Recover(&err, "BoxCoxTransformer.Transform")

	if !t.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("BoxCoxTransformer", "Transform")
	}
	if err := t.checkPositive("BoxCoxTransformer.Transform", y); err != nil {
		return nil, err
	}

	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = boxCoxApply(v+t.shift, t.Lambda)
	}
	return out, nil
}

// InverseTransform maps transformed values back to the original response
// scale, undoing both the power transform and any configured shift.
func (t *BoxCoxTransformer) InverseTransform(z []float64) (_ []float64, err error) {
	defer regressErrors.Recover(&err, "BoxCoxTransformer.InverseTransform")

	if !t.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("BoxCoxTransformer", "InverseTransform")
	}

	out := make([]float64, len(z))
	for i, v := range z {
		if math.Abs(t.Lambda) >= lambdaZero {
			base := v*t.Lambda + 1
			if base <= 0 {
				return nil, regressErrors.NewValueError("BoxCoxTransformer.InverseTransform",
					fmt.Sprintf("value %v at row %d outside the transform's range", v, i))
			}
			out[i] = math.Pow(base, 1/t.Lambda) - t.shift
		} else {
			out[i] = math.Exp(v) - t.shift
		}
	}
	return out, nil
}

// Profile returns the candidate exponents and their profile
// log-likelihoods from the last Fit, for reporting.
func (t *BoxCoxTransformer) Profile() (lambdas, logLik []float64, err error) {
	if !t.state.IsFitted() {
		return nil, nil, regressErrors.NewNotFittedError("BoxCoxTransformer", "Profile")
	}
	lambdas = make([]float64, len(t.grid))
	copy(lambdas, t.grid)
	logLik = make([]float64, len(t.logLik))
	copy(logLik, t.logLik)
	return lambdas, logLik, nil
}

// Shift returns the configured response shift.
func (t *BoxCoxTransformer) Shift() float64 {
	return t.shift
}

// IsFitted reports whether Fit has succeeded.
func (t *BoxCoxTransformer) IsFitted() bool {
	return t.state.IsFitted()
}

func (t *BoxCoxTransformer) checkPositive(op string, y []float64) error {
	for i, v := range y {
		if v+t.shift <= 0 {
			return regressErrors.Wrapf(regressErrors.ErrNotPositive,
				"%s: response %v at row %d (shift %v); configure an explicit shift",
				op, v, i, t.shift)
		}
	}
	return nil
}

// boxCoxApply computes the transform for a single strictly positive value.
func boxCoxApply(v, lambda float64) float64 {
	if math.Abs(lambda) < lambdaZero {
		return math.Log(v)
	}
	return (math.Pow(v, lambda) - 1) / lambda
}

// buildGrid enumerates min..max in step increments, snapping values
// within lambdaZero of zero to exactly zero so the log branch is taken.
func buildGrid(min, max, step float64) []float64 {
	count := int(math.Round((max-min)/step)) + 1
	grid := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		v := min + float64(i)*step
		if v > max+step/2 {
			break
		}
		if math.Abs(v) < lambdaZero {
			v = 0
		}
		grid = append(grid, v)
	}
	return grid
}

// residualSumOfSquares solves the least-squares system X·β = z with the
// prefactorized QR and returns Σ(z - X·β)². A Condition error from the
// solver still carries a usable solution and is tolerated here; hard
// failures map to ErrSingularMatrix.
func residualSumOfSquares(qr *mat.QR, X mat.Matrix, z []float64) (float64, error) {
	n, _ := X.Dims()
	b := mat.NewDense(n, 1, z)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, b); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return 0, regressErrors.Wrap(regressErrors.ErrSingularMatrix, "least-squares solve")
		}
	}

	var fitted mat.Dense
	fitted.Mul(X, &beta)

	var rss float64
	for i := 0; i < n; i++ {
		d := z[i] - fitted.At(i, 0)
		rss += d * d
	}
	return rss, nil
}
