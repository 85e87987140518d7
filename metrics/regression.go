// Package metrics provides evaluation metrics for regression fits.
//
// The package implements the standard accuracy measures used by the
// analysis pipeline:
//
//   - MSE: Mean Squared Error
//   - RMSE: Root Mean Squared Error (square root of MSE)
//   - MAE: Mean Absolute Error
//   - R²: R-squared coefficient of determination
//
// All metrics operate on plain float64 slices, the representation the
// pipeline uses for observed and predicted responses. Inputs are
// validated before computation; empty or mismatched slices return typed
// errors rather than NaN.
//
// Example usage:
//
//	rmse, err := metrics.RMSE(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("RMSE: %.4f\n", rmse)
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
)

// MSE calculates the Mean Squared Error between true and predicted values.
//
// MSE measures the average squared difference between predictions and
// observations. Lower values indicate better fit; squaring makes the
// measure sensitive to large misses.
//
// Parameters:
//   - yTrue: observed target values
//   - yPred: predicted values, same length as yTrue
//
// Returns:
//   - float64: MSE value (non-negative)
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ValueError: if the inputs are empty
//   - DimensionError: if yTrue and yPred have different lengths
func MSE(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, regressErrors.NewValueError("MSE", "empty input")
	}
	if len(yPred) != n {
		return 0, regressErrors.NewDimensionError("MSE", n, len(yPred), 0)
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := range yTrue {
		diff := yTrue[i] - yPred[i]
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE calculates the Root Mean Squared Error between true and predicted
// values. RMSE is the square root of MSE, so it reads in the units of the
// response itself, which makes it the headline number when comparing a
// model against a transformed-response variant.
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the Mean Absolute Error between true and predicted
// values. MAE is less sensitive to outliers than MSE since differences
// are not squared.
func MAE(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, regressErrors.NewValueError("MAE", "empty input")
	}
	if len(yPred) != n {
		return 0, regressErrors.NewDimensionError("MAE", n, len(yPred), 0)
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(n), nil
}

// R2Score calculates the coefficient of determination (R²).
//
// R² is the proportion of response variance the predictions account for.
// A perfect fit scores 1.0, predicting the mean scores 0.0, and scores
// below zero mean the predictions are worse than the mean.
//
// Parameters:
//   - yTrue: observed target values
//   - yPred: predicted values, same length as yTrue
//
// Returns:
//   - float64: R² score (at most 1.0, may be negative)
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ValueError: if the inputs are empty, or yTrue has no variance
//   - DimensionError: if yTrue and yPred have different lengths
func R2Score(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, regressErrors.NewValueError("R2Score", "empty input")
	}
	if len(yPred) != n {
		return 0, regressErrors.NewDimensionError("R2Score", n, len(yPred), 0)
	}

	yMean := stat.Mean(yTrue, nil)

	var tss, rss float64
	for i := range yTrue {
		tss += (yTrue[i] - yMean) * (yTrue[i] - yMean)
		rss += (yTrue[i] - yPred[i]) * (yTrue[i] - yPred[i])
	}

	if tss == 0 {
		return 0, regressErrors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}
