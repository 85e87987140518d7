// Package analysis runs the movie-rating study end to end: load and
// clean the raw table, expand genre indicators, fit the baseline
// additive model, check residual normality, trim influential rows and
// refit, choose and apply a Box-Cox response transform, fit the
// pairwise-interaction model, screen it for collinearity, reduce it by
// backward stepwise search, and compare the baseline against the
// selected model on a held-out split.
//
// Each stage is a pure step from one snapshot to the next; Run threads
// tables and models explicitly and aborts on the first stage failure
// rather than feeding dependent stages a broken model.
package analysis

import (
	"fmt"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/evaluation"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/preprocessing"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
	"github.com/sawruhv/Less-Stress-More-Regress/report"
	"github.com/sawruhv/Less-Stress-More-Regress/selection"
)

// TransformedResponse is the column name the Box-Cox stage adds to the
// modeling table. The original Rate column stays alongside it.
const TransformedResponse = "RateBoxCox"

// Params collects everything one run needs. Zero values are not
// usable; start from DefaultParams and override.
type Params struct {
	// DataPath is the input CSV.
	DataPath string
	// OutputDir receives the rendered report, the YAML export, the
	// diagnostics tables and the plot files.
	OutputDir string

	// Seed drives the holdout split.
	Seed int64
	// TrainFraction is the holdout train share, in (0,1).
	TrainFraction float64
	// Alpha is the Shapiro-Wilk significance level.
	Alpha float64
	// CookMultiplier is k in the k/n influence cutoff.
	CookMultiplier float64

	// BoxCoxMin, BoxCoxMax and BoxCoxStep define the λ grid.
	BoxCoxMin  float64
	BoxCoxMax  float64
	BoxCoxStep float64

	// MaxSteps caps the stepwise search; 0 means run to the fixed point.
	MaxSteps int
}

// DefaultParams returns the study's standard settings.
func DefaultParams() Params {
	return Params{
		DataPath:       "movies.csv",
		OutputDir:      "out",
		Seed:           42,
		TrainFraction:  0.85,
		Alpha:          0.05,
		CookMultiplier: 4,
		BoxCoxMin:      -2,
		BoxCoxMax:      2,
		BoxCoxStep:     0.1,
	}
}

// Validate reports the first unusable parameter.
func (p Params) Validate() error {
	switch {
	case p.DataPath == "":
		return regressErrors.NewValueError("analysis.Params", "DataPath is empty")
	case p.TrainFraction <= 0 || p.TrainFraction >= 1:
		return regressErrors.NewValueError("analysis.Params",
			fmt.Sprintf("TrainFraction %v outside (0,1)", p.TrainFraction))
	case p.Alpha <= 0 || p.Alpha >= 1:
		return regressErrors.NewValueError("analysis.Params",
			fmt.Sprintf("Alpha %v outside (0,1)", p.Alpha))
	case p.CookMultiplier <= 0:
		return regressErrors.NewValueError("analysis.Params",
			fmt.Sprintf("CookMultiplier %v is not positive", p.CookMultiplier))
	case p.BoxCoxStep <= 0:
		return regressErrors.NewValueError("analysis.Params",
			fmt.Sprintf("BoxCoxStep %v is not positive", p.BoxCoxStep))
	case p.BoxCoxMin >= p.BoxCoxMax:
		return regressErrors.NewValueError("analysis.Params",
			fmt.Sprintf("Box-Cox grid [%v, %v] is empty", p.BoxCoxMin, p.BoxCoxMax))
	case p.MaxSteps < 0:
		return regressErrors.NewValueError("analysis.Params",
			fmt.Sprintf("MaxSteps %d is negative", p.MaxSteps))
	}
	return nil
}

// Result carries every intermediate the study produced, so callers can
// inspect models directly instead of re-parsing the report.
type Result struct {
	Report *report.Report
	Clean  dataset.CleanReport

	// Table is the final modeling table: influence-trimmed, with the
	// transformed response added.
	Table *dataset.Table

	Baseline    *regression.Model
	Trimmed     *regression.Model
	Transformed *regression.Model
	Interaction *regression.Model

	// Flagged lists the rows the influence pass removed, as indices
	// into the cleaned table.
	Flagged []int

	BoxCox    *preprocessing.BoxCoxTransformer
	Selection *selection.Result
	Holdout   *evaluation.Result
}
