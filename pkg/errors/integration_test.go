package errors_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
)

// The pipeline produces three-layer chains: a sentinel or typed error
// at the point of failure, an operation wrap in the owning package, and
// a StageError at the run level. These tests pin the errors.Is/As
// behavior across all three layers.

func TestStageErrorChain(t *testing.T) {
	cause := regressErrors.Wrap(regressErrors.ErrSingularMatrix, "regression.Fit")
	err := regressErrors.NewStageError("analysis.Run", "interaction fit", cause)

	if !errors.Is(err, regressErrors.ErrSingularMatrix) {
		t.Error("sentinel lost through the stage wrapper")
	}

	var stage *regressErrors.StageError
	if !errors.As(err, &stage) {
		t.Fatal("errors.As failed to extract *StageError")
	}
	if stage.Message != "interaction fit" {
		t.Errorf("stage = %q, want interaction fit", stage.Message)
	}
	if !errors.Is(stage.Unwrap(), regressErrors.ErrSingularMatrix) {
		t.Error("Unwrap dropped the cause")
	}
}

func TestTypedErrorThroughStdWrap(t *testing.T) {
	dimErr := regressErrors.NewDimensionError("evaluation.Holdout", 30, 10, 0)
	wrapped := fmt.Errorf("scoring candidate %q: %w", "baseline", dimErr)

	var out *regressErrors.DimensionError
	if !errors.As(wrapped, &out) {
		t.Fatal("errors.As failed through fmt.Errorf wrapping")
	}
	if out.Expected != 30 || out.Got != 10 {
		t.Errorf("got Expected=%d Got=%d, want 30, 10", out.Expected, out.Got)
	}
}

func TestStageErrorWithoutCause(t *testing.T) {
	err := regressErrors.NewStageError("analysis.Run", "vif", nil)

	var stage *regressErrors.StageError
	if !errors.As(err, &stage) {
		t.Fatal("errors.As failed to extract *StageError")
	}
	if stage.Unwrap() != nil {
		t.Error("Unwrap() should be nil without a cause")
	}
	if got := err.Error(); got != "regress: analysis.Run: vif" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNestedStageAndTypedErrors(t *testing.T) {
	// A trim failure carries both the stage and the shape mismatch.
	dimErr := regressErrors.NewDimensionError("diagnostics.Influence.Trim", 40, 38, 0)
	err := regressErrors.NewStageError("analysis.Run", "influence trim", dimErr)

	var stage *regressErrors.StageError
	var dim *regressErrors.DimensionError
	if !errors.As(err, &stage) || !errors.As(err, &dim) {
		t.Fatal("chain should satisfy errors.As for both types")
	}
	if dim.Axis != 0 {
		t.Errorf("axis = %d, want rows", dim.Axis)
	}
}

func TestStackTraceRendering(t *testing.T) {
	err := regressErrors.Wrap(regressErrors.ErrEmptyData, "dataset.LoadReader")

	// %+v carries the capture site, %v stays a bare message.
	verbose := fmt.Sprintf("%+v", err)
	plain := fmt.Sprintf("%v", err)
	if !strings.Contains(plain, "empty data") {
		t.Errorf("plain rendering lost the message: %q", plain)
	}
	if len(verbose) <= len(plain) {
		t.Error("verbose rendering should include stack frames")
	}
}
