// Package errors provides the error types shared by every stage of the
// regression pipeline.
//
// The package defines:
//
//   - Sentinel errors (ErrEmptyData, ErrSingularMatrix, ...) for errors.Is
//     checks across package boundaries
//   - Typed errors (DimensionError, NotFittedError, ValueError, StageError)
//     carrying structured context for errors.As
//   - Recover, which converts panics escaping gonum matrix code into
//     ordinary error returns
//
// All constructors wrap with cockroachdb/errors so that call sites keep
// %+v stack traces, and every message carries an operation prefix so a
// failure can be traced to the stage that produced it.
package errors

import (
	"fmt"

	crdberrors "github.com/cockroachdb/errors"
)

// prefix namespaces every error message produced by this module.
const prefix = "regress"

// Sentinel errors for use with errors.Is.
var (
	// ErrEmptyData indicates a dataset or vector with no observations.
	ErrEmptyData = crdberrors.New("empty data")

	// ErrSingularMatrix indicates a rank-deficient or numerically singular
	// design matrix; coefficients from such a fit are meaningless.
	ErrSingularMatrix = crdberrors.New("singular design matrix")

	// ErrNotPositive indicates a value that must be strictly positive
	// (Box-Cox responses, log-transformed predictors) was zero or negative.
	ErrNotPositive = crdberrors.New("value not strictly positive")

	// ErrUnknownColumn indicates a formula referenced a column the dataset
	// does not carry.
	ErrUnknownColumn = crdberrors.New("unknown column")
)

// New returns an error with the given message and a captured stack trace.
func New(msg string) error {
	return crdberrors.New(msg)
}

// Newf formats an error with a captured stack trace.
func Newf(format string, args ...interface{}) error {
	return crdberrors.Newf(format, args...)
}

// Wrap annotates err with msg, preserving the chain for errors.Is/As.
func Wrap(err error, msg string) error {
	return crdberrors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return crdberrors.Wrapf(err, format, args...)
}

// DimensionError reports a shape mismatch between two inputs.
type DimensionError struct {
	Op       string // operation that detected the mismatch
	Expected int
	Got      int
	Axis     int // 0 = rows, 1 = columns
}

func (e *DimensionError) Error() string {
	axis := "rows"
	if e.Axis == 1 {
		axis = "columns"
	}
	return fmt.Sprintf("%s: %s: dimension mismatch on %s: expected %d, got %d",
		prefix, e.Op, axis, e.Expected, e.Got)
}

// NewDimensionError reports that op expected a different extent along axis.
func NewDimensionError(op string, expected, got, axis int) error {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

// NotFittedError reports use of an estimator before Fit succeeded.
type NotFittedError struct {
	EstimatorName string
	Method        string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: %s.%s called before Fit", prefix, e.EstimatorName, e.Method)
}

// NewNotFittedError reports that method was called on an unfitted estimator.
func NewNotFittedError(estimator, method string) error {
	return &NotFittedError{EstimatorName: estimator, Method: method}
}

// ValueError reports an input whose value (not shape) is unusable.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s: %s", prefix, e.Op, e.Message)
}

// NewValueError reports an invalid input value detected by op.
func NewValueError(op, message string) error {
	return &ValueError{Op: op, Message: message}
}

// StageError wraps a failure with the pipeline stage and operation that
// produced it. The pipeline aborts on the first StageError rather than
// feeding dependent stages a broken model.
type StageError struct {
	Op      string
	Message string
	Err     error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s: %v", prefix, e.Op, e.Message, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps cause with the stage operation and message.
func NewStageError(op, message string, cause error) error {
	return &StageError{Op: op, Message: message, Err: cause}
}

// Recover converts a panic into an error assigned to *errp. gonum's mat
// package panics on malformed shapes; estimator methods defer this so
// callers always see an error return instead.
//
//	func (m *OLS) Fit(X, y mat.Matrix) (err error) {
//	    defer errors.Recover(&err, "OLS.Fit")
//	    ...
//	}
func Recover(errp *error, op string) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			*errp = crdberrors.Wrapf(err, "%s: %s: recovered panic", prefix, op)
			return
		}
		*errp = crdberrors.Newf("%s: %s: recovered panic: %v", prefix, op, r)
	}
}
