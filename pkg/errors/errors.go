// Package errors provides the structured error and warning system used across
// the carbonml pipeline. Error types carry the context needed to diagnose a
// failed run (operation, column names, dimensions) and marshal themselves into
// zerolog events for structured logging.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("carbonml-warning: %v\n", w)
	}
	// zerolog warn bridge, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the process-wide warning handler. Warnings are
// advisory; they never abort a run.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink (injected by
// pkg/log to avoid a circular import).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the configured sink. The zerolog sink takes
// precedence when one has been installed.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ConstantFeatureWarning is emitted when a numeric column has zero variance
// during scaler fitting. The column's scale is clamped to 1 so the transform
// stays total.
type ConstantFeatureWarning struct {
	Column string
	Value  float64
}

func (w *ConstantFeatureWarning) Error() string {
	return fmt.Sprintf("column %q is constant (value %g); standardization leaves it centered at zero", w.Column, w.Value)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *ConstantFeatureWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Float64("value", w.Value).
		Str("type", "ConstantFeatureWarning")
}

// NewConstantFeatureWarning creates a new ConstantFeatureWarning.
func NewConstantFeatureWarning(column string, value float64) *ConstantFeatureWarning {
	return &ConstantFeatureWarning{Column: column, Value: value}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// SchemaError reports a missing or malformed required column in the input
// table, e.g. an absent target column or a table with no feature columns.
type SchemaError struct {
	Op     string
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("carbonml: %s: column %q: %s", e.Op, e.Column, e.Reason)
	}
	return fmt.Sprintf("carbonml: %s: %s", e.Op, e.Reason)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "SchemaError")
}

// NewSchemaError creates a new SchemaError with a stack trace attached.
func NewSchemaError(op, column, reason string) error {
	err := &SchemaError{Op: op, Column: column, Reason: reason}
	return errors.WithStack(err)
}

// UndefinedMetricError reports a metric that is mathematically undefined for
// the given inputs, e.g. R² on a zero-variance target. Selection cannot
// compare undefined scores, so this is a hard error rather than a NaN.
type UndefinedMetricError struct {
	Metric    string
	Condition string
}

func (e *UndefinedMetricError) Error() string {
	return fmt.Sprintf("carbonml: %s is undefined: %s", e.Metric, e.Condition)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *UndefinedMetricError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("metric", e.Metric).
		Str("condition", e.Condition).
		Str("type", "UndefinedMetricError")
}

// NewUndefinedMetricError creates a new UndefinedMetricError with a stack
// trace attached.
func NewUndefinedMetricError(metric, condition string) error {
	err := &UndefinedMetricError{Metric: metric, Condition: condition}
	return errors.WithStack(err)
}

// EmptyCandidateSetError reports a selection over zero evaluation results.
type EmptyCandidateSetError struct {
	Op string
}

func (e *EmptyCandidateSetError) Error() string {
	return fmt.Sprintf("carbonml: %s: no candidates to select from", e.Op)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *EmptyCandidateSetError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("type", "EmptyCandidateSetError")
}

// NewEmptyCandidateSetError creates a new EmptyCandidateSetError with a stack
// trace attached.
func NewEmptyCandidateSetError(op string) error {
	err := &EmptyCandidateSetError{Op: op}
	return errors.WithStack(err)
}

// FeatureNameMismatchError reports an internal-consistency violation between
// the reconstructed post-encoding feature names and the estimator's importance
// vector. Mislabeled importances are worse than no importances, so this is
// fatal rather than truncated.
type FeatureNameMismatchError struct {
	Names       int
	Importances int
}

func (e *FeatureNameMismatchError) Error() string {
	return fmt.Sprintf("carbonml: reconstructed %d feature names but estimator reports %d importances", e.Names, e.Importances)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *FeatureNameMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("names", e.Names).
		Int("importances", e.Importances).
		Str("type", "FeatureNameMismatchError")
}

// NewFeatureNameMismatchError creates a new FeatureNameMismatchError with a
// stack trace attached.
func NewFeatureNameMismatchError(names, importances int) error {
	err := &FeatureNameMismatchError{Names: names, Importances: importances}
	return errors.WithStack(err)
}

// NotFittedError reports a call to Predict or Transform on an unfitted
// estimator.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("carbonml: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports input data whose dimensions differ from what a
// fitted estimator expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("carbonml: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for the operation,
// e.g. a NaN label in the training target.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("carbonml: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general estimator failure.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("carbonml: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("carbonml: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a new ModelError with a stack trace attached.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives empty data.
	ErrEmptyData = New("empty data")
)
