package helpers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"jyotish-chart/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type JyotishError struct {
	Message string
	Cause   error
}

func (e *JyotishError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *JyotishError) Unwrap() error {
	return e.Cause
}

// InputError reports missing or invalid birth fields. Not retryable.
type InputError struct {
	JyotishError
	Fields []string
}

// ComputationError reports an ephemeris failure or a solve that did not converge.
type ComputationError struct{ JyotishError }

// InternalInvariantViolation marks a programming defect; it is raised with
// panic and must never be converted into a regular response.
type InternalInvariantViolation struct{ JyotishError }

// -----------------------------------------------------------------------------

func NewInputError(message string, fields ...string) *InputError {
	return &InputError{JyotishError: JyotishError{Message: message}, Fields: fields}
}

func NewComputationError(operation string, cause error) *ComputationError {
	return &ComputationError{JyotishError{Message: fmt.Sprintf("%s failed", operation), Cause: cause}}
}

// Invariant panics with an InternalInvariantViolation.
func Invariant(format string, args ...interface{}) {
	panic(&InternalInvariantViolation{JyotishError{Message: fmt.Sprintf(format, args...)}})
}

// -----------------------------------------------------------------------------

func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

func IsComputationError(err error) bool {
	var target *ComputationError
	return errors.As(err, &target)
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts to execute the operation up to maxRetries times
// with exponential backoff. Input errors are returned immediately; a cancelled
// ctx stops the wait and returns the last error joined with ctx.Err().
func RetryWithBackoff[T any](ctx context.Context, operation string, maxRetries int, baseDelay time.Duration, log *logger.Logger, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	if maxRetries < 1 {
		maxRetries = 1
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}

		lastErr = err
		if IsInputError(err) || attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		if log != nil {
			log.Warning("Attempt %d/%d failed for %s: %v. Retrying in %v", attempt+1, maxRetries, operation, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, errors.Join(lastErr, ctx.Err())
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	mu         sync.Mutex
	errorCount map[string]int
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		Logger:     log.Named("ErrorHandler"),
		errorCount: make(map[string]int),
	}
}

// -----------------------------------------------------------------------------

// Category names the taxonomy bucket of err.
func Category(err error) string {
	var invariant *InternalInvariantViolation
	switch {
	case err == nil:
		return "ok"
	case IsInputError(err):
		return "input"
	case IsComputationError(err):
		return "computation"
	case errors.As(err, &invariant):
		return "invariant"
	default:
		return "internal"
	}
}

// -----------------------------------------------------------------------------

// Handle logs err at a level matching its category and counts it.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	category := Category(err)

	e.mu.Lock()
	e.errorCount[category]++
	e.mu.Unlock()

	if category == "input" {
		e.Logger.Info("Rejected request in %s: %v", context, err)
		return
	}
	e.Logger.Error("Error in %s (%s): %v", context, category, err)
}

// -----------------------------------------------------------------------------

// Counts returns a snapshot of handled errors per category.
func (e *ErrorHandler) Counts() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]int, len(e.errorCount))
	for k, v := range e.errorCount {
		out[k] = v
	}
	return out
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.mu.Lock()
	e.errorCount = make(map[string]int)
	e.mu.Unlock()
}
