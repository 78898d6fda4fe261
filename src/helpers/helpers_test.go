package helpers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"
)

func intPtr(v int) *int { return &v }

func TestValidateBirthDataAcceptsCompleteInput(t *testing.T) {
	b := models.NewBirthData(1990, 5, 15, 10, 0, 28.6, 77.2, 5.5)
	assert.NoError(t, ValidateBirthData(&b))

	b.Timezone = nil
	assert.NoError(t, ValidateBirthData(&b), "timezone is optional")

	b.Hour = intPtr(0)
	assert.NoError(t, ValidateBirthData(&b), "midnight is a valid hour")
}

func TestValidateBirthDataReportsEveryMissingField(t *testing.T) {
	lat := 10.0
	b := models.MBirthData{Year: intPtr(2000), Latitude: &lat}
	err := ValidateBirthData(&b)
	require.Error(t, err)
	assert.True(t, IsInputError(err))

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.ElementsMatch(t, []string{"month", "day", "hour", "minute", "longitude"}, inputErr.Fields)
	assert.Contains(t, err.Error(), "month is required")
}

func TestValidateBirthDataRanges(t *testing.T) {
	b := models.NewBirthData(1990, 13, 15, 24, 0, 95, 77.2, 0)
	err := ValidateBirthData(&b)
	require.True(t, IsInputError(err))
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.ElementsMatch(t, []string{"month", "hour", "latitude"}, inputErr.Fields)
}

func TestValidateBirthDataRejectsImpossibleDate(t *testing.T) {
	b := models.NewBirthData(2001, 2, 29, 10, 0, 0, 0, 0)
	err := ValidateBirthData(&b)
	require.True(t, IsInputError(err))
	assert.Contains(t, err.Error(), "does not exist")

	assert.True(t, IsInputError(ValidateBirthData(nil)))
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("boom")
	comp := NewComputationError("annual return", cause)
	assert.True(t, IsComputationError(comp))
	assert.False(t, IsInputError(comp))
	assert.ErrorIs(t, comp, cause)
	assert.Equal(t, "annual return failed: boom", comp.Error())

	wrapped := fmt.Errorf("calculate: %w", NewInputError("bad"))
	assert.True(t, IsInputError(wrapped))
	assert.Equal(t, "input", Category(wrapped))
	assert.Equal(t, "computation", Category(comp))
	assert.Equal(t, "internal", Category(cause))
}

func TestInvariantPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		violation, ok := r.(*InternalInvariantViolation)
		require.True(t, ok)
		assert.Contains(t, violation.Error(), "sign 12")
	}()
	Invariant("sign %d out of range", 12)
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	res, err := RetryWithBackoff(context.Background(), "flaky", 3, time.Millisecond, logger.NewNop(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, res)
	assert.Equal(t, 3, calls)

	calls = 0
	_, err = RetryWithBackoff(context.Background(), "input", 5, time.Millisecond, nil, func() (int, error) {
		calls++
		return 0, NewInputError("bad")
	})
	assert.True(t, IsInputError(err))
	assert.Equal(t, 1, calls, "input errors are not retried")
}

func TestRetryWithBackoffStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	start := time.Now()
	_, err := RetryWithBackoff(ctx, "cancelled", 5, time.Hour, nil, func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("transient")
	})
	assert.Less(t, time.Since(start), time.Minute, "the backoff wait must not outlive the context")
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorContains(t, err, "transient")
}

func TestErrorHandlerCounts(t *testing.T) {
	h := NewErrorHandler(logger.NewNop())
	h.Handle(NewInputError("bad"), "test")
	h.Handle(NewComputationError("x", nil), "test")
	h.Handle(NewComputationError("y", nil), "test")
	h.Handle(nil, "test")

	assert.Equal(t, map[string]int{"input": 1, "computation": 2}, h.Counts())
	h.ResetErrorCount()
	assert.Empty(t, h.Counts())
}

// -----------------------------------------------------------------------------

func TestResourceUsage(t *testing.T) {
	usage := ResourceUsage()
	assert.GreaterOrEqual(t, usage.SystemMemoryMB, 0)
	assert.Greater(t, usage.HeapAllocMB, 0.0)
	assert.Greater(t, usage.Goroutines, 0)
	assert.Greater(t, usage.CPUs, 0)
}
