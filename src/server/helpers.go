package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"jyotish-chart/src/helpers"
	"jyotish-chart/src/models"
	"jyotish-chart/src/service"

	"github.com/gin-gonic/gin"
)

const (
	maxListLimit   = 500
	computeFailure = "Calculation failed. Verify input data."
)

// chartResponse flattens the chart next to the success flag.
type chartResponse struct {
	Success bool `json:"success"`
	*models.MChart
}

// -----------------------------------------------------------------------------

// errorResponse maps the error taxonomy onto HTTP status codes.
func errorResponse(err error) (int, gin.H) {
	var inputErr *helpers.InputError
	switch {
	case errors.As(err, &inputErr):
		body := gin.H{"error": err.Error()}
		if len(inputErr.Fields) > 0 {
			body["fields"] = inputErr.Fields
		}
		return http.StatusBadRequest, body
	case helpers.IsComputationError(err):
		return http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "note": computeFailure}
	case errors.Is(err, service.ErrArchiveDisabled):
		return http.StatusServiceUnavailable, gin.H{"error": err.Error()}
	default:
		return http.StatusInternalServerError, gin.H{"error": err.Error(), "note": computeFailure}
	}
}

// -----------------------------------------------------------------------------

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer, got %q", raw)
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, nil
}

// -----------------------------------------------------------------------------

// toEvent accepts typed events and summaries as well as generic maps (e.g.
// decoded JSON).
func toEvent(payload interface{}) (*models.MChartEvent, bool) {
	switch v := payload.(type) {
	case *models.MChartEvent:
		return v, v != nil
	case models.MChartEvent:
		return &v, true
	case models.MChartSummary:
		return &models.MChartEvent{Type: EventChartComputed, Summary: &v}, true
	case *models.MChartSummary:
		if v == nil {
			return nil, false
		}
		return &models.MChartEvent{Type: EventChartComputed, Summary: v}, true
	case map[string]interface{}:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		var event models.MChartEvent
		if err := json.Unmarshal(jsonBytes, &event); err != nil || event.Type == "" {
			return nil, false
		}
		return &event, true
	}
	return nil, false
}
