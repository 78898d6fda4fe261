package models

import "time"

// MChartRecord is one archived calculation: the request and its output.
type MChartRecord struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Birth     MBirthData `json:"birth"`
	Chart     *MChart    `json:"chart"`
}

// MChartSummary is the listing view of an archived chart.
type MChartSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	BirthInstant time.Time `json:"birth_instant"`
	Location     string    `json:"location"`
	LagnaSign    Sign      `json:"lagna_sign"`
	MoonSign     Sign      `json:"moon_sign"`
}

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

// MChartEvent is pushed to websocket clients.
type MChartEvent struct {
	Type    string         `json:"type"` // CHART, CHART_COMPUTED or ERROR
	Chart   *MChart        `json:"chart,omitempty"`
	Summary *MChartSummary `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// MClientCommand is a message sent by a websocket client.
type MClientCommand struct {
	Command string      `json:"command"` // calculate or ping
	Birth   *MBirthData `json:"birth,omitempty"`
}

// MServiceStatus is reported by the health endpoint and the gRPC status call.
type MServiceStatus struct {
	Name          string         `json:"name"`
	Status        string         `json:"status"`
	Ephemeris     string         `json:"ephemeris"`
	SiderealMode  string         `json:"sidereal_mode"`
	NodePolicy    NodePolicy     `json:"node_policy"`
	Archive       string         `json:"archive"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Errors        map[string]int `json:"errors"`
	Resources     MResourceUsage `json:"resources"`
}

type MResourceUsage struct {
	SystemMemoryMB int     `json:"system_memory_mb"`
	HeapAllocMB    float64 `json:"heap_alloc_mb"`
	Goroutines     int     `json:"goroutines"`
	CPUs           int     `json:"cpus"`
}
