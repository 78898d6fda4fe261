package models

import (
	"fmt"
	"time"
)

// MBirthData is the request payload for a chart calculation. Pointer fields
// distinguish "missing" from a legitimate zero (hour 0, latitude 0).
type MBirthData struct {
	Year      *int     `json:"year" validate:"required,min=1,max=9999"`
	Month     *int     `json:"month" validate:"required,min=1,max=12"`
	Day       *int     `json:"day" validate:"required,min=1,max=31"`
	Hour      *int     `json:"hour" validate:"required,min=0,max=23"`
	Minute    *int     `json:"minute" validate:"required,min=0,max=59"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Timezone  *float64 `json:"timezone" validate:"omitempty,min=-14,max=14"`

	// Optional: defaults to the calculation instant.
	TransitDate *time.Time `json:"transit_date,omitempty"`
	// Optional: defaults to the year of the transit date.
	AnnualReturnYear *int `json:"annual_return_year,omitempty" validate:"omitempty,min=1,max=9999"`
}

// -----------------------------------------------------------------------------

// TimezoneHours returns the UTC offset, defaulting to 0 when absent.
func (b MBirthData) TimezoneHours() float64 {
	if b.Timezone == nil {
		return 0
	}
	return *b.Timezone
}

// -----------------------------------------------------------------------------

// UTCHour converts the local clock time into fractional UTC hours on the birth
// date. The result may fall outside 0..24; Julian Day arithmetic absorbs it.
func (b MBirthData) UTCHour() float64 {
	return float64(*b.Hour) + float64(*b.Minute)/60 - b.TimezoneHours()
}

// -----------------------------------------------------------------------------

// Instant returns the birth moment in UTC. Callers must validate first.
func (b MBirthData) Instant() time.Time {
	offset := int(b.TimezoneHours() * 3600)
	loc := time.FixedZone(fmt.Sprintf("UTC%+.2f", b.TimezoneHours()), offset)
	return time.Date(*b.Year, time.Month(*b.Month), *b.Day, *b.Hour, *b.Minute, 0, 0, loc).UTC()
}

// -----------------------------------------------------------------------------

// NewBirthData builds a fully populated request; handy for CLI and tests.
func NewBirthData(year, month, day, hour, minute int, lat, lon, tz float64) MBirthData {
	return MBirthData{
		Year:      &year,
		Month:     &month,
		Day:       &day,
		Hour:      &hour,
		Minute:    &minute,
		Latitude:  &lat,
		Longitude: &lon,
		Timezone:  &tz,
	}
}
