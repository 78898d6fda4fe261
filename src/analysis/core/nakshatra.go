package core

import (
	"math"

	m "jyotish-chart/src/models"
)

// -----------------------------------------------------------------------------

// NakshatraOf locates the lunar mansion and pada of a sidereal longitude.
func NakshatraOf(lon float64) m.MNakshatraPosition {
	lon = Normalize(lon)
	idx := int(math.Floor(lon / NakshatraSpan))
	if idx >= NumNakshatras {
		idx = NumNakshatras - 1
	}
	progress := lon - float64(idx)*NakshatraSpan
	if progress < 0 {
		progress = 0
	}
	pada := int(math.Floor(progress/PadaSpan)) + 1
	if pada > 4 {
		pada = 4
	}

	return m.MNakshatraPosition{
		Index:    idx,
		Name:     NakshatraNames[idx],
		Lord:     DashaOrder[idx%m.NumBodies],
		Pada:     pada,
		Progress: progress,
	}
}
