package core

import (
	"math"
	"time"

	m "jyotish-chart/src/models"
)

const (
	daysPerMonth = 30.4375
	dashaLevels  = 3
)

// -----------------------------------------------------------------------------

// DashaBalance returns the birth nakshatra and the unexpired years of its
// lord's Mahadasha.
func DashaBalance(moonLon float64) (m.MNakshatraPosition, float64) {
	nak := NakshatraOf(moonLon)
	years := DashaYears[nak.Lord]
	return nak, years * (NakshatraSpan - nak.Progress) / NakshatraSpan
}

// -----------------------------------------------------------------------------

// BuildDashaSchedule lays out nine Mahadashas from birth, the first one
// truncated to the balance, each split into Antardashas and Pratyantardashas.
func BuildDashaSchedule(moonLon float64, birth time.Time) m.MDashaSchedule {
	nak, balance := DashaBalance(moonLon)
	startIdx := dashaIndex(nak.Lord)

	mahadashas := make([]m.MDashaPeriod, 0, m.NumBodies)
	cursor := birth
	for i := 0; i < m.NumBodies; i++ {
		lord := DashaOrder[(startIdx+i)%m.NumBodies]
		years := DashaYears[lord]
		if i == 0 {
			years = balance
		}
		period := newPeriod(lord, cursor, AddYears(cursor, years), years, 1)
		mahadashas = append(mahadashas, period)
		cursor = period.End
	}

	return m.MDashaSchedule{
		Nakshatra:    nak,
		BalanceYears: balance,
		Mahadashas:   mahadashas,
	}
}

// -----------------------------------------------------------------------------

// newPeriod builds one period over [start, end) and, below the last level,
// its nine children. Each child receives parent × years(child)/120 so the
// children always sum to the parent, including the truncated first
// Mahadasha. Child ends are offsets from the parent start and the last child
// ends exactly at end, so every level tiles its parent without gaps.
func newPeriod(lord m.Body, start, end time.Time, years float64, level int) m.MDashaPeriod {
	p := m.MDashaPeriod{
		Lord:          lord,
		Start:         start,
		End:           end,
		DurationYears: years,
	}
	if level >= dashaLevels {
		return p
	}

	p.SubPeriods = make([]m.MDashaPeriod, 0, m.NumBodies)
	idx := dashaIndex(lord)
	cursor := start
	elapsed := 0.0
	for i := 0; i < m.NumBodies; i++ {
		sub := DashaOrder[(idx+i)%m.NumBodies]
		subYears := years * DashaYears[sub] / DashaCycleYears
		elapsed += subYears

		subEnd := end
		if i < m.NumBodies-1 {
			subEnd = AddYears(start, elapsed)
		}
		// month-end normalization in AddYears can step back a day or two
		if subEnd.Before(cursor) {
			subEnd = cursor
		}
		p.SubPeriods = append(p.SubPeriods, newPeriod(sub, cursor, subEnd, subYears, level+1))
		cursor = subEnd
	}
	return p
}

func dashaIndex(lord m.Body) int {
	for i, b := range DashaOrder {
		if b == lord {
			return i
		}
	}
	return 0
}

// -----------------------------------------------------------------------------

// AddYears advances t by whole years, whole months, then the remaining
// fraction of a month as days.
func AddYears(t time.Time, years float64) time.Time {
	whole := math.Floor(years)
	months := (years - whole) * 12
	wholeMonths := math.Floor(months)
	days := (months - wholeMonths) * daysPerMonth

	out := t.AddDate(int(whole), int(wholeMonths), 0)
	return out.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// -----------------------------------------------------------------------------

// CurrentDasha finds the running Maha/Antar/Pratyantar lords at an instant.
// It returns nil when the instant is outside the schedule.
func CurrentDasha(s m.MDashaSchedule, at time.Time) *m.MCurrentDasha {
	maha, ok := findPeriod(s.Mahadashas, at)
	if !ok {
		return nil
	}
	antar, ok := findPeriod(maha.SubPeriods, at)
	if !ok {
		return nil
	}
	pratyantar, ok := findPeriod(antar.SubPeriods, at)
	if !ok {
		return nil
	}
	return &m.MCurrentDasha{
		AsOf:            at,
		Mahadasha:       maha.Lord,
		Antardasha:      antar.Lord,
		Pratyantardasha: pratyantar.Lord,
	}
}

func findPeriod(periods []m.MDashaPeriod, at time.Time) (m.MDashaPeriod, bool) {
	for _, p := range periods {
		if !at.Before(p.Start) && at.Before(p.End) {
			return p, true
		}
	}
	return m.MDashaPeriod{}, false
}
