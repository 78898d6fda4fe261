package core

import (
	"fmt"
	"math"

	"jyotish-chart/src/helpers"
	m "jyotish-chart/src/models"
)

// meanSolarMotion is used when the provider reports a non-positive solar speed.
const meanSolarMotion = 0.9856

// SunFunc returns the sidereal longitude and daily speed of the Sun at a Julian Day.
type SunFunc func(jd float64) (lon float64, speed float64, err error)

// SolarReturn is the converged instant of an annual return.
type SolarReturn struct {
	JulianDay    float64
	SunLongitude float64
	Iterations   int
}

// -----------------------------------------------------------------------------

// SolveSolarReturn refines startJD until the Sun is within tolerance of the
// natal solar longitude. Each step divides the remaining arc by the current
// solar speed. Failing to converge within maxIterations is a ComputationError.
func SolveSolarReturn(startJD, natalSun, tolerance float64, maxIterations int, sun SunFunc) (SolarReturn, error) {
	jd := startJD
	for i := 1; i <= maxIterations; i++ {
		lon, speed, err := sun(jd)
		if err != nil {
			return SolarReturn{}, helpers.NewComputationError("annual return", err)
		}
		diff := AngularDiff(lon, natalSun)
		if math.Abs(diff) < tolerance {
			return SolarReturn{JulianDay: jd, SunLongitude: lon, Iterations: i}, nil
		}
		if speed <= 0 {
			speed = meanSolarMotion
		}
		jd += diff / speed
	}
	return SolarReturn{}, helpers.NewComputationError("annual return",
		fmt.Errorf("no convergence within %d iterations (tolerance %.4f°)", maxIterations, tolerance))
}

// -----------------------------------------------------------------------------

// Muntha progresses one sign per year from the natal ascendant sign.
func Muntha(natalAsc m.Sign, yearsElapsed int) m.Sign {
	return natalAsc.Add(yearsElapsed)
}
