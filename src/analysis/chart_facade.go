package analysis

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jyotish-chart/src/analysis/core"
	"jyotish-chart/src/helpers"
	"jyotish-chart/src/interfaces"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"
)

var j2000Epoch = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// ChartFacade runs the derivation pipeline: positions are fetched and
// classified per body in parallel, then every chart-wide component runs over
// the aggregated record.
type ChartFacade struct {
	Config       models.MChartConfig
	Ephemeris    interfaces.IEphemeris
	SiderealMode string
	Logger       *logger.Logger
	Now          func() time.Time
}

// rawPosition is one body's sidereal position before classification.
type rawPosition struct {
	lon   float64
	speed float64
}

// -----------------------------------------------------------------------------

func NewChartFacade(cfg models.MChartConfig, eph interfaces.IEphemeris, siderealMode string, log *logger.Logger) *ChartFacade {
	return &ChartFacade{
		Config:       cfg,
		Ephemeris:    eph,
		SiderealMode: siderealMode,
		Logger:       log,
		Now:          time.Now,
	}
}

// -----------------------------------------------------------------------------

// Calculate derives a complete chart. Invalid input is rejected with an
// InputError before the ephemeris is consulted.
func (f *ChartFacade) Calculate(ctx context.Context, birth models.MBirthData) (*models.MChart, error) {
	if err := helpers.ValidateBirthData(&birth); err != nil {
		return nil, err
	}

	jd, err := f.Ephemeris.JulianDay(ctx, *birth.Year, *birth.Month, *birth.Day, birth.UTCHour())
	if err != nil {
		return nil, asComputation("julian day", err)
	}
	ayanamsa, err := f.Ephemeris.Ayanamsa(ctx, jd)
	if err != nil {
		return nil, asComputation("ayanamsa", err)
	}
	ascTropical, err := f.Ephemeris.Ascendant(ctx, jd, *birth.Latitude, *birth.Longitude)
	if err != nil {
		return nil, asComputation("ascendant", err)
	}
	asc := core.ToSidereal(ascTropical, ayanamsa)

	raw, err := f.positions(ctx, jd, ayanamsa)
	if err != nil {
		return nil, err
	}
	grahas, err := f.classify(ctx, raw, asc)
	if err != nil {
		return nil, err
	}

	// Fan-in barrier: everything below needs the whole chart.
	lagna := f.lagna(asc)
	g := core.IndexGrahas(grahas)
	instant := birth.Instant()
	now := f.Now().UTC()
	asOf := now
	if birth.TransitDate != nil {
		asOf = birth.TransitDate.UTC()
	}

	chart := &models.MChart{
		ID:       uuid.NewString(),
		Metadata: f.metadata(birth, jd, instant, now),
		Ayanamsa: ayanamsa,
		Lagna:    lagna,
		Grahas:   grahas,
	}

	chart.Yogas = core.DetectYogas(lagna.Sign, grahas)

	chart.Dasha = core.BuildDashaSchedule(g[models.Moon].Longitude, instant)
	chart.Dasha.Current = core.CurrentDasha(chart.Dasha, asOf)

	chart.Shadbala = core.Shadbala(grahas)
	chart.Ashtakavarga = core.Ashtakavarga(lagna.Sign, grahas)

	if chart.Transits, err = f.transits(ctx, grahas, asOf); err != nil {
		return nil, err
	}

	year := asOf.Year()
	if birth.AnnualReturnYear != nil {
		year = *birth.AnnualReturnYear
	}
	if chart.AnnualReturn, err = f.annualReturn(ctx, birth, g[models.Sun].Longitude, lagna.Sign, year); err != nil {
		return nil, err
	}

	houses := make(map[models.Body]int, len(grahas))
	for _, p := range grahas {
		houses[p.Body] = p.House
	}
	chart.Argala, chart.ArgalaTotal = core.Argala(houses, f.Config.ArgalaLimit)
	chart.Arudha = core.Arudhas(lagna.Sign, grahas, f.Config.ArudhaException)

	f.Logger.Debug("Chart %s: lagna %s, moon nakshatra %s, %d yogas",
		chart.ID, lagna.Rashi, chart.Dasha.Nakshatra.Name, len(chart.Yogas))
	return chart, nil
}

// -----------------------------------------------------------------------------

// positions fetches the eight served bodies concurrently and derives Ketu.
func (f *ChartFacade) positions(ctx context.Context, jd, ayanamsa float64) ([models.NumBodies]rawPosition, error) {
	var out [models.NumBodies]rawPosition
	eg, gctx := errgroup.WithContext(ctx)

	for _, b := range models.AllBodies {
		if b == models.Ketu {
			continue
		}
		b := b
		eg.Go(func() error {
			lon, speed, err := f.Ephemeris.TropicalLongitudeAndSpeed(gctx, jd, b)
			if err != nil {
				return asComputation(fmt.Sprintf("position of %s", b), err)
			}
			out[b] = rawPosition{lon: core.ToSidereal(lon, ayanamsa), speed: speed}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return out, err
	}

	ketuLon, ketuSpeed := core.NodeOpposite(out[models.Rahu].lon, out[models.Rahu].speed)
	out[models.Ketu] = rawPosition{lon: ketuLon, speed: ketuSpeed}
	return out, nil
}

// -----------------------------------------------------------------------------

// classify fans out varga, dignity, house and aspect derivation per body. A
// panic inside a worker is re-raised on the calling goroutine.
func (f *ChartFacade) classify(ctx context.Context, raw [models.NumBodies]rawPosition, asc float64) ([]models.MGrahaPosition, error) {
	out := make([]models.MGrahaPosition, models.NumBodies)
	eg, _ := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var panicked interface{}

	for _, b := range models.AllBodies {
		b := b
		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					panicked = r
					mu.Unlock()
				}
			}()
			out[b] = f.graha(b, raw[b], asc)
			return nil
		})
	}
	err := eg.Wait()
	if panicked != nil {
		panic(panicked)
	}
	return out, err
}

// -----------------------------------------------------------------------------

func (f *ChartFacade) graha(b models.Body, pos rawPosition, asc float64) models.MGrahaPosition {
	sign := core.SignOf(pos.lon)
	house := core.HouseOf(pos.lon, asc)
	return models.MGrahaPosition{
		Body:             b,
		Longitude:        pos.lon,
		Speed:            pos.speed,
		Sign:             sign,
		Rashi:            sign.String(),
		Degree:           core.DegreeInSign(pos.lon),
		Nakshatra:        core.NakshatraOf(pos.lon),
		House:            house,
		Bhava:            models.HouseName(house),
		Dignity:          core.ClassifyDignity(b, sign, f.Config.NodePolicy),
		FunctionalNature: core.FunctionalNatureOf(b, f.Config.NodePolicy),
		Retrograde:       !b.IsNode() && pos.speed < 0,
		Vargas:           core.AllVargas(pos.lon),
		Drishti:          core.AspectDistances(b),
		AspectedHouses:   core.AspectedHouses(b, house),
	}
}

// -----------------------------------------------------------------------------

func (f *ChartFacade) lagna(asc float64) models.MLagna {
	sign := core.SignOf(asc)
	navamsa, _ := core.VargaSign(asc, 9)
	return models.MLagna{
		Longitude:    asc,
		Sign:         sign,
		Rashi:        sign.String(),
		Degree:       core.DegreeInSign(asc),
		Lord:         core.LordOf(sign),
		NavamsaSign:  navamsa,
		NavamsaRashi: navamsa.String(),
		Nakshatra:    core.NakshatraOf(asc),
	}
}

// -----------------------------------------------------------------------------

func (f *ChartFacade) transits(ctx context.Context, natal []models.MGrahaPosition, asOf time.Time) (models.MTransitReport, error) {
	jd := julianDayOf(asOf)
	ayanamsa, err := f.Ephemeris.Ayanamsa(ctx, jd)
	if err != nil {
		return models.MTransitReport{}, asComputation("transit ayanamsa", err)
	}
	raw, err := f.positions(ctx, jd, ayanamsa)
	if err != nil {
		return models.MTransitReport{}, err
	}

	current := make(map[models.Body]float64, models.NumBodies)
	for _, b := range models.AllBodies {
		current[b] = raw[b].lon
	}
	return models.MTransitReport{AsOf: asOf, Transits: core.Transits(natal, current)}, nil
}

// -----------------------------------------------------------------------------

// annualReturn starts from the birthday in the target year and solves for
// the instant the Sun returns to its natal sidereal longitude.
func (f *ChartFacade) annualReturn(ctx context.Context, birth models.MBirthData, natalSun float64, natalAsc models.Sign, year int) (models.MAnnualReturn, error) {
	startJD, err := f.Ephemeris.JulianDay(ctx, year, *birth.Month, *birth.Day, birth.UTCHour())
	if err != nil {
		return models.MAnnualReturn{}, asComputation("annual return", err)
	}

	sun := func(jd float64) (float64, float64, error) {
		lon, speed, err := f.Ephemeris.TropicalLongitudeAndSpeed(ctx, jd, models.Sun)
		if err != nil {
			return 0, 0, err
		}
		ayanamsa, err := f.Ephemeris.Ayanamsa(ctx, jd)
		if err != nil {
			return 0, 0, err
		}
		return core.ToSidereal(lon, ayanamsa), speed, nil
	}

	cfg := f.Config.AnnualReturn
	solved, err := core.SolveSolarReturn(startJD, natalSun, cfg.ToleranceDeg, cfg.MaxIterations, sun)
	if err != nil {
		f.Logger.Warning("Annual return %d did not converge: %v", year, err)
		return models.MAnnualReturn{}, err
	}

	ayanamsa, err := f.Ephemeris.Ayanamsa(ctx, solved.JulianDay)
	if err != nil {
		return models.MAnnualReturn{}, asComputation("annual return", err)
	}
	ascTropical, err := f.Ephemeris.Ascendant(ctx, solved.JulianDay, *birth.Latitude, *birth.Longitude)
	if err != nil {
		return models.MAnnualReturn{}, asComputation("annual return", err)
	}
	asc := core.ToSidereal(ascTropical, ayanamsa)
	ascSign := core.SignOf(asc)
	muntha := core.Muntha(natalAsc, year-*birth.Year)

	return models.MAnnualReturn{
		Year:               year,
		JulianDay:          solved.JulianDay,
		Instant:            timeOfJulianDay(solved.JulianDay),
		SunLongitude:       solved.SunLongitude,
		Iterations:         solved.Iterations,
		AscendantLongitude: asc,
		AscendantSign:      ascSign,
		AscendantRashi:     ascSign.String(),
		YearLord:           core.LordOf(ascSign),
		MunthaSign:         muntha,
		MunthaRashi:        muntha.String(),
	}, nil
}

// -----------------------------------------------------------------------------

func (f *ChartFacade) metadata(birth models.MBirthData, jd float64, instant, now time.Time) models.MChartMetadata {
	return models.MChartMetadata{
		Date:         fmt.Sprintf("%04d-%02d-%02d", *birth.Year, *birth.Month, *birth.Day),
		Time:         fmt.Sprintf("%02d:%02d", *birth.Hour, *birth.Minute),
		Location:     FormatLocation(*birth.Latitude, *birth.Longitude),
		Timezone:     birth.TimezoneHours(),
		JulianDay:    jd,
		BirthInstant: instant,
		ComputedAt:   now,
		SiderealMode: f.SiderealMode,
		NodePolicy:   f.Config.NodePolicy,
	}
}

// FormatLocation renders coordinates as "28.6139°N, 77.2090°E".
func FormatLocation(lat, lon float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns = "S"
	}
	if lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f°%s, %.4f°%s", math.Abs(lat), ns, math.Abs(lon), ew)
}

// -----------------------------------------------------------------------------

func julianDayOf(t time.Time) float64 {
	return 2451545.0 + t.Sub(j2000Epoch).Hours()/24
}

func timeOfJulianDay(jd float64) time.Time {
	return j2000Epoch.Add(time.Duration((jd - 2451545.0) * 24 * float64(time.Hour))).Round(time.Second)
}

// asComputation keeps typed errors and wraps anything else as a ComputationError.
func asComputation(op string, err error) error {
	if helpers.IsComputationError(err) || helpers.IsInputError(err) {
		return err
	}
	return helpers.NewComputationError(op, err)
}
