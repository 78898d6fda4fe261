package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"jyotish-chart/src/analysis"
	"jyotish-chart/src/ephemeris"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"

	"github.com/spf13/cobra"
)

type chartFlags struct {
	date    string
	clock   string
	lat     float64
	lon     float64
	tz      float64
	transit string
	year    int
	pretty  bool
}

func newChartCmd() *cobra.Command {
	f := &chartFlags{}
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute one chart and print it as JSON",
		Example: "  jyotish chart --date 1990-05-15 --time 10:00 --lat 28.6139 --lon 77.209 --tz 5.5\n" +
			"  jyotish chart --date 1990-05-15 --time 10:00 --lat 28.6139 --lon 77.209 --transit 2024-06-01 --year 2024",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			birth, err := f.birthData(cmd)
			if err != nil {
				return err
			}

			ephConfig, err := ephemeris.NewConfig(conf.Ephemeris)
			if err != nil {
				return fmt.Errorf("invalid ephemeris config: %w", err)
			}

			// stdout carries the JSON document, so logs stay silent
			log := logger.NewNop()
			facade := analysis.NewChartFacade(conf.Chart, ephemeris.NewProvider(ephConfig, log), string(ephConfig.SiderealMode()), log)

			chart, err := facade.Calculate(cmd.Context(), birth)
			if err != nil {
				return err
			}
			return writeJSON(cmd, chart, f.pretty)
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "birth date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.clock, "time", "", "local birth time as HH:MM")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude in degrees, north positive")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "longitude in degrees, east positive")
	cmd.Flags().Float64Var(&f.tz, "tz", 0, "UTC offset in hours (defaults to 0)")
	cmd.Flags().StringVar(&f.transit, "transit", "", "transit instant as YYYY-MM-DD or RFC3339 (defaults to now)")
	cmd.Flags().IntVar(&f.year, "year", 0, "annual return year (defaults to the transit year)")
	cmd.Flags().BoolVar(&f.pretty, "pretty", true, "indent the JSON output")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

// -----------------------------------------------------------------------------

// birthData only splits the flags into fields; range checks are left to the
// facade so the CLI reports the same input errors as the API.
func (f *chartFlags) birthData(cmd *cobra.Command) (models.MBirthData, error) {
	var year, month, day, hour, minute int
	if _, err := fmt.Sscanf(f.date, "%d-%d-%d", &year, &month, &day); err != nil {
		return models.MBirthData{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", f.date)
	}
	if _, err := fmt.Sscanf(f.clock, "%d:%d", &hour, &minute); err != nil {
		return models.MBirthData{}, fmt.Errorf("invalid --time %q: expected HH:MM", f.clock)
	}

	birth := models.NewBirthData(year, month, day, hour, minute, f.lat, f.lon, f.tz)
	if !cmd.Flags().Changed("tz") {
		birth.Timezone = nil
	}

	if f.transit != "" {
		transit, err := parseInstant(f.transit)
		if err != nil {
			return models.MBirthData{}, err
		}
		birth.TransitDate = &transit
	}
	if cmd.Flags().Changed("year") {
		year := f.year
		birth.AnnualReturnYear = &year
	}
	return birth, nil
}

func parseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --transit %q: expected YYYY-MM-DD or RFC3339", raw)
}

// -----------------------------------------------------------------------------

func writeJSON(cmd *cobra.Command, v interface{}, indent bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
