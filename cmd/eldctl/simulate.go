package main

import (
	"eld-log-service/internal/domain"
	"eld-log-service/internal/geo"
	"eld-log-service/internal/services"
	"eld-log-service/internal/timefmt"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// routeFile is the simulate input. FuelStops is computed when absent.
type routeFile struct {
	Segments  []domain.RouteSegment `json:"segments"`
	FuelStops []domain.FuelStop     `json:"fuel_stops"`
}

type simulateOutput struct {
	LogEntries []domain.LogEntry `json:"log_entries"`
	DailyLogs  []domain.DailyLog `json:"daily_logs"`
}

type simulateOpts struct {
	routePath    string
	cycleUsed    float64
	start        string
	fuelInterval float64
	now          func() time.Time
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOpts{now: time.Now}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a driver timeline over a route file",
		Long: `Reads {"segments": [...], "fuel_stops": [...]} from --route ("-" for stdin)
and prints the simulated log entries and daily logs as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.routePath, "route", "", "route JSON file, or - for stdin (required)")
	cmd.Flags().Float64Var(&opts.cycleUsed, "cycle-used", 0, "hours already used in the 70-hour/8-day cycle")
	cmd.Flags().StringVar(&opts.start, "start", "", "trip start time (ISO-8601, default now)")
	cmd.Flags().Float64Var(&opts.fuelInterval, "fuel-interval", domain.DefaultFuelIntervalMiles, "miles between fuel stops when the route has none")
	_ = cmd.MarkFlagRequired("route")

	return cmd
}

func runSimulate(stdin io.Reader, out io.Writer, opts simulateOpts) error {
	if opts.cycleUsed < 0 || opts.cycleUsed > domain.MaxCycleHours {
		return fmt.Errorf("--cycle-used must be between 0 and %.0f", domain.MaxCycleHours)
	}
	if opts.fuelInterval <= 0 {
		return errors.New("--fuel-interval must be positive")
	}

	start := opts.now().UTC()
	if opts.start != "" {
		t, ok := timefmt.ParseStrict(opts.start)
		if !ok {
			return fmt.Errorf("--start: cannot parse %q", opts.start)
		}
		start = t
	}

	rf, err := readRoute(stdin, opts.routePath)
	if err != nil {
		return err
	}
	if len(rf.Segments) == 0 {
		return errors.New("route has no segments")
	}
	if rf.FuelStops == nil {
		rf.FuelStops = geo.PlaceFuelStops(rf.Segments, opts.fuelInterval)
	}

	entries := services.Simulate(rf.Segments, rf.FuelStops, opts.cycleUsed, start)

	first, last := rf.Segments[0], rf.Segments[len(rf.Segments)-1]
	pickup := ""
	if len(rf.Segments) > 1 {
		pickup = first.To
	}

	res := simulateOutput{
		LogEntries: entries,
		DailyLogs:  services.BuildDailyLogs(entries, first.From, pickup, last.To),
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func readRoute(stdin io.Reader, path string) (*routeFile, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open route: %w", err)
		}
		defer f.Close()
		r = f
	}

	var rf routeFile
	if err := json.NewDecoder(r).Decode(&rf); err != nil {
		return nil, fmt.Errorf("decode route %s: %w", path, err)
	}
	return &rf, nil
}
