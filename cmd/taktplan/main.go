// cmd/taktplan/main.go
//
// This is the entry point for the taktplan CLI.
// `taktplan <plan.yaml> <simulation.yaml>` runs one scheduling simulation and
// prints the schedule table; -json emits machine-readable output and -tui
// opens the interactive viewer instead.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/haldenkamp/taktplan/internal/config"
	"github.com/haldenkamp/taktplan/internal/logbook"
	"github.com/haldenkamp/taktplan/internal/plan"
	"github.com/haldenkamp/taktplan/internal/report"
	"github.com/haldenkamp/taktplan/internal/schedule"
	"github.com/haldenkamp/taktplan/internal/tui"
)

func main() {
	var (
		startFlag = flag.String("start", "", "project start date (YYYY-MM-DD, default today)")
		jsonFlag  = flag.Bool("json", false, "emit the run summary as JSON")
		tuiFlag   = flag.Bool("tui", false, "open the interactive schedule viewer")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: taktplan [flags] <plan.yaml> <simulation.yaml>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Arg(1), *startFlag, *jsonFlag, *tuiFlag); err != nil {
		fmt.Fprintf(os.Stderr, "taktplan: %v\n", err)
		os.Exit(1)
	}
}

func run(planPath, simPath, startDate string, asJSON, asTUI bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	if err := config.InitTaktplanDir(cwd); err != nil {
		return fmt.Errorf("initialize %s directory: %w", config.TaktplanDir, err)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		return err
	}

	journal, err := logbook.New(cfg.RunLogPath())
	if err != nil {
		return fmt.Errorf("open run journal: %w", err)
	}

	p, err := plan.LoadFile(planPath)
	if err != nil {
		return err
	}
	input, err := plan.LoadSimulationFile(simPath)
	if err != nil {
		return err
	}

	start, err := parseStart(startDate)
	if err != nil {
		return err
	}

	costing := cfg.Costing()
	scheduler, err := schedule.New(p, input, schedule.WithDefaultCosting(schedule.Costing{
		DailyHours: costing.DailyHours,
		Holders:    costing.Holders,
		HourlyCost: costing.HourlyCost,
	}))
	if err != nil {
		journal.RunFailed(p.ID, err)
		return err
	}

	journal.RunStarted(p.ID, len(p.Activities))
	result, err := scheduler.Run(start)
	if err != nil {
		journal.RunFailed(p.ID, err)
		return err
	}
	journal.RunCompleted(result.RunID, p.ID, len(result.Entries), result.TotalCost)

	summary := report.Summarize(p, result, cfg.CostThreshold())

	switch {
	case asTUI:
		return tui.Run(summary)
	case asJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	default:
		fmt.Print(summary.Render())
		return nil
	}
}

func parseStart(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	start, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse -start %q: %w", value, err)
	}
	return start, nil
}
