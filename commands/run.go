package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opslock/weeklock/audit"
	"github.com/opslock/weeklock/config"
	"github.com/opslock/weeklock/lock"
	"github.com/opslock/weeklock/metrics"
	"github.com/opslock/weeklock/smartsheet"
)

var RunCmd = Run{
	config: DEFAULT_CONFIG,
	file:   "",
	dryrun: false,
	debug:  false,
}

// Run scans the configured sheets and locks every unlocked row whose
// week-ending date falls on or before the end of the current week.
type Run struct {
	config string
	file   string
	dryrun bool
	debug  bool
}

func (cmd *Run) Name() string {
	return "run"
}

func (cmd *Run) Description() string {
	return "Locks all rows with a week-ending date on or before the upcoming Sunday"
}

func (cmd *Run) Usage() string {
	return "--config <file> --file <file>"
}

func (cmd *Run) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] run [options]\n", APP)
	fmt.Println()
	fmt.Println("  Locks the rows of the configured sheets whose week-ending date has passed and")
	fmt.Println("  writes a CSV log of every row locked")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s run --config /etc/weeklock/weeklock.yaml\n", APP)
	fmt.Printf("    %s run --dry-run\n", APP)
	fmt.Println()
}

func (cmd *Run) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("run", flag.ExitOnError)

	flagset.StringVar(&cmd.config, "config", cmd.config, "Configuration file path")
	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV log file. Defaults to the configured log file")
	flagset.BoolVar(&cmd.dryrun, "dry-run", cmd.dryrun, "Reports the rows that would be locked without locking them")

	return flagset
}

func (cmd *Run) Execute(args ...interface{}) error {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok {
			cmd.debug = options.Debug
		}
	}

	if err := godotenv.Load(); err != nil && cmd.debug {
		debugf("no .env file loaded (%v)", err)
	}

	cfg, err := config.Load(cmd.config)
	if err != nil {
		return err
	}

	if cmd.file != "" {
		cfg.LogFile = cmd.file
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Token == config.TokenPlaceholder {
		warnf("no API token configured - set SMARTSHEET_API_TOKEN")
	}

	location, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone '%s' (%v)", cfg.Timezone, err)
	}

	registry := metrics.NewRegistry()
	metrics.Register(registry)

	if cfg.Metrics != "" {
		go func() {
			if err := http.ListenAndServe(cfg.Metrics, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})); err != nil {
				warnf("metrics endpoint unavailable (%v)", err)
			}
		}()
	}

	run := uuid.New()
	cutoff := lock.Cutoff(time.Now(), location)

	infof("run %s: locking rows dated on or before %s in %d sheets", run, cutoff.Format("2006-01-02"), len(cfg.Sheets))

	if cmd.debug {
		debugf("configuration - column:'%s'  batch size:%d  workers:%d  timeout:%v", cfg.Column, cfg.BatchSize, cfg.Workers, cfg.Timeout.Duration())
	}

	runner := lock.Runner{
		API:        smartsheet.NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout.Duration()),
		Column:     cfg.Column,
		Cutoff:     cutoff,
		BatchSize:  cfg.BatchSize,
		Retries:    cfg.Retries,
		Backoff:    cfg.Backoff.Duration(),
		BatchDelay: cfg.BatchDelay.Duration(),
		Workers:    cfg.Workers,
		DryRun:     cmd.dryrun,
	}

	records := runner.Run(context.Background(), cfg.Sheets)

	if len(records) == 0 {
		infof("run %s: no rows were locked", run)
		return nil
	}

	if err := audit.Save(cfg.LogFile, records); err != nil {
		return fmt.Errorf("failed to write audit log to %s (%v)", cfg.LogFile, err)
	}

	infof("run %s: locked %d rows, log saved to %s", run, len(records), cfg.LogFile)

	return nil
}
