// Command sweep runs one absence sweep against the configured store and prints the summary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/app"
	"github.com/cmlabs-hris/hris-attendance/internal/config"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/spf13/pflag"
)

func main() {
	var (
		date     = pflag.StringP("date", "d", "", "date to sweep as YYYY-MM-DD (default: today in the attendance timezone)")
		verbose  = pflag.BoolP("verbose", "v", false, "log at debug level")
		asPretty = pflag.Bool("pretty", true, "indent the JSON summary")
	)
	pflag.Parse()

	if err := run(*date, *verbose, *asPretty); err != nil {
		fmt.Fprintln(os.Stderr, "sweep:", err)
		os.Exit(1)
	}
}

func run(dateFlag string, verbose, pretty bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var target *time.Time
	if dateFlag != "" {
		d, err := clock.ParseDate(dateFlag)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", dateFlag)
		}
		target = &d
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	services, err := app.NewServices(ctx, cfg, stores, nil)
	if err != nil {
		return err
	}
	defer services.Close(context.Background())

	summary, sweepErr := services.Sweep.RunAbsenceSweep(ctx, target)
	if summary.Date != "" {
		enc := json.NewEncoder(os.Stdout)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(summary); err != nil {
			return err
		}
	}
	return sweepErr
}
