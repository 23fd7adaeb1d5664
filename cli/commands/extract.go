package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/core"
	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/event"
	"github.com/robgonnella/wisp/internal/loader"
	"github.com/robgonnella/wisp/internal/logger"
	"github.com/robgonnella/wisp/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig reads the config file when present, falling back to defaults
// when the default path does not exist yet
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""

	if !explicit {
		path, _ = viper.Get("config-file").(string)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return config.Default(), nil
		}

		return nil, err
	}

	return config.New(path)
}

// applyFlags overrides config values with any flag the user set
func applyFlags(cmd *cobra.Command, conf *config.Config, flags *extractFlags) {
	changed := cmd.Flags().Changed

	if changed("input") {
		conf.Input.Path = flags.input
	}

	if changed("sheet") {
		conf.Input.Sheet = flags.sheet
	}

	if changed("column") {
		conf.Input.Column = flags.column
	}

	if changed("output") {
		conf.Output.Results = flags.output
	}

	if changed("failed") {
		conf.Output.FailedList = flags.failed
	}

	if changed("merge") {
		conf.Output.Merge = flags.merge
	}

	if changed("workers") {
		conf.Workers = flags.workers
	}

	if changed("timeout") {
		conf.Timeout = flags.timeout
	}

	if changed("preflight") {
		conf.Preflight = flags.preflight
	}
}

func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// runHeadless prints a progress line per completed device while the run
// is in progress. Interrupts cancel the run.
func runHeadless(
	ctx context.Context,
	appCore *core.Core,
	events event.Manager,
	ips []string,
) []*device.Record {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	completed := make(chan event.Event, len(ips)+1)
	listenerID := events.RegisterListener(event.RecordCompletedEventType, completed)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for evt := range completed {
			if rec, ok := evt.Payload.(*device.Record); ok {
				report.PrintSummary(os.Stdout, rec)
			}
		}
	}()

	records := appCore.Run(ctx, ips)

	events.RemoveListener(listenerID)
	close(completed)
	<-done

	return records
}

// storeRun persists records to the history database. Failures are logged.
func storeRun(records []*device.Record) {
	log := logger.New()

	dbFile, ok := viper.Get("database-file").(string)

	if !ok || dbFile == "" {
		return
	}

	db, err := device.NewSqliteDatabase(dbFile)

	if err != nil {
		log.Warn().Err(err).Msg("failed to open history database")
		return
	}

	service := device.NewService(device.NewSqliteRepo(db))

	runID, err := service.RecordRun(records)

	if err != nil {
		log.Warn().Err(err).Msg("failed to store run history")
		return
	}

	log.Debug().Str("run", runID).Msg("run stored")
}

func extract(cmd *cobra.Command, props *CommandProps, flags *extractFlags) error {
	log := logger.New()

	conf, err := loadConfig(flags.config)

	if err != nil {
		return err
	}

	applyFlags(cmd, conf, flags)

	if err := config.Validate(*conf); err != nil {
		return err
	}

	if conf.Input.Path == "" {
		return errors.New("no input provided, pass a workbook or text file of addresses")
	}

	ips, err := loader.Load(conf.Input.Path, conf.Input.Sheet, conf.Input.Column)

	if err != nil {
		return err
	}

	if len(ips) == 0 {
		return fmt.Errorf("no addresses found in %s", conf.Input.Path)
	}

	if isWorkbook(conf.Input.Path) {
		fmt.Printf("Loaded %d IPs from %s column %s\n", len(ips), conf.Input.Path, conf.Input.Column)
	} else {
		fmt.Printf("Loaded %d IPs from %s\n", len(ips), conf.Input.Path)
	}

	events := event.NewEventManager()
	appCore := core.CreateNewAppCore(*conf, events)

	var records []*device.Record

	if flags.ui {
		records, err = props.UI.Launch(cmd.Context(), conf.Input.Path, appCore, events, ips)

		if err != nil {
			return err
		}
	} else {
		records = runHeadless(cmd.Context(), appCore, events, ips)
	}

	if err := report.WriteWorkbook(conf.Output.Results, records); err != nil {
		return fmt.Errorf("failed writing %s: %w", conf.Output.Results, err)
	}

	if _, err := report.WriteFailedList(conf.Output.FailedList, records); err != nil {
		return fmt.Errorf("failed writing %s: %w", conf.Output.FailedList, err)
	}

	report.PrintTotals(os.Stdout, conf.Output.Results, records)

	if conf.Output.Merge {
		if !isWorkbook(conf.Input.Path) {
			log.Warn().Msg("merge requested but input is not a workbook, skipping")
		} else {
			backup, err := report.MergeIntoSource(
				conf.Input.Path,
				conf.Input.Sheet,
				conf.Input.Column,
				records,
			)

			if err != nil {
				log.Error().Err(err).Msg("failed merging back into source workbook")
			} else {
				fmt.Printf("Backup created: %s\nMerged results into %s\n", backup, conf.Input.Path)
			}
		}
	}

	storeRun(records)

	return nil
}
