package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/event"
	"github.com/robgonnella/wisp/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var originalStdout = os.Stdout
var originalStderr = os.Stderr

func restoreStdout() {
	os.Stdout = originalStdout
	os.Stderr = originalStderr
}

// Runner interface for the run driven by the ui
type Runner interface {
	Run(ctx context.Context, ips []string) []*device.Record
}

type UI struct {
	view *view
}

func NewUI() *UI {
	return &UI{}
}

// redirectLogs sends all logging to the configured log file while the ui
// owns the terminal, disabling logs if that is not possible
func redirectLogs() {
	log := logger.New()

	if zerolog.GlobalLevel() == zerolog.Disabled {
		return
	}

	logFile, ok := viper.Get("log-file").(string)

	if !ok || logFile == "" {
		log.Error().Err(fmt.Errorf("invalid log file path: %s", logFile)).Send()
		log.Info().Msg("disabling logs")
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}

	if err := logger.GlobalSetLogFile(logFile); err != nil {
		log.Error().Err(err).Send()
		log.Info().Msg("disabling logs")
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
}

// Launch shows live progress of runner processing ips and returns its
// records once the run has finished and the ui was closed. Closing the ui
// early cancels the run, which still returns a record per address.
func (u *UI) Launch(
	ctx context.Context,
	input string,
	runner Runner,
	events event.Manager,
	ips []string,
) ([]*device.Record, error) {
	redirectLogs()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	u.view = newView(ctx, cancel, input, events)

	done := make(chan []*device.Record, 1)

	go func() {
		done <- runner.Run(ctx, ips)
	}()

	os.Stdout, _ = os.Open(os.DevNull)
	os.Stderr, _ = os.Open(os.DevNull)

	err := u.view.run()

	restoreStdout()

	if err != nil {
		cancel()
	}

	records := <-done

	return records, err
}
