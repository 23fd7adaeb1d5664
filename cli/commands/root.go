package commands

import (
	"time"

	app_info "github.com/robgonnella/wisp/internal/app-info"
	"github.com/robgonnella/wisp/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	UI *ui.UI
}

// extractFlags holds command line overrides for config file values
type extractFlags struct {
	config    string
	input     string
	sheet     string
	column    string
	output    string
	failed    string
	merge     bool
	workers   int
	timeout   time.Duration
	preflight string
	ui        bool
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool

	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   app_info.NAME + " [input]",
		Short: "Collects identity and wireless details from devices over ssh",
		Long: `Reads device addresses from a workbook column or a text file, tries each
configured credential over ssh and writes the results to a workbook.`,
		Args: cobra.MaximumNArgs(1),
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !cmd.Flags().Changed("input") {
				if err := cmd.Flags().Set("input", args[0]); err != nil {
					return err
				}
			}

			return extract(cmd, props, flags)
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")
	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "config file (default ~/.config/wisp/config.yml)")

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "workbook (.xlsx) or text file of addresses")
	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "workbook sheet holding addresses (default first sheet)")
	cmd.Flags().StringVar(&flags.column, "column", "", "workbook column letter holding addresses")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "results workbook path")
	cmd.Flags().StringVar(&flags.failed, "failed", "", "failed address list path")
	cmd.Flags().BoolVar(&flags.merge, "merge", false, "merge results back into the input workbook")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "number of devices processed concurrently")
	cmd.Flags().DurationVarP(&flags.timeout, "timeout", "t", 0, "timeout per ssh call")
	cmd.Flags().StringVar(&flags.preflight, "preflight", "", "ssh port check before probing: nmap or tcp")
	cmd.Flags().BoolVar(&flags.ui, "ui", false, "show live progress ui")

	cmd.AddCommand(version())
	cmd.AddCommand(info())
	cmd.AddCommand(initConfig(flags))
	cmd.AddCommand(history())
	cmd.AddCommand(clean())

	return cmd
}
