package commands

import (
	"errors"
	"os"

	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// creates and returns the "clean" command
func clean() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clears stored run history and the log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			dbFile := viper.GetString("database-file")

			if all {
				if err := os.Remove(dbFile); err != nil && !errors.Is(err, os.ErrNotExist) {
					return err
				}
				log.Info().Msg("removed database file")
			} else if _, err := os.Stat(dbFile); err == nil {
				db, err := device.NewSqliteDatabase(dbFile)

				if err != nil {
					return err
				}

				if err := device.NewService(device.NewSqliteRepo(db)).Clean(); err != nil {
					return err
				}
				log.Info().Msg("cleared run history")
			}

			logFile := viper.GetString("log-file")

			if logFile != "" {
				if err := os.RemoveAll(logFile); err != nil {
					return err
				}
				log.Info().Msg("removed log file")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "remove the database file entirely")

	return cmd
}
