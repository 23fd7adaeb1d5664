package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// creates and returns the "init" command
func initConfig(flags *extractFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Writes a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.config != "" {
				viper.Set("config-file", flags.config)
			}

			configFile := viper.GetString("config-file")

			if _, err := os.Stat(configFile); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configFile)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := config.Write(*config.Default()); err != nil {
				return err
			}

			fmt.Printf("Wrote default config to %s\n", configFile)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	return cmd
}
