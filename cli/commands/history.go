package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/exception"
	"github.com/robgonnella/wisp/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// creates and returns the "history" command
func history() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Prints the results of the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := device.NewSqliteDatabase(viper.GetString("database-file"))

			if err != nil {
				return err
			}

			service := device.NewService(device.NewSqliteRepo(db))

			runID, records, err := service.LastRun()

			if errors.Is(err, exception.ErrRecordNotFound) {
				fmt.Println("no runs recorded yet")
				return nil
			}

			if err != nil {
				return err
			}

			fmt.Printf("run %s\n", runID)

			for _, r := range records {
				report.PrintSummary(os.Stdout, r)
			}

			if output != "" {
				return report.WriteWorkbook(output, records)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the run to this workbook")

	return cmd
}
