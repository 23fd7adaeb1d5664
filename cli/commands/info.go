package commands

import (
	"fmt"
	"os/exec"
	"strings"

	app_info "github.com/robgonnella/wisp/internal/app-info"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func info() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print detailed app info",
		Run: func(cmd *cobra.Command, args []string) {
			nmapInfo := "not found (nmap preflight unavailable)"

			if out, err := exec.Command("nmap", "--version").Output(); err == nil {
				nmapInfo = strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
			}

			fmt.Printf(
				"%s: %s\n\nconfig:   %s\nlog:      %s\ndatabase: %s\nnmap:     %s\n",
				app_info.NAME,
				app_info.VERSION,
				viper.GetString("config-file"),
				viper.GetString("log-file"),
				viper.GetString("database-file"),
				nmapInfo,
			)
		},
	}

	return cmd
}
