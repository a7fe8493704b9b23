package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagRefresh bool

func init() {
	configCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Re-read environment overrides before printing")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Run: func(cmd *cobra.Command, args []string) {
		if flagRefresh {
			resolver.ForceRefresh()
		}
		fmt.Fprintln(cmd.OutOrStdout(), resolver.Summary())
	},
}
