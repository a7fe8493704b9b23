// Package cli wires the reviewlens command tree.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reviewlens/reviewlens/pkg/config"
	"github.com/reviewlens/reviewlens/pkg/lib"
	"github.com/reviewlens/reviewlens/pkg/lib/log"
)

const version = "0.1.0"

// Shared across subcommands, set up by the root PersistentPreRunE.
var (
	logger   *zerolog.Logger
	resolver *config.Resolver
)

var rootCmd = &cobra.Command{
	Use:           "reviewlens",
	Short:         "LLM-backed product review sentiment classifier",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment may be set directly.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		var logCfg log.Config
		if err := envdecode.Decode(&logCfg); err != nil {
			return fmt.Errorf("decode log config: %w", err)
		}
		if err := lib.ValidateStruct(&logCfg); err != nil {
			return fmt.Errorf("validate log config: %w", err)
		}

		l, err := log.NewLogger(&logCfg)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}

		logger = l
		resolver = config.NewResolver(logger)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print reviewlens version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reviewlens version %s\n", version)
	},
}

// Run executes the root command and returns the process exit code.
func Run() int {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
