package main

import (
	"fmt"
	"os"

	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/spf13/cobra"
)

// cfg is loaded once by the root command before any subcommand runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Job Board API server and maintenance tasks",
	Long: `Job Board API server and maintenance tasks.

Running without a subcommand starts the HTTP server.

Examples:
  jobboard          # Start the API server
  jobboard serve    # Same as above
  jobboard seed     # Load sample categories, companies and jobs`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logx.Init(loaded.Env)
		logx.SetLevel(logx.ParseLevel(loaded.LogLevel))

		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logx.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cfg)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
