package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/config"
	"github.com/pable/go-cricket-metrics/internal/logger"
)

var (
	dbPath   string
	logLevel string

	cfg *config.Config
	log = logger.New(os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:   "cricmetrics",
	Short: "Cricket ball-by-ball metrics tool",
	Long: `Compute batting, bowling, team and venue statistics from ball-by-ball
delivery tables (Cricsheet CSV or XLSX), filtered by season and match phase.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default ~/.cricmetrics/metrics.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// loadConfig layers config defaults, file and env, then applies any flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		c.DBPath = dbPath
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := log.SetLevelString(c.LogLevel); err != nil {
		return err
	}
	cfg = c
	dbPath = c.DBPath
	log.Debug("config loaded", "db", c.DBPath, "format", c.Format)
	return nil
}
