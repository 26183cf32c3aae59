package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/fetch"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

// fetch command flags.
var (
	// fetchDir overrides the configured download directory.
	fetchDir string
	// fetchImport stores the downloaded dataset right away.
	fetchImport bool
)

// fetchCmd is the cobra command for downloading a delivery dataset.
var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a delivery dataset over HTTP",
	Long: `Download a ball-by-ball dataset. Plain CSV and XLSX files are saved as-is;
.gz, .bz2 and .zst files are decompressed, and Cricsheet .zip bundles are
unpacked to their all_matches.csv.

Examples:
  cricmetrics fetch https://cricsheet.org/downloads/ipl_csv2.zip --import
  cricmetrics fetch https://example.org/t20.csv.gz --dir ./data`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDir, "dir", "", "download directory (default from config)")
	fetchCmd.Flags().BoolVar(&fetchImport, "import", false, "import the downloaded dataset into the database")
}

func runFetch(cmd *cobra.Command, args []string) error {
	dir := cfg.FetchDir
	if fetchDir != "" {
		dir = fetchDir
	}
	timeout := time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := fetch.NewClient(timeout, log.Named("fetch"))
	path, err := client.Download(ctx, args[0], dir)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Saved: %s\n", path)

	if !fetchImport {
		return nil
	}
	if err := ensureDBDir(); err != nil {
		return err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	info, created, err := importFile(db, path)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(os.Stdout, "Already imported: %s (%s)\n", info.ID, info.Source)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Imported %d deliveries as %s\n", info.Deliveries, info.ID)
	return nil
}
