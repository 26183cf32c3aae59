package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/storage"
)

var dropForce bool

// dropCmd deletes one stored dataset, or the whole database file.
var dropCmd = &cobra.Command{
	Use:   "drop [dataset-id-prefix]",
	Short: "Delete a stored dataset or the whole database",
	Long: `With a dataset ID prefix, delete that dataset and its deliveries.
Without arguments, permanently delete the SQLite database file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return dropDataset(args[0])
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropDataset(prefix string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	info, err := db.GetDatasetByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("find dataset: %w", err)
	}
	if info == nil {
		return fmt.Errorf("no dataset found with prefix %q", prefix)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete dataset %s (%s, %d deliveries).\n", info.ID, info.Source, info.Deliveries)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if _, err := db.DeleteDataset(info.ID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted dataset: %s\n", info.ID)
	return nil
}
