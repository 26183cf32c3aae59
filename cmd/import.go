package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/ingest"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>...",
	Short: "Parse delivery files and store them in the database",
	Long: `Parse ball-by-ball delivery files and store their deliveries so later commands
can refer to them by ID prefix without re-reading the file. Files are parsed
concurrently and stored one at a time. Importing the same file contents twice
is a no-op.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

// importWorkers bounds how many files are parsed at once.
const importWorkers = 4

func runImport(cmd *cobra.Command, args []string) error {
	if err := ensureDBDir(); err != nil {
		return err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	results, err := ingest.ReadFiles(cmd.Context(), args, importWorkers)
	if err != nil {
		return err
	}
	for _, res := range results {
		info, created, err := storeResult(db, res)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintf(os.Stdout, "Already imported: %s (%s)\n", info.ID, info.Source)
			continue
		}
		fmt.Fprintf(os.Stdout, "Imported %d deliveries from %s as %s\n", info.Deliveries, info.Source, info.ID)
	}
	return nil
}

// importFile parses path and stores it unless a dataset with the same content
// hash exists. created reports whether a new dataset was written.
func importFile(db *storage.DB, path string) (info *model.DatasetInfo, created bool, err error) {
	res, err := ingest.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return storeResult(db, res)
}

func storeResult(db *storage.DB, res *ingest.Result) (info *model.DatasetInfo, created bool, err error) {
	existing, err := db.DatasetByHash(res.Hash)
	if err != nil {
		return nil, false, fmt.Errorf("check existing: %w", err)
	}
	if existing != nil {
		log.Info("dataset already stored", "id", existing.ID, "hash", res.Hash[:12])
		return existing, false, nil
	}

	ds := dataset.New(res.Source, res.Deliveries)
	rec := model.DatasetInfo{
		ID:         ds.ID,
		Source:     res.Source,
		Hash:       res.Hash,
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
		Deliveries: len(res.Deliveries),
	}
	start := time.Now()
	if err := db.InsertDataset(rec, res.Deliveries); err != nil {
		return nil, false, fmt.Errorf("store dataset: %w", err)
	}
	log.Info("stored dataset", "id", rec.ID, "deliveries", rec.Deliveries,
		"seasons", len(ds.Seasons()), "elapsed", time.Since(start).Round(time.Millisecond))
	return &rec, true, nil
}
