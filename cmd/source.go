package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/ingest"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

// loadDataset resolves a command argument: an existing file is parsed in
// place, anything else is looked up as a stored dataset ID prefix.
func loadDataset(arg string) (*dataset.Dataset, error) {
	if fi, err := os.Stat(arg); err == nil && !fi.IsDir() {
		start := time.Now()
		res, err := ingest.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", arg, err)
		}
		log.Info("parsed dataset", "file", res.Source, "deliveries", len(res.Deliveries),
			"elapsed", time.Since(start).Round(time.Millisecond))
		return dataset.New(res.Source, res.Deliveries), nil
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	info, err := db.GetDatasetByPrefix(arg)
	if err != nil {
		return nil, fmt.Errorf("find dataset: %w", err)
	}
	if info == nil {
		return nil, fmt.Errorf("%q is neither a file nor a stored dataset ID", arg)
	}
	deliveries, err := db.LoadDeliveries(info.ID)
	if err != nil {
		return nil, fmt.Errorf("load deliveries: %w", err)
	}
	log.Debug("loaded stored dataset", "id", info.ID, "deliveries", len(deliveries))
	return dataset.FromStore(info.ID, info.Source, deliveries), nil
}

// ensureDBDir creates the database's parent directory.
func ensureDBDir() error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	return nil
}

// selectionKeyword reports whether vals is a lone "all" or "none".
func selectionKeyword(vals []string) string {
	if len(vals) == 1 {
		switch v := strings.ToLower(strings.TrimSpace(vals[0])); v {
		case "all", "none":
			return v
		}
	}
	return ""
}

// parseSeasons turns --season values into a season list. No values or "all"
// selects every season in the dataset; "none" selects nothing.
func parseSeasons(ds *dataset.Dataset, vals []string) ([]string, error) {
	switch selectionKeyword(vals) {
	case "none":
		return nil, nil
	case "all":
		return ds.Seasons(), nil
	}
	if len(vals) == 0 {
		return ds.Seasons(), nil
	}
	known := make(map[string]struct{})
	for _, s := range ds.Seasons() {
		known[s] = struct{}{}
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if _, ok := known[v]; !ok {
			return nil, fmt.Errorf("unknown season %q (available: %s)", v, strings.Join(ds.Seasons(), ", "))
		}
		out = append(out, v)
	}
	return out, nil
}

// parsePhases is parseSeasons for --phase.
func parsePhases(vals []string) ([]model.Phase, error) {
	switch selectionKeyword(vals) {
	case "none":
		return nil, nil
	case "all":
		return model.AllPhases, nil
	}
	if len(vals) == 0 {
		return model.AllPhases, nil
	}
	out := make([]model.Phase, 0, len(vals))
	for _, v := range vals {
		p, err := model.ParsePhase(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// buildFilter combines --season and --phase values into a Filter.
func buildFilter(ds *dataset.Dataset, seasons, phases []string) (model.Filter, error) {
	ss, err := parseSeasons(ds, seasons)
	if err != nil {
		return model.Filter{}, err
	}
	ps, err := parsePhases(phases)
	if err != nil {
		return model.Filter{}, err
	}
	return model.NewFilter(ss, ps), nil
}

// parseDimensions maps --dimension values; none means all four.
func parseDimensions(vals []string) ([]model.Dimension, error) {
	if len(vals) == 0 {
		return model.AllDimensions, nil
	}
	out := make([]model.Dimension, 0, len(vals))
	for _, v := range vals {
		d, err := model.ParseDimension(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
