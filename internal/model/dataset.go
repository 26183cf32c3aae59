package model

// DatasetInfo describes one imported dataset in the store.
type DatasetInfo struct {
	ID         string
	Source     string
	Hash       string
	ImportedAt string // RFC 3339, UTC
	Deliveries int
}

// Overview holds store-wide counts shown by the summary command.
type Overview struct {
	Datasets   int
	Deliveries int
	Matches    int
	Seasons    int
	Venues     int
	Players    int
}

// SeasonCount is the per-season breakdown row of the summary command.
type SeasonCount struct {
	Season     string
	Matches    int
	Deliveries int
}
