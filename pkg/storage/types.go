package storage

import "time"

// Run is one recorded trim run.
type Run struct {
	ID        string
	CreatedAt time.Time
	Input     string

	Processed int
	Ignored   int
	Evaluated int
	Trimmed   int
}

// TrimmedItem is one item a run recommended for removal.
type TrimmedItem struct {
	RunID     string
	ItemID    string
	Name      string
	Type      string
	Loadouts  string
	Dominated bool
}

// Change captures how the trim list moved between two runs.
type Change struct {
	ItemID     string
	Name       string
	Type       string
	ChangeType string // added | removed
}

// SlotStats aggregates trimmed items of one slot across all runs.
type SlotStats struct {
	Type      string
	RunCount  int
	ItemCount int
}
