package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dimtools/armortrim/pkg/armor"
	"github.com/dimtools/armortrim/pkg/trimmer"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotEnoughRuns is returned when a diff needs two runs and fewer exist.
var ErrNotEnoughRuns = errors.New("at least two saved runs are needed")

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS trim_runs (
  seq        INTEGER PRIMARY KEY,
  run_id     TEXT NOT NULL UNIQUE,
  created_at TEXT NOT NULL,
  input      TEXT,
  processed  INTEGER NOT NULL,
  ignored    INTEGER NOT NULL,
  evaluated  INTEGER NOT NULL,
  trimmed    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS trimmed_items (
  id         INTEGER PRIMARY KEY,
  run_id     TEXT NOT NULL REFERENCES trim_runs(run_id) ON DELETE CASCADE,
  item_id    TEXT NOT NULL,
  name       TEXT,
  type       TEXT NOT NULL,
  loadouts   TEXT,
  dominated  INTEGER NOT NULL CHECK (dominated IN (0,1)),
  UNIQUE(run_id, item_id)
);
CREATE INDEX IF NOT EXISTS idx_trimmed_run ON trimmed_items(run_id);
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// SaveRun records a run and its trim list in one transaction.
func (d *DB) SaveRun(ctx context.Context, input string, res *trimmer.Result) (run Run, err error) {
	run = Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Input:     input,
		Processed: res.Summary.Processed,
		Ignored:   res.Summary.Ignored,
		Evaluated: res.Summary.Evaluated,
		Trimmed:   res.Summary.Trimmed,
	}

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return run, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO trim_runs(run_id, created_at, input, processed, ignored, evaluated, trimmed) VALUES(?,?,?,?,?,?,?)`,
		run.ID, run.CreatedAt.Format(timeLayout), nullIfEmpty(input), run.Processed, run.Ignored, run.Evaluated, run.Trimmed)
	if err != nil {
		return run, err
	}

	for _, it := range res.Trimmed {
		_, dominated := res.Dominated[it.ID]
		_, err = tx.ExecContext(ctx, `INSERT INTO trimmed_items(run_id, item_id, name, type, loadouts, dominated) VALUES(?,?,?,?,?,?)`,
			run.ID, it.ID, nullIfEmpty(it.Name), it.Type, nullIfEmpty(it.Loadouts), boolToInt(dominated))
		if err != nil {
			return run, err
		}
	}

	if err = tx.Commit(); err != nil {
		return run, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.QueryContext(ctx, `SELECT run_id, created_at, input, processed, ignored, evaluated, trimmed FROM trim_runs ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var created string
		var input sql.NullString
		if err := rows.Scan(&r.ID, &created, &input, &r.Processed, &r.Ignored, &r.Evaluated, &r.Trimmed); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTimestamp(created)
		r.Input = input.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TrimmedItems returns the trim list of one run in the order it was saved.
func (d *DB) TrimmedItems(ctx context.Context, runID string) ([]TrimmedItem, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT item_id, name, type, loadouts, dominated FROM trimmed_items WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrimmedItem
	for rows.Next() {
		it := TrimmedItem{RunID: runID}
		var name, loadouts sql.NullString
		var dominated int
		if err := rows.Scan(&it.ItemID, &name, &it.Type, &loadouts, &dominated); err != nil {
			return nil, err
		}
		it.Name = name.String
		it.Loadouts = loadouts.String
		it.Dominated = dominated == 1
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DiffLatest compares the trim lists of the two newest runs. Added items are
// newly recommended for removal; removed ones were trimmed before but not now.
func (d *DB) DiffLatest(ctx context.Context) ([]Change, error) {
	runs, err := d.ListRuns(ctx, 2)
	if err != nil {
		return nil, err
	}
	if len(runs) < 2 {
		return nil, ErrNotEnoughRuns
	}
	current, err := d.TrimmedItems(ctx, runs[0].ID)
	if err != nil {
		return nil, err
	}
	previous, err := d.TrimmedItems(ctx, runs[1].ID)
	if err != nil {
		return nil, err
	}
	return Diff(previous, current), nil
}

// Diff lists items present in only one of the two trim lists.
func Diff(previous, current []TrimmedItem) []Change {
	before := make(map[string]struct{}, len(previous))
	for _, it := range previous {
		before[it.ItemID] = struct{}{}
	}
	now := make(map[string]struct{}, len(current))
	for _, it := range current {
		now[it.ItemID] = struct{}{}
	}

	var changes []Change
	for _, it := range current {
		if _, ok := before[it.ItemID]; !ok {
			changes = append(changes, Change{ItemID: it.ItemID, Name: it.Name, Type: it.Type, ChangeType: "added"})
		}
	}
	for _, it := range previous {
		if _, ok := now[it.ItemID]; !ok {
			changes = append(changes, Change{ItemID: it.ItemID, Name: it.Name, Type: it.Type, ChangeType: "removed"})
		}
	}
	return changes
}

// GetStats counts trimmed items per slot across every saved run.
func (d *DB) GetStats(ctx context.Context) ([]SlotStats, error) {
	query := `
		SELECT
			type,
			COUNT(DISTINCT run_id),
			COUNT(DISTINCT item_id)
		FROM
			trimmed_items
		GROUP BY
			type
	`
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byType := make(map[string]SlotStats)
	for rows.Next() {
		var s SlotStats
		if err := rows.Scan(&s.Type, &s.RunCount, &s.ItemCount); err != nil {
			return nil, err
		}
		byType[s.Type] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var stats []SlotStats
	for _, slot := range armor.Slots {
		if s, ok := byType[slot]; ok {
			stats = append(stats, s)
		}
	}
	return stats, nil
}
