package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimtools/armortrim/pkg/armor"
	"github.com/dimtools/armortrim/pkg/trimmer"
)

func openTestDB(t *testing.T) *DB {
	db, err := Open(filepath.Join(t.TempDir(), "armortrim.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func result(ids ...string) *trimmer.Result {
	res := &trimmer.Result{Dominated: map[string]string{}}
	for _, id := range ids {
		res.Trimmed = append(res.Trimmed, armor.Item{ID: id, Name: "piece " + id, Type: armor.SlotLegs})
	}
	res.Summary = trimmer.Summary{Processed: 10, Ignored: 2, Evaluated: 8, Trimmed: len(ids)}
	return res
}

func TestSaveAndListRuns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	res := result("1", "2")
	res.Trimmed[0].Loadouts = "PvP"
	res.Dominated["2"] = "9"

	run, err := db.SaveRun(ctx, "destinyArmor.csv", res)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	runs, err := db.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, "destinyArmor.csv", runs[0].Input)
	assert.Equal(t, 2, runs[0].Trimmed)
	assert.Equal(t, 8, runs[0].Evaluated)
	assert.False(t, runs[0].CreatedAt.IsZero())

	items, err := db.TrimmedItems(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ItemID)
	assert.Equal(t, "PvP", items[0].Loadouts)
	assert.False(t, items[0].Dominated)
	assert.True(t, items[1].Dominated)
}

func TestDiffLatest(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.DiffLatest(ctx)
	assert.ErrorIs(t, err, ErrNotEnoughRuns)

	_, err = db.SaveRun(ctx, "", result("1", "2"))
	require.NoError(t, err)
	_, err = db.SaveRun(ctx, "", result("2", "3"))
	require.NoError(t, err)

	changes, err := db.DiffLatest(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, Change{ItemID: "3", Name: "piece 3", Type: armor.SlotLegs, ChangeType: "added"}, changes[0])
	assert.Equal(t, "1", changes[1].ItemID)
	assert.Equal(t, "removed", changes[1].ChangeType)
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.SaveRun(ctx, "", result("1", "2"))
	require.NoError(t, err)
	_, err = db.SaveRun(ctx, "", result("2"))
	require.NoError(t, err)

	stats, err := db.GetStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, SlotStats{Type: armor.SlotLegs, RunCount: 2, ItemCount: 2}, stats[0])
}
