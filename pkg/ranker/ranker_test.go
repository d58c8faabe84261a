package ranker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimtools/armortrim/pkg/armor"
)

func piece(id, slot string, stats armor.Stats) armor.Item {
	return armor.Item{ID: id, Type: slot, Base: stats, Boost: armor.NoStat}
}

func helmetScenario() []armor.Item {
	return []armor.Item{
		piece("A", armor.SlotHelmet, armor.Stats{30, 10, 10, 10, 10, 10}),
		piece("B", armor.SlotHelmet, armor.Stats{10, 30, 10, 10, 10, 10}),
		piece("C", armor.SlotHelmet, armor.Stats{5, 5, 5, 5, 5, 5}),
	}
}

func TestRankSlotKeepsSpecialistsDropsDominated(t *testing.T) {
	set := RankSlot(helmetScenario(), DefaultSchedule)
	assert.True(t, set.Contains("A"))
	assert.True(t, set.Contains("B"))
	assert.False(t, set.Contains("C"))
	assert.Equal(t, 720, set.Wins("A")+set.Wins("B"))
	assert.Equal(t, 360, set.Wins("A"))
}

func TestRankSlotTiesKeepInputOrder(t *testing.T) {
	items := []armor.Item{
		piece("first", armor.SlotLegs, armor.Stats{10, 10, 10, 10, 10, 10}),
		piece("second", armor.SlotLegs, armor.Stats{10, 10, 10, 10, 10, 10}),
	}
	set := RankSlot(items, DefaultSchedule)
	assert.Equal(t, []string{"first"}, set.IDs())
	assert.Equal(t, 720, set.Wins("first"))
}

func TestRankSlotEmpty(t *testing.T) {
	assert.Equal(t, 0, RankSlot(nil, DefaultSchedule).Len())
}

func TestTopPicksHighestScore(t *testing.T) {
	items := helmetScenario()
	order := Order{armor.Resilience, armor.Mobility, armor.Recovery, armor.Discipline, armor.Intellect, armor.Strength}
	assert.Equal(t, 1, Top(items, order, DefaultSchedule))
}

func TestWinnerSetMerge(t *testing.T) {
	a := NewWinnerSet()
	assert.True(t, a.Add("x"))
	assert.False(t, a.Add("x"))
	b := NewWinnerSet()
	b.Add("y")
	b.Add("x")

	a.Merge(b)
	assert.Equal(t, []string{"x", "y"}, a.IDs())
	assert.Equal(t, 3, a.Wins("x"))
	assert.Equal(t, 1, a.Wins("y"))
}

func TestPartition(t *testing.T) {
	items := []armor.Item{
		piece("1", armor.SlotHelmet, armor.Stats{1}),
		piece("2", "Warlock Bond", armor.Stats{1}),
		piece("3", armor.SlotLegs, armor.Stats{1}),
		piece("4", armor.SlotHelmet, armor.Stats{1}),
		piece("5", armor.SlotChest, armor.Stats{1}),
	}
	b := Partition(items)

	counts := b.Counts()
	assert.Equal(t, 2, counts[armor.SlotHelmet])
	assert.Equal(t, 0, counts[armor.SlotGauntlets])
	assert.Equal(t, 1, counts[armor.SlotChest])
	assert.Equal(t, 1, counts[armor.SlotLegs])
	require.Len(t, b.Unslotted, 1)
	assert.Equal(t, "2", b.Unslotted[0].ID)

	var ids []string
	for _, it := range b.Slotted() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"1", "4", "5", "3"}, ids)
}

func mixedBuckets() Buckets {
	items := append(helmetScenario(),
		piece("G1", armor.SlotGauntlets, armor.Stats{2, 20, 8, 20, 2, 10}),
		piece("G2", armor.SlotGauntlets, armor.Stats{20, 2, 10, 2, 20, 8}),
		piece("G3", armor.SlotGauntlets, armor.Stats{10, 10, 10, 10, 10, 10}),
		piece("L1", armor.SlotLegs, armor.Stats{6, 6, 20, 10, 10, 10}),
	)
	return Partition(items)
}

func TestRankAllParallelMatchesSequential(t *testing.T) {
	b := mixedBuckets()
	seq, err := RankAll(context.Background(), b, DefaultSchedule, false)
	require.NoError(t, err)
	par, err := RankAll(context.Background(), b, DefaultSchedule, true)
	require.NoError(t, err)

	assert.Equal(t, seq.Winners.IDs(), par.Winners.IDs())
	for _, id := range seq.Winners.IDs() {
		assert.Equal(t, seq.Winners.Wins(id), par.Winners.Wins(id))
	}
	assert.True(t, seq.Winners.Contains("L1"))
	assert.False(t, seq.Winners.Contains("C"))
}

func TestRankAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RankAll(ctx, mixedBuckets(), DefaultSchedule, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDominators(t *testing.T) {
	items := append(helmetScenario(),
		armor.Item{ID: "D", Base: armor.Stats{40, 4, 4, 4, 4, 4}, Boost: armor.Mobility, Bonus: 3},
		armor.Item{ID: "D", Base: armor.Stats{37, 7, 4, 4, 4, 4}, Boost: armor.Resilience, Bonus: 3},
	)
	dom := Dominators(items)
	assert.Equal(t, "A", dom["C"])
	assert.NotContains(t, dom, "A")
	assert.NotContains(t, dom, "B")
	assert.NotContains(t, dom, "D")
}
