// Package trimmer runs the full trim pipeline: eligibility filtering, artifice
// expansion, slot partitioning, permutation ranking and the trim decision.
package trimmer

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimtools/armortrim/internal/utils"
	"github.com/dimtools/armortrim/pkg/armor"
	"github.com/dimtools/armortrim/pkg/filter"
	"github.com/dimtools/armortrim/pkg/ranker"
	"github.com/dimtools/armortrim/pkg/variants"
)

// Config is everything the pipeline needs besides the records themselves.
type Config struct {
	Filter      filter.Config
	Schedule    ranker.Schedule
	BonusAmount int
	BonusMarker string
	// Parallel ranks the four slots concurrently.
	Parallel bool
}

func DefaultConfig() Config {
	return Config{
		Filter:      filter.DefaultConfig(),
		Schedule:    ranker.DefaultSchedule,
		BonusAmount: variants.DefaultBonus,
		BonusMarker: variants.DefaultMarker,
	}
}

func (c Config) Validate() error {
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("invalid multiplier schedule: %w", err)
	}
	if c.BonusAmount < 0 {
		return errors.New("bonus amount must not be negative")
	}
	if len(c.Filter.IncludeLocations) == 0 {
		return errors.New("no locations to include: every item would be ignored")
	}
	if len(c.Filter.IncludeClasses) == 0 {
		return errors.New("no classes to include: every item would be ignored")
	}
	return nil
}

// Summary holds the run counters.
type Summary struct {
	Processed int
	Ignored   int
	Evaluated int
	Trimmed   int
	// Unslotted counts expanded records whose type is none of the four slots.
	Unslotted int
	Reasons   map[filter.Reason]int
}

// Keeper is an ID that won at least one ordering.
type Keeper struct {
	Item armor.Item
	Wins int
}

type Result struct {
	Trimmed    []armor.Item
	Kept       []Keeper
	Summary    Summary
	SlotCounts map[string]int
	// Dominated maps trimmed IDs that are strictly Pareto dominated to the ID
	// of a dominating piece.
	Dominated map[string]string
}

// Run executes the pipeline over the loaded records.
func Run(ctx context.Context, cfg Config, items []armor.Item) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := filter.New(cfg.Filter)
	eligible := f.Apply(items)
	utils.Log.Debug("-- Finished filtering armor")

	expanded := variants.NewExpander(cfg.BonusMarker, cfg.BonusAmount).ExpandAll(eligible)
	buckets := ranker.Partition(expanded)
	counts := buckets.Counts()
	for _, slot := range armor.Slots {
		utils.Log.Infof("%d theoretical %s", counts[slot], slot)
	}
	if n := len(buckets.Unslotted); n > 0 {
		utils.Log.Infof("%d records with an unrecognized type were not ranked", n)
	}

	utils.Log.Info(">> Running through permutations...")
	ranking, err := ranker.RankAll(ctx, buckets, cfg.Schedule, cfg.Parallel)
	if err != nil {
		return nil, fmt.Errorf("ranking failed: %w", err)
	}

	slotted := buckets.Slotted()
	trimmed := Decide(slotted, ranking.Winners)

	dominated := make(map[string]string)
	for _, slot := range armor.Slots {
		for id, by := range ranker.Dominators(buckets.BySlot[slot]) {
			if !ranking.Winners.Contains(id) {
				dominated[id] = by
			}
		}
	}

	res := &Result{
		Trimmed:    trimmed,
		Kept:       keepers(slotted, ranking.Winners),
		SlotCounts: counts,
		Dominated:  dominated,
		Summary: Summary{
			Processed: f.Processed,
			Ignored:   f.Rejected,
			Evaluated: f.Processed - f.Rejected,
			Trimmed:   len(trimmed),
			Unslotted: len(buckets.Unslotted),
			Reasons:   f.ByReason,
		},
	}
	utils.Log.Infof(">> Finished trimming items, %d to trim", len(trimmed))
	return res, nil
}

func keepers(items []armor.Item, winners *ranker.WinnerSet) []Keeper {
	byID := make(map[string]armor.Item, winners.Len())
	for _, it := range items {
		if _, ok := byID[it.ID]; !ok {
			byID[it.ID] = it.Original()
		}
	}
	out := make([]Keeper, 0, winners.Len())
	for _, id := range winners.IDs() {
		out = append(out, Keeper{Item: byID[id], Wins: winners.Wins(id)})
	}
	return out
}
