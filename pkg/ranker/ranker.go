// Package ranker finds, for every slot, the armor pieces that score highest
// under at least one stat priority ordering.
package ranker

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dimtools/armortrim/internal/utils"
	"github.com/dimtools/armortrim/pkg/armor"
)

// WinnerSet accumulates the IDs that topped at least one ordering, in the
// order they first won, with the number of orderings each one topped.
type WinnerSet struct {
	order []string
	wins  map[string]int
}

func NewWinnerSet() *WinnerSet {
	return &WinnerSet{wins: make(map[string]int)}
}

// Add records a win for id and reports whether id is new to the set.
func (w *WinnerSet) Add(id string) bool {
	n, seen := w.wins[id]
	w.wins[id] = n + 1
	if !seen {
		w.order = append(w.order, id)
	}
	return !seen
}

func (w *WinnerSet) Contains(id string) bool {
	_, ok := w.wins[id]
	return ok
}

// Wins returns how many orderings id topped.
func (w *WinnerSet) Wins(id string) int {
	return w.wins[id]
}

// IDs returns the winners in first-win order.
func (w *WinnerSet) IDs() []string {
	return append([]string(nil), w.order...)
}

func (w *WinnerSet) Len() int {
	return len(w.order)
}

// Merge folds o into w. Win counts add up.
func (w *WinnerSet) Merge(o *WinnerSet) {
	for _, id := range o.order {
		if _, seen := w.wins[id]; !seen {
			w.order = append(w.order, id)
		}
		w.wins[id] += o.wins[id]
	}
}

// scorePass computes one ordering's weighted totals, indexed like items.
func scorePass(items []armor.Item, order Order, sched Schedule) []float64 {
	scores := make([]float64, len(items))
	for i, it := range items {
		scores[i] = WeightedTotal(it.Base, order, sched)
	}
	return scores
}

// Top returns the index of the best item under order. Ties keep input order.
func Top(items []armor.Item, order Order, sched Schedule) int {
	scores := scorePass(items, order, sched)
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	return idx[0]
}

// RankSlot evaluates every ordering over one slot's items. Every ordering is
// visited; the result is the set of IDs that came out on top.
func RankSlot(items []armor.Item, sched Schedule) *WinnerSet {
	set := NewWinnerSet()
	if len(items) == 0 {
		return set
	}
	for _, order := range Permutations() {
		set.Add(items[Top(items, order, sched)].ID)
	}
	return set
}

// Ranking is the outcome of ranking all slots.
type Ranking struct {
	PerSlot map[string]*WinnerSet
	Winners *WinnerSet
}

// RankAll ranks each slot of b. With parallel set, slots are ranked
// concurrently; each slot owns its set and sets are merged in slot order
// afterwards, so the result does not depend on scheduling.
func RankAll(ctx context.Context, b Buckets, sched Schedule, parallel bool) (*Ranking, error) {
	results := make([]*WinnerSet, len(armor.Slots))

	if parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, slot := range armor.Slots {
			i, slot := i, slot
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = RankSlot(b.BySlot[slot], sched)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, slot := range armor.Slots {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			utils.Log.Debugf("Running through permutations for %s (%d pieces)", slot, len(b.BySlot[slot]))
			results[i] = RankSlot(b.BySlot[slot], sched)
		}
	}

	r := &Ranking{PerSlot: make(map[string]*WinnerSet, len(armor.Slots)), Winners: NewWinnerSet()}
	for i, slot := range armor.Slots {
		r.PerSlot[slot] = results[i]
		r.Winners.Merge(results[i])
	}
	return r, nil
}
