package ranker

import "github.com/dimtools/armortrim/pkg/armor"

// dominates reports whether a is at least as good as b on every stat and
// strictly better on one.
func dominates(a, b armor.Stats) bool {
	better := false
	for i := range a {
		if a[i] < b[i] {
			return false
		}
		if a[i] > b[i] {
			better = true
		}
	}
	return better
}

// Dominators maps an ID to the ID of a piece that dominates it, for every ID
// in items whose every record is dominated by a record with another ID. Items
// missing from the map sit on the Pareto front of the slot.
func Dominators(items []armor.Item) map[string]string {
	candidate := make(map[string]string)
	free := make(map[string]bool)

	for _, it := range items {
		if free[it.ID] {
			continue
		}
		by := ""
		for _, other := range items {
			if other.ID == it.ID {
				continue
			}
			if dominates(other.Base, it.Base) {
				by = other.ID
				break
			}
		}
		if by == "" {
			free[it.ID] = true
			delete(candidate, it.ID)
			continue
		}
		if _, ok := candidate[it.ID]; !ok {
			candidate[it.ID] = by
		}
	}
	return candidate
}
