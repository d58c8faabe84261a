package trimmer

import (
	"github.com/dimtools/armortrim/pkg/armor"
	"github.com/dimtools/armortrim/pkg/ranker"
)

// Decide returns one record per ID that never won an ordering. The first
// record seen for an ID represents it, with any synthetic boost removed.
func Decide(items []armor.Item, winners *ranker.WinnerSet) []armor.Item {
	seen := make(map[string]struct{})
	var out []armor.Item
	for _, it := range items {
		if winners.Contains(it.ID) {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it.Original())
	}
	return out
}
