// Package variants turns artifice armor into one synthetic record per stat.
//
// An artifice piece accepts a small bonus on any single stat, so it is ranked
// as six separate pieces, each with the bonus applied to a different stat.
// All six keep the source record's ID.
package variants

import (
	"github.com/dimtools/armortrim/internal/utils"
	"github.com/dimtools/armortrim/pkg/armor"
)

const (
	DefaultMarker = "artifice"
	DefaultBonus  = 3
)

type Expander struct {
	// Marker is the Seasonal Mod value that makes a record bonus eligible.
	Marker string
	Bonus  int
}

func NewExpander(marker string, bonus int) Expander {
	return Expander{Marker: marker, Bonus: bonus}
}

// Eligible reports whether it should be expanded.
func (e Expander) Eligible(it armor.Item) bool {
	return e.Marker != "" && it.SeasonalMod == e.Marker
}

// Expand returns six boosted copies of an eligible record, in stat order, or
// the record itself otherwise.
func (e Expander) Expand(it armor.Item) []armor.Item {
	if !e.Eligible(it) {
		return []armor.Item{it}
	}
	out := make([]armor.Item, 0, armor.StatCount)
	for _, s := range armor.AllStats {
		v := it
		v.Base[s] += e.Bonus
		v.Boost = s
		v.Bonus = e.Bonus
		utils.Log.Debugf("... creating copy of %s armor %s with boosted +%d %s ...", e.Marker, it.ID, e.Bonus, s)
		out = append(out, v)
	}
	return out
}

// ExpandAll expands every record, keeping input order.
func (e Expander) ExpandAll(items []armor.Item) []armor.Item {
	out := make([]armor.Item, 0, len(items))
	for _, it := range items {
		out = append(out, e.Expand(it)...)
	}
	return out
}
