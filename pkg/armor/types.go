// Package armor holds the item record shared by every stage of the trim
// pipeline, along with the six armor stats and the four slot names.
package armor

import "strings"

// Stat identifies one of the six base armor stats.
type Stat int

const (
	Mobility Stat = iota
	Resilience
	Recovery
	Discipline
	Intellect
	Strength

	// NoStat marks a record that carries no synthetic boost.
	NoStat Stat = -1
)

// StatCount is the number of base stats on every armor piece.
const StatCount = 6

// AllStats lists the stats in export column order.
var AllStats = [StatCount]Stat{Mobility, Resilience, Recovery, Discipline, Intellect, Strength}

var statNames = [StatCount]string{"mobility", "resilience", "recovery", "discipline", "intellect", "strength"}

func (s Stat) String() string {
	if s < 0 || int(s) >= StatCount {
		return "none"
	}
	return statNames[s]
}

// Title returns the capitalized stat name as DIM prints it in column headers.
func (s Stat) Title() string {
	n := s.String()
	return strings.ToUpper(n[:1]) + n[1:]
}

// Stats holds one value per stat, indexed by Stat.
type Stats [StatCount]int

// Sum returns the total of all six stats.
func (s Stats) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Slot names as they appear in the Type column of a DIM export.
const (
	SlotHelmet    = "Helmet"
	SlotGauntlets = "Gauntlets"
	SlotChest     = "Chest Armor"
	SlotLegs      = "Leg Armor"
)

// Slots is the fixed ranking order of the four compared slot categories.
var Slots = []string{SlotHelmet, SlotGauntlets, SlotChest, SlotLegs}

// Item is a single armor record, either read from the export or derived from
// one as a boosted variant. Variants share ID with the record they came from.
type Item struct {
	ID          string
	Name        string
	Type        string
	Tier        string
	Tag         string
	Owner       string
	Equippable  string
	Notes       string
	Loadouts    string
	SeasonalMod string

	Base  Stats
	Total int

	// Boost is the stat a synthetic variant had Bonus added to.
	Boost Stat
	Bonus int
}

// IsVariant reports whether the item is a synthetic boosted copy.
func (it Item) IsVariant() bool {
	return it.Boost != NoStat && it.Bonus != 0
}

// InLoadout reports whether the item belongs to at least one loadout.
func (it Item) InLoadout() bool {
	return it.Loadouts != ""
}

// Original returns the record as it was before any synthetic boost.
func (it Item) Original() Item {
	if !it.IsVariant() {
		return it
	}
	it.Base[it.Boost] -= it.Bonus
	it.Boost = NoStat
	it.Bonus = 0
	return it
}

// Provenance describes which synthetic boost, if any, produced the record.
func (it Item) Provenance() string {
	if !it.IsVariant() {
		return ""
	}
	return "boost_" + it.Boost.String()
}
