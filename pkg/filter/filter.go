// Package filter decides which armor records take part in trimming.
package filter

import (
	"github.com/dimtools/armortrim/internal/utils"
	"github.com/dimtools/armortrim/pkg/armor"
)

// Reason says why a record was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoID
	ReasonRarity
	ReasonTag
	ReasonHashtag
	ReasonLocation
	ReasonClass
	ReasonLoadout
	ReasonNoStats
)

var reasonText = map[Reason]string{
	ReasonNone:     "accepted",
	ReasonNoID:     "item with no id",
	ReasonRarity:   "item with ignored rarity",
	ReasonTag:      "item with ignored tag",
	ReasonHashtag:  "item with ignored DIM hashtag",
	ReasonLocation: "item not in correct location",
	ReasonClass:    "item not for desired class",
	ReasonLoadout:  "item already used in loadout",
	ReasonNoStats:  "item with no base stats (class item)",
}

func (r Reason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return "unknown"
}

// Config lists the exclusion rules. Rarities and tags match exactly, the
// remaining lists match by substring.
type Config struct {
	IgnoreRarities   []string
	IgnoreTags       []string
	IgnoreHashtags   []string
	IncludeLocations []string
	IncludeClasses   []string
	IgnoreInLoadout  bool
}

// DefaultConfig returns the rules the tool ships with.
func DefaultConfig() Config {
	return Config{
		IgnoreRarities:   []string{"Common", "Uncommon", "Rare", "Exotic"},
		IgnoreTags:       []string{"archive", "infuse", "junk"},
		IgnoreHashtags:   []string{"#TRIMIGNORE", "#TESTBUILD"},
		IncludeLocations: []string{"Hunter", "Titan", "Warlock", "Vault"},
		IncludeClasses:   []string{"Warlock"},
		IgnoreInLoadout:  true,
	}
}

// Verdict is the outcome of checking one record.
type Verdict struct {
	Accepted bool
	Reason   Reason
	// Detail is the offending field value, for diagnostics.
	Detail string
}

func accept() Verdict { return Verdict{Accepted: true} }

func reject(r Reason, detail string) Verdict {
	return Verdict{Reason: r, Detail: detail}
}

// Filter applies a Config and counts what it has seen.
type Filter struct {
	cfg Config

	Processed int
	Rejected  int
	ByReason  map[Reason]int
}

func New(cfg Config) *Filter {
	return &Filter{cfg: cfg, ByReason: make(map[Reason]int)}
}

// Check evaluates the rules in order and stops at the first that matches.
func (f *Filter) Check(it armor.Item) Verdict {
	f.Processed++
	v := f.evaluate(it)
	if !v.Accepted {
		f.Rejected++
		f.ByReason[v.Reason]++
		utils.Log.Debugf("... removing %s (%s) ...", v.Reason, v.Detail)
	}
	return v
}

func (f *Filter) evaluate(it armor.Item) Verdict {
	switch {
	case it.ID == "":
		return reject(ReasonNoID, it.Name)
	case utils.InSet(it.Tier, f.cfg.IgnoreRarities):
		return reject(ReasonRarity, it.Tier)
	case utils.InSet(it.Tag, f.cfg.IgnoreTags):
		return reject(ReasonTag, it.Tag)
	case utils.ContainsAny(it.Notes, f.cfg.IgnoreHashtags):
		return reject(ReasonHashtag, it.Notes)
	case !utils.ContainsAny(it.Owner, f.cfg.IncludeLocations):
		return reject(ReasonLocation, it.Owner)
	case !utils.ContainsAny(it.Equippable, f.cfg.IncludeClasses):
		return reject(ReasonClass, it.Equippable)
	case f.cfg.IgnoreInLoadout && it.InLoadout():
		return reject(ReasonLoadout, it.Loadouts)
	case it.Base.Sum() == 0:
		return reject(ReasonNoStats, it.ID)
	}
	return accept()
}

// Apply checks every item and returns the accepted ones in input order.
func (f *Filter) Apply(items []armor.Item) []armor.Item {
	out := make([]armor.Item, 0, len(items))
	for _, it := range items {
		if f.Check(it).Accepted {
			out = append(out, it)
		}
	}
	return out
}
