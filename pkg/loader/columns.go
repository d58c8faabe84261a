package loader

import "github.com/dimtools/armortrim/pkg/armor"

// Column names of a DIM armor export.
const (
	ColID          = "Id"
	ColName        = "Name"
	ColTag         = "Tag"
	ColTier        = "Tier"
	ColType        = "Type"
	ColNotes       = "Notes"
	ColEquippable  = "Equippable"
	ColOwner       = "Owner"
	ColLoadouts    = "Loadouts"
	ColSeasonalMod = "Seasonal Mod"
	ColTotal       = "Total (Base)"
)

// StatColumn returns the base-value column for s, e.g. "Mobility (Base)".
func StatColumn(s armor.Stat) string {
	return s.Title() + " (Base)"
}

// RequiredColumns is the header set every export must carry.
func RequiredColumns() []string {
	cols := []string{ColID, ColTag, ColTier, ColNotes, ColEquippable, ColOwner, ColLoadouts, ColType, ColSeasonalMod}
	for _, s := range armor.AllStats {
		cols = append(cols, StatColumn(s))
	}
	return append(cols, ColTotal)
}

// header maps a column name to its index.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	return h
}

func (h header) missing() []string {
	var out []string
	for _, c := range RequiredColumns() {
		if _, ok := h[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// get returns the cell under col, or "" when the row is short or the column
// is absent. Spreadsheet rows drop trailing empty cells.
func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
