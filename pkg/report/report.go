// Package report turns a trim result into text for the terminal, a DIM
// search query and an optional workbook.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dimtools/armortrim/pkg/armor"
	"github.com/dimtools/armortrim/pkg/trimmer"
)

// Query builds a DIM search expression that highlights every trimmed item.
func Query(items []armor.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("id:%q", it.ID))
	}
	return strings.Join(parts, " or ")
}

// InLoadouts returns the trimmed items that are still part of a loadout.
func InLoadouts(items []armor.Item) []armor.Item {
	var out []armor.Item
	for _, it := range items {
		if it.InLoadout() {
			out = append(out, it)
		}
	}
	return out
}

// SummaryLine is the one-line run summary.
func SummaryLine(s trimmer.Summary) string {
	return fmt.Sprintf("Total items: %d | Items ignored: %d/%d | Items evaluated: %d | >> Items to trim: %d <<",
		s.Processed, s.Ignored, s.Processed, s.Evaluated, s.Trimmed)
}

// Write prints the full human readable report.
func Write(w io.Writer, res *trimmer.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tPIECES\t")
	for _, slot := range armor.Slots {
		fmt.Fprintf(tw, "%s\t%d\t\n", slot, res.SlotCounts[slot])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nComplete!\n%d items found to be trimmed.\n-----------------------------\n\n", len(res.Trimmed))
	if len(res.Trimmed) == 0 {
		fmt.Fprintln(w, "[ There were no items found in your inventory that needed to be trimmed. ]")
		fmt.Fprintln(w, "\nIf this doesn't seem right, check your config settings or the armor export you supplied.")
	} else {
		fmt.Fprintln(w, "Copy and paste the below DIM query into the search bar inside DIM to highlight the items marked for trimming.")
		fmt.Fprintln(w, "You can then choose to tag all these items as junk and remove them or just review them.")
		fmt.Fprintf(w, "\n%s\n\n", Query(res.Trimmed))
	}

	fmt.Fprintln(w, SummaryLine(res.Summary))

	if dominated := countDominated(res); dominated > 0 {
		fmt.Fprintf(w, "%d of the trimmed items are strictly worse in every stat than another piece.\n", dominated)
	}

	loadouts := InLoadouts(res.Trimmed)
	if len(loadouts) > 0 {
		fmt.Fprintln(w, "\n!!! There are items marked to be trimmed that are being used in existing loadouts !!!")
		fmt.Fprintln(w)
		for _, it := range loadouts {
			fmt.Fprintf(w, "ID: %s (%s) - Loadouts: %s\n", it.ID, it.Type, it.Loadouts)
		}
	}
	return nil
}

func countDominated(res *trimmer.Result) int {
	n := 0
	for _, it := range res.Trimmed {
		if _, ok := res.Dominated[it.ID]; ok {
			n++
		}
	}
	return n
}
