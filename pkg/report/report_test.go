package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dimtools/armortrim/pkg/armor"
	"github.com/dimtools/armortrim/pkg/trimmer"
)

func sampleResult() *trimmer.Result {
	return &trimmer.Result{
		Trimmed: []armor.Item{
			{ID: "111", Name: "Hood", Type: armor.SlotHelmet, Base: armor.Stats{5, 5, 5, 5, 5, 5}},
			{ID: "222", Name: "Robes", Type: armor.SlotChest, Loadouts: "Raid", Base: armor.Stats{2, 20, 2, 10, 10, 10}},
		},
		Kept: []trimmer.Keeper{
			{Item: armor.Item{ID: "333", Type: armor.SlotHelmet, Base: armor.Stats{30, 10, 10, 10, 10, 10}}, Wins: 720},
		},
		Summary:    trimmer.Summary{Processed: 10, Ignored: 4, Evaluated: 6, Trimmed: 2},
		SlotCounts: map[string]int{armor.SlotHelmet: 2, armor.SlotChest: 1},
		Dominated:  map[string]string{"111": "333"},
	}
}

func TestQuery(t *testing.T) {
	assert.Equal(t, `id:"111" or id:"222"`, Query(sampleResult().Trimmed))
	assert.Equal(t, "", Query(nil))
}

func TestSummaryLine(t *testing.T) {
	got := SummaryLine(sampleResult().Summary)
	assert.Equal(t, "Total items: 10 | Items ignored: 4/10 | Items evaluated: 6 | >> Items to trim: 2 <<", got)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult()))
	out := buf.String()

	assert.Contains(t, out, `id:"111" or id:"222"`)
	assert.Contains(t, out, "2 items found to be trimmed.")
	assert.Contains(t, out, "being used in existing loadouts")
	assert.Contains(t, out, "ID: 222 (Chest Armor) - Loadouts: Raid")
	assert.Contains(t, out, "1 of the trimmed items are strictly worse")
	assert.NotContains(t, out, "ID: 111")
}

func TestWriteNothingToTrim(t *testing.T) {
	var buf bytes.Buffer
	res := &trimmer.Result{SlotCounts: map[string]int{}}
	require.NoError(t, Write(&buf, res))
	assert.Contains(t, buf.String(), "There were no items found")
	assert.NotContains(t, buf.String(), "loadouts !!!")
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trim.xlsx")
	require.NoError(t, ExportXLSX(path, sampleResult()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(trimSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Id", rows[0][0])
	assert.Equal(t, "Dominated By", rows[0][len(rows[0])-1])
	assert.Equal(t, "111", rows[1][0])
	assert.Equal(t, "333", rows[1][len(rows[1])-1])

	keep, err := f.GetRows(keepSheet)
	require.NoError(t, err)
	require.Len(t, keep, 2)
	assert.Equal(t, "720", keep[1][len(keep[1])-1])
}
