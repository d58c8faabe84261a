// Package loader reads a DIM armor export into armor records.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dimtools/armortrim/internal/utils"
	"github.com/dimtools/armortrim/pkg/armor"
)

// Options controls how a file is read.
type Options struct {
	// Sheet selects the worksheet of an .xlsx export. Empty means the first.
	Sheet string
}

// Load reads the export at path. Files ending in .xlsx are read as
// workbooks, anything else as CSV.
func Load(path string, opts Options) ([]armor.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(f, opts.Sheet)
	}
	return ReadCSV(f)
}

// ReadCSV parses a CSV export.
func ReadCSV(r io.Reader) ([]armor.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read csv: %w", err)
	}
	return parseRows(rows)
}

// ReadXLSX parses a workbook export. The first row of the sheet is the header.
func ReadXLSX(r io.Reader, sheet string) ([]armor.Item, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook: %w", err)
	}
	defer wb.Close()

	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]armor.Item, error) {
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: RequiredColumns()}
	}
	h := newHeader(rows[0])
	if missing := h.missing(); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	items := make([]armor.Item, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		it, err := parseRecord(h, row, i+2)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	utils.Log.Debugf("Read %d armor records", len(items))
	return items, nil
}

func parseRecord(h header, row []string, rowNum int) (armor.Item, error) {
	it := armor.Item{
		ID:          strings.ReplaceAll(h.get(row, ColID), `"`, ""),
		Name:        h.get(row, ColName),
		Type:        h.get(row, ColType),
		Tier:        h.get(row, ColTier),
		Tag:         h.get(row, ColTag),
		Owner:       h.get(row, ColOwner),
		Equippable:  h.get(row, ColEquippable),
		Notes:       h.get(row, ColNotes),
		Loadouts:    h.get(row, ColLoadouts),
		SeasonalMod: h.get(row, ColSeasonalMod),
		Boost:       armor.NoStat,
	}

	atoi := func(col string) (int, error) {
		v, err := strconv.Atoi(strings.TrimSpace(h.get(row, col)))
		if err == nil && v < 0 {
			err = fmt.Errorf("negative value %d", v)
		}
		if err != nil {
			return 0, &RecordError{Row: rowNum, ID: it.ID, Column: col, Err: err}
		}
		return v, nil
	}

	for _, s := range armor.AllStats {
		v, err := atoi(StatColumn(s))
		if err != nil {
			return it, err
		}
		it.Base[s] = v
	}
	total, err := atoi(ColTotal)
	if err != nil {
		return it, err
	}
	it.Total = total
	if total != it.Base.Sum() {
		utils.Log.Debugf("item %s: %s is %d but the stats add up to %d", it.ID, ColTotal, total, it.Base.Sum())
	}
	return it, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
