package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dimtools/armortrim/pkg/armor"
	"github.com/dimtools/armortrim/pkg/trimmer"
)

const (
	trimSheet = "Trim"
	keepSheet = "Keep"
)

func itemHeader(extra ...string) []interface{} {
	row := []interface{}{"Id", "Name", "Type", "Tier", "Loadouts"}
	for _, s := range armor.AllStats {
		row = append(row, s.Title())
	}
	row = append(row, "Total")
	for _, e := range extra {
		row = append(row, e)
	}
	return row
}

func itemRow(it armor.Item, extra ...interface{}) []interface{} {
	row := []interface{}{it.ID, it.Name, it.Type, it.Tier, it.Loadouts}
	for _, v := range it.Base {
		row = append(row, v)
	}
	row = append(row, it.Base.Sum())
	return append(row, extra...)
}

// BuildWorkbook lays out the trim list and the keep list on two sheets.
func BuildWorkbook(res *trimmer.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), trimSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(keepSheet); err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]interface{}{itemHeader("Dominated By")}
	for _, it := range res.Trimmed {
		rows = append(rows, itemRow(it, res.Dominated[it.ID]))
	}
	if err := writeRows(f, trimSheet, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = [][]interface{}{itemHeader("Orderings Won")}
	for _, k := range res.Kept {
		rows = append(rows, itemRow(k.Item, k.Wins))
	}
	if err := writeRows(f, keepSheet, rows); err != nil {
		f.Close()
		return nil, err
	}

	for _, sheet := range []string{trimSheet, keepSheet} {
		_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// ExportXLSX writes the workbook for res to path.
func ExportXLSX(path string, res *trimmer.Result) error {
	f, err := BuildWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}
