package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// OpenWithExcelize opens an XLSX file through excelize instead of the
// hand-rolled zip/XML path Open uses. It trades the lightweight parser's
// speed for excelize's fuller format coverage (formula-evaluated values,
// richer style/number-format handling, legacy .xls-adjacent quirks) and
// is the loader worth reaching for on files the lightweight path mis-
// parses. The returned *Reader exposes the same Sheet/Cell API either
// loader produces, so callers can switch between them without touching
// downstream code.
//
// OpenFile/GetSheetList/GetRows mirror the one excelize call site found
// in the reference corpus; GetDocProps/GetMergeCells/GetCellFormula/
// CoordinatesToCellName below have no such precedent here and are
// written from the library's published API instead.
func OpenWithExcelize(filename string) (*Reader, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, err
	}

	r := &Reader{excelizeFile: f}

	names := f.GetSheetList()
	r.sheets = make([]*Sheet, 0, len(names))
	for i, name := range names {
		sheet, err := sheetFromExcelize(f, name, i)
		if err != nil {
			continue
		}
		r.sheets = append(r.sheets, sheet)
	}
	if len(r.sheets) == 0 {
		f.Close()
		return nil, fmt.Errorf("no worksheets found")
	}

	props, err := f.GetDocProps()
	if err == nil && props != nil {
		r.coreProps = &corePropertiesXML{
			Title:       props.Title,
			Subject:     props.Subject,
			Creator:     props.Creator,
			Keywords:    props.Keywords,
			Description: props.Description,
			LastModBy:   props.LastModifiedBy,
		}
	}

	return r, nil
}

func sheetFromExcelize(f *excelize.File, name string, index int) (*Sheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	sheet := &Sheet{
		Name:   name,
		Index:  index,
		MaxRow: len(rows) - 1,
		MaxCol: maxCol - 1,
	}
	if sheet.MaxRow < 0 {
		sheet.MaxRow = 0
	}
	if sheet.MaxCol < 0 {
		sheet.MaxCol = 0
	}

	sheet.Rows = make([][]Cell, len(rows))
	for i, row := range rows {
		sheet.Rows[i] = make([]Cell, maxCol)
		for j := range sheet.Rows[i] {
			sheet.Rows[i][j] = Cell{Row: i, Col: j, Type: CellTypeEmpty, MergeRows: 1, MergeCols: 1}
		}
		for j, v := range row {
			cell := &sheet.Rows[i][j]
			cell.RawValue = v
			if v == "" {
				continue
			}
			cell.Value = v
			cell.Type = CellTypeString
			if ref, _ := excelize.CoordinatesToCellName(j+1, i+1); ref != "" {
				if formula, _ := f.GetCellFormula(name, ref); formula != "" {
					cell.Type = CellTypeFormula
					cell.Formula = formula
					cell.Value = v
				}
			}
		}
	}

	merges, err := f.GetMergeCells(name)
	if err == nil {
		for _, mc := range merges {
			startCol, startRow, endCol, endRow, perr := ParseRangeRef(mc.GetStartAxis() + ":" + mc.GetEndAxis())
			if perr != nil {
				continue
			}
			sheet.MergedRegions = append(sheet.MergedRegions, MergedRegion{
				StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol,
			})
			for row := startRow; row <= endRow && row < len(sheet.Rows); row++ {
				for col := startCol; col <= endCol && col < len(sheet.Rows[row]); col++ {
					cell := &sheet.Rows[row][col]
					cell.IsMerged = true
					cell.IsMergeRoot = row == startRow && col == startCol
					cell.MergeRows = endRow - startRow + 1
					cell.MergeCols = endCol - startCol + 1
				}
			}
		}
	}

	return sheet, nil
}
