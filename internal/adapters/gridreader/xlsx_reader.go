package gridreader

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readWorkbook читает первый лист книги с сохранением типов ячеек
func readWorkbook(r io.Reader) ([][]interface{}, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate rows of sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	grid := make([][]interface{}, 0)
	rowIdx := 0
	for rows.Next() {
		rowIdx++
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rowIdx, err)
		}

		row := make([]interface{}, len(cols))
		for colIdx, raw := range cols {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("failed to get type of cell %s: %w", cell, err)
			}
			row[colIdx] = typedCellValue(cellType, raw)
		}
		grid = append(grid, row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return grid, nil
}

// typedCellValue: числа -> float64, логические -> bool, остальное -> строка
func typedCellValue(cellType excelize.CellType, raw string) interface{} {
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// Числовые ячейки без явного типа хранятся как t="n" по умолчанию
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	}
	return raw
}
