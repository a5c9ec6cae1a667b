package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Column - колонка листа. Width == 0 оставляет ширину по умолчанию.
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(T) any
}

// WriteXLSX пишет один лист: жирные заголовки в первой строке, дальше по
// строке на каждый элемент rows.
func WriteXLSX[T any](w io.Writer, sheet string, columns []Column[T], rows []T) error {
	if len(columns) == 0 {
		return fmt.Errorf("экспорт %q: нет колонок", sheet)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("экспорт %q: %w", sheet, err)
	}

	headers := make([]interface{}, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("экспорт %q: заголовки: %w", sheet, err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return err
	}

	for i, col := range columns {
		if col.Width <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return err
		}
	}

	for i, item := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = col.Value(item)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("экспорт %q: строка %d: %w", sheet, i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("экспорт %q: запись файла: %w", sheet, err)
	}
	return nil
}
