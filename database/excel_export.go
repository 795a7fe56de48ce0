// backend/database/excel_export.go
package database

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gewnthar/greenskies/backend/models"
)

const historySheet = "History"

// ExportExcel writes the ledger as a single-sheet workbook at dest: a styled,
// frozen, filterable header row followed by one row per entry in ledger order.
func (s *HistoryStore) ExportExcel(dest string) error {
	entries, err := s.ReadAll()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrNoHistoryAvailable
	}

	f, err := buildWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(dest); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", dest, err)
	}
	return nil
}

// WriteExcel streams the same workbook ExportExcel saves.
func (s *HistoryStore) WriteExcel(w io.Writer) error {
	entries, err := s.ReadAll()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrNoHistoryAvailable
	}

	f, err := buildWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(entries []models.HistoryEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0A1628"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create number style: %w", err)
	}

	header := make([]interface{}, len(HistoryColumns))
	for i, col := range HistoryColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(historySheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(HistoryColumns))
	f.SetCellStyle(historySheet, "A1", lastCol+"1", headerStyle)

	for i, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Origin,
			e.Destination,
			e.DistanceKm,
			e.AircraftType,
			e.RadiativeForcing,
			e.SAFBlendPercent,
			e.CO2Kg,
			e.FuelLiters,
			e.TreesEquivalent,
			e.OffsetCost,
		}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write history row %d: %w", i+1, err)
		}
	}
	lastRow := len(entries) + 1
	f.SetCellStyle(historySheet, "D2", fmt.Sprintf("D%d", lastRow), numberStyle)
	f.SetCellStyle(historySheet, "H2", fmt.Sprintf("%s%d", lastCol, lastRow), numberStyle)

	f.SetPanes(historySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	f.AutoFilter(historySheet, "A1:"+lastCol+"1", nil)
	f.SetColWidth(historySheet, "A", "A", 26)
	f.SetColWidth(historySheet, "B", lastCol, 14)

	return f, nil
}
