// Package export writes data from a built database to spreadsheets.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/meur/mhwdb/internal/models"
	"github.com/meur/mhwdb/internal/process"
)

// DropTableSheet is the sheet name of the decoration drop tables.
const DropTableSheet = "Drop Tables"

// WriteDecorationChances writes one row per decoration with its tier and the
// probability of each feystone yielding it. chances must be grouped by
// decoration, as returned by storage.Store.GetDecorationChances.
//
// Postcondition: returns the number of decoration rows written.
func WriteDecorationChances(path string, chances []models.DecorationChance) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", DropTableSheet); err != nil {
		return 0, err
	}

	header := []interface{}{"Decoration", "Tier"}
	for _, feystone := range process.Feystones {
		header = append(header, feystone)
	}
	if err := f.SetSheetRow(DropTableSheet, "A1", &header); err != nil {
		return 0, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return 0, err
	}
	if err := f.SetCellStyle(DropTableSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return 0, err
	}

	column := make(map[string]int, len(process.Feystones))
	for i, feystone := range process.Feystones {
		column[feystone] = i + 3
	}

	row := 1
	lastID := 0
	for _, c := range chances {
		if c.DecorationID != lastID {
			row++
			lastID = c.DecorationID
			if err := f.SetCellValue(DropTableSheet, fmt.Sprintf("A%d", row), c.Name); err != nil {
				return 0, fmt.Errorf("decoration %d name: %w", c.DecorationID, err)
			}
			if err := f.SetCellValue(DropTableSheet, fmt.Sprintf("B%d", row), c.Tier); err != nil {
				return 0, fmt.Errorf("decoration %d tier: %w", c.DecorationID, err)
			}
		}
		col, ok := column[c.Feystone]
		if !ok {
			return 0, fmt.Errorf("unknown feystone %q for decoration %d", c.Feystone, c.DecorationID)
		}
		if math.IsNaN(c.Probability) || c.Probability < 0 || c.Probability > 1 {
			return 0, fmt.Errorf("decoration %d %s chance %v is not a probability", c.DecorationID, c.Feystone, c.Probability)
		}
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(DropTableSheet, cell, c.Probability); err != nil {
			return 0, fmt.Errorf("decoration %d %s chance: %w", c.DecorationID, c.Feystone, err)
		}
	}

	if err := f.SetColWidth(DropTableSheet, "A", "A", 28); err != nil {
		return 0, err
	}
	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("saving %s: %w", path, err)
	}
	return row - 1, nil
}
