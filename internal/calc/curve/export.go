package curve

import (
	"fmt"
	"io"

	"Fatigue/internal/fatigue"
	"github.com/xuri/excelize/v2"
)

const sheetName = "S-N"

// WriteWorkbook writes the curve as an xlsx table for plotting tools.
func WriteWorkbook(w io.Writer, materialName string, data fatigue.CurveData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	header := []any{"cycles", "stress_fully_reversed_mpa"}
	if data.StressR0 != nil {
		header = append(header, "stress_r0_mpa")
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, n := range data.Cycles {
		row := []any{n, data.StressFullyReversed[i]}
		if data.StressR0 != nil {
			row = append(row, data.StressR0[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	// material summary to the right of the table
	summary := [][]any{
		{"material", materialName},
		{"endurance_limit_mpa", data.EnduranceLimit},
	}
	for i, row := range summary {
		cell := fmt.Sprintf("F%d", i+1)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
