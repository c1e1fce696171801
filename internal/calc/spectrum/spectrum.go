// Package spectrum imports load spectra from spreadsheets and runs them
// through Miner's rule.
package spectrum

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Fatigue/internal/calc"
	"Fatigue/internal/calc/damage"
	"github.com/xuri/excelize/v2"
)

// ReadBlocks reads the first sheet of an xlsx workbook. Columns are
// smax (MPa), smin (MPa), applied cycles. The first non-blank row is
// skipped when it is a header. Blank rows are skipped. Applied cycles
// must be positive.
func ReadBlocks(r io.Reader) ([]damage.Block, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", calc.ErrValidation, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet: %v", calc.ErrValidation, err)
	}

	var blocks []damage.Block
	seen := false
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		if !seen {
			seen = true
			if !isNumber(row[0]) {
				continue
			}
		}
		b, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", calc.ErrValidation, i+1, err)
		}
		blocks = append(blocks, b)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: spectrum has no load blocks", calc.ErrValidation)
	}
	return blocks, nil
}

func parseRow(row []string) (damage.Block, error) {
	if len(row) < 3 {
		return damage.Block{}, fmt.Errorf("expected smax, smin, cycles; got %d columns", len(row))
	}
	vals := make([]float64, 3)
	for i := range vals {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return damage.Block{}, fmt.Errorf("column %d: %q is not a number", i+1, row[i])
		}
		vals[i] = v
	}
	if vals[2] <= 0 {
		return damage.Block{}, fmt.Errorf("applied cycles must be positive, got %g", vals[2])
	}
	return damage.Block{SmaxMPa: vals[0], SminMPa: vals[1], AppliedCycles: vals[2]}, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
