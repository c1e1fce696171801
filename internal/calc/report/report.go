package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"Fatigue/internal/calc/damage"
	"Fatigue/internal/calc/life"
	"Fatigue/internal/fatigue"
	"github.com/phpdave11/gofpdf"
)

type LoadCase struct {
	Name    string  `json:"name"`
	SmaxMPa float64 `json:"smax_mpa"`
	SminMPa float64 `json:"smin_mpa"`
}

type Input struct {
	Project   string         `json:"project"`
	Author    string         `json:"author"`
	Title     string         `json:"title"`
	Notes     string         `json:"notes"`
	Method    string         `json:"method"`
	LoadCases []LoadCase     `json:"load_cases" validate:"max=200"`
	Blocks    []damage.Block `json:"blocks" validate:"max=10000,dive"`
}

// Report is everything printed on the PDF, already calculated.
type Report struct {
	Input
	MaterialName string
	Material     fatigue.Material
	Lives        []life.Result
	Damage       *damage.Result
	Date         time.Time
}

func Build(e *fatigue.Engine, materialName string, in Input) (Report, error) {
	method, err := fatigue.ParseMethod(in.Method)
	if err != nil {
		return Report{}, err
	}
	in.Method = string(method)
	if in.Title == "" {
		in.Title = "Fatigue Assessment Report"
	}
	rep := Report{
		Input:        in,
		MaterialName: materialName,
		Material:     e.Material(),
		Date:         time.Now(),
	}
	for i, lc := range in.LoadCases {
		res, err := life.Calculate(e, life.Input{SmaxMPa: lc.SmaxMPa, SminMPa: lc.SminMPa, Method: in.Method})
		if err != nil {
			return Report{}, fmt.Errorf("load case %d: %w", i+1, err)
		}
		rep.Lives = append(rep.Lives, res)
	}
	if len(in.Blocks) > 0 {
		res, err := damage.Calculate(e, damage.Input{Method: in.Method, Blocks: in.Blocks})
		if err != nil {
			return Report{}, err
		}
		rep.Damage = &res
	}
	return rep, nil
}

func Render(w io.Writer, rep Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, rep.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", rep.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", rep.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", rep.Date.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Material")
	m := rep.Material
	table(pdf, []float64{110, 50}, [][]string{
		{"Property", "Value"},
		{"Material", rep.MaterialName},
		{"Ultimate strength Su (MPa)", num(m.UltimateStrength)},
		{"Yield strength Sy (MPa)", num(m.YieldStrength)},
		{"Fatigue strength coefficient (MPa)", num(m.FatigueCoefficient)},
		{"Fatigue strength exponent b", fmt.Sprintf("%.4f", m.FatigueExponent)},
		{"Corrected endurance limit Se (MPa)", num(m.EnduranceLimit)},
	})

	if len(rep.Lives) > 0 {
		section(pdf, "Life prediction")
		rows := [][]string{{"Case", "Smax", "Smin", "R", "Seq", "Cycles", "FoS life", "FoS stress"}}
		for i, res := range rep.Lives {
			name := fmt.Sprintf("LC%d", i+1)
			if i < len(rep.LoadCases) && rep.LoadCases[i].Name != "" {
				name = rep.LoadCases[i].Name
			}
			rows = append(rows, []string{
				name,
				num(float64(res.SmaxMPa)),
				num(float64(res.SminMPa)),
				fmt.Sprintf("%.2f", float64(res.RRatio)),
				num(float64(res.EquivalentStressMPa)),
				cycles(float64(res.PredictedCycles)),
				factor(float64(res.FoSOnLife)),
				factor(float64(res.FoSOnStress)),
			})
		}
		table(pdf, []float64{30, 20, 20, 15, 20, 30, 22, 23}, rows)
	}

	if d := rep.Damage; d != nil {
		section(pdf, "Cumulative damage (Miner's rule)")
		rows := [][]string{{"Block", "Smax", "Smin", "n applied", "N failure", "Damage"}}
		for i, b := range d.Blocks {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				num(float64(b.SmaxMPa)),
				num(float64(b.SminMPa)),
				cycles(float64(b.AppliedCycles)),
				cycles(float64(b.FailureCycles)),
				fmt.Sprintf("%.4f", float64(b.Damage)),
			})
		}
		table(pdf, []float64{20, 25, 25, 35, 35, 30}, rows)
		verdict := "No failure predicted"
		if d.FailurePredicted {
			verdict = "FAILURE PREDICTED"
		}
		pdf.Ln(2)
		pdf.Cell(0, 6, fmt.Sprintf("Total damage D = %.4f, blocks to failure = %s. %s.",
			float64(d.TotalDamage), factor(float64(d.BlocksToFailure)), verdict))
		pdf.Ln(8)
	}

	if len(rep.Lives) > 0 || rep.Damage != nil {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, fmt.Sprintf("Mean stress correction: %s. FoS on stress uses the Goodman line; FoS on life is relative to %.0e cycles.", rep.Method, fatigue.DesignLife), "", "L", false)
		pdf.Ln(2)
	}
	if rep.Notes != "" {
		section(pdf, "Notes")
		pdf.MultiCell(0, 6, rep.Notes, "", "L", false)
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func table(pdf *gofpdf.Fpdf, widths []float64, rows [][]string) {
	for i, row := range rows {
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 10)
		}
		for j, cell := range row {
			pdf.CellFormat(widths[j], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		if i == 0 {
			pdf.SetFont("Helvetica", "", 10)
		}
	}
	pdf.Ln(4)
}

func num(v float64) string {
	if math.IsInf(v, 0) {
		return "inf"
	}
	return fmt.Sprintf("%.1f", v)
}

func cycles(v float64) string {
	if math.IsInf(v, 1) {
		return "infinite"
	}
	return fmt.Sprintf("%.2e", v)
}

func factor(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", v)
}
