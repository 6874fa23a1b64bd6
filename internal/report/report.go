// Package report renders worked solutions as PDF documents.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gofluid/internal/worksheet"
)

// Options carries the title block of a report
type Options struct {
	Project string
	Author  string
	Date    time.Time
}

// The core PDF fonts are cp1252, so symbols outside it are spelled out.
var symbols = strings.NewReplacer(
	"ρ", "rho", "μ", "mu", "ν", "nu", "σ", "sigma", "θ", "theta", "η", "eta",
	"ε", "eps", "φ", "phi", "π", "pi", "Σ", "sum", "Δ", "d",
	"ṁ", "m'", "ȳ", "y_cp", "√", "sqrt", "−", "-",
	"₁", "1", "₂", "2", "ₘ", "m", "ₙ", "n", "ₕ", "h", "ₑ", "e",
	"≥", ">=", "≤", "<=", "→", "->",
)

func pdfText(tr func(string) string, s string) string {
	return tr(symbols.Replace(s))
}

// Write renders the sheet as an A4 PDF onto w
func Write(w io.Writer, sheet *worksheet.Sheet, opt Options) error {
	if opt.Date.IsZero() {
		opt.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	txt := func(s string) string { return pdfText(tr, s) }

	pdf.SetTitle(sheet.Title, true)
	pdf.SetCreator("gofluid", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, txt(sheet.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if opt.Project != "" {
		pdf.Cell(0, 6, txt(fmt.Sprintf("Project: %s", opt.Project)))
		pdf.Ln(6)
	}
	if opt.Author != "" {
		pdf.Cell(0, 6, txt(fmt.Sprintf("Author: %s", opt.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", opt.Date.Format("2006-01-02")))
	pdf.Ln(10)

	table := func(heading string, qs []worksheet.Quantity) {
		if len(qs) == 0 {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, heading)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, q := range qs {
			label := q.Label
			if q.Symbol != "" {
				label += " (" + q.Symbol + ")"
			}
			pdf.CellFormat(100, 6, txt(label), "B", 0, "L", false, 0, "")
			pdf.CellFormat(70, 6, txt(q.Text()), "B", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	table("Input data", sheet.Inputs)

	if len(sheet.Steps) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Solution")
		pdf.Ln(8)
		for i, st := range sheet.Steps {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Cell(0, 6, txt(fmt.Sprintf("%d. %s", i+1, st.Title)))
			pdf.Ln(6)
			pdf.SetFont("Courier", "", 9)
			pdf.MultiCell(0, 5, txt(st.String()), "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	table("Results", sheet.Results)

	if len(sheet.Notes) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, n := range sheet.Notes {
			pdf.MultiCell(0, 5, txt("- "+n), "", "L", false)
		}
	}

	return pdf.Output(w)
}

// WriteFile renders the sheet into a PDF file at path
func WriteFile(path string, sheet *worksheet.Sheet, opt Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, sheet, opt); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
