// Package pdf renders short single-page summary documents.
package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	pageWidth  = 600
	pageHeight = 800
	margin     = 50
	fontFamily = "Helvetica"
)

type Line struct {
	Label string
	Value string
}

// Summary is a titled document: a block of details, a headed list of
// amounts and a closing total.
type Summary struct {
	Title   string
	Details []Line

	ItemsHeading string
	Items        []Line

	Total Line
}

var amounts = message.NewPrinter(language.English)

// FormatAmount prints an amount with thousands separators, e.g. "INR 32,500".
func FormatAmount(currency string, amount int64) string {
	if currency == "" {
		return amounts.Sprintf("%d", amount)
	}
	return amounts.Sprintf("%s %d", currency, amount)
}

// Render writes s as a PDF document to w.
func Render(w io.Writer, s Summary) error {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle(s.Title, false)
	doc.SetCreator("trulytravels", false)

	tr := doc.UnicodeTranslatorFromDescriptor("")
	width := float64(pageWidth - 2*margin)

	doc.AddPage()

	doc.SetFont(fontFamily, "B", 20)
	doc.CellFormat(width, 28, tr(s.Title), "", 1, "L", false, 0, "")
	doc.Ln(12)

	doc.SetFont(fontFamily, "", 12)
	for _, l := range s.Details {
		doc.CellFormat(width, 18, tr(l.Label+": "+l.Value), "", 1, "L", false, 0, "")
	}

	if s.ItemsHeading != "" || len(s.Items) > 0 {
		doc.Ln(12)
		doc.SetFont(fontFamily, "B", 14)
		doc.CellFormat(width, 22, tr(s.ItemsHeading), "", 1, "L", false, 0, "")
		doc.SetFont(fontFamily, "", 12)
		for _, l := range s.Items {
			doc.CellFormat(width/2, 18, tr(l.Label), "", 0, "L", false, 0, "")
			doc.CellFormat(width/2, 18, tr(l.Value), "", 1, "R", false, 0, "")
		}
	}

	if s.Total.Label != "" {
		doc.Ln(8)
		doc.SetFont(fontFamily, "B", 14)
		doc.CellFormat(width/2, 22, tr(s.Total.Label), "T", 0, "L", false, 0, "")
		doc.CellFormat(width/2, 22, tr(s.Total.Value), "T", 1, "R", false, 0, "")
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("pdf: render failed: %w", err)
	}
	return nil
}
