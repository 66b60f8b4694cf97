package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// ToPDF renders the dataset as a landscape A4 table.
func ToPDF(ds Dataset) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	title := ds.Title
	if title == "" {
		title = "Export"
	}
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	colWidth := usable
	if len(ds.Headers) > 0 {
		colWidth = usable / float64(len(ds.Headers))
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range ds.Headers {
		pdf.CellFormat(colWidth, 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range ds.Rows {
		for _, h := range ds.Headers {
			pdf.CellFormat(colWidth, 7, row[h], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
