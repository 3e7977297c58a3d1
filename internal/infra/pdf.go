package infra

// Day-end report PDF generation using go-pdf/fpdf. The report is a compact
// A5 sheet: staff header, the cash/card breakdown of open sales, lifetime
// totals and a settled/outstanding stamp. Rendered into memory so handlers
// can stream it or the mailer can attach it.

import (
	"bytes"
	"fmt"
	"time"

	"wonkepos/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateDayEndPDF renders a day-end summary for one staff member.
func GenerateDayEndPDF(shopName string, summary *dto.DayEndSummaryResponse) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 148, Ht: 210}, // A5
	})
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, shopName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Day-End Report", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, summary.StaffName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, time.Now().Format("02 Jan 2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	labelW := contentW * 0.6
	valueW := contentW * 0.4

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	row("Open cash sales", summary.OpenCash.StringFixed(2), false)
	row("Open card sales", summary.OpenCard.StringFixed(2), false)
	row("Open total", summary.OpenTotal.StringFixed(2), true)
	pdf.Ln(2)
	row("Lifetime sales", summary.TotalSales.StringFixed(2), false)
	row("Transactions", fmt.Sprintf("%d", summary.TransactionCount), false)

	pdf.Ln(4)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	if summary.Settled {
		pdf.CellFormat(contentW, 7, "SETTLED", "", 1, "C", false, 0, "")
	} else {
		pdf.CellFormat(contentW, 7, "OUTSTANDING", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
