// Package pdf generates a printable payroll report. The first section lists
// every employee with their pay components and salary; a summary table with
// per-role subtotals and the total payroll follows.
package pdf

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/payroll-roster/internal/domain"
)

// Exporter implements ports.ReportExporter.
type Exporter struct {
	money domain.AmountFormatter
}

func New(money domain.AmountFormatter) *Exporter {
	return &Exporter{money: money}
}

func (e *Exporter) Format() string    { return "pdf" }
func (e *Exporter) Extension() string { return "pdf" }

// Export writes the report to w. Rows flow onto further pages as needed; the
// header bar is repeated on each page.
func (e *Exporter) Export(ctx context.Context, s domain.PayrollSummary, w io.Writer) error {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AliasNbPages("{nb}")
	// Core fonts are cp1252; names and currency symbols arrive as UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() { drawHeader(pdf, s) })
	pdf.SetFooterFunc(func() { drawFooter(pdf) })
	pdf.AddPage()

	drawEmployees(pdf, s, e.money, tr)
	if err := ctx.Err(); err != nil {
		return err
	}
	pdf.Ln(6)
	drawSummary(pdf, s, e.money, tr)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return pdf.Output(w)
}

func contentWidth(pdf *fpdf.Fpdf) float64 {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	return pageW - marginL - marginR
}

func drawHeader(pdf *fpdf.Fpdf, s domain.PayrollSummary) {
	marginL, marginT, _, _ := pdf.GetMargins()
	contentW := contentWidth(pdf)

	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW/2, 7, "PAYROLL REPORT", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2-4, 7, "Generated "+s.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginL, marginT+14)
}

func drawFooter(pdf *fpdf.Fpdf) {
	pdf.SetY(-12)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(0, 5, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentWidth(pdf), 5.5, title, "1", 1, "L", true, 0, "")
}

func tableHeader(pdf *fpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	for i, label := range labels {
		align := "R"
		if i < 3 {
			align = "L"
		}
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 7, label, "1", ln, align, true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func drawEmployees(pdf *fpdf.Fpdf, s domain.PayrollSummary, money domain.AmountFormatter, tr func(string) string) {
	sectionTitle(pdf, "EMPLOYEES")
	if len(s.Employees) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentWidth(pdf), 7, "No employees found.", "LRB", 1, "L", false, 0, "")
		return
	}

	contentW := contentWidth(pdf)
	idW, roleW := contentW*0.07, contentW*0.11
	nameW := contentW * 0.22
	amtW := (contentW - idW - roleW - nameW) / 5
	widths := []float64{idW, nameW, roleW, amtW, amtW, amtW, amtW, amtW}
	tableHeader(pdf, widths, []string{"ID", "Name", "Role", "Basic Pay", "Allowances", "Deductions", "Bonus", "Salary"})

	rowH := 6.5
	for i, e := range s.Employees {
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetFont("Helvetica", "", 8.5)
		bonus := ""
		if e.Kind == domain.KindManager {
			bonus = money.Format(e.Bonus)
		}
		cells := []string{
			fmt.Sprint(e.ID), e.Name, e.Kind.String(),
			money.Format(e.BasicPay), money.Format(e.Allowances), money.Format(e.Deductions),
			bonus,
		}
		for j, c := range cells {
			align := "R"
			if j == 1 || j == 2 {
				align = "L"
			}
			pdf.CellFormat(widths[j], rowH, tr(c), "1", 0, align, true, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 8.5)
		pdf.CellFormat(widths[7], rowH, tr(money.Format(e.Salary())), "1", 1, "R", true, 0, "")
	}
}

func drawSummary(pdf *fpdf.Fpdf, s domain.PayrollSummary, money domain.AmountFormatter, tr func(string) string) {
	sectionTitle(pdf, "SUMMARY BY ROLE")
	contentW := contentWidth(pdf)
	roleW := contentW * 0.5
	countW := contentW * 0.2
	totalW := contentW - roleW - countW

	pdf.SetFont("Helvetica", "", 9)
	for _, kt := range s.ByKind {
		pdf.CellFormat(roleW, 6.5, kt.Kind.String(), "L", 0, "L", false, 0, "")
		pdf.CellFormat(countW, 6.5, fmt.Sprint(kt.Count), "", 0, "R", false, 0, "")
		pdf.CellFormat(totalW, 6.5, tr(money.Format(kt.Total)), "R", 1, "R", false, 0, "")
	}

	pdf.SetFillColor(220, 240, 220)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(roleW, 8, "Total Payroll", "LTB", 0, "L", true, 0, "")
	pdf.CellFormat(countW, 8, fmt.Sprint(len(s.Employees)), "TB", 0, "R", true, 0, "")
	pdf.CellFormat(totalW, 8, tr(money.Format(s.Total)), "RTB", 1, "R", true, 0, "")
}
