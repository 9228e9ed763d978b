// Package xlsx writes payroll reports as Excel workbooks: a "Payroll" sheet
// with one row per employee and a total row, and a "Summary" sheet with per-role subtotals.
// Amounts are stored as numbers with a two-decimal display format so they
// stay usable in formulas.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/csg33k/payroll-roster/internal/domain"
)

const (
	PayrollSheet = "Payroll"
	SummarySheet = "Summary"

	amountFormat = 4 // built-in "#,##0.00"
)

var payrollHeader = []any{"ID", "Name", "Role", "Basic Pay", "Allowances", "Deductions", "Bonus", "Salary"}

// Exporter implements ports.ReportExporter.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string    { return "xlsx" }
func (e *Exporter) Extension() string { return "xlsx" }

func (e *Exporter) Export(ctx context.Context, s domain.PayrollSummary, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PayrollSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("xlsx: add sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E1E1E"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return fmt.Errorf("xlsx: amount style: %w", err)
	}

	if err := writePayroll(ctx, f, s, headerStyle, amountStyle); err != nil {
		return err
	}
	if err := writeSummary(f, s, headerStyle, amountStyle); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writePayroll(ctx context.Context, f *excelize.File, s domain.PayrollSummary, headerStyle, amountStyle int) error {
	header := append([]any(nil), payrollHeader...)
	if err := f.SetSheetRow(PayrollSheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: payroll header: %w", err)
	}
	if err := f.SetCellStyle(PayrollSheet, "A1", "H1", headerStyle); err != nil {
		return err
	}

	for i, e := range s.Employees {
		if err := ctx.Err(); err != nil {
			return err
		}
		var bonus any
		if e.Kind == domain.KindManager {
			bonus = e.Bonus.Float()
		}
		row := []any{
			e.ID, e.Name, e.Kind.String(),
			e.BasicPay.Float(), e.Allowances.Float(), e.Deductions.Float(),
			bonus, e.Salary().Float(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(PayrollSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: payroll row %d: %w", i+1, err)
		}
	}

	totalRow := len(s.Employees) + 2
	total := []any{nil, "Total Payroll", nil, nil, nil, nil, nil, s.Total.Float()}
	if err := f.SetSheetRow(PayrollSheet, fmt.Sprintf("A%d", totalRow), &total); err != nil {
		return fmt.Errorf("xlsx: payroll total: %w", err)
	}
	if err := f.SetCellStyle(PayrollSheet, "D2", fmt.Sprintf("H%d", totalRow), amountStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(PayrollSheet, "B", "B", 28); err != nil {
		return err
	}
	return f.SetColWidth(PayrollSheet, "D", "H", 14)
}

func writeSummary(f *excelize.File, s domain.PayrollSummary, headerStyle, amountStyle int) error {
	header := []any{"Role", "Headcount", "Payroll"}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: summary header: %w", err)
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "C1", headerStyle); err != nil {
		return err
	}

	rowNum := 2
	for _, kt := range s.ByKind {
		row := []any{kt.Kind.String(), kt.Count, kt.Total.Float()}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return fmt.Errorf("xlsx: summary row: %w", err)
		}
		rowNum++
	}
	total := []any{"Total Payroll", len(s.Employees), s.Total.Float()}
	if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", rowNum), &total); err != nil {
		return fmt.Errorf("xlsx: summary total: %w", err)
	}
	if err := f.SetCellStyle(SummarySheet, "C2", fmt.Sprintf("C%d", rowNum), amountStyle); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "C", 16)
}
