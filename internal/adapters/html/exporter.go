// Package html renders payroll reports as standalone HTML pages.
package html

import (
	"context"
	"io"

	"github.com/csg33k/payroll-roster/internal/domain"
	"github.com/csg33k/payroll-roster/internal/templates"
)

// Exporter implements ports.ReportExporter.
type Exporter struct {
	money domain.AmountFormatter
}

func New(money domain.AmountFormatter) *Exporter {
	return &Exporter{money: money}
}

func (e *Exporter) Format() string    { return "html" }
func (e *Exporter) Extension() string { return "html" }

func (e *Exporter) Export(ctx context.Context, s domain.PayrollSummary, w io.Writer) error {
	return templates.PayrollReport(s, e.money).Render(ctx, w)
}
