package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/csg33k/payroll-roster/internal/adapters/xlsx"
	"github.com/csg33k/payroll-roster/internal/domain"
)

func export(t *testing.T, roster []domain.Employee) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	s := domain.Summarize(roster, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, xlsx.New().Export(context.Background(), s, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExport_Sheets(t *testing.T) {
	f := export(t, nil)
	assert.Equal(t, []string{xlsx.PayrollSheet, xlsx.SummarySheet}, f.GetSheetList())
}

func TestExport_PayrollRows(t *testing.T) {
	f := export(t, []domain.Employee{
		domain.NewManager("Alice", 1, domain.Dollars(50000), domain.Dollars(2000), domain.Dollars(500), domain.Dollars(3000)),
		domain.NewIntern("Carol", 3, 2050, 5, 0),
	})

	rows, err := f.GetRows(xlsx.PayrollSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"ID", "Name", "Role", "Basic Pay", "Allowances", "Deductions", "Bonus", "Salary"}, rows[0])
	assert.Equal(t, []string{"1", "Alice", "Manager", "50000", "2000", "500", "3000", "54500"}, rows[1])
	assert.Equal(t, []string{"3", "Carol", "Intern", "20.5", "0.05", "0", "", "20.55"}, rows[2])
	assert.Equal(t, []string{"", "Total Payroll", "", "", "", "", "", "54520.55"}, rows[3])

	formatted, err := f.GetCellValue(xlsx.PayrollSheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, "54,500.00", formatted)
}

func TestExport_Summary(t *testing.T) {
	f := export(t, []domain.Employee{
		domain.NewManager("Alice", 1, domain.Dollars(50000), domain.Dollars(2000), domain.Dollars(500), domain.Dollars(3000)),
		domain.NewDeveloper("Bob", 2, domain.Dollars(40000), domain.Dollars(1000), domain.Dollars(200)),
		domain.NewIntern("Carol", 3, domain.Dollars(20000), domain.Dollars(500), domain.Dollars(0)),
	})

	rows, err := f.GetRows(xlsx.SummarySheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Role", "Headcount", "Payroll"},
		{"Manager", "1", "54500"},
		{"Developer", "1", "40800"},
		{"Intern", "1", "20500"},
		{"Total Payroll", "3", "115800"},
	}, rows)
}

func TestExport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	roster := []domain.Employee{domain.NewIntern("Carol", 3, 1, 0, 0)}
	var buf bytes.Buffer
	err := xlsx.New().Export(ctx, domain.Summarize(roster, time.Now()), &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
