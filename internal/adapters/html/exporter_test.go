package html_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/payroll-roster/internal/adapters/html"
	"github.com/csg33k/payroll-roster/internal/currency"
	"github.com/csg33k/payroll-roster/internal/domain"
)

var generatedAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func TestExport_RendersRosterAndTotals(t *testing.T) {
	roster := []domain.Employee{
		domain.NewManager("Alice", 1, domain.Dollars(50000), domain.Dollars(2000), domain.Dollars(500), domain.Dollars(3000)),
		domain.NewDeveloper("Bob", 2, domain.Dollars(40000), domain.Dollars(1000), domain.Dollars(200)),
		domain.NewIntern("Carol", 3, domain.Dollars(20000), domain.Dollars(500), domain.Dollars(0)),
	}
	var buf bytes.Buffer
	exp := html.New(currency.Default())
	require.NoError(t, exp.Export(context.Background(), domain.Summarize(roster, generatedAt), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "Generated 2024-03-01 09:30:00")
	assert.Contains(t, out, "<td>Alice</td>")
	assert.Contains(t, out, "$54,500.00")
	assert.Contains(t, out, "$3,000.00")
	assert.Contains(t, out, "$20,500.00")
	assert.Contains(t, out, "$115,300.00")
	assert.NotContains(t, out, "No employees found.")
	assert.Contains(t, out, `<td class="amount">$3,000.00</td><td class="amount">$54,500.00</td>`)
	assert.Contains(t, out, `<td>Developer</td><td class="amount">1</td><td class="amount">$40,800.00</td>`)
	assert.Contains(t, out, `<tr class="total"><td>Total Payroll</td><td class="amount">3</td><td class="amount">$115,300.00</td>`)
}

func TestExport_BonusCellOnlyForManagers(t *testing.T) {
	roster := []domain.Employee{
		domain.NewDeveloper("Bob", 2, domain.Dollars(40000), domain.Dollars(1000), domain.Dollars(200)),
	}
	var buf bytes.Buffer
	require.NoError(t, html.New(currency.Default()).Export(context.Background(), domain.Summarize(roster, generatedAt), &buf))
	assert.Contains(t, buf.String(), `<td class="amount">$200.00</td><td class="amount"></td><td class="amount">$40,800.00</td>`)
}

func TestExport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := html.New(currency.Default()).Export(ctx, domain.Summarize(nil, generatedAt), &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestExport_EscapesNames(t *testing.T) {
	roster := []domain.Employee{
		domain.NewDeveloper("<script>alert(1)</script>", 7, domain.Dollars(1), 0, 0),
	}
	var buf bytes.Buffer
	require.NoError(t, html.New(currency.Default()).Export(context.Background(), domain.Summarize(roster, generatedAt), &buf))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, html.New(currency.Default()).Export(context.Background(), domain.Summarize(nil, generatedAt), &buf))
	assert.Contains(t, buf.String(), "No employees found.")
	assert.Contains(t, buf.String(), "$0.00")
}

func TestExporterNames(t *testing.T) {
	exp := html.New(currency.Default())
	assert.Equal(t, "html", exp.Format())
	assert.Equal(t, "html", exp.Extension())
}
