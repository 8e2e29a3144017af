package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRevenueReport(t *testing.T) {
	revenue := []aggregateRow{
		{Period: "2025-03-01", Total: 500},
		{Period: "2025-03-02", Total: 300},
	}
	expenses := []aggregateRow{
		{Period: "2025-03-02", Total: 100},
		{Period: "2025-03-03", Total: 250},
	}

	report := buildRevenueReport("2025-03-01", "2025-03-03", "day", revenue, expenses)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, "2025-03-01", report.Rows[0].Period)
	assert.Equal(t, 500.0, report.Rows[0].Revenue)
	assert.Equal(t, 0.0, report.Rows[0].Expenses)

	assert.Equal(t, "2025-03-02", report.Rows[1].Period)
	assert.Equal(t, 200.0, report.Rows[1].Net)

	// expense-only bucket still shows up, as a negative net
	assert.Equal(t, "2025-03-03", report.Rows[2].Period)
	assert.Equal(t, -250.0, report.Rows[2].Net)

	assert.Equal(t, 800.0, report.TotalRevenue)
	assert.Equal(t, 350.0, report.TotalExpenses)
	assert.Equal(t, 450.0, report.Net)
}

func TestBuildRevenueReportEmpty(t *testing.T) {
	report := buildRevenueReport("2025-03-01", "2025-03-31", "month", nil, nil)
	assert.Empty(t, report.Rows)
	assert.Zero(t, report.Net)
}
