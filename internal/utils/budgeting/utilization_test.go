package budgeting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/utils/budgeting"
)

func TestClassifyBoundaries(t *testing.T) {
	thresholds := budgeting.DefaultThresholds()
	allocated := decimal.NewFromInt(10000)

	tests := []struct {
		name  string
		spent decimal.Decimal
		want  domain.UtilizationStatus
	}{
		{"zero spend", decimal.Zero, domain.UtilizationHealthy},
		{"thirty percent", decimal.NewFromInt(3000), domain.UtilizationHealthy},
		{"just below moderate", decimal.NewFromInt(7999), domain.UtilizationHealthy},
		{"rounds up to moderate", decimal.NewFromFloat(7999.90), domain.UtilizationModerate},
		{"at moderate boundary", decimal.NewFromInt(8000), domain.UtilizationModerate},
		{"ninety percent", decimal.NewFromInt(9000), domain.UtilizationModerate},
		{"just below high", decimal.NewFromInt(9499), domain.UtilizationModerate},
		{"rounds up to high", decimal.NewFromFloat(9499.90), domain.UtilizationHigh},
		{"at high boundary", decimal.NewFromInt(9500), domain.UtilizationHigh},
		{"fully consumed", decimal.NewFromInt(10000), domain.UtilizationHigh},
		{"over but displays as hundred", decimal.NewFromFloat(10000.01), domain.UtilizationHigh},
		{"one cent over per displayed percentage", decimal.NewFromInt(10001), domain.UtilizationExceeded},
		{"far over", decimal.NewFromInt(25000), domain.UtilizationExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, budgeting.Classify(allocated, tt.spent, thresholds))
		})
	}
}

func TestClassifyZeroAllocation(t *testing.T) {
	thresholds := budgeting.DefaultThresholds()

	assert.Equal(t, domain.UtilizationHealthy, budgeting.Classify(decimal.Zero, decimal.Zero, thresholds))
	assert.Equal(t, domain.UtilizationExceeded, budgeting.Classify(decimal.Zero, decimal.NewFromFloat(0.01), thresholds))
}

func TestClassifyCustomThresholds(t *testing.T) {
	thresholds := budgeting.Thresholds{
		Moderate: decimal.NewFromInt(50),
		High:     decimal.NewFromInt(75),
	}
	allocated := decimal.NewFromInt(100)

	assert.Equal(t, domain.UtilizationHealthy, budgeting.Classify(allocated, decimal.NewFromInt(49), thresholds))
	assert.Equal(t, domain.UtilizationModerate, budgeting.Classify(allocated, decimal.NewFromInt(50), thresholds))
	assert.Equal(t, domain.UtilizationHigh, budgeting.Classify(allocated, decimal.NewFromInt(75), thresholds))
	assert.Equal(t, domain.UtilizationExceeded, budgeting.Classify(allocated, decimal.NewFromInt(101), thresholds))
}

func TestPercentage(t *testing.T) {
	pct := budgeting.Percentage(decimal.NewFromInt(10000), decimal.NewFromInt(3000))
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(decimal.NewFromInt(30)))

	pct = budgeting.Percentage(decimal.NewFromInt(3), decimal.NewFromInt(1))
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(decimal.NewFromFloat(33.33)), "got %s", pct)

	assert.Nil(t, budgeting.Percentage(decimal.Zero, decimal.NewFromInt(500)))
	assert.Nil(t, budgeting.Percentage(decimal.Zero, decimal.Zero))
}

func TestUtilizeFillsDerivedFields(t *testing.T) {
	allocation := domain.BudgetAllocation{
		AllocationID: "alloc-1",
		DepartmentID: "dept-1",
		AccountID:    "acct-1",
		FiscalYear:   2025,
		Allocated:    decimal.NewFromInt(10000),
		Spent:        decimal.NewFromInt(9000),
	}

	utilization := budgeting.Utilize(allocation, budgeting.DefaultThresholds())

	assert.Equal(t, "alloc-1", utilization.AllocationID)
	assert.Equal(t, 2025, utilization.FiscalYear)
	assert.True(t, utilization.Remaining.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, utilization.Percentage)
	assert.True(t, utilization.Percentage.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, domain.UtilizationModerate, utilization.Status)
}

func TestUtilizeNegativeRemaining(t *testing.T) {
	allocation := domain.BudgetAllocation{
		Allocated: decimal.NewFromInt(2000),
		Spent:     decimal.NewFromInt(2500),
	}

	utilization := budgeting.Utilize(allocation, budgeting.DefaultThresholds())

	assert.True(t, utilization.Remaining.Equal(decimal.NewFromInt(-500)))
	assert.Equal(t, domain.UtilizationExceeded, utilization.Status)
	require.NotNil(t, utilization.Percentage)
	assert.True(t, utilization.Percentage.Equal(decimal.NewFromInt(125)))
}
