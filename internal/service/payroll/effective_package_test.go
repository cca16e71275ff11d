package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPeriod(t *testing.T, month, year int) payroll.Period {
	t.Helper()
	p, err := payroll.NewPeriod(month, year)
	require.NoError(t, err)
	return p
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func increment(id string, at time.Time, pkg string) employee.Increment {
	return employee.Increment{ID: id, EffectiveDate: at, NewPackage: dec(pkg)}
}

func TestCalculateEffectivePackage(t *testing.T) {
	june := mustPeriod(t, 6, 2024)

	tests := []struct {
		name        string
		base        string
		increments  []employee.Increment
		wantAmount  string
		wantChanges int
	}{
		{
			name:       "no increments keeps base",
			base:       "50000",
			wantAmount: "50000",
		},
		{
			name:       "increment before period becomes baseline",
			base:       "50000",
			increments: []employee.Increment{increment("a", date(2024, 3, 1), "55000")},
			wantAmount: "55000",
		},
		{
			name: "latest prior increment wins regardless of input order",
			base: "50000",
			increments: []employee.Increment{
				increment("b", date(2024, 5, 1), "58000"),
				increment("a", date(2024, 3, 1), "55000"),
			},
			wantAmount: "58000",
		},
		{
			name:        "increment on first day replaces the package",
			base:        "50000",
			increments:  []employee.Increment{increment("a", date(2024, 6, 1), "70000")},
			wantAmount:  "70000",
			wantChanges: 1,
		},
		{
			name:        "mid month increment is day weighted",
			base:        "60000",
			increments:  []employee.Increment{increment("a", date(2024, 6, 16), "90000")},
			wantAmount:  "75000",
			wantChanges: 1,
		},
		{
			name:       "increment after period is ignored",
			base:       "60000",
			increments: []employee.Increment{increment("a", date(2024, 7, 1), "90000")},
			wantAmount: "60000",
		},
		{
			name: "two increments in period",
			base: "30000",
			increments: []employee.Increment{
				increment("b", date(2024, 6, 21), "60000"),
				increment("a", date(2024, 6, 11), "45000"),
			},
			// 10 days at 30000, 10 at 45000, 10 at 60000
			wantAmount:  "45000",
			wantChanges: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEffectivePackage(dec(tt.base), tt.increments, june)

			assert.True(t, dec(tt.wantAmount).Equal(got.Amount), "amount: got %s want %s", got.Amount, tt.wantAmount)
			assert.Len(t, got.Changes, tt.wantChanges)
		})
	}
}

func TestCalculateEffectivePackage_Audit(t *testing.T) {
	// Example: 60000 base, increment to 90000 on the 16th of a 30 day month.
	june := mustPeriod(t, 6, 2024)
	got := CalculateEffectivePackage(dec("60000"), []employee.Increment{increment("inc-1", date(2024, 6, 16), "90000")}, june)

	require.Len(t, got.Changes, 1)
	change := got.Changes[0]
	assert.Equal(t, "inc-1", change.IncrementID)
	assert.Equal(t, 15, change.DaysBefore)
	assert.True(t, dec("60000").Equal(change.OldPackage))
	assert.True(t, dec("90000").Equal(change.NewPackage))
	assert.Equal(t, date(2024, 6, 16), change.Date)
}

func TestCalculateEffectivePackage_LastDay(t *testing.T) {
	// 30 days at 31000, 1 day at 62000 over 31 days.
	july := mustPeriod(t, 7, 2024)
	got := CalculateEffectivePackage(dec("31000"), []employee.Increment{increment("a", date(2024, 7, 31), "62000")}, july)

	assert.True(t, dec("32000").Equal(got.Amount), "got %s", got.Amount)
}
