package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func boolPtr(b bool) *bool { return &b }

func TestAllocateSalaryBreakup_RoundingGoesToLastLine(t *testing.T) {
	components := []payroll.SalaryBreakupComponent{
		{Name: "Basic Salary", Percentage: pct("33.33")},
		{Name: "House Rent", Percentage: pct("33.33")},
		{Name: "Utilities", Percentage: pct("33.34")},
	}

	lines, basic := AllocateSalaryBreakup(dec("10000"), components)

	require.Len(t, lines, 3)
	assert.True(t, dec("3333").Equal(lines[0].Amount))
	assert.True(t, dec("3333").Equal(lines[1].Amount))
	assert.True(t, dec("3334").Equal(lines[2].Amount))
	assert.True(t, dec("3333").Equal(basic))

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Amount)
	}
	assert.True(t, dec("10000").Equal(sum))
}

func TestAllocateSalaryBreakup_ReconcilesFractionalPackage(t *testing.T) {
	components := []payroll.SalaryBreakupComponent{
		{Name: "Basic", Percentage: pct("50")},
		{Name: "Allowance", Percentage: pct("50")},
	}

	// 50.5% halves round up to 25251 each, target is 50501.
	lines, _ := AllocateSalaryBreakup(dec("50501"), components)

	require.Len(t, lines, 2)
	sum := lines[0].Amount.Add(lines[1].Amount)
	assert.True(t, dec("50501").Equal(sum), "sum %s", sum)
}

func TestAllocateSalaryBreakup_SkipsComponentsWithoutPercentage(t *testing.T) {
	components := []payroll.SalaryBreakupComponent{
		{Name: "Basic", Percentage: pct("100")},
		{Name: "Fuel"},
	}

	lines, basic := AllocateSalaryBreakup(dec("60000"), components)

	require.Len(t, lines, 1)
	assert.Equal(t, "Basic", lines[0].Name)
	assert.True(t, dec("60000").Equal(basic))
}

func TestAllocateSalaryBreakup_BasicFallsBackToPackage(t *testing.T) {
	components := []payroll.SalaryBreakupComponent{
		{Name: "Gross", Percentage: pct("100")},
	}

	_, basic := AllocateSalaryBreakup(dec("45000.50"), components)

	assert.True(t, dec("45000.50").Equal(basic))
}

func TestComponentIsTaxable(t *testing.T) {
	tests := []struct {
		name      string
		component payroll.SalaryBreakupComponent
		want      bool
	}{
		{"no metadata", payroll.SalaryBreakupComponent{Name: "Basic"}, true},
		{"override false", payroll.SalaryBreakupComponent{Name: "Medical", IsTaxableOverride: boolPtr(false)}, false},
		{"override wins over metadata", payroll.SalaryBreakupComponent{
			Name: "Medical", IsTaxableOverride: boolPtr(true), Metadata: []byte(`{"is_taxable":false}`),
		}, true},
		{"metadata false", payroll.SalaryBreakupComponent{Name: "Medical", Metadata: []byte(`{"is_taxable":false}`)}, false},
		{"metadata without flag", payroll.SalaryBreakupComponent{Name: "Medical", Metadata: []byte(`{"code":"MED"}`)}, true},
		{"malformed metadata", payroll.SalaryBreakupComponent{Name: "Medical", Metadata: []byte(`{not json`)}, true},
		{"take home always taxable", payroll.SalaryBreakupComponent{
			Name: "Take-Home Salary", IsTaxableOverride: boolPtr(false),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, componentIsTaxable(tt.component))
		})
	}
}
