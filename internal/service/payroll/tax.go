package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// CalculateTax annualises the taxable breakup lines, subtracts approved
// rebates and applies the matching slab. The result carries the full audit
// trail, MonthlyTax is the deduction.
func CalculateTax(lines []payroll.BreakupLine, rebates []payroll.Rebate, slabs []payroll.TaxSlab, effectivePackage decimal.Decimal) payroll.TaxBreakdown {
	tb := payroll.TaxBreakdown{
		EffectivePackage:  effectivePackage,
		TaxableComponents: []payroll.TaxableComponent{},
		Rebates:           []payroll.AdjustmentItem{},
	}

	monthly := decimal.Zero
	for _, line := range lines {
		if !line.IsTaxable || !line.Amount.IsPositive() {
			continue
		}
		tb.TaxableComponents = append(tb.TaxableComponents, payroll.TaxableComponent{Name: line.Name, Amount: line.Amount})
		monthly = monthly.Add(line.Amount)
	}
	tb.MonthlyTaxableAmount = monthly
	tb.AnnualTaxableAmount = monthly.Mul(monthsPerYear)

	totalRebate := decimal.Zero
	for _, r := range rebates {
		if !approved(r.Status) {
			continue
		}
		tb.Rebates = append(tb.Rebates, payroll.AdjustmentItem{ID: r.ID, Name: r.Name, Amount: r.Amount})
		totalRebate = totalRebate.Add(r.Amount)
	}
	tb.TotalRebate = totalRebate

	income := tb.AnnualTaxableAmount.Sub(totalRebate)
	if income.IsNegative() {
		income = decimal.Zero
	}
	tb.TaxableIncome = income

	slab, ok := findTaxSlab(slabs, income)
	if !ok {
		return tb
	}

	tb.Slab = &slab
	tb.FixedTax = slab.FixedAmount
	tb.PercentageTax = income.Sub(slab.MinAmount).Mul(slab.Rate).Div(hundred).Round(2)
	tb.AnnualTax = tb.FixedTax.Add(tb.PercentageTax)
	tb.MonthlyTax = tb.AnnualTax.Div(monthsPerYear).Round(2)
	return tb
}

// findTaxSlab picks the active slab containing income, preferring the
// highest lower bound when ranges touch.
func findTaxSlab(slabs []payroll.TaxSlab, income decimal.Decimal) (payroll.TaxSlab, bool) {
	var (
		best  payroll.TaxSlab
		found bool
	)
	for _, s := range slabs {
		if !s.IsActive {
			continue
		}
		if income.LessThan(s.MinAmount) || income.GreaterThan(s.MaxAmount) {
			continue
		}
		if !found || s.MinAmount.GreaterThan(best.MinAmount) {
			best, found = s, true
		}
	}
	return best, found
}
