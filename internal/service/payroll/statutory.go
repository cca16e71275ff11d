package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// yearMonthLayouts are the accepted EOBI labels, e.g. "January 2024" and "2024-01".
var yearMonthLayouts = []string{"January 2006", "Jan 2006", "2006-01"}

func matchesPeriod(label string, period payroll.Period) bool {
	label = strings.TrimSpace(label)
	for _, layout := range yearMonthLayouts {
		t, err := time.Parse(layout, label)
		if err != nil {
			continue
		}
		return t.Year() == period.Year && int(t.Month()) == period.Month
	}
	return false
}

// CalculateEOBI returns the employee contribution of the active EOBI record
// labelled with the period. A missing record yields zero and a warning.
func CalculateEOBI(enabled bool, records []payroll.EOBIRecord, period payroll.Period) (decimal.Decimal, string) {
	if !enabled {
		return decimal.Zero, ""
	}
	for _, r := range records {
		if r.IsActive && matchesPeriod(r.YearMonth, period) {
			return r.EmployeeContribution, ""
		}
	}
	return decimal.Zero, fmt.Sprintf("no active EOBI record for %s", period.MonthYear())
}

// CalculateProvidentFund charges the fund percentage on gross. pf is nil when
// no fund is active, which yields zero and a warning.
func CalculateProvidentFund(enabled bool, pf *payroll.ProvidentFund, gross decimal.Decimal) (decimal.Decimal, string) {
	if !enabled {
		return decimal.Zero, ""
	}
	if pf == nil {
		return decimal.Zero, "no active provident fund configured"
	}
	return gross.Mul(pf.Percentage).Div(hundred).Round(2), ""
}

// CalculateSocialSecurity is reported on the payslip only.
func CalculateSocialSecurity(gross decimal.Decimal, rate *decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return decimal.Zero
	}
	return gross.Mul(*rate).Div(hundred).Round(2)
}
