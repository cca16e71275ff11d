package payroll

import (
	"sort"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculateEffectivePackage prorates the monthly package by the number of days
// each package level was in force during the period.
//
// The level entering the period is the newest increment dated before the
// period start, or base when there is none. Increments dated inside the period
// split it into segments, an increment on the first day replaces the package
// for the whole month.
func CalculateEffectivePackage(base decimal.Decimal, increments []employee.Increment, period payroll.Period) payroll.EffectivePackage {
	sorted := make([]employee.Increment, len(increments))
	copy(sorted, increments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return payroll.DateOnly(sorted[i].EffectiveDate).Before(payroll.DateOnly(sorted[j].EffectiveDate))
	})

	current := base
	for _, inc := range sorted {
		if payroll.DateOnly(inc.EffectiveDate).Before(period.Start) {
			current = inc.NewPackage
		}
	}

	var (
		changes  []payroll.PackageChange
		weighted = decimal.Zero
		boundary = period.Start
	)

	for _, inc := range sorted {
		date := payroll.DateOnly(inc.EffectiveDate)
		if !period.Contains(date) {
			continue
		}

		daysBefore := payroll.DaysBetween(boundary, date)
		changes = append(changes, payroll.PackageChange{
			IncrementID: inc.ID,
			Date:        date,
			OldPackage:  current,
			NewPackage:  inc.NewPackage,
			DaysBefore:  daysBefore,
		})

		weighted = weighted.Add(current.Mul(decimal.NewFromInt(int64(daysBefore))))
		current = inc.NewPackage
		boundary = date
	}

	if len(changes) == 0 {
		return payroll.EffectivePackage{Amount: current}
	}

	remaining := payroll.DaysBetween(boundary, period.End) + 1
	weighted = weighted.Add(current.Mul(decimal.NewFromInt(int64(remaining))))

	return payroll.EffectivePackage{
		Amount:  weighted.Div(decimal.NewFromInt(int64(period.Days()))),
		Changes: changes,
	}
}
