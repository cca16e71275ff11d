package payroll

import (
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AllocateSalaryBreakup splits pkg across the percentage components. Line
// amounts are whole units and the last line absorbs the rounding difference
// so the lines always sum to pkg rounded. It also returns the basic salary,
// which is the basic line when present and the full package otherwise.
func AllocateSalaryBreakup(pkg decimal.Decimal, components []payroll.SalaryBreakupComponent) ([]payroll.BreakupLine, decimal.Decimal) {
	lines := make([]payroll.BreakupLine, 0, len(components))
	sum := decimal.Zero

	for _, c := range components {
		if c.Percentage == nil {
			continue
		}
		amount := pkg.Mul(*c.Percentage).Div(hundred).Round(0)
		lines = append(lines, payroll.BreakupLine{
			Name:       c.Name,
			Percentage: *c.Percentage,
			Amount:     amount,
			IsTaxable:  componentIsTaxable(c),
		})
		sum = sum.Add(amount)
	}

	if n := len(lines); n > 0 {
		if diff := pkg.Round(0).Sub(sum); !diff.IsZero() {
			lines[n-1].Amount = lines[n-1].Amount.Add(diff)
		}
	}

	basic := pkg
	for _, line := range lines {
		if isBasicComponent(line.Name) {
			basic = line.Amount
			break
		}
	}

	return lines, basic
}

// componentIsTaxable: take-home is always taxable, then the explicit
// override, then `is_taxable` in metadata. Anything unreadable is taxable.
func componentIsTaxable(c payroll.SalaryBreakupComponent) bool {
	if isTakeHomeComponent(c.Name) {
		return true
	}
	if c.IsTaxableOverride != nil {
		return *c.IsTaxableOverride
	}
	if len(c.Metadata) == 0 {
		return true
	}

	var meta struct {
		IsTaxable *bool `json:"is_taxable"`
	}
	if err := json.Unmarshal(c.Metadata, &meta); err != nil || meta.IsTaxable == nil {
		return true
	}
	return *meta.IsTaxable
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(name, "_", " "))), " ")
}

func isBasicComponent(name string) bool {
	switch normalizeName(name) {
	case "basic", "basic salary":
		return true
	}
	return false
}

func isTakeHomeComponent(name string) bool {
	switch normalizeName(strings.ReplaceAll(name, "-", " ")) {
	case "take home", "take home salary":
		return true
	}
	return false
}
