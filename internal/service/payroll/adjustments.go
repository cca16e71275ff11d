package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Additions - ad-hoc amounts paid on top of the breakup
type Additions struct {
	Allowances      decimal.Decimal
	AllowanceItems  []payroll.AdjustmentItem
	Bonuses         decimal.Decimal
	BonusItems      []payroll.AdjustmentItem
	LeaveEncashment decimal.Decimal
}

// SumAdditions includes allowances and bonuses paid with salary and every
// approved leave encashment.
func SumAdditions(allowances []payroll.Allowance, bonuses []payroll.Bonus, encashments []leave.LeaveEncashment) Additions {
	out := Additions{
		Allowances:      decimal.Zero,
		AllowanceItems:  []payroll.AdjustmentItem{},
		Bonuses:         decimal.Zero,
		BonusItems:      []payroll.AdjustmentItem{},
		LeaveEncashment: decimal.Zero,
	}

	for _, a := range allowances {
		if !approved(a.Status) || a.PaymentMethod != payroll.PaymentMethodWithSalary {
			continue
		}
		out.AllowanceItems = append(out.AllowanceItems, payroll.AdjustmentItem{
			ID: a.ID, Name: a.Name, Amount: a.Amount, IsTaxable: a.IsTaxable,
		})
		out.Allowances = out.Allowances.Add(a.Amount)
	}

	for _, b := range bonuses {
		if !approved(b.Status) || b.PaymentMethod != payroll.PaymentMethodWithSalary {
			continue
		}
		out.BonusItems = append(out.BonusItems, payroll.AdjustmentItem{
			ID: b.ID, Name: b.Name, Amount: b.Amount, IsTaxable: b.IsTaxable,
		})
		out.Bonuses = out.Bonuses.Add(b.Amount)
	}

	for _, e := range encashments {
		if e.Status != leave.ApplicationStatusApproved {
			continue
		}
		out.LeaveEncashment = out.LeaveEncashment.Add(e.Amount)
	}

	return out
}

// SumDeductions totals approved ad-hoc deductions.
func SumDeductions(deductions []payroll.Deduction) (decimal.Decimal, []payroll.AdjustmentItem) {
	total := decimal.Zero
	items := []payroll.AdjustmentItem{}
	for _, d := range deductions {
		if !approved(d.Status) {
			continue
		}
		items = append(items, payroll.AdjustmentItem{ID: d.ID, Name: d.Name, Amount: d.Amount})
		total = total.Add(d.Amount)
	}
	return total, items
}

// approved treats an unset status as approved, for sources without a workflow.
func approved(status string) bool {
	return status == "" || status == payroll.StatusApproved
}
