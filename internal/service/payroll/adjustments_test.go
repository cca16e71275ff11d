package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func TestSumAdditions(t *testing.T) {
	allowances := []payroll.Allowance{
		{ID: "a1", Name: "Fuel", Amount: dec("1500"), PaymentMethod: payroll.PaymentMethodWithSalary, Status: payroll.StatusApproved},
		{ID: "a2", Name: "Travel", Amount: dec("9000"), PaymentMethod: payroll.PaymentMethodSeparately, Status: payroll.StatusApproved},
	}
	bonuses := []payroll.Bonus{
		{ID: "b1", Name: "Eid", Amount: dec("5000"), PaymentMethod: payroll.PaymentMethodWithSalary},
		{ID: "b2", Name: "Spot", Amount: dec("700"), PaymentMethod: payroll.PaymentMethodWithSalary, Status: "rejected"},
	}
	encashments := []leave.LeaveEncashment{
		{ID: "e1", Amount: dec("2500"), Status: leave.ApplicationStatusApproved},
		{ID: "e2", Amount: dec("800"), Status: leave.ApplicationStatusPending},
	}

	got := SumAdditions(allowances, bonuses, encashments)

	assert.True(t, dec("1500").Equal(got.Allowances))
	assert.Len(t, got.AllowanceItems, 1)
	assert.True(t, dec("5000").Equal(got.Bonuses))
	assert.Len(t, got.BonusItems, 1)
	assert.True(t, dec("2500").Equal(got.LeaveEncashment))
}

func TestSumDeductions(t *testing.T) {
	deductions := []payroll.Deduction{
		{ID: "d1", Name: "Canteen", Amount: dec("300")},
		{ID: "d2", Name: "Damage", Amount: dec("1200"), Status: payroll.StatusApproved},
		{ID: "d3", Name: "Disputed", Amount: dec("999"), Status: "pending"},
	}

	total, items := SumDeductions(deductions)

	assert.True(t, dec("1500").Equal(total))
	assert.Len(t, items, 2)
}
