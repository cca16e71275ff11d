package payroll

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculateLoanInstallments sums amount/installments for every approved loan
// whose repayment window [start, start+installments) contains the period.
func CalculateLoanInstallments(loans []payroll.LoanRequest, period payroll.Period) (decimal.Decimal, []payroll.AdjustmentItem) {
	total := decimal.Zero
	items := []payroll.AdjustmentItem{}

	for _, loan := range loans {
		if !approved(loan.Status) || loan.NumberOfInstallments <= 0 {
			continue
		}
		elapsed := (period.Year-loan.RepaymentStartYear)*12 + (period.Month - loan.RepaymentStartMonth)
		if elapsed < 0 || elapsed >= loan.NumberOfInstallments {
			continue
		}
		installment := loan.Amount.Div(decimal.NewFromInt(int64(loan.NumberOfInstallments))).Round(2)
		items = append(items, payroll.AdjustmentItem{
			ID:     loan.ID,
			Name:   "Loan installment " + strconv.Itoa(elapsed+1) + "/" + strconv.Itoa(loan.NumberOfInstallments),
			Amount: installment,
		})
		total = total.Add(installment)
	}

	return total, items
}

// CalculateAdvanceDeductions recovers approved advances whose deduction month
// is the period.
func CalculateAdvanceDeductions(advances []payroll.AdvanceSalary, period payroll.Period) (decimal.Decimal, []payroll.AdjustmentItem) {
	total := decimal.Zero
	items := []payroll.AdjustmentItem{}

	for _, adv := range advances {
		if !approved(adv.Status) {
			continue
		}
		month, year, ok := advanceMonth(adv)
		if !ok || month != period.Month || year != period.Year {
			continue
		}
		items = append(items, payroll.AdjustmentItem{ID: adv.ID, Name: "Advance salary", Amount: adv.Amount})
		total = total.Add(adv.Amount)
	}

	return total, items
}

func advanceMonth(adv payroll.AdvanceSalary) (month, year int, ok bool) {
	if adv.DeductionMonth != nil && adv.DeductionYear != nil {
		if m, ok := parseMonth(*adv.DeductionMonth); ok {
			return m, *adv.DeductionYear, true
		}
	}
	if adv.DeductionMonthYear != nil {
		t, err := time.Parse("2006-01", strings.TrimSpace(*adv.DeductionMonthYear))
		if err == nil {
			return int(t.Month()), t.Year(), true
		}
	}
	return 0, 0, false
}

// parseMonth accepts "3", "03", "March" or "Mar".
func parseMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, n >= 1 && n <= 12
	}
	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, s); err == nil {
			return int(t.Month()), true
		}
	}
	return 0, false
}
