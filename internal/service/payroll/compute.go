package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

// ComputeEmployee runs every calculator for one employee and assembles the
// payroll record. It performs no I/O.
func ComputeEmployee(emp employee.Employee, in EmployeeInputs, m MasterData, period payroll.Period) payroll.Computation {
	warnings := append([]string(nil), in.Warnings...)

	eff := CalculateEffectivePackage(emp.BasePackage, in.Increments, period)
	lines, basic := AllocateSalaryBreakup(eff.Amount, m.Components)

	att := CalculateAttendanceDeduction(in.Attendance, in.Leaves, in.Policy, eff.Amount, period)
	ot := CalculateOvertime(OvertimeInput{
		Eligible:    emp.IsOvertimeEligible,
		Policy:      in.Policy,
		Requests:    in.OvertimeRequests,
		Records:     in.Attendance,
		Holidays:    m.Holidays,
		BasicSalary: basic,
		Period:      period,
	})
	adds := SumAdditions(in.Allowances, in.Bonuses, in.Encashments)

	gross := adds.Allowances.Add(ot.Amount).Add(adds.Bonuses).Add(adds.LeaveEncashment)
	for _, line := range lines {
		gross = gross.Add(line.Amount)
	}
	gross = gross.Round(2)

	eobi, warning := CalculateEOBI(emp.IsEOBIEnabled, m.EOBIRecords, period)
	if warning != "" {
		warnings = append(warnings, warning)
	}
	pf, warning := CalculateProvidentFund(emp.IsProvidentFundEnabled, m.ProvidentFund, gross)
	if warning != "" {
		warnings = append(warnings, warning)
	}
	socialSecurity := CalculateSocialSecurity(gross, in.SocialSecurityRate)

	tax := CalculateTax(lines, in.Rebates, m.TaxSlabs, eff.Amount)
	loan, loanItems := CalculateLoanInstallments(in.Loans, period)
	advance, advanceItems := CalculateAdvanceDeductions(in.Advances, period)
	adhoc, deductionItems := SumDeductions(in.Deductions)

	totalDeductions := att.Total.
		Add(loan).
		Add(advance).
		Add(eobi).
		Add(pf).
		Add(tax.MonthlyTax).
		Add(adhoc).
		Round(2)

	c := payroll.Computation{
		EmployeeID:       emp.ID,
		EmployeeCode:     emp.EmployeeCode,
		EmployeeName:     emp.FullName,
		Month:            period.Month,
		Year:             period.Year,
		BasePackage:      emp.BasePackage,
		EffectivePackage: eff.Amount.Round(2),
		PackageChanges:   eff.Changes,

		SalaryBreakup: lines,
		BasicSalary:   basic.Round(2),

		Allowances:        adds.Allowances,
		AllowanceItems:    adds.AllowanceItems,
		Bonuses:           adds.Bonuses,
		BonusItems:        adds.BonusItems,
		LeaveEncashment:   adds.LeaveEncashment,
		OvertimeAmount:    ot.Amount,
		OvertimeBreakdown: ot.Lines,
		GrossSalary:       gross,

		AttendanceDeduction:    att.Total,
		AttendanceBreakdown:    att.Breakdown,
		LoanDeduction:          loan,
		LoanItems:              loanItems,
		AdvanceDeduction:       advance,
		AdvanceItems:           advanceItems,
		EOBIDeduction:          eobi,
		ProvidentFundDeduction: pf,
		TaxDeduction:           tax.MonthlyTax,
		TaxBreakdown:           tax,
		AdhocDeductions:        adhoc,
		DeductionItems:         deductionItems,
		TotalDeductions:        totalDeductions,

		SocialSecurityContribution: socialSecurity,

		NetSalary: gross.Sub(totalDeductions),
		Warnings:  warnings,
	}
	if in.LeavePolicy != nil {
		name := in.LeavePolicy.Name
		c.LeavePolicyName = &name
	}
	if c.PackageChanges == nil {
		c.PackageChanges = []payroll.PackageChange{}
	}
	return c
}
