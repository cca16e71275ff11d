package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Payroll"

var registerColumns = []string{
	"Employee Code", "Employee Name", "Effective Package", "Gross Salary",
	"Overtime", "Allowances", "Bonuses", "Leave Encashment",
	"Attendance Deduction", "Loan", "Advance", "EOBI", "Provident Fund", "Tax", "Other Deductions",
	"Total Deductions", "Net Salary",
	"Bank", "Account Title", "Account Number",
}

// buildPayrollWorkbook renders the payroll register, one row per detail
// followed by a totals row.
func buildPayrollWorkbook(header payroll.PayrollHeader, details []payroll.PayrollDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	title := fmt.Sprintf("Payroll %02d/%d (%s)", header.Month, header.Year, header.Status)
	if err := f.SetCellValue(registerSheet, "A1", title); err != nil {
		return nil, err
	}

	headerRow := make([]any, len(registerColumns))
	for i, col := range registerColumns {
		headerRow[i] = col
	}
	if err := f.SetSheetRow(registerSheet, "A3", &headerRow); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(registerColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(registerSheet, "A1", "A1", bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(registerSheet, "A3", lastCol+"3", bold); err != nil {
		return nil, err
	}

	total := decimal.Zero
	row := 4
	for _, d := range details {
		var bankName, accountTitle, accountNumber string
		if d.BankInfo != nil {
			bankName = d.BankInfo.BankName
			accountTitle = d.BankInfo.AccountTitle
			accountNumber = d.BankInfo.AccountNumber
		}

		values := []any{
			d.EmployeeCode, d.EmployeeName,
			money(d.EffectivePackage), money(d.GrossSalary),
			money(d.OvertimeAmount), money(d.Allowances), money(d.Bonuses), money(d.LeaveEncashment),
			money(d.AttendanceDeduction), money(d.LoanDeduction), money(d.AdvanceDeduction),
			money(d.EOBIDeduction), money(d.ProvidentFundDeduction), money(d.TaxDeduction), money(d.AdhocDeductions),
			money(d.TotalDeductions), money(d.NetSalary),
			bankName, accountTitle, accountNumber,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(registerSheet, cell, &values); err != nil {
			return nil, err
		}

		total = total.Add(d.NetSalary)
		row++
	}

	netCol, err := excelize.ColumnNumberToName(len(registerColumns) - 3)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(registerSheet, fmt.Sprintf("A%d", row), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(registerSheet, fmt.Sprintf("%s%d", netCol, row), money(total)); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(registerSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", netCol, row), bold); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(registerSheet, "A", lastCol, 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write payroll workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
