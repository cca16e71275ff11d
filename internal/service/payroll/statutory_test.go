package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func TestCalculateEOBI(t *testing.T) {
	jan := mustPeriod(t, 1, 2024)

	tests := []struct {
		name        string
		enabled     bool
		records     []payroll.EOBIRecord
		want        string
		wantWarning bool
	}{
		{
			name:    "not enabled",
			enabled: false,
			records: []payroll.EOBIRecord{{YearMonth: "2024-01", EmployeeContribution: dec("370"), IsActive: true}},
			want:    "0",
		},
		{
			name:    "long month label",
			enabled: true,
			records: []payroll.EOBIRecord{{YearMonth: "January 2024", EmployeeContribution: dec("370"), IsActive: true}},
			want:    "370",
		},
		{
			name:    "iso month label",
			enabled: true,
			records: []payroll.EOBIRecord{
				{YearMonth: "December 2023", EmployeeContribution: dec("300"), IsActive: true},
				{YearMonth: "2024-01", EmployeeContribution: dec("400"), IsActive: true},
			},
			want: "400",
		},
		{
			name:        "inactive record is skipped",
			enabled:     true,
			records:     []payroll.EOBIRecord{{YearMonth: "2024-01", EmployeeContribution: dec("400"), IsActive: false}},
			want:        "0",
			wantWarning: true,
		},
		{
			name:        "missing record warns",
			enabled:     true,
			records:     []payroll.EOBIRecord{{YearMonth: "garbage", IsActive: true}},
			want:        "0",
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warning := CalculateEOBI(tt.enabled, tt.records, jan)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
			assert.Equal(t, tt.wantWarning, warning != "")
		})
	}
}

func TestCalculateProvidentFund(t *testing.T) {
	pf := &payroll.ProvidentFund{Percentage: dec("8.33"), IsActive: true}

	got, warning := CalculateProvidentFund(true, pf, dec("50000"))
	assert.True(t, dec("4165").Equal(got))
	assert.Empty(t, warning)

	got, warning = CalculateProvidentFund(true, nil, dec("50000"))
	assert.True(t, got.IsZero())
	assert.NotEmpty(t, warning)

	got, warning = CalculateProvidentFund(false, pf, dec("50000"))
	assert.True(t, got.IsZero())
	assert.Empty(t, warning)
}

func TestCalculateSocialSecurity(t *testing.T) {
	assert.True(t, dec("3000").Equal(CalculateSocialSecurity(dec("50000"), decPtr("6"))))
	assert.True(t, CalculateSocialSecurity(dec("50000"), nil).IsZero())
}
