// Package cache decorates repositories whose rows change rarely and are read
// on every payroll run.
package cache

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cache"
)

const (
	keyComponents    = "masters:salary_breakup_components"
	keyTaxSlabs      = "masters:tax_slabs"
	keyEOBIRecords   = "masters:eobi_records"
	keyProvidentFund = "masters:provident_fund"
	keyHolidays      = "masters:holidays"
)

var masterKeys = []string{keyComponents, keyTaxSlabs, keyEOBIRecords, keyProvidentFund, keyHolidays}

// MasterCache wraps master and schedule repositories and invalidates them as
// one unit.
type MasterCache struct {
	cache *cache.RedisCache
}

func NewMasterCache(c *cache.RedisCache) *MasterCache {
	return &MasterCache{cache: c}
}

func (m *MasterCache) InvalidateMasters(ctx context.Context) error {
	return m.cache.Delete(ctx, masterKeys...)
}

func (m *MasterCache) WrapMasters(next payroll.MasterRepository) payroll.MasterRepository {
	return &masterRepository{next: next, cache: m.cache}
}

// WrapSchedule caches the holiday calendar only. Working-hours policies are
// keyed per id and read straight through.
func (m *MasterCache) WrapSchedule(next schedule.ScheduleRepository) schedule.ScheduleRepository {
	return &scheduleRepository{next: next, cache: m.cache}
}

type masterRepository struct {
	next  payroll.MasterRepository
	cache *cache.RedisCache
}

func (r *masterRepository) GetSalaryBreakupComponents(ctx context.Context) ([]payroll.SalaryBreakupComponent, error) {
	return cache.GetOrLoad(ctx, r.cache, keyComponents, r.next.GetSalaryBreakupComponents)
}

func (r *masterRepository) GetActiveTaxSlabs(ctx context.Context) ([]payroll.TaxSlab, error) {
	return cache.GetOrLoad(ctx, r.cache, keyTaxSlabs, r.next.GetActiveTaxSlabs)
}

func (r *masterRepository) GetActiveEOBIRecords(ctx context.Context) ([]payroll.EOBIRecord, error) {
	return cache.GetOrLoad(ctx, r.cache, keyEOBIRecords, r.next.GetActiveEOBIRecords)
}

// GetActiveProvidentFund caches "no active fund" as null so the miss is not
// repeated on every run.
func (r *masterRepository) GetActiveProvidentFund(ctx context.Context) (payroll.ProvidentFund, error) {
	pf, err := cache.GetOrLoad(ctx, r.cache, keyProvidentFund, func(ctx context.Context) (*payroll.ProvidentFund, error) {
		pf, err := r.next.GetActiveProvidentFund(ctx)
		if errors.Is(err, payroll.ErrProvidentFundNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &pf, nil
	})
	if err != nil {
		return payroll.ProvidentFund{}, err
	}
	if pf == nil {
		return payroll.ProvidentFund{}, payroll.ErrProvidentFundNotFound
	}
	return *pf, nil
}

func (r *masterRepository) GetInstitutionByID(ctx context.Context, id string) (payroll.SocialSecurityInstitution, error) {
	return r.next.GetInstitutionByID(ctx, id)
}

type scheduleRepository struct {
	next  schedule.ScheduleRepository
	cache *cache.RedisCache
}

func (r *scheduleRepository) GetWorkingHoursPolicy(ctx context.Context, id string) (schedule.WorkingHoursPolicy, error) {
	return r.next.GetWorkingHoursPolicy(ctx, id)
}

func (r *scheduleRepository) GetActiveHolidays(ctx context.Context) ([]schedule.Holiday, error) {
	return cache.GetOrLoad(ctx, r.cache, keyHolidays, r.next.GetActiveHolidays)
}
