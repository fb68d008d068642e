package mapping

import (
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/models"
)

// ToModelBudgetAllocation converts a domain BudgetAllocation to a model BudgetAllocation
func ToModelBudgetAllocation(d domain.BudgetAllocation) models.BudgetAllocation {
	return models.BudgetAllocation{
		AllocationID: d.AllocationID,
		DepartmentID: d.DepartmentID,
		AccountID:    d.AccountID,
		FiscalYear:   d.FiscalYear,
		Allocated:    d.Allocated,
		Spent:        d.Spent,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetAllocation converts a model BudgetAllocation to a domain BudgetAllocation
func ToDomainBudgetAllocation(m models.BudgetAllocation) domain.BudgetAllocation {
	return domain.BudgetAllocation{
		AllocationID: m.AllocationID,
		DepartmentID: m.DepartmentID,
		AccountID:    m.AccountID,
		FiscalYear:   m.FiscalYear,
		Allocated:    m.Allocated,
		Spent:        m.Spent,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
