package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/platform/config"
	"github.com/campusbooks/campus_ledger_app/internal/utils/budgeting"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	thresholds := thresholdsFromConfig(cfg)

	// Account and department services come first since the journal and budget
	// services validate references through them.
	container.Account = NewAccountService(repos.AccountRepo)
	container.Department = NewDepartmentService(repos.DepartmentRepo, repos.BudgetRepo)

	coordinator := NewPostingCoordinator(repos.JournalRepo)

	container.Journal = NewJournalService(repos.JournalRepo, container.Account, container.Department, coordinator)
	container.Budget = NewBudgetService(repos.BudgetRepo, container.Account, container.Department, thresholds)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.JournalRepo, thresholds)

	return container
}

// thresholdsFromConfig converts the configured percentage boundaries into
// budgeting thresholds, falling back to the defaults for unset values.
func thresholdsFromConfig(cfg *config.Config) budgeting.Thresholds {
	t := budgeting.DefaultThresholds()
	if cfg.BudgetModeratePct > 0 {
		t.Moderate = decimal.NewFromInt(int64(cfg.BudgetModeratePct))
	}
	if cfg.BudgetHighPct > 0 {
		t.High = decimal.NewFromInt(int64(cfg.BudgetHighPct))
	}
	return t
}
