package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository to the shared connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		DepartmentRepo: newPgxDepartmentRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		BudgetRepo:     newPgxBudgetRepository(dbPool),
		ReportingRepo:  newPgxReportingRepository(dbPool),
	}
}
