package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
)

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) InsertLine(ctx context.Context, line domain.JournalLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteLine(ctx context.Context, entryID string, lineID string) error {
	args := m.Called(ctx, entryID, lineID)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedAt time.Time, postedBy string, deltas []domain.BudgetDelta) error {
	args := m.Called(ctx, entryID, postedAt, postedBy, deltas)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkEntryCancelled(ctx context.Context, entryID string, reason string, cancelledAt time.Time, cancelledBy string) error {
	args := m.Called(ctx, entryID, reason, cancelledAt, cancelledBy)
	return args.Error(0)
}

// --- Mock AccountService (reader side, as used by journal and budget services) ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountReaderSvc = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock DepartmentService (reader side) ---

type MockDepartmentService struct {
	mock.Mock
}

var _ portssvc.DepartmentReaderSvc = (*MockDepartmentService)(nil)

func (m *MockDepartmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentService) ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

// --- Mock PostingCoordinator ---

type MockPostingCoordinator struct {
	mock.Mock
}

var _ portssvc.PostingCoordinatorSvc = (*MockPostingCoordinator)(nil)

func (m *MockPostingCoordinator) ApplyPosting(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, userID string) error {
	args := m.Called(ctx, entry, lines, userID)
	return args.Error(0)
}

func (m *MockPostingCoordinator) ReversePosting(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, reason string, userID string) error {
	args := m.Called(ctx, entry, lines, reason, userID)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.BudgetAllocation, error) {
	args := m.Called(ctx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAllocation), args.Error(1)
}

func (m *MockBudgetRepository) FindAllocationByKey(ctx context.Context, departmentID string, accountID string, fiscalYear int) (*domain.BudgetAllocation, error) {
	args := m.Called(ctx, departmentID, accountID, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAllocation), args.Error(1)
}

func (m *MockBudgetRepository) ListAllocationsByYear(ctx context.Context, fiscalYear int, activeOnly bool) ([]domain.BudgetAllocation, error) {
	args := m.Called(ctx, fiscalYear, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetAllocation), args.Error(1)
}

func (m *MockBudgetRepository) HasActiveAllocations(ctx context.Context, departmentID string) (bool, error) {
	args := m.Called(ctx, departmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBudgetRepository) UpsertAllocation(ctx context.Context, allocation domain.BudgetAllocation) (*domain.BudgetAllocation, error) {
	args := m.Called(ctx, allocation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAllocation), args.Error(1)
}

func (m *MockBudgetRepository) SetAllocationActive(ctx context.Context, allocationID string, active bool, userID string, now time.Time) error {
	args := m.Called(ctx, allocationID, active, userID, now)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAllocationRows(ctx context.Context, fiscalYear int) ([]domain.AllocationUtilization, error) {
	args := m.Called(ctx, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AllocationUtilization), args.Error(1)
}
