package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/core/services"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
	"github.com/campusbooks/campus_ledger_app/internal/utils/budgeting"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockJournalRepo   *MockJournalRepository
	service           portssvc.ReportingService
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockReportingRepo = new(MockReportingRepository)
	s.mockJournalRepo = new(MockJournalRepository)
	s.service = services.NewReportingService(s.mockReportingRepo, s.mockJournalRepo, budgeting.DefaultThresholds())
}

func row(deptName, acctCode string, allocated, spent int64) domain.AllocationUtilization {
	return domain.AllocationUtilization{
		AllocationID:   uuid.NewString(),
		DepartmentID:   "dept-" + deptName,
		DepartmentName: deptName,
		AccountID:      "acct-" + acctCode,
		AccountCode:    acctCode,
		AccountName:    "Account " + acctCode,
		FiscalYear:     2025,
		Allocated:      decimal.NewFromInt(allocated),
		Spent:          decimal.NewFromInt(spent),
	}
}

func (s *ReportingServiceTestSuite) TestSummarizeAggregatesTotalsAndDepartments() {
	ctx := context.Background()
	rows := []domain.AllocationUtilization{
		row("Science", "5010", 10000, 3000),   // 30% HEALTHY
		row("Science", "5020", 5000, 4900),    // 98% HIGH
		row("Athletics", "5030", 2000, 2500),  // 125% EXCEEDED
		row("Athletics", "5010", 1000, 850),   // 85% MODERATE
	}
	s.mockReportingRepo.On("GetAllocationRows", ctx, 2025).Return(rows, nil).Once()

	summary, err := s.service.Summarize(ctx, 2025)

	s.Require().NoError(err)
	s.Equal(2025, summary.FiscalYear)
	s.True(summary.TotalAllocated.Equal(decimal.NewFromInt(18000)))
	s.True(summary.TotalSpent.Equal(decimal.NewFromInt(11250)))
	s.True(summary.TotalRemaining.Equal(decimal.NewFromInt(6750)))
	s.Equal(1, summary.ExceededCount)

	s.Require().Len(summary.Departments, 2)
	s.Equal("Athletics", summary.Departments[0].DepartmentName)
	s.True(summary.Departments[0].Allocated.Equal(decimal.NewFromInt(3000)))
	s.True(summary.Departments[0].Spent.Equal(decimal.NewFromInt(3350)))
	s.True(summary.Departments[0].Remaining.Equal(decimal.NewFromInt(-350)))
	s.Equal("Science", summary.Departments[1].DepartmentName)
	s.True(summary.Departments[1].Remaining.Equal(decimal.NewFromInt(7100)))
}

func (s *ReportingServiceTestSuite) TestSummarizeCriticalListMembershipAndOrder() {
	ctx := context.Background()
	rows := []domain.AllocationUtilization{
		row("Science", "5020", 5000, 4900),   // 98% HIGH
		row("Athletics", "5030", 2000, 2500), // 125% EXCEEDED
		row("Music", "5040", 0, 300),         // no percentage, EXCEEDED
		row("Science", "5010", 10000, 3000),  // HEALTHY, excluded
	}
	s.mockReportingRepo.On("GetAllocationRows", ctx, 2025).Return(rows, nil).Once()

	summary, err := s.service.Summarize(ctx, 2025)

	s.Require().NoError(err)
	s.Require().Len(summary.Critical, 3)
	// Percentage-less allocations (spend against nothing allocated) sort first,
	// then by percentage descending.
	s.Equal("Music", summary.Critical[0].DepartmentName)
	s.Nil(summary.Critical[0].Percentage)
	s.Equal("Athletics", summary.Critical[1].DepartmentName)
	s.Equal(domain.UtilizationExceeded, summary.Critical[1].Status)
	s.Equal("Science", summary.Critical[2].DepartmentName)
	s.Equal(domain.UtilizationHigh, summary.Critical[2].Status)
	s.Equal(2, summary.ExceededCount)
}

func (s *ReportingServiceTestSuite) TestSummarizeRecomputesDerivedFields() {
	ctx := context.Background()
	stale := row("Science", "5010", 10000, 9000)
	// The repository hands back stored columns only; status and percentage
	// must come out of the classification path, not the row.
	stale.Status = domain.UtilizationHealthy
	s.mockReportingRepo.On("GetAllocationRows", ctx, 2025).Return([]domain.AllocationUtilization{stale}, nil).Once()

	summary, err := s.service.Summarize(ctx, 2025)

	s.Require().NoError(err)
	s.Require().Len(summary.Critical, 1)
	s.Equal(domain.UtilizationHigh, summary.Critical[0].Status)
	s.Require().NotNil(summary.Critical[0].Percentage)
	s.True(summary.Critical[0].Percentage.Equal(decimal.NewFromInt(90)))
	s.True(summary.Critical[0].Remaining.Equal(decimal.NewFromInt(1000)))
}

func (s *ReportingServiceTestSuite) TestSummarizeEmptyYear() {
	ctx := context.Background()
	s.mockReportingRepo.On("GetAllocationRows", ctx, 2031).Return([]domain.AllocationUtilization{}, nil).Once()

	summary, err := s.service.Summarize(ctx, 2031)

	s.Require().NoError(err)
	s.True(summary.TotalAllocated.IsZero())
	s.True(summary.TotalSpent.IsZero())
	s.True(summary.TotalRemaining.IsZero())
	s.Zero(summary.ExceededCount)
	s.Empty(summary.Departments)
	s.Empty(summary.Critical)
}

func (s *ReportingServiceTestSuite) TestSummarizeRejectsInvalidYear() {
	ctx := context.Background()

	summary, err := s.service.Summarize(ctx, -3)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidFiscalYear)
	s.Nil(summary)
	s.mockReportingRepo.AssertNotCalled(s.T(), "GetAllocationRows", mock.Anything, mock.Anything)
}

func (s *ReportingServiceTestSuite) TestListEntriesDefaultsLimit() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		{
			EntryID:     uuid.NewString(),
			EntryNumber: "JE-000002",
			EntryDate:   time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			Description: "Second entry",
			Status:      domain.Posted,
		},
	}
	s.mockJournalRepo.On("ListEntries", ctx, portsrepo.EntryListFilter{}, 20, (*string)(nil)).Return(entries, nil, nil).Once()

	resp, err := s.service.ListEntries(ctx, dto.ListEntriesParams{})

	s.Require().NoError(err)
	s.Require().Len(resp.Entries, 1)
	s.Equal("JE-000002", resp.Entries[0].EntryNumber)
	s.Nil(resp.NextToken)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestListEntriesClampsLimit() {
	ctx := context.Background()
	s.mockJournalRepo.On("ListEntries", ctx, portsrepo.EntryListFilter{}, 100, (*string)(nil)).Return([]domain.JournalEntry{}, nil, nil).Once()

	_, err := s.service.ListEntries(ctx, dto.ListEntriesParams{Limit: 5000})

	s.Require().NoError(err)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestListEntriesPassesFilterAndToken() {
	ctx := context.Background()
	status := domain.Posted
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	token := "opaque-token"
	params := dto.ListEntriesParams{
		Status:     &status,
		DateFrom:   &from,
		SearchText: "supplies",
		Limit:      10,
		NextToken:  &token,
	}
	filter := portsrepo.EntryListFilter{
		Status:     &status,
		DateFrom:   &from,
		SearchText: "supplies",
	}
	s.mockJournalRepo.On("ListEntries", ctx, filter, 10, &token).Return([]domain.JournalEntry{}, "next-token", nil).Once()

	resp, err := s.service.ListEntries(ctx, params)

	s.Require().NoError(err)
	s.Require().NotNil(resp.NextToken)
	s.Equal("next-token", *resp.NextToken)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
