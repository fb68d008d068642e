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
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/core/services"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockAccountSvc    *MockAccountService
	mockDepartmentSvc *MockDepartmentService
	mockCoordinator   *MockPostingCoordinator
	service           portssvc.JournalSvcFacade

	userID     string
	account    domain.Account
	department domain.Department
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.mockDepartmentSvc = new(MockDepartmentService)
	s.mockCoordinator = new(MockPostingCoordinator)
	s.service = services.NewJournalService(s.mockJournalRepo, s.mockAccountSvc, s.mockDepartmentSvc, s.mockCoordinator)

	s.userID = uuid.NewString()
	s.account = domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: "5010",
		Name:        "Supplies Expense",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	s.department = domain.Department{
		DepartmentID: uuid.NewString(),
		Code:         "SCI",
		Name:         "Science",
		IsActive:     true,
	}
}

func (s *JournalServiceTestSuite) draftEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-000001",
		EntryDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Lab supplies purchase",
		Status:      domain.Draft,
	}
}

func (s *JournalServiceTestSuite) TestCreateDraftSuccess() {
	ctx := context.Background()
	req := dto.CreateDraftRequest{
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Lab supplies purchase",
		Reference:   "PO-1234",
	}

	s.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return("JE-000042", nil).Once()

	entry, err := s.service.CreateDraft(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.NotEmpty(entry.EntryID)
	s.Equal("JE-000042", entry.EntryNumber)
	s.Equal(domain.Draft, entry.Status)
	s.Equal(req.Description, entry.Description)
	s.Equal(s.userID, entry.CreatedBy)
	s.Empty(entry.Lines)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateDraftRequiresDescription() {
	ctx := context.Background()
	req := dto.CreateDraftRequest{Date: time.Now()}

	_, err := s.service.CreateDraft(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockJournalRepo.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestAddLineSuccess() {
	ctx := context.Background()
	entry := s.draftEntry()
	req := dto.AddLineRequest{
		AccountID:    s.account.AccountID,
		DepartmentID: s.department.DepartmentID,
		Debit:        decimal.NewFromInt(500),
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockAccountSvc.On("GetAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockDepartmentSvc.On("GetDepartmentByID", ctx, s.department.DepartmentID).Return(&s.department, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return([]domain.JournalLine{}, nil).Once()
	s.mockJournalRepo.On("InsertLine", ctx, mock.AnythingOfType("domain.JournalLine")).Return(nil).Once()

	line, err := s.service.AddLine(ctx, entry.EntryID, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(line)
	s.Equal(1, line.LineNumber)
	s.True(line.IsDebit())
	s.Equal(s.account.AccountID, line.AccountID)
	s.Equal(s.department.DepartmentID, line.DepartmentID)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestAddLineAssignsNextLineNumber() {
	ctx := context.Background()
	entry := s.draftEntry()
	req := dto.AddLineRequest{
		AccountID:    s.account.AccountID,
		DepartmentID: s.department.DepartmentID,
		Credit:       decimal.NewFromInt(500),
	}
	existing := []domain.JournalLine{
		{LineID: uuid.NewString(), LineNumber: 1},
		{LineID: uuid.NewString(), LineNumber: 2},
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockAccountSvc.On("GetAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockDepartmentSvc.On("GetDepartmentByID", ctx, s.department.DepartmentID).Return(&s.department, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(existing, nil).Once()
	s.mockJournalRepo.On("InsertLine", ctx, mock.AnythingOfType("domain.JournalLine")).Return(nil).Once()

	line, err := s.service.AddLine(ctx, entry.EntryID, req, s.userID)

	s.Require().NoError(err)
	s.Equal(3, line.LineNumber)
}

func (s *JournalServiceTestSuite) TestAddLineRejectsBothAmountsSet() {
	ctx := context.Background()
	entry := s.draftEntry()
	req := dto.AddLineRequest{
		AccountID:    s.account.AccountID,
		DepartmentID: s.department.DepartmentID,
		Debit:        decimal.NewFromInt(100),
		Credit:       decimal.NewFromInt(100),
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.AddLine(ctx, entry.EntryID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.mockJournalRepo.AssertNotCalled(s.T(), "InsertLine", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestAddLineRejectsNegativeAmount() {
	ctx := context.Background()
	entry := s.draftEntry()
	req := dto.AddLineRequest{
		AccountID:    s.account.AccountID,
		DepartmentID: s.department.DepartmentID,
		Debit:        decimal.NewFromInt(-50),
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.AddLine(ctx, entry.EntryID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *JournalServiceTestSuite) TestAddLineRejectsNonDraftEntry() {
	ctx := context.Background()
	entry := s.draftEntry()
	entry.Status = domain.Posted
	req := dto.AddLineRequest{
		AccountID:    s.account.AccountID,
		DepartmentID: s.department.DepartmentID,
		Debit:        decimal.NewFromInt(100),
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.AddLine(ctx, entry.EntryID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *JournalServiceTestSuite) TestAddLineRejectsInactiveAccount() {
	ctx := context.Background()
	entry := s.draftEntry()
	inactive := s.account
	inactive.IsActive = false
	req := dto.AddLineRequest{
		AccountID:    inactive.AccountID,
		DepartmentID: s.department.DepartmentID,
		Debit:        decimal.NewFromInt(100),
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockAccountSvc.On("GetAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	_, err := s.service.AddLine(ctx, entry.EntryID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestRemoveLineSuccess() {
	ctx := context.Background()
	entry := s.draftEntry()
	lineID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("DeleteLine", ctx, entry.EntryID, lineID).Return(nil).Once()

	err := s.service.RemoveLine(ctx, entry.EntryID, lineID, s.userID)

	s.Require().NoError(err)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestRemoveLineRejectsPostedEntry() {
	ctx := context.Background()
	entry := s.draftEntry()
	entry.Status = domain.Posted

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	err := s.service.RemoveLine(ctx, entry.EntryID, uuid.NewString(), s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockJournalRepo.AssertNotCalled(s.T(), "DeleteLine", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) balancedLines(entryID string) []domain.JournalLine {
	return []domain.JournalLine{
		{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   1,
			AccountID:    s.account.AccountID,
			DepartmentID: s.department.DepartmentID,
			Debit:        decimal.NewFromInt(3000),
		},
		{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   2,
			AccountID:    uuid.NewString(),
			DepartmentID: s.department.DepartmentID,
			Credit:       decimal.NewFromInt(3000),
		},
	}
}

func (s *JournalServiceTestSuite) TestPostEntrySuccess() {
	ctx := context.Background()
	entry := s.draftEntry()
	lines := s.balancedLines(entry.EntryID)

	postedAt := time.Now().UTC()
	posted := *entry
	posted.Status = domain.Posted
	posted.PostedAt = &postedAt
	posted.PostedBy = s.userID

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	s.mockCoordinator.On("ApplyPosting", ctx, entry, lines, s.userID).Return(nil).Once()
	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&posted, nil).Once()

	result, err := s.service.PostEntry(ctx, entry.EntryID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Posted, result.Status)
	s.NotNil(result.PostedAt)
	s.Equal(s.userID, result.PostedBy)
	s.Len(result.Lines, 2)
	s.mockCoordinator.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostEntryRejectsEmptyEntry() {
	ctx := context.Background()
	entry := s.draftEntry()

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := s.service.PostEntry(ctx, entry.EntryID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotBalanced)
	s.mockCoordinator.AssertNotCalled(s.T(), "ApplyPosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostEntryRejectsUnbalancedEntry() {
	ctx := context.Background()
	entry := s.draftEntry()
	lines := s.balancedLines(entry.EntryID)
	lines[1].Credit = decimal.NewFromInt(2999)

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	_, err := s.service.PostEntry(ctx, entry.EntryID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotBalanced)
	s.mockCoordinator.AssertNotCalled(s.T(), "ApplyPosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostEntryRejectsNonDraftStatus() {
	ctx := context.Background()
	entry := s.draftEntry()
	entry.Status = domain.Cancelled

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.PostEntry(ctx, entry.EntryID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *JournalServiceTestSuite) TestCancelEntrySuccess() {
	ctx := context.Background()
	entry := s.draftEntry()
	entry.Status = domain.Posted
	lines := s.balancedLines(entry.EntryID)
	reason := "duplicate of JE-000040"

	cancelledAt := time.Now().UTC()
	cancelled := *entry
	cancelled.Status = domain.Cancelled
	cancelled.CancelledAt = &cancelledAt
	cancelled.CancelReason = reason

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	s.mockCoordinator.On("ReversePosting", ctx, entry, lines, reason, s.userID).Return(nil).Once()
	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&cancelled, nil).Once()

	result, err := s.service.CancelEntry(ctx, entry.EntryID, reason, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Cancelled, result.Status)
	s.Equal(reason, result.CancelReason)
	s.Len(result.Lines, 2)
	s.mockCoordinator.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCancelEntryRequiresReason() {
	ctx := context.Background()

	_, err := s.service.CancelEntry(ctx, uuid.NewString(), "", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockJournalRepo.AssertNotCalled(s.T(), "FindEntryByID", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCancelEntryRejectsDraft() {
	ctx := context.Background()
	entry := s.draftEntry()

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.CancelEntry(ctx, entry.EntryID, "entered in error", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockCoordinator.AssertNotCalled(s.T(), "ReversePosting", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestIsBalanced() {
	ctx := context.Background()
	entry := s.draftEntry()
	lines := s.balancedLines(entry.EntryID)

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	balanced, err := s.service.IsBalanced(ctx, entry.EntryID)

	s.Require().NoError(err)
	s.True(balanced)
}

func (s *JournalServiceTestSuite) TestGetEntryByIDPopulatesLines() {
	ctx := context.Background()
	entry := s.draftEntry()
	lines := s.balancedLines(entry.EntryID)

	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	result, err := s.service.GetEntryByID(ctx, entry.EntryID)

	s.Require().NoError(err)
	s.Len(result.Lines, 2)
}

func (s *JournalServiceTestSuite) TestGetEntryByIDNotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetEntryByID(ctx, entryID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
