package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
	"github.com/campusbooks/campus_ledger_app/internal/utils/accounting"
)

// journalService provides the journal entry lifecycle: drafts are created
// empty and edited freely, posting makes an entry immutable and applies its
// budget effect, cancelling reverses it. The balance invariant is enforced at
// the post gate, never on drafts.
type journalService struct {
	BaseService
	journalRepo   portsrepo.JournalRepositoryFacade
	accountSvc    portssvc.AccountReaderSvc
	departmentSvc portssvc.DepartmentReaderSvc
	coordinator   portssvc.PostingCoordinatorSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
	departmentSvc portssvc.DepartmentReaderSvc,
	coordinator portssvc.PostingCoordinatorSvc,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		accountSvc:    accountSvc,
		departmentSvc: departmentSvc,
		coordinator:   coordinator,
	}
}

// Ensure journalService implements the facade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateDraft creates an entry with zero lines in DRAFT status. Always
// succeeds for well-formed input; drafts have no budget effect.
func (s *journalService) CreateDraft(ctx context.Context, req dto.CreateDraftRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryDate:   req.Date,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	entryNumber, err := s.journalRepo.CreateEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to create draft entry")
		return nil, fmt.Errorf("failed to create draft entry: %w", err)
	}
	entry.EntryNumber = entryNumber

	s.LogInfo(ctx, "Draft entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entryNumber))
	return &entry, nil
}

// AddLine appends a line to a draft entry after validating the amounts and
// the referenced account and department.
func (s *journalService) AddLine(ctx context.Context, entryID string, req dto.AddLineRequest, userID string) (*domain.JournalLine, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsEditable() {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	if err := accounting.ValidateLineAmounts(req.Debit, req.Credit); err != nil {
		return nil, err
	}

	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountCode)
	}

	department, err := s.departmentSvc.GetDepartmentByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: department %s", apperrors.ErrNotFound, req.DepartmentID)
		}
		return nil, fmt.Errorf("failed to fetch department: %w", err)
	}
	if !department.IsActive {
		return nil, fmt.Errorf("%w: department %s is inactive", apperrors.ErrValidation, department.Code)
	}

	existing, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}

	now := time.Now().UTC()
	line := domain.JournalLine{
		LineID:       uuid.NewString(),
		EntryID:      entryID,
		LineNumber:   len(existing) + 1,
		AccountID:    req.AccountID,
		DepartmentID: req.DepartmentID,
		Description:  req.Description,
		Debit:        req.Debit,
		Credit:       req.Credit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.InsertLine(ctx, line); err != nil {
		s.LogError(ctx, err, "Failed to insert line", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to insert line: %w", err)
	}

	s.LogInfo(ctx, "Line added to draft entry",
		slog.String("entry_id", entryID),
		slog.String("line_id", line.LineID),
		slog.Int("line_number", line.LineNumber))
	return &line, nil
}

// RemoveLine removes a line from a draft entry.
func (s *journalService) RemoveLine(ctx context.Context, entryID string, lineID string, userID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !entry.IsEditable() {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	if err := s.journalRepo.DeleteLine(ctx, entryID, lineID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete line", slog.String("entry_id", entryID), slog.String("line_id", lineID))
		}
		return err
	}

	s.LogInfo(ctx, "Line removed from draft entry", slog.String("entry_id", entryID), slog.String("line_id", lineID))
	return nil
}

// GetEntryByID retrieves an entry with its lines populated.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines

	return entry, nil
}

// IsBalanced reports whether the entry's debits equal its credits.
func (s *journalService) IsBalanced(ctx context.Context, entryID string) (bool, error) {
	if _, err := s.journalRepo.FindEntryByID(ctx, entryID); err != nil {
		return false, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch entry lines: %w", err)
	}
	return accounting.IsBalanced(lines), nil
}

// PostEntry transitions a balanced draft to POSTED. The balance check is a
// hard server-side gate: whatever the caller validated client-side, an
// unbalanced or empty entry never posts. The status transition and the budget
// application happen as one atomic unit inside the posting coordinator.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s, expected DRAFT", apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for posting", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: entry %s has no lines", apperrors.ErrNotBalanced, entry.EntryNumber)
	}
	debits := accounting.SumDebits(lines)
	credits := accounting.SumCredits(lines)
	if !debits.Equal(credits) {
		return nil, fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrNotBalanced, debits.String(), credits.String())
	}

	if err := s.coordinator.ApplyPosting(ctx, entry, lines, userID); err != nil {
		return nil, err
	}

	// Re-read so the caller observes the stamped posting fields.
	posted, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	posted.Lines = lines

	s.LogInfo(ctx, "Entry posted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", posted.EntryNumber),
		slog.Int("line_count", len(lines)))
	return posted, nil
}

// CancelEntry transitions a posted entry to CANCELLED via an explicit
// reversal. Lines are retained for audit but excluded from all derived sums.
func (s *journalService) CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s is %s, expected POSTED", apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for cancellation", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}

	if err := s.coordinator.ReversePosting(ctx, entry, lines, reason, userID); err != nil {
		return nil, err
	}

	cancelled, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	cancelled.Lines = lines

	s.LogInfo(ctx, "Entry cancelled",
		slog.String("entry_id", entryID),
		slog.String("entry_number", cancelled.EntryNumber),
		slog.String("reason", reason))
	return cancelled, nil
}
