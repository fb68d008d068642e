package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/core/services"
)

func testEntry(date time.Time) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-000007",
		EntryDate:   date,
		Description: "Equipment purchase",
		Status:      domain.Draft,
	}
}

func TestBudgetDeltasGroupsDebitLinesByKey(t *testing.T) {
	entry := testEntry(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	deptA := "dept-a"
	deptB := "dept-b"
	acct1 := "acct-1"
	acct2 := "acct-2"

	lines := []domain.JournalLine{
		{DepartmentID: deptB, AccountID: acct1, Debit: decimal.NewFromInt(100)},
		{DepartmentID: deptA, AccountID: acct2, Debit: decimal.NewFromInt(200)},
		{DepartmentID: deptB, AccountID: acct1, Debit: decimal.NewFromInt(50)},
		{DepartmentID: deptA, AccountID: acct1, Credit: decimal.NewFromInt(350)}, // credit: no budget effect
	}

	deltas := services.BudgetDeltas(entry, lines)

	require.Len(t, deltas, 2)
	// Sorted by department then account for stable lock ordering.
	assert.Equal(t, deptA, deltas[0].DepartmentID)
	assert.Equal(t, acct2, deltas[0].AccountID)
	assert.True(t, deltas[0].Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, deptB, deltas[1].DepartmentID)
	assert.Equal(t, acct1, deltas[1].AccountID)
	assert.True(t, deltas[1].Amount.Equal(decimal.NewFromInt(150)))

	for _, d := range deltas {
		assert.Equal(t, 2025, d.FiscalYear)
	}
}

func TestBudgetDeltasIgnoresCreditOnlyEntries(t *testing.T) {
	entry := testEntry(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	lines := []domain.JournalLine{
		{DepartmentID: "dept-a", AccountID: "acct-1", Credit: decimal.NewFromInt(75)},
	}

	deltas := services.BudgetDeltas(entry, lines)

	assert.Empty(t, deltas)
}

func TestBudgetDeltasFiscalYearFollowsEntryDate(t *testing.T) {
	// An entry dated Dec 31 belongs to that calendar year's budget, not the
	// year it happens to be posted in.
	entry := testEntry(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC))
	lines := []domain.JournalLine{
		{DepartmentID: "dept-a", AccountID: "acct-1", Debit: decimal.NewFromInt(10)},
	}

	deltas := services.BudgetDeltas(entry, lines)

	require.Len(t, deltas, 1)
	assert.Equal(t, 2024, deltas[0].FiscalYear)
}

func TestApplyPostingDelegatesComputedDeltas(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJournalRepository)
	coordinator := services.NewPostingCoordinator(repo)

	entry := testEntry(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	userID := uuid.NewString()
	lines := []domain.JournalLine{
		{DepartmentID: "dept-a", AccountID: "acct-1", Debit: decimal.NewFromInt(3000)},
		{DepartmentID: "dept-a", AccountID: "acct-2", Credit: decimal.NewFromInt(3000)},
	}

	repo.On("MarkEntryPosted", ctx, entry.EntryID, mock.AnythingOfType("time.Time"), userID,
		mock.MatchedBy(func(deltas []domain.BudgetDelta) bool {
			return len(deltas) == 1 &&
				deltas[0].DepartmentID == "dept-a" &&
				deltas[0].AccountID == "acct-1" &&
				deltas[0].FiscalYear == 2025 &&
				deltas[0].Amount.Equal(decimal.NewFromInt(3000))
		})).Return(nil).Once()

	err := coordinator.ApplyPosting(ctx, entry, lines, userID)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReversePostingReplaysRecordedApplications(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJournalRepository)
	coordinator := services.NewPostingCoordinator(repo)

	entry := testEntry(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	entry.Status = domain.Posted
	userID := uuid.NewString()
	reason := "entered twice"
	lines := []domain.JournalLine{
		{DepartmentID: "dept-a", AccountID: "acct-1", Debit: decimal.NewFromInt(3000)},
		{DepartmentID: "dept-a", AccountID: "acct-2", Credit: decimal.NewFromInt(3000)},
	}

	// The reversal does not recompute deltas: the repository replays the
	// applications it recorded at post time, so an allocation created after
	// the posting can never be debited by the cancellation.
	repo.On("MarkEntryCancelled", ctx, entry.EntryID, reason, mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	err := coordinator.ReversePosting(ctx, entry, lines, reason, userID)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
