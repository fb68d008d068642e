package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	"github.com/campusbooks/campus_ledger_app/internal/models"
	"github.com/campusbooks/campus_ledger_app/internal/utils/mapping"
	"github.com/campusbooks/campus_ledger_app/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_number, entry_date, description, reference, status, posted_at, posted_by, cancelled_at, cancelled_by, cancel_reason, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_number, account_id, department_id, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var postedBy, cancelledBy, cancelReason *string
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.PostedAt,
		&postedBy,
		&m.CancelledAt,
		&cancelledBy,
		&cancelReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if postedBy != nil {
		m.PostedBy = *postedBy
	}
	if cancelledBy != nil {
		m.CancelledBy = *cancelledBy
	}
	if cancelReason != nil {
		m.CancelReason = *cancelReason
	}
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNumber,
		&m.AccountID,
		&m.DepartmentID,
		&m.Description,
		&m.Debit,
		&m.Credit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateEntry persists a new draft entry. The entry number is assigned from a
// database sequence so concurrent creations never collide, and is returned in
// its display form (JE-000042).
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry) (string, error) {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		INSERT INTO journal_entries (entry_id, entry_number, entry_date, description, reference, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, 'JE-' || lpad(nextval('journal_entry_number_seq')::text, 6, '0'), $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING entry_number;
	`
	var entryNumber string
	err := r.Pool.QueryRow(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&entryNumber)
	if err != nil {
		return "", fmt.Errorf("failed to create entry %s: %w", m.EntryID, err)
	}
	return entryNumber, nil
}

// FindEntryByID retrieves an entry by its internal identifier. Lines are not
// populated; use FindLinesByEntryID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves the entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := make([]models.JournalLine, 0)
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// InsertLine appends a line to a draft entry. The insert is guarded on the
// entry's status so a line can never land on a posted or cancelled entry,
// even if the status changed after the service's own check.
func (r *PgxJournalRepository) InsertLine(ctx context.Context, line domain.JournalLine) error {
	m := mapping.ToModelJournalLine(line)

	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		SELECT $1, e.entry_id, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		FROM journal_entries e
		WHERE e.entry_id = $12 AND e.status = 'DRAFT';
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.LineID,
		m.LineNumber,
		m.AccountID,
		m.DepartmentID,
		m.Description,
		m.Debit,
		m.Credit,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.EntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert line %s for entry %s: %w", m.LineID, m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyGuardMiss(ctx, m.EntryID, models.Draft)
	}
	return nil
}

// DeleteLine removes a line from a draft entry.
func (r *PgxJournalRepository) DeleteLine(ctx context.Context, entryID string, lineID string) error {
	query := `
		DELETE FROM journal_lines l
		USING journal_entries e
		WHERE l.line_id = $1 AND l.entry_id = $2 AND e.entry_id = l.entry_id AND e.status = 'DRAFT';
	`
	tag, err := r.Pool.Exec(ctx, query, lineID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete line %s for entry %s: %w", lineID, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		if err := r.classifyGuardMiss(ctx, entryID, models.Draft); err != nil {
			return err
		}
		// Entry exists and is a draft: the line itself is missing.
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkEntryPosted transitions DRAFT -> POSTED and applies the budget deltas,
// all inside one database transaction. The status-guarded UPDATE is the
// idempotency gate: of two concurrent posts, exactly one flips the row and
// applies the deltas; the other sees zero rows affected and maps to
// ErrAlreadyApplied. Storage failures after the gate wrap ErrPersistence:
// nothing was committed and the caller may retry.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedAt time.Time, postedBy string, deltas []domain.BudgetDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: posting entry %s: %w", apperrors.ErrPersistence, entryID, err)
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET status = 'POSTED', posted_at = $2, posted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query, entryID, postedAt, postedBy)
	if err != nil {
		return fmt.Errorf("%w: failed to mark entry %s posted: %w", apperrors.ErrPersistence, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyTransitionMiss(ctx, entryID, models.Posted)
	}

	if err := applyPostingDeltas(ctx, tx, entryID, deltas, postedBy, postedAt); err != nil {
		return fmt.Errorf("%w: failed to apply budget deltas for entry %s: %w", apperrors.ErrPersistence, entryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("%w: posting entry %s: %w", apperrors.ErrPersistence, entryID, err)
	}
	return nil
}

// MarkEntryCancelled transitions POSTED -> CANCELLED and reverses the
// recorded posting applications inside one database transaction. Storage
// failures after the status gate wrap ErrPersistence.
func (r *PgxJournalRepository) MarkEntryCancelled(ctx context.Context, entryID string, reason string, cancelledAt time.Time, cancelledBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: cancelling entry %s: %w", apperrors.ErrPersistence, entryID, err)
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET status = 'CANCELLED', cancelled_at = $2, cancelled_by = $3, cancel_reason = $4, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'POSTED';
	`
	tag, err := tx.Exec(ctx, query, entryID, cancelledAt, cancelledBy, reason)
	if err != nil {
		return fmt.Errorf("%w: failed to mark entry %s cancelled: %w", apperrors.ErrPersistence, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyTransitionMiss(ctx, entryID, models.Cancelled)
	}

	if err := reversePostingApplications(ctx, tx, entryID, cancelledBy, cancelledAt); err != nil {
		return fmt.Errorf("%w: failed to reverse budget deltas for entry %s: %w", apperrors.ErrPersistence, entryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("%w: cancelling entry %s: %w", apperrors.ErrPersistence, entryID, err)
	}
	return nil
}

// applyPostingDeltas adds each delta to the matching active allocation's
// spent total and records the application in posting_applications. Deltas
// arrive sorted by (department, account) so concurrent transactions lock
// allocation rows in the same order. Deltas with no matching active
// allocation apply nothing and record nothing; posting proceeds whether or
// not a budget exists.
func applyPostingDeltas(ctx context.Context, tx pgx.Tx, entryID string, deltas []domain.BudgetDelta, userID string, now time.Time) error {
	query := `
		WITH applied AS (
			UPDATE budget_allocations
			SET spent = spent + $4, last_updated_at = $5, last_updated_by = $6
			WHERE department_id = $1 AND account_id = $2 AND fiscal_year = $3 AND is_active = TRUE
			RETURNING allocation_id
		)
		INSERT INTO posting_applications (entry_id, allocation_id, amount)
		SELECT $7, allocation_id, $4 FROM applied;
	`

	batch := &pgx.Batch{}
	for _, delta := range deltas {
		batch.Queue(query, delta.DepartmentID, delta.AccountID, delta.FiscalYear, delta.Amount, now, userID, entryID)
	}

	br := tx.SendBatch(ctx, batch)
	return br.Close()
}

// reversePostingApplications subtracts exactly the recorded applications from
// their allocations and removes the records. Matching by allocation id rather
// than re-matching by (department, account, fiscal year) means allocations
// created or reactivated after the posting are never touched, and allocations
// deactivated after the posting still get their spent returned.
func reversePostingApplications(ctx context.Context, tx pgx.Tx, entryID string, userID string, now time.Time) error {
	updateQuery := `
		UPDATE budget_allocations a
		SET spent = a.spent - pa.amount, last_updated_at = $2, last_updated_by = $3
		FROM posting_applications pa
		WHERE pa.entry_id = $1 AND a.allocation_id = pa.allocation_id;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, now, userID); err != nil {
		return err
	}

	_, err := tx.Exec(ctx, `DELETE FROM posting_applications WHERE entry_id = $1;`, entryID)
	return err
}

// classifyTransitionMiss maps a zero-row status transition to the right
// error: the entry is missing, already at the target status, or in some other
// state that forbids the transition.
func (r *PgxJournalRepository) classifyTransitionMiss(ctx context.Context, entryID string, target models.EntryStatus) error {
	var status models.EntryStatus
	err := r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read status of entry %s: %w", entryID, err)
	}
	if status == target {
		return fmt.Errorf("%w: entry is already %s", apperrors.ErrAlreadyApplied, status)
	}
	return fmt.Errorf("%w: entry is %s", apperrors.ErrInvalidState, status)
}

// classifyGuardMiss maps a zero-row guarded write to ErrNotFound when the
// entry is missing, or ErrInvalidState when it exists but is not in the
// required status. Returns nil if the entry is in the required status.
func (r *PgxJournalRepository) classifyGuardMiss(ctx context.Context, entryID string, required models.EntryStatus) error {
	var status models.EntryStatus
	err := r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read status of entry %s: %w", entryID, err)
	}
	if status != required {
		return fmt.Errorf("%w: entry is %s", apperrors.ErrInvalidState, status)
	}
	return nil
}

// ListEntries retrieves a filtered, keyset-paginated listing ordered by entry
// date descending, then entry number descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := make([]any, 0, 6)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	if filter.SearchText != "" {
		args = append(args, "%"+filter.SearchText+"%")
		query += fmt.Sprintf(" AND (entry_number ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenNumber, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, tokenDate)
		dateArg := len(args)
		args = append(args, tokenNumber)
		numberArg := len(args)
		query += fmt.Sprintf(" AND (entry_date, entry_number) < ($%d, $%d)", dateArg, numberArg)
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, entry_number DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryNumber)
		newToken = &token
	}

	return entries, newToken, nil
}
