package pgsql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/campusbooks/campus_ledger_app/internal/repositories/database/pgsql"
)

// stubTx overrides only Rollback; the embedded interface satisfies the rest.
type stubTx struct {
	pgx.Tx
	rollbackErr error
}

func (s stubTx) Rollback(ctx context.Context) error { return s.rollbackErr }

func TestRollbackIgnoresClosedTransaction(t *testing.T) {
	repo := &pgsql.BaseRepository{}
	ctx := context.Background()

	// Deferred rollback after a successful commit returns pgx.ErrTxClosed,
	// which is expected and must not surface as an error.
	assert.NoError(t, repo.Rollback(ctx, stubTx{rollbackErr: pgx.ErrTxClosed}))

	assert.NoError(t, repo.Rollback(ctx, stubTx{}))
	assert.Error(t, repo.Rollback(ctx, stubTx{rollbackErr: errors.New("connection reset")}))
}
