package repository

import (
	"context"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
)

// LogMsgRollbackFailed is logged when a settlement transaction cannot be rolled back
const LogMsgRollbackFailed = "Failed to roll back settlement transaction"

// Tx is the part of a database transaction the settlement path drives directly.
// The concrete transaction also implements the repository interfaces it was opened for.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback is deferred right after a transaction is opened. Once the
// transaction has committed the rollback reports a closed tx, which is expected.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || err.Error() == domain.ErrMsgTxClosed {
		return
	}
	logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
}
