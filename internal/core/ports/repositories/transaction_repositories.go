package repositories

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
)

// TransactionRepositoryFacade defines the append-only transaction ledger.
// Records are immutable after creation except for the one-way unproven ->
// proven transition performed by SettleTransaction.
type TransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsByWallet(ctx context.Context, walletID string, limit int) ([]domain.Transaction, error)

	// SettleTransaction applies the given balance deltas and flips the
	// transaction to proven inside a single database transaction. Wallet rows
	// are locked in sorted ID order; every post-delta balance is re-validated
	// under the locks and the whole settlement is rolled back if any would go
	// negative (apperrors.ErrInsufficientFunds). Returns applied=false without
	// touching balances when the transaction is already proven.
	SettleTransaction(ctx context.Context, transactionID string, changes BalanceChanges) (applied bool, err error)
}
