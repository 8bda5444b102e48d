package services

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeSvcFacade is the transfer engine: it converts a buy/sell intent into a
// recorded transaction and settles it against the currency's exchange wallet.
type TradeSvcFacade interface {
	// Trade quotes and records a trade. walletID is the acting wallet; for a
	// sell it gives up `amount` of the currency and gains USD, for a buy the
	// inverse. Simple currencies settle synchronously, so the returned
	// transaction is already proven for them.
	// Errors: apperrors.ErrNotFound (wallet/currency), apperrors.ErrValidation
	// (amount <= 0, fiat ticker), apperrors.ErrInsufficientFunds,
	// apperrors.ErrRateUnavailable.
	Trade(ctx context.Context, walletID string, ticker string, amount decimal.Decimal, direction domain.TradeDirection, initiatorUserID *string) (*domain.Transaction, error)

	// Fulfill settles a previously recorded transaction at current balances
	// and the current rate. Fulfilling an already-proven transaction is a
	// no-op. A failed re-check leaves the transaction unproven and no balance
	// touched; the original quote is stale, so this is not retryable.
	Fulfill(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// GetTransactionByID looks up a ledger record.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}
