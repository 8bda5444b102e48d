package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxSettleAttempts bounds retries when the database aborts a settlement due
// to a concurrent conflicting transaction. Insufficient funds is never
// retried: the quote is stale, not the schedule.
const maxSettleAttempts = 3

// tradeService is the transfer engine. Every trade is a bilateral exchange
// between the acting wallet and the currency's exchange wallet: the sender
// gives up crypto and gains USD, the receiver the inverse, all four balance
// mutations applied atomically or not at all.
type tradeService struct {
	walletRepo    portsrepo.WalletRepositoryFacade
	txnRepo       portsrepo.TransactionRepositoryFacade
	blockchainSvc portssvc.BlockchainSvcFacade
}

// NewTradeService creates a new trade service instance.
func NewTradeService(walletRepo portsrepo.WalletRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, blockchainSvc portssvc.BlockchainSvcFacade) portssvc.TradeSvcFacade {
	return &tradeService{
		walletRepo:    walletRepo,
		txnRepo:       txnRepo,
		blockchainSvc: blockchainSvc,
	}
}

// Trade quotes, records and (for simple currencies) settles a trade.
func (s *tradeService) Trade(ctx context.Context, walletID string, ticker string, amount decimal.Decimal, direction domain.TradeDirection, initiatorUserID *string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: trade amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if direction != domain.Buy && direction != domain.Sell {
		return nil, fmt.Errorf("%w: unknown trade direction %q", apperrors.ErrValidation, direction)
	}

	blockchain, err := s.blockchainSvc.GetBlockchainByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if blockchain.IsFiat() {
		return nil, fmt.Errorf("%w: %s is not tradable", apperrors.ErrValidation, ticker)
	}
	if blockchain.ExchangeWalletID == nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("currency %s has no exchange wallet", ticker), apperrors.ErrInternal)
	}

	actingWallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	exchangeWallet, err := s.walletRepo.FindWalletByID(ctx, *blockchain.ExchangeWalletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("exchange wallet for %s is missing", ticker), err)
		}
		return nil, err
	}

	rate, err := s.blockchainSvc.ExchangeRate(ctx, ticker)
	if err != nil {
		return nil, err
	}

	// The sender gives up crypto and gains USD. Selling, the acting wallet
	// is the sender; buying, the exchange wallet is.
	sender, receiver := actingWallet, exchangeWallet
	if direction == domain.Buy {
		sender, receiver = exchangeWallet, actingWallet
	}

	if err := checkTradeCandidates(sender, receiver, blockchain.Ticker, rate, amount); err != nil {
		return nil, err
	}

	now := time.Now()
	createdBy := ""
	if initiatorUserID != nil {
		createdBy = *initiatorUserID
	}
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		BlockchainID:    blockchain.BlockchainID,
		FromWalletID:    sender.WalletID,
		ToWalletID:      receiver.WalletID,
		InitiatorUserID: initiatorUserID,
		Amount:          amount,
		Proven:          false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", "walletID", walletID, "ticker", ticker, "error", err)
		return nil, err
	}

	if blockchain.Type == domain.BlockchainSimple {
		if err := s.settle(ctx, &txn, blockchain); err != nil {
			return nil, err
		}
	}

	logger.Info("Trade recorded",
		"transactionID", txn.TransactionID,
		"ticker", ticker,
		"direction", string(direction),
		"amount", amount.String(),
		"rate", rate.String(),
		"proven", txn.Proven,
	)
	return &txn, nil
}

// Fulfill settles an unproven transaction at the current rate and current
// balances. Already-proven transactions return unchanged.
func (s *tradeService) Fulfill(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Proven {
		return txn, nil
	}

	blockchain, err := s.blockchainSvc.GetBlockchainByID(ctx, txn.BlockchainID)
	if err != nil {
		return nil, err
	}

	if err := s.settle(ctx, txn, blockchain); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *tradeService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// settle quotes the transaction's currency and hands the four balance deltas
// to the repository, which re-validates them under row locks. Storage
// conflicts are retried a bounded number of times; any other failure leaves
// the transaction unproven.
func (s *tradeService) settle(ctx context.Context, txn *domain.Transaction, blockchain *domain.Blockchain) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	rate, err := s.blockchainSvc.ExchangeRate(ctx, blockchain.Ticker)
	if err != nil {
		return err
	}

	usdDelta := rate.Mul(txn.Amount)
	changes := portsrepo.BalanceChanges{
		txn.FromWalletID: {
			domain.FiatTicker: usdDelta,
			blockchain.Ticker: txn.Amount.Neg(),
		},
		txn.ToWalletID: {
			domain.FiatTicker: usdDelta.Neg(),
			blockchain.Ticker: txn.Amount,
		},
	}

	var applied bool
	for attempt := 1; ; attempt++ {
		applied, err = s.txnRepo.SettleTransaction(ctx, txn.TransactionID, changes)
		if err == nil || !errors.Is(err, apperrors.ErrStorageConflict) || attempt >= maxSettleAttempts {
			break
		}
		logger.Warn("Settlement conflicted, retrying", "transactionID", txn.TransactionID, "attempt", attempt)
	}
	if err != nil {
		return err
	}

	if !applied {
		logger.Info("Transaction already proven, settlement skipped", "transactionID", txn.TransactionID)
	}
	txn.Proven = true
	return nil
}

// checkTradeCandidates computes the four post-trade balances and rejects the
// trade if any would be negative. Settlement re-runs the same check under
// database locks; this early pass just gives callers a clean error before a
// ledger row exists.
func checkTradeCandidates(sender, receiver *domain.Wallet, ticker string, rate, amount decimal.Decimal) error {
	usdDelta := rate.Mul(amount)

	senderUSD := sender.Balance(domain.FiatTicker).Add(usdDelta)
	receiverUSD := receiver.Balance(domain.FiatTicker).Sub(usdDelta)
	senderCrypto := sender.Balance(ticker).Sub(amount)
	receiverCrypto := receiver.Balance(ticker).Add(amount)

	if senderUSD.IsNegative() || receiverUSD.IsNegative() || senderCrypto.IsNegative() || receiverCrypto.IsNegative() {
		return fmt.Errorf("%w: trade of %s %s at rate %s would overdraw a wallet", apperrors.ErrInsufficientFunds, amount, ticker, rate)
	}
	return nil
}
