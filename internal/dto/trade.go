package dto

import (
	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeRequest is the body of POST /crypto/:ticker.
type TradeRequest struct {
	Wallet string          `json:"wallet" binding:"required"` // Wallet address
	Action string          `json:"action" binding:"required,oneof=buy sell"`
	Amount decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
}

// TransactionResponse is the API shape of a ledger transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	BlockchainID    string          `json:"blockchainID"`
	FromWalletID    string          `json:"fromWalletID"`
	ToWalletID      string          `json:"toWalletID"`
	InitiatorUserID *string         `json:"initiatorUserID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Proven          bool            `json:"proven"`
}

// ToTransactionResponse converts a domain transaction to its API shape.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		BlockchainID:    txn.BlockchainID,
		FromWalletID:    txn.FromWalletID,
		ToWalletID:      txn.ToWalletID,
		InitiatorUserID: txn.InitiatorUserID,
		Amount:          txn.Amount,
		Proven:          txn.Proven,
	}
}
