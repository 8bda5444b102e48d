package dto

import (
	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBlockchainRequest registers a new tradable currency.
type CreateBlockchainRequest struct {
	Ticker             string  `json:"ticker" binding:"required,uppercase,min=2,max=8"`
	Type               string  `json:"type" binding:"required,oneof=fiat simple"`
	ExchangeWalletID   *string `json:"exchangeWalletID,omitempty"` // Required unless fiat
	ConsensusAlgorithm *string `json:"consensusAlgorithm,omitempty"`
}

// BlockchainResponse is the API shape of a tradable currency, including its
// current USD rate.
type BlockchainResponse struct {
	BlockchainID string          `json:"blockchainID"`
	Ticker       string          `json:"ticker"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// ToBlockchainResponse converts a domain blockchain plus its quoted rate.
func ToBlockchainResponse(b *domain.Blockchain, rate decimal.Decimal) BlockchainResponse {
	return BlockchainResponse{
		BlockchainID: b.BlockchainID,
		Ticker:       b.Ticker,
		ExchangeRate: rate,
	}
}
