package domain

import "github.com/shopspring/decimal"

// TradeDirection distinguishes a buy (wallet gains crypto) from a sell
// (wallet gives up crypto).
type TradeDirection string

const (
	Buy  TradeDirection = "buy"
	Sell TradeDirection = "sell"
)

// Transaction records a proposed transfer between a wallet and a currency's
// exchange wallet. Created unproven; Proven flips to true exactly once, when
// settlement has applied both wallets' balance mutations. All other fields
// are immutable after creation - mistakes are corrected with an opposite
// transaction, never by amendment.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	BlockchainID    string          `json:"blockchainID"`  // FK -> blockchains
	FromWalletID    string          `json:"fromWalletID"`  // Sender: gives Amount of the currency, gains USD
	ToWalletID      string          `json:"toWalletID"`    // Receiver: inverse
	InitiatorUserID *string         `json:"initiatorUserID"`
	Amount          decimal.Decimal `json:"amount"` // Positive, in units of the traded currency
	Proven          bool            `json:"proven"`
	AuditFields
}
