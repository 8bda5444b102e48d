package domain

// BlockchainType is the closed set of currency variants. Unknown values are a
// configuration error surfaced at resolution time, never a deferred crash.
type BlockchainType string

const (
	// BlockchainFiat is the distinguished USD currency: no exchange wallet,
	// rate is always 1 and never fetched over the network.
	BlockchainFiat BlockchainType = "fiat"
	// BlockchainSimple settles synchronously against its exchange wallet using
	// a live market rate.
	BlockchainSimple BlockchainType = "simple"
)

// FiatTicker is the ticker of the distinguished fiat currency.
const FiatTicker = "USD"

// Blockchain is a tradable currency: a ticker plus the designated exchange
// wallet that acts as counterparty of first resort for every trade.
type Blockchain struct {
	BlockchainID       string         `json:"blockchainID"` // Primary Key (UUID)
	Ticker             string         `json:"ticker"`       // Unique, e.g. "BTC"
	Type               BlockchainType `json:"type"`
	ExchangeWalletID   *string        `json:"exchangeWalletID"`   // Nil for fiat
	ConsensusAlgorithm *string        `json:"consensusAlgorithm"` // Metadata only, unused by trading
	AuditFields
}

// IsFiat reports whether this is the USD currency.
func (b *Blockchain) IsFiat() bool {
	return b.Type == BlockchainFiat
}
