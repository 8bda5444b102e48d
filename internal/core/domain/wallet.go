package domain

import (
	"github.com/shopspring/decimal"
)

// Wallet is a balance-holding account addressable by a generated hex address.
// Balances is sparse: only tickers that have ever been touched appear. Use
// Balance for reads so an absent ticker counts as zero.
type Wallet struct {
	WalletID    string                     `json:"walletID"`    // Primary Key (UUID)
	Address     string                     `json:"address"`     // 64-char hex, globally unique
	Name        string                     `json:"name"`        // Optional display name
	ClassroomID *string                    `json:"classroomID"` // Nullable FK -> classrooms
	Admins      []string                   `json:"admins"`      // UserIDs with full control
	Members     []string                   `json:"members"`     // UserIDs allowed to trade
	Balances    map[string]decimal.Decimal `json:"balances"`    // ticker -> amount, >= 0 at rest
	AuditFields
}

// Balance returns the wallet's balance for a ticker, defaulting to zero when
// the ticker has never been touched.
func (w *Wallet) Balance(ticker string) decimal.Decimal {
	if w.Balances == nil {
		return decimal.Zero
	}
	if bal, ok := w.Balances[ticker]; ok {
		return bal
	}
	return decimal.Zero
}

// IsAdmin reports whether the user administers this wallet.
func (w *Wallet) IsAdmin(userID string) bool {
	for _, id := range w.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

// IsMember reports whether the user is a non-admin member of this wallet.
func (w *Wallet) IsMember(userID string) bool {
	for _, id := range w.Members {
		if id == userID {
			return true
		}
	}
	return false
}
