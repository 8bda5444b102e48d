package dto

import (
	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletSummaryResponse is the list-view shape of a wallet.
type WalletSummaryResponse struct {
	WalletID string `json:"walletID"`
	Address  string `json:"address"`
	Name     string `json:"name,omitempty"`
}

// WalletResponse is the detail-view shape of a wallet.
type WalletResponse struct {
	WalletID    string                     `json:"walletID"`
	Address     string                     `json:"address"`
	Name        string                     `json:"name,omitempty"`
	ClassroomID *string                    `json:"classroomID,omitempty"`
	Admins      []string                   `json:"admins"`
	Members     []string                   `json:"members"`
	Balances    map[string]decimal.Decimal `json:"balances"`
}

// UpdateWalletRequest is the PATCH body for a wallet. All fields optional;
// balance writes go through the currency registry for ticker validation.
type UpdateWalletRequest struct {
	Name        *string                    `json:"name,omitempty"`
	ClassroomID *string                    `json:"classroomID,omitempty"`
	Balances    map[string]decimal.Decimal `json:"balances,omitempty"`
}

// ToWalletSummaryResponse converts a domain wallet to its list shape.
func ToWalletSummaryResponse(w *domain.Wallet) WalletSummaryResponse {
	return WalletSummaryResponse{
		WalletID: w.WalletID,
		Address:  w.Address,
		Name:     w.Name,
	}
}

// ToWalletResponse converts a domain wallet to its detail shape.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	balances := w.Balances
	if balances == nil {
		balances = map[string]decimal.Decimal{}
	}
	admins := w.Admins
	if admins == nil {
		admins = []string{}
	}
	members := w.Members
	if members == nil {
		members = []string{}
	}
	return WalletResponse{
		WalletID:    w.WalletID,
		Address:     w.Address,
		Name:        w.Name,
		ClassroomID: w.ClassroomID,
		Admins:      admins,
		Members:     members,
		Balances:    balances,
	}
}
