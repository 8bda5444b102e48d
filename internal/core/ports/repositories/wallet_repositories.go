package repositories

import (
	"context"
	"time"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletRepositoryFacade defines persistence operations for wallets and their
// sparse balance tables. SetBalance upserts a single currency's balance and
// must be durably applied before returning; it does not enforce the
// non-negativity invariant - that is the trade service's job.
type WalletRepositoryFacade interface {
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error)
	AddressExists(ctx context.Context, address string) (bool, error)
	FindWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
	SetBalance(ctx context.Context, walletID string, ticker string, amount decimal.Decimal) error
	UpdateWalletName(ctx context.Context, walletID string, name string, updatedBy string, updatedAt time.Time) error
	UpdateWalletClassroom(ctx context.Context, walletID string, classroomID string, updatedBy string, updatedAt time.Time) error
	AddWalletAdmin(ctx context.Context, walletID string, userID string) error
	RemoveWalletAdmin(ctx context.Context, walletID string, userID string) error
	AddWalletMember(ctx context.Context, walletID string, userID string) error
	RemoveWalletMember(ctx context.Context, walletID string, userID string) error
}
