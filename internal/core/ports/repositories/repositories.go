package repositories

import "github.com/shopspring/decimal"

// BalanceChanges maps walletID -> ticker -> signed delta to apply to that
// wallet's balance. A settlement touches at most two wallets and two tickers
// (the traded currency and USD) but the type is general.
type BalanceChanges map[string]map[string]decimal.Decimal

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	WalletRepo      WalletRepositoryFacade
	BlockchainRepo  BlockchainRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	UserRepo        UserRepositoryFacade
	ClassroomRepo   ClassroomRepositoryFacade
}
