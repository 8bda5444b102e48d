package services_test

import (
	"context"
	"testing"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRateQuoter satisfies RateQuoterSvc directly, so leaderboard tests do
// not need the full blockchain service.
type MockRateQuoter struct {
	mock.Mock
}

func (m *MockRateQuoter) ExchangeRate(ctx context.Context, ticker string) (decimal.Decimal, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type LeaderboardServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	mockUserRepo   *MockUserRepository
	mockQuoter     *MockRateQuoter
	service        portssvc.LeaderboardSvcFacade
}

func (suite *LeaderboardServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockQuoter = new(MockRateQuoter)
	// nil redis client: caching disabled, every Get recomputes
	suite.service = services.NewLeaderboardService(suite.mockWalletRepo, suite.mockUserRepo, suite.mockQuoter, nil, 0)
}

func (suite *LeaderboardServiceTestSuite) TestRefresh_ValuesWalletsPerAdmin() {
	ctx := context.Background()
	alice := uuid.NewString()
	bob := uuid.NewString()

	wallets := []domain.Wallet{
		{
			WalletID: uuid.NewString(),
			Admins:   []string{alice},
			Balances: map[string]decimal.Decimal{
				domain.FiatTicker: decimal.NewFromInt(100),
				"BTC":             decimal.NewFromInt(2),
			},
		},
		{
			WalletID: uuid.NewString(),
			Admins:   []string{bob},
			Balances: map[string]decimal.Decimal{
				domain.FiatTicker: decimal.NewFromInt(50),
			},
		},
	}

	suite.mockWalletRepo.On("ListWallets", ctx).Return(wallets, nil).Once()
	// BTC quoted once for the whole snapshot
	suite.mockQuoter.On("ExchangeRate", ctx, "BTC").Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.User{
		alice: {UserID: alice, FirstName: "Alice", Public: true},
		bob:   {UserID: bob, FirstName: "Bob", Public: true},
	}, nil).Once()

	snapshot, err := suite.service.Refresh(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(snapshot.Entries, 2)
	suite.False(snapshot.RefreshedAt.IsZero())

	// Alice: 100 USD + 2 BTC * 1000 = 2100, ranked first.
	suite.Equal(alice, snapshot.Entries[0].UserID)
	suite.True(snapshot.Entries[0].TotalUSD.Equal(decimal.NewFromInt(2100)))
	suite.Equal(bob, snapshot.Entries[1].UserID)
	suite.True(snapshot.Entries[1].TotalUSD.Equal(decimal.NewFromInt(50)))
	suite.mockQuoter.AssertExpectations(suite.T())
}

func (suite *LeaderboardServiceTestSuite) TestRefresh_HidesPrivateUsers() {
	ctx := context.Background()
	private := uuid.NewString()

	wallets := []domain.Wallet{
		{
			WalletID: uuid.NewString(),
			Admins:   []string{private},
			Balances: map[string]decimal.Decimal{domain.FiatTicker: decimal.NewFromInt(9999)},
		},
	}

	suite.mockWalletRepo.On("ListWallets", ctx).Return(wallets, nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.User{
		private: {UserID: private, Public: false},
	}, nil).Once()

	snapshot, err := suite.service.Refresh(ctx)

	suite.Require().NoError(err)
	suite.Empty(snapshot.Entries)
}

func (suite *LeaderboardServiceTestSuite) TestRefresh_RateErrorPropagates() {
	ctx := context.Background()

	wallets := []domain.Wallet{
		{
			WalletID: uuid.NewString(),
			Admins:   []string{uuid.NewString()},
			Balances: map[string]decimal.Decimal{"BTC": decimal.NewFromInt(1)},
		},
	}

	suite.mockWalletRepo.On("ListWallets", ctx).Return(wallets, nil).Once()
	suite.mockQuoter.On("ExchangeRate", ctx, "BTC").Return(decimal.Zero, context.DeadlineExceeded).Once()

	snapshot, err := suite.service.Refresh(ctx)

	suite.Require().Error(err)
	suite.Nil(snapshot)
}

func (suite *LeaderboardServiceTestSuite) TestGet_WithoutCacheRecomputes() {
	ctx := context.Background()

	suite.mockWalletRepo.On("ListWallets", ctx).Return([]domain.Wallet{}, nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.User{}, nil).Once()

	snapshot, err := suite.service.Get(ctx)

	suite.Require().NoError(err)
	suite.Empty(snapshot.Entries)
}

func TestLeaderboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardServiceTestSuite))
}
