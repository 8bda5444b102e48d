package services_test

import (
	"context"
	"testing"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/core/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo     *MockWalletRepository
	mockBlockchainRepo *MockBlockchainRepository
	mockClassroomRepo  *MockClassroomRepository
	service            portssvc.WalletSvcFacade
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockBlockchainRepo = new(MockBlockchainRepository)
	suite.mockClassroomRepo = new(MockClassroomRepository)
	suite.service = services.NewWalletService(suite.mockWalletRepo, suite.mockBlockchainRepo, suite.mockClassroomRepo)
}

func (suite *WalletServiceTestSuite) TestCreateWallet_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()

	suite.mockWalletRepo.On("AddressExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockWalletRepo.On("SaveWallet", ctx, mock.MatchedBy(func(w domain.Wallet) bool {
		return len(w.Address) == 64 && len(w.Admins) == 1 && w.Admins[0] == creatorUserID
	})).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(wallet)
	suite.Len(wallet.Address, 64)
	suite.Equal([]string{creatorUserID}, wallet.Admins)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCreateWallet_RetriesOnAddressCollision() {
	ctx := context.Background()

	suite.mockWalletRepo.On("AddressExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()
	suite.mockWalletRepo.On("AddressExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockWalletRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(wallet)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_RequiresAdmin() {
	ctx := context.Background()
	requester := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "addr",
		Admins:   []string{uuid.NewString()},
		Members:  []string{requester},
	}
	name := "renamed"

	suite.mockWalletRepo.On("FindWalletByAddress", ctx, "addr").Return(wallet, nil).Once()

	err := suite.service.UpdateWallet(ctx, "addr", dto.UpdateWalletRequest{Name: &name}, requester)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "UpdateWalletName", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_BalanceUnknownTicker() {
	ctx := context.Background()
	admin := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "addr",
		Admins:   []string{admin},
	}

	suite.mockWalletRepo.On("FindWalletByAddress", ctx, "addr").Return(wallet, nil).Once()
	suite.mockBlockchainRepo.On("FindBlockchainByTicker", ctx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.UpdateWallet(ctx, "addr", dto.UpdateWalletRequest{
		Balances: map[string]decimal.Decimal{"NOPE": decimal.NewFromInt(5)},
	}, admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "SetBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_NegativeBalanceRejected() {
	ctx := context.Background()
	admin := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "addr",
		Admins:   []string{admin},
	}

	suite.mockWalletRepo.On("FindWalletByAddress", ctx, "addr").Return(wallet, nil).Once()
	suite.mockBlockchainRepo.On("FindBlockchainByTicker", ctx, "BTC").Return(&domain.Blockchain{Ticker: "BTC", Type: domain.BlockchainSimple}, nil).Once()

	err := suite.service.UpdateWallet(ctx, "addr", dto.UpdateWalletRequest{
		Balances: map[string]decimal.Decimal{"BTC": decimal.NewFromInt(-1)},
	}, admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_SetsBalances() {
	ctx := context.Background()
	admin := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "addr",
		Admins:   []string{admin},
	}
	amount := decimal.NewFromInt(100)

	suite.mockWalletRepo.On("FindWalletByAddress", ctx, "addr").Return(wallet, nil).Once()
	suite.mockBlockchainRepo.On("FindBlockchainByTicker", ctx, "BTC").Return(&domain.Blockchain{Ticker: "BTC", Type: domain.BlockchainSimple}, nil).Once()
	suite.mockWalletRepo.On("SetBalance", ctx, wallet.WalletID, "BTC", amount).Return(nil).Once()

	err := suite.service.UpdateWallet(ctx, "addr", dto.UpdateWalletRequest{
		Balances: map[string]decimal.Decimal{"BTC": amount},
	}, admin)

	suite.Require().NoError(err)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_ClassroomRequiresClassroomAdmin() {
	ctx := context.Background()
	admin := uuid.NewString()
	classroomID := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "addr",
		Admins:   []string{admin},
	}

	suite.mockWalletRepo.On("FindWalletByAddress", ctx, "addr").Return(wallet, nil).Once()
	suite.mockClassroomRepo.On("FindClassroomByID", ctx, classroomID).Return(&domain.Classroom{
		ClassroomID: classroomID,
		Admins:      []string{uuid.NewString()},
	}, nil).Once()

	err := suite.service.UpdateWallet(ctx, "addr", dto.UpdateWalletRequest{ClassroomID: &classroomID}, admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "UpdateWalletClassroom", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestLeaveWallet_RemovesBothRoles() {
	ctx := context.Background()
	userID := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "addr",
		Admins:   []string{userID},
		Members:  []string{userID},
	}

	suite.mockWalletRepo.On("FindWalletByAddress", ctx, "addr").Return(wallet, nil).Once()
	suite.mockWalletRepo.On("RemoveWalletAdmin", ctx, wallet.WalletID, userID).Return(nil).Once()
	suite.mockWalletRepo.On("RemoveWalletMember", ctx, wallet.WalletID, userID).Return(nil).Once()

	err := suite.service.LeaveWallet(ctx, "addr", userID)

	suite.Require().NoError(err)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestAddMember_RequiresAdmin() {
	ctx := context.Background()
	requester := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "addr",
		Admins:   []string{uuid.NewString()},
	}

	suite.mockWalletRepo.On("FindWalletByAddress", ctx, "addr").Return(wallet, nil).Once()

	err := suite.service.AddMember(ctx, "addr", uuid.NewString(), requester)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
