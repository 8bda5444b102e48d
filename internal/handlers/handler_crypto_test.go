package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/handlers"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TradeService ---
type MockTradeService struct {
	mock.Mock
}

func (m *MockTradeService) Trade(ctx context.Context, walletID string, ticker string, amount decimal.Decimal, direction domain.TradeDirection, initiatorUserID *string) (*domain.Transaction, error) {
	args := m.Called(ctx, walletID, ticker, amount, direction, initiatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTradeService) Fulfill(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTradeService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock BlockchainService ---
type MockBlockchainService struct {
	mock.Mock
}

func (m *MockBlockchainService) CreateBlockchain(ctx context.Context, req dto.CreateBlockchainRequest, creatorUserID string) (*domain.Blockchain, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blockchain), args.Error(1)
}

func (m *MockBlockchainService) GetBlockchainByTicker(ctx context.Context, ticker string) (*domain.Blockchain, error) {
	args := m.Called(ctx, ticker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blockchain), args.Error(1)
}

func (m *MockBlockchainService) GetBlockchainByID(ctx context.Context, blockchainID string) (*domain.Blockchain, error) {
	args := m.Called(ctx, blockchainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blockchain), args.Error(1)
}

func (m *MockBlockchainService) ListTradable(ctx context.Context) ([]domain.Blockchain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Blockchain), args.Error(1)
}

func (m *MockBlockchainService) ExchangeRate(ctx context.Context, ticker string) (decimal.Decimal, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) CreateWallet(ctx context.Context, creatorUserID string) (*domain.Wallet, error) {
	args := m.Called(ctx, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) GetWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) ListUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletService) UpdateWallet(ctx context.Context, address string, req dto.UpdateWalletRequest, requestingUserID string) error {
	args := m.Called(ctx, address, req, requestingUserID)
	return args.Error(0)
}

func (m *MockWalletService) LeaveWallet(ctx context.Context, address string, requestingUserID string) error {
	args := m.Called(ctx, address, requestingUserID)
	return args.Error(0)
}

func (m *MockWalletService) AddMember(ctx context.Context, address string, userID string, requestingUserID string) error {
	args := m.Called(ctx, address, userID, requestingUserID)
	return args.Error(0)
}

func (m *MockWalletService) RemoveMember(ctx context.Context, address string, userID string, requestingUserID string) error {
	args := m.Called(ctx, address, userID, requestingUserID)
	return args.Error(0)
}

// --- Test Suite ---
type CryptoHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockTradeService      *MockTradeService
	mockBlockchainService *MockBlockchainService
	mockWalletService     *MockWalletService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CryptoHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "blox-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CryptoHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockTradeService = new(MockTradeService)
	suite.mockBlockchainService = new(MockBlockchainService)
	suite.mockWalletService = new(MockWalletService)

	v1 := suite.router.Group("/api/v1")
	// nil analytics client: event capture is a no-op in tests
	handlers.RegisterCryptoRoutes(v1, suite.mockTradeService, suite.mockBlockchainService, suite.mockWalletService, nil)
}

func (suite *CryptoHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CryptoHandlerTestSuite) TestTrade_Success() {
	userID := uuid.NewString()
	walletID := uuid.NewString()
	address := "abc123"
	amount := decimal.NewFromInt(2)

	wallet := &domain.Wallet{
		WalletID: walletID,
		Address:  address,
		Members:  []string{userID},
	}
	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		BlockchainID:    uuid.NewString(),
		FromWalletID:    walletID,
		ToWalletID:      uuid.NewString(),
		InitiatorUserID: &userID,
		Amount:          amount,
		Proven:          true,
	}

	suite.mockWalletService.On("GetWalletByAddress", mock.Anything, address).Return(wallet, nil).Once()
	suite.mockTradeService.On("Trade",
		mock.Anything,
		walletID,
		"BTC",
		amount,
		domain.Sell,
		mock.MatchedBy(func(id *string) bool { return id != nil && *id == userID }),
	).Return(txn, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/crypto/btc", userID, dto.TradeRequest{
		Wallet: address,
		Action: "sell",
		Amount: amount,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txn.TransactionID, resp.TransactionID)
	suite.True(resp.Proven)
	suite.mockTradeService.AssertExpectations(suite.T())
}

func (suite *CryptoHandlerTestSuite) TestTrade_ForbiddenWhenNotWalletMember() {
	userID := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "abc123",
		Admins:   []string{uuid.NewString()},
	}

	suite.mockWalletService.On("GetWalletByAddress", mock.Anything, "abc123").Return(wallet, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/crypto/BTC", userID, dto.TradeRequest{
		Wallet: "abc123",
		Action: "buy",
		Amount: decimal.NewFromInt(1),
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockTradeService.AssertNotCalled(suite.T(), "Trade",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CryptoHandlerTestSuite) TestTrade_InsufficientFundsIsBadRequest() {
	userID := uuid.NewString()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		Address:  "abc123",
		Admins:   []string{userID},
	}

	suite.mockWalletService.On("GetWalletByAddress", mock.Anything, "abc123").Return(wallet, nil).Once()
	suite.mockTradeService.On("Trade",
		mock.Anything, wallet.WalletID, "BTC", mock.Anything, domain.Buy, mock.Anything,
	).Return(nil, fmt.Errorf("%w: wallet would go negative", apperrors.ErrInsufficientFunds)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/crypto/BTC", userID, dto.TradeRequest{
		Wallet: "abc123",
		Action: "buy",
		Amount: decimal.NewFromInt(1000000),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *CryptoHandlerTestSuite) TestTrade_InvalidActionRejected() {
	w := suite.doRequest(http.MethodPost, "/api/v1/crypto/BTC", uuid.NewString(), map[string]any{
		"wallet": "abc123",
		"action": "hodl",
		"amount": "1",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWalletService.AssertNotCalled(suite.T(), "GetWalletByAddress", mock.Anything, mock.Anything)
}

func (suite *CryptoHandlerTestSuite) TestFulfillTransaction_Success() {
	transactionID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: transactionID,
		Amount:        decimal.NewFromInt(3),
		Proven:        true,
	}

	suite.mockTradeService.On("Fulfill", mock.Anything, transactionID).Return(txn, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/"+transactionID+"/fulfill", uuid.NewString(), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Proven)
}

func (suite *CryptoHandlerTestSuite) TestGetTransaction_NotFound() {
	transactionID := uuid.NewString()

	suite.mockTradeService.On("GetTransactionByID", mock.Anything, transactionID).
		Return(nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, uuid.NewString(), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CryptoHandlerTestSuite) TestListCrypto_RateUnavailableIsBadGateway() {
	suite.mockBlockchainService.On("ListTradable", mock.Anything).Return([]domain.Blockchain{
		{Ticker: "BTC", Type: domain.BlockchainSimple},
	}, nil).Once()
	suite.mockBlockchainService.On("ExchangeRate", mock.Anything, "BTC").
		Return(decimal.Zero, fmt.Errorf("%w: upstream timeout", apperrors.ErrRateUnavailable)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/crypto", uuid.NewString(), nil)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *CryptoHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/crypto", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestCryptoHandler(t *testing.T) {
	suite.Run(t, new(CryptoHandlerTestSuite))
}
