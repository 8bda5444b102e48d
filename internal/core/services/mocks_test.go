package services_test

import (
	"context"
	"time"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) AddressExists(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepository) FindWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SetBalance(ctx context.Context, walletID string, ticker string, amount decimal.Decimal) error {
	args := m.Called(ctx, walletID, ticker, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletName(ctx context.Context, walletID string, name string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, walletID, name, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletClassroom(ctx context.Context, walletID string, classroomID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, walletID, classroomID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockWalletRepository) AddWalletAdmin(ctx context.Context, walletID string, userID string) error {
	args := m.Called(ctx, walletID, userID)
	return args.Error(0)
}

func (m *MockWalletRepository) RemoveWalletAdmin(ctx context.Context, walletID string, userID string) error {
	args := m.Called(ctx, walletID, userID)
	return args.Error(0)
}

func (m *MockWalletRepository) AddWalletMember(ctx context.Context, walletID string, userID string) error {
	args := m.Called(ctx, walletID, userID)
	return args.Error(0)
}

func (m *MockWalletRepository) RemoveWalletMember(ctx context.Context, walletID string, userID string) error {
	args := m.Called(ctx, walletID, userID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByWallet(ctx context.Context, walletID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, walletID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SettleTransaction(ctx context.Context, transactionID string, changes portsrepo.BalanceChanges) (bool, error) {
	args := m.Called(ctx, transactionID, changes)
	return args.Bool(0), args.Error(1)
}

// --- Mock BlockchainRepository ---
type MockBlockchainRepository struct {
	mock.Mock
}

func (m *MockBlockchainRepository) SaveBlockchain(ctx context.Context, blockchain domain.Blockchain) error {
	args := m.Called(ctx, blockchain)
	return args.Error(0)
}

func (m *MockBlockchainRepository) FindBlockchainByID(ctx context.Context, blockchainID string) (*domain.Blockchain, error) {
	args := m.Called(ctx, blockchainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blockchain), args.Error(1)
}

func (m *MockBlockchainRepository) FindBlockchainByTicker(ctx context.Context, ticker string) (*domain.Blockchain, error) {
	args := m.Called(ctx, ticker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blockchain), args.Error(1)
}

func (m *MockBlockchainRepository) ListBlockchains(ctx context.Context) ([]domain.Blockchain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Blockchain), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FollowBlockchain(ctx context.Context, userID string, blockchainID string) error {
	args := m.Called(ctx, userID, blockchainID)
	return args.Error(0)
}

func (m *MockUserRepository) UnfollowBlockchain(ctx context.Context, userID string, blockchainID string) error {
	args := m.Called(ctx, userID, blockchainID)
	return args.Error(0)
}

// --- Mock ClassroomRepository ---
type MockClassroomRepository struct {
	mock.Mock
}

func (m *MockClassroomRepository) SaveClassroom(ctx context.Context, classroom domain.Classroom) error {
	args := m.Called(ctx, classroom)
	return args.Error(0)
}

func (m *MockClassroomRepository) FindClassroomByID(ctx context.Context, classroomID string) (*domain.Classroom, error) {
	args := m.Called(ctx, classroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) FindClassroomByCode(ctx context.Context, code string) (*domain.Classroom, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) FindClassroomsByUser(ctx context.Context, userID string) ([]domain.Classroom, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) AddJoinCode(ctx context.Context, classroomID string, code string) error {
	args := m.Called(ctx, classroomID, code)
	return args.Error(0)
}

func (m *MockClassroomRepository) UpdateClassroomName(ctx context.Context, classroomID string, name string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, classroomID, name, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockClassroomRepository) AddStudent(ctx context.Context, classroomID string, userID string) error {
	args := m.Called(ctx, classroomID, userID)
	return args.Error(0)
}

func (m *MockClassroomRepository) RemoveStudent(ctx context.Context, classroomID string, userID string) error {
	args := m.Called(ctx, classroomID, userID)
	return args.Error(0)
}

func (m *MockClassroomRepository) AddClassroomAdmin(ctx context.Context, classroomID string, userID string) error {
	args := m.Called(ctx, classroomID, userID)
	return args.Error(0)
}

func (m *MockClassroomRepository) RemoveClassroomAdmin(ctx context.Context, classroomID string, userID string) error {
	args := m.Called(ctx, classroomID, userID)
	return args.Error(0)
}

func (m *MockClassroomRepository) DeleteClassroom(ctx context.Context, classroomID string) error {
	args := m.Called(ctx, classroomID)
	return args.Error(0)
}

// --- Mock market Source ---
type MockMarketSource struct {
	mock.Mock
}

func (m *MockMarketSource) LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
