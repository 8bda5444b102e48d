package services

import (
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"

	"github.com/bloxedu/blox_backend/internal/adapters/market"
	"github.com/bloxedu/blox_backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

// NewServiceContainer wires every service with its dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, marketSource market.Source, redisClient *redis.Client) *portssvc.ServiceContainer {
	blockchainSvc := NewBlockchainService(repos.BlockchainRepo, marketSource)
	walletSvc := NewWalletService(repos.WalletRepo, repos.BlockchainRepo, repos.ClassroomRepo)

	return &portssvc.ServiceContainer{
		Trade:       NewTradeService(repos.WalletRepo, repos.TransactionRepo, blockchainSvc),
		Wallet:      walletSvc,
		Blockchain:  blockchainSvc,
		User:        NewUserService(repos.UserRepo, repos.BlockchainRepo),
		Auth:        NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
		Classroom:   NewClassroomService(repos.ClassroomRepo, repos.WalletRepo, walletSvc),
		Leaderboard: NewLeaderboardService(repos.WalletRepo, repos.UserRepo, blockchainSvc, redisClient, cfg.LeaderboardCacheTTL),
	}
}
