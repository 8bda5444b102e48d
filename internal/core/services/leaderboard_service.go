package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// leaderboardCacheKey is the Redis key holding the serialized snapshot.
const leaderboardCacheKey = "blox:leaderboard"

// leaderboardService values every wallet at current rates and attributes the
// total to each wallet admin. Snapshots are cached in Redis with a TTL; the
// cache is best effort and a Redis outage only costs recomputation.
type leaderboardService struct {
	walletRepo portsrepo.WalletRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	rateQuoter portssvc.RateQuoterSvc
	redis      *redis.Client
	cacheTTL   time.Duration
}

// NewLeaderboardService creates a new leaderboard service instance.
func NewLeaderboardService(walletRepo portsrepo.WalletRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, rateQuoter portssvc.RateQuoterSvc, redisClient *redis.Client, cacheTTL time.Duration) portssvc.LeaderboardSvcFacade {
	return &leaderboardService{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		rateQuoter: rateQuoter,
		redis:      redisClient,
		cacheTTL:   cacheTTL,
	}
}

// Get returns the cached snapshot, recomputing when the cache is empty or
// unreadable.
func (s *leaderboardService) Get(ctx context.Context) (*domain.LeaderboardSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.redis != nil {
		payload, err := s.redis.Get(ctx, leaderboardCacheKey).Bytes()
		if err == nil {
			var snapshot domain.LeaderboardSnapshot
			if err := json.Unmarshal(payload, &snapshot); err == nil {
				return &snapshot, nil
			}
			logger.Warn("Cached leaderboard is unreadable, recomputing")
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("Leaderboard cache read failed, recomputing", "error", err)
		}
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the snapshot immediately and replaces the cache entry.
func (s *leaderboardService) Refresh(ctx context.Context) (*domain.LeaderboardSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snapshot, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		payload, err := json.Marshal(snapshot)
		if err == nil {
			if err := s.redis.Set(ctx, leaderboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				logger.Warn("Leaderboard cache write failed", "error", err)
			}
		}
	}

	return snapshot, nil
}

// compute values every wallet at current rates and sums per admin. Rates are
// fetched once per ticker for the whole pass, so every wallet in one
// snapshot is valued consistently.
func (s *leaderboardService) compute(ctx context.Context) (*domain.LeaderboardSnapshot, error) {
	wallets, err := s.walletRepo.ListWallets(ctx)
	if err != nil {
		return nil, err
	}

	rates := map[string]decimal.Decimal{
		domain.FiatTicker: decimal.NewFromInt(1),
	}
	totals := make(map[string]decimal.Decimal)

	for i := range wallets {
		wallet := &wallets[i]
		walletTotal := decimal.Zero
		for ticker, amount := range wallet.Balances {
			rate, ok := rates[ticker]
			if !ok {
				rate, err = s.rateQuoter.ExchangeRate(ctx, ticker)
				if err != nil {
					return nil, err
				}
				rates[ticker] = rate
			}
			walletTotal = walletTotal.Add(amount.Mul(rate))
		}
		for _, adminID := range wallet.Admins {
			totals[adminID] = totals[adminID].Add(walletTotal)
		}
	}

	userIDs := make([]string, 0, len(totals))
	for userID := range totals {
		userIDs = append(userIDs, userID)
	}
	users, err := s.userRepo.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(totals))
	for userID, total := range totals {
		user, ok := users[userID]
		if !ok || !user.Public {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID:    userID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			TotalUSD:  total,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].TotalUSD.Equal(entries[j].TotalUSD) {
			return entries[i].TotalUSD.GreaterThan(entries[j].TotalUSD)
		}
		return entries[i].UserID < entries[j].UserID
	})

	return &domain.LeaderboardSnapshot{
		Entries:     entries,
		RefreshedAt: time.Now(),
	}, nil
}
