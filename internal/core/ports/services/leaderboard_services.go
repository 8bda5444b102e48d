package services

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
)

// LeaderboardSvcFacade computes and caches per-user USD standings.
type LeaderboardSvcFacade interface {
	// Get returns the cached snapshot, recomputing when the cache has expired
	// or is empty.
	Get(ctx context.Context) (*domain.LeaderboardSnapshot, error)
	// Refresh recomputes the snapshot immediately, bypassing the cache.
	Refresh(ctx context.Context) (*domain.LeaderboardSnapshot, error)
}
