package dto

import (
	"time"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LeaderboardEntryResponse is one ranked user.
type LeaderboardEntryResponse struct {
	UserID    string          `json:"userID"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	TotalUSD  decimal.Decimal `json:"totalUSD"`
}

// LeaderboardResponse is the cached snapshot plus its timestamp so clients
// can see how stale the standings are.
type LeaderboardResponse struct {
	Entries     []LeaderboardEntryResponse `json:"entries"`
	RefreshedAt time.Time                  `json:"refreshedAt"`
}

// ToLeaderboardResponse converts a domain snapshot to its API shape.
func ToLeaderboardResponse(s *domain.LeaderboardSnapshot) LeaderboardResponse {
	entries := make([]LeaderboardEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = LeaderboardEntryResponse{
			UserID:    e.UserID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			TotalUSD:  e.TotalUSD,
		}
	}
	return LeaderboardResponse{Entries: entries, RefreshedAt: s.RefreshedAt}
}
