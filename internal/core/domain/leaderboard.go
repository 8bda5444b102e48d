package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaderboardEntry is one user's total USD valuation across every wallet they
// administer, at the rates current when the snapshot was computed.
type LeaderboardEntry struct {
	UserID    string          `json:"userID"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	TotalUSD  decimal.Decimal `json:"totalUSD"`
}

// LeaderboardSnapshot is an explicitly time-stamped leaderboard value. It is
// passed through the cache boundary as a whole; staleness is judged against
// RefreshedAt, never against ambient global state.
type LeaderboardSnapshot struct {
	Entries     []LeaderboardEntry `json:"entries"`
	RefreshedAt time.Time          `json:"refreshedAt"`
}
