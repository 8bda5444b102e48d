// Package market provides the upstream market-data client used to price
// tradable currencies in USD. The upstream is third-party, latency-bearing
// and occasionally failing; callers must propagate errors rather than
// substitute a default rate.
package market

import (
	"context"

	"github.com/shopspring/decimal"
)

// Source quotes the current USD price of one unit of a ticker.
type Source interface {
	LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error)
}
