package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ApiUrlBase is the default Binance API base URL.
const ApiUrlBase = "https://api.binance.com"

// requestTimeout bounds each upstream call so a hung quote cannot stall a
// trade indefinitely.
const requestTimeout = 5 * time.Second

// BinanceClient fetches the most recent trade price for TICKER/USDC pairs
// from the Binance public API.
type BinanceClient struct {
	url    string
	logger *slog.Logger
	client http.Client
}

// NewBinanceClient constructs a client against the given base URL. An empty
// baseURL selects the production Binance endpoint.
func NewBinanceClient(baseURL string, logger *slog.Logger) *BinanceClient {
	if baseURL == "" {
		baseURL = ApiUrlBase
	}
	return &BinanceClient{
		url:    baseURL,
		logger: logger,
		client: http.Client{
			Timeout: requestTimeout,
		},
	}
}

var _ Source = (*BinanceClient)(nil)

// LastPrice returns the price of the last executed trade for ticker/USDC.
func (c *BinanceClient) LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	type trade struct {
		Price string `json:"price"`
	}

	symbol := ticker + "USDC"
	url := fmt.Sprintf("%s/api/v3/trades?symbol=%s&limit=1", c.url, symbol)

	c.logger.Debug("loading exchange rate", slog.String("ticker", ticker), slog.String("url", url))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := c.client.Do(request)
	if err != nil {
		return decimal.Zero, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("market api returned status %d for %s", httpResponse.StatusCode, symbol)
	}

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading response body: %w", err)
	}

	var trades []trade
	if err := json.Unmarshal(body, &trades); err != nil {
		return decimal.Zero, fmt.Errorf("decoding json: %w", err)
	}
	if len(trades) == 0 {
		return decimal.Zero, fmt.Errorf("no trades reported for %s", symbol)
	}

	price, err := decimal.NewFromString(trades[0].Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad price value %q: %w", trades[0].Price, err)
	}

	return price, nil
}
