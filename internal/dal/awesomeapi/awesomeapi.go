package awesomeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/corray333/order-management/internal/service/models/currency"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultBaseURL = "https://economia.awesomeapi.com.br/json/last"

// Client fetches the USD-BRL conversion rate from AwesomeAPI. Every call
// performs a fresh fetch: no caching, no retries.
type Client struct {
	httpClient *http.Client
	url        string
}

// option is a function that configures the Client.
type option func(*Client)

// NewClient creates a new AwesomeAPI client.
func NewClient(opts ...option) *Client {
	baseURL := viper.GetString("currency.api_url")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	c := &Client{
		httpClient: &http.Client{},
		url:        baseURL + "/" + currency.Pair(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithURL overrides the full quote URL.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithURL(url string) option {
	return func(c *Client) {
		c.url = url
	}
}

// WithHTTPClient overrides the HTTP client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithHTTPClient(httpClient *http.Client) option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// quoteResponse is the shape of the AwesomeAPI last-quote payload. Only the
// bid of the requested pair is consumed.
type quoteResponse struct {
	USDBRL struct {
		Bid string `json:"bid"`
	} `json:"USDBRL"`
}

// GetRate returns the current USD to BRL conversion rate.
func (c *Client) GetRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to fetch USD/BRL rate", "error", err)

		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Unexpected status from FX API", "status", resp.StatusCode)

		return decimal.Zero, fmt.Errorf("%w: status %d", apperrors.ErrRateUnavailable, resp.StatusCode)
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		slog.Error("Failed to decode FX response", "error", err)

		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}

	rate, err := decimal.NewFromString(quote.USDBRL.Bid)
	if err != nil || !rate.IsPositive() {
		slog.Error("Invalid FX response", "bid", quote.USDBRL.Bid)

		return decimal.Zero, fmt.Errorf("%w: invalid bid %q", apperrors.ErrRateUnavailable, quote.USDBRL.Bid)
	}

	return rate, nil
}
