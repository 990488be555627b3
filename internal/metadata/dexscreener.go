package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"solana-dca-watch/internal/domain"
)

// DefaultBaseURL is the public DexScreener API endpoint.
const DefaultBaseURL = "https://api.dexscreener.com"

// Client fetches token metadata from the DexScreener pairs API.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a metadata client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile-time interface check.
var _ Source = (*Client)(nil)

// Fetch looks up metadata for a mint. The response schema is loose, so
// fields are extracted tolerantly; missing volume stays empty and is later
// omitted from the report.
func (c *Client) Fetch(ctx context.Context, mint string) (domain.TokenMeta, error) {
	url := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, mint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.TokenMeta{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.TokenMeta{}, fmt.Errorf("fetch metadata for %s: %w", mint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TokenMeta{}, fmt.Errorf("metadata lookup for %s: status %d", mint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TokenMeta{}, fmt.Errorf("read metadata response: %w", err)
	}

	pair := gjson.GetBytes(body, "pairs.0")
	if !pair.Exists() {
		return domain.TokenMeta{}, fmt.Errorf("no pairs for mint %s", mint)
	}

	meta := domain.TokenMeta{
		Symbol:          pair.Get("baseToken.symbol").String(),
		ContractAddress: mint,
		Decimals:        DefaultDecimals,
	}

	if price := pair.Get("priceUsd"); price.Exists() {
		if p, err := decimal.NewFromString(price.String()); err == nil {
			meta.Price = p
		}
	}

	if mc := pair.Get("marketCap"); mc.Exists() {
		meta.MarketCap = FormatMillions(decimal.NewFromFloat(mc.Float()))
	}

	if vol := pair.Get("volume.h24"); vol.Exists() {
		meta.Volume24h = FormatMillions(decimal.NewFromFloat(vol.Float()))
	}

	if meta.Symbol == "" {
		meta.Symbol = mint
	}

	return meta, nil
}
