// Package market polls prediction-market data as a supplementary signal
// stream. The provider rate-limits aggressively, so requests are strictly
// sequential with an enforced stagger; this is a correctness requirement of
// the integration, not an optimization.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/vigil/internal/feeds"
)

const gammaAPI = "https://gamma-api.polymarket.com"

// Market represents one prediction market.
type Market struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	Description   string    `json:"description"`
	Slug          string    `json:"slug"`
	Active        bool      `json:"active"`
	Closed        bool      `json:"closed"`
	Volume        float64   `json:"volume"`
	Volume24hr    float64   `json:"volume24hr"`
	OutcomePrices string    `json:"outcomePrices"` // JSON string "[0.65, 0.35]"
	Outcomes      string    `json:"outcomes"`      // JSON string "[\"Yes\", \"No\"]"
	EndDate       time.Time `json:"endDate"`
	Category      string    `json:"category"`
}

// Poller fetches markets one request at a time behind a rate limiter.
type Poller struct {
	name    string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	limit   int
}

// NewPoller creates a poller. stagger is the minimum gap between requests.
func NewPoller(stagger time.Duration, limit int) *Poller {
	if limit <= 0 {
		limit = 50
	}
	return &Poller{
		name:    "Polymarket",
		baseURL: gammaAPI,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(stagger), 1),
		limit:   limit,
	}
}

// Name returns the provider name.
func (p *Poller) Name() string {
	return p.name
}

// Poll fetches the top active markets by 24h volume. Blocks on the limiter
// first, so back-to-back calls are automatically staggered.
func (p *Poller) Poll(ctx context.Context) ([]feeds.Item, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/markets?active=true&closed=false&limit=%d&order=volume24hr&ascending=false", p.baseURL, p.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market API error: %d", resp.StatusCode)
	}

	var markets []Market
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, fmt.Errorf("failed to decode market response: %w", err)
	}

	now := time.Now()
	items := make([]feeds.Item, 0, len(markets))
	for _, m := range markets {
		items = append(items, convertMarket(m, p.name, now))
	}
	return items, nil
}

// convertMarket maps a market to the unified item shape. The question text
// flows through the same pattern tables as headlines, so a surge of markets
// about one topic counts toward that topic like any other source.
func convertMarket(m Market, sourceName string, fetchTime time.Time) feeds.Item {
	return feeds.Item{
		ID:          "pm-" + m.ID,
		Source:      feeds.SourceMarket,
		SourceName:  sourceName,
		Title:       m.Question,
		Description: m.Description,
		Link:        "https://polymarket.com/market/" + m.Slug,
		Category:    "market",
		Published:   fetchTime,
		Fetched:     fetchTime,
	}
}
