package immo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	apperrors "github.com/chits-nema/Nestify/pkg/common/errors"
	"golang.org/x/time/rate"
)

// Client talks to the property search service.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a search client with a per-request timeout and an
// outbound rate limit.
func NewClient(baseURL string, timeout time.Duration, perSecond float64, burst int) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Search posts the query and returns the matching listings. A zero
// result set, a non-2xx status, or an unreachable service all resolve
// to "no data" (nil, 0, nil) after logging, and callers decide whether
// to fall back to demo data. Only a cancelled context surfaces as error.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]Listing, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("%w: rate wait: %v", apperrors.ErrSourceUnavailable, err)
	}

	payload, err := json.Marshal(q)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal search query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "NestifyBackend/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[immo] search service unreachable: %v", err)
		return nil, 0, nil
	}
	defer resp.Body.Close()

	// The service answers 200 or 201 on success.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[immo] search returned status %d", resp.StatusCode)
		return nil, 0, nil
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[immo] search response malformed: %v", err)
		return nil, 0, nil
	}

	if result.Total == 0 || len(result.Results) == 0 {
		log.Printf("[immo] search returned no results for %q", q.GeoSearches.GeoSearchQuery)
		return nil, 0, nil
	}

	// Backfill the region so every listing carries it.
	for i := range result.Results {
		if result.Results[i].Address.Region == "" {
			result.Results[i].Address.Region = q.GeoSearches.Region
		}
	}

	return result.Results, result.Total, nil
}
