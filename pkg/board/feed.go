package board

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/chits-nema/Nestify/pkg/common/errors"
)

// NormalizeBoardURL converts a board URL into its feed-retrievable form
// by ensuring the .rss suffix. Returns ErrInvalidInput for URLs that are
// not recognizable board URLs.
func NormalizeBoardURL(url string) (string, error) {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		return "", fmt.Errorf("%w: empty board URL", apperrors.ErrInvalidInput)
	}
	if strings.HasSuffix(url, ".rss") {
		return url, nil
	}
	if strings.Contains(url, "pinterest.") {
		return url + ".rss", nil
	}
	return "", fmt.Errorf("%w: not a recognizable board URL: %s", apperrors.ErrInvalidInput, url)
}

// rss mirrors the subset of RSS 2.0 the board feed actually emits.
type rss struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
}

// Fetcher retrieves board feeds over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads and parses the feed at feedURL into Pins. Items
// without an extractable image reference are dropped. Any network or
// parse failure yields an empty slice; ingestion never fails the run.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) []Pin {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		log.Printf("[board] bad feed request %s: %v", feedURL, err)
		return nil
	}
	req.Header.Set("User-Agent", "NestifyBackend/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("[board] feed fetch failed %s: %v", feedURL, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[board] feed returned status %d for %s", resp.StatusCode, feedURL)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		log.Printf("[board] feed read failed %s: %v", feedURL, err)
		return nil
	}

	return ParseFeed(body)
}

// ParseFeed converts raw RSS bytes into Pins. Malformed XML yields an
// empty slice.
func ParseFeed(data []byte) []Pin {
	var doc rss
	if err := xml.Unmarshal(data, &doc); err != nil {
		log.Printf("[board] feed parse failed: %v", err)
		return nil
	}

	pins := make([]Pin, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		img := extractImageRef(item.Description)
		if img == "" {
			// Image-less items are common and non-fatal; skip quietly.
			continue
		}
		pins = append(pins, Pin{
			Title:       strings.TrimSpace(item.Title),
			Caption:     CleanCaption(item.Description),
			Description: item.Description,
			ImageRef:    img,
			SourceLink:  strings.TrimSpace(item.Link),
		})
	}
	return pins
}
