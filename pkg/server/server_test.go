package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chits-nema/Nestify/internal/manager"
	"github.com/chits-nema/Nestify/pkg/analyze"
	"github.com/chits-nema/Nestify/pkg/board"
	"github.com/chits-nema/Nestify/pkg/immo"
	"github.com/chits-nema/Nestify/pkg/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePins struct{ pins []board.Pin }

func (f fakePins) Fetch(ctx context.Context, feedURL string) []board.Pin { return f.pins }

type fakeSearcher struct {
	listings []immo.Listing
	total    int
}

func (f fakeSearcher) Search(ctx context.Context, q immo.SearchQuery) ([]immo.Listing, int, error) {
	return f.listings, f.total, nil
}

func newTestServer(t *testing.T, pins []board.Pin, searcher service.ListingSearcher) *Server {
	t.Helper()
	vocab, err := analyze.LoadVocabulary()
	require.NoError(t, err)
	cache, err := manager.NewCache[*service.AnalysisResult](8, time.Minute)
	require.NoError(t, err)

	analyzer := service.NewAnalyzerService(vocab, fakePins{pins: pins}, searcher, nil, cache, 20)
	return NewServer(analyzer, searcher, nil, false)
}

func doJSON(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, nil, fakeSearcher{})

	w := doJSON(s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(s, http.MethodGet, "/pinterest/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["gemini_api_configured"])
}

func TestAnalyzeValidation(t *testing.T) {
	s := newTestServer(t, nil, fakeSearcher{})

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing city", map[string]string{"board_url": "https://pinterest.com/u/b"}},
		{"missing board_url", map[string]string{"city": "Berlin"}},
		{"bad board url", map[string]string{"board_url": "https://example.com/x", "city": "Berlin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(s, http.MethodPost, "/pinterest/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	pins := []board.Pin{
		{Caption: "cozy balcony with plants"},
		{Caption: "balcony furniture ideas"},
	}
	searcher := fakeSearcher{
		listings: []immo.Listing{
			{ID: "a", Title: "Wohnung mit Balkon", Balcony: true},
		},
		total: 1,
	}
	s := newTestServer(t, pins, searcher)

	w := doJSON(s, http.MethodPost, "/pinterest/analyze", map[string]string{
		"board_url": "https://pinterest.com/user/balcony-board",
		"city":      "Berlin",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			RunID      string           `json:"run_id"`
			PinCount   int              `json:"pin_count"`
			DemoData   bool             `json:"demo_data"`
			Properties []map[string]any `json:"properties"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.RunID)
	assert.Equal(t, 2, body.Data.PinCount)
	assert.False(t, body.Data.DemoData)
	require.Len(t, body.Data.Properties, 1)
	assert.Equal(t, "a", body.Data.Properties[0]["id"])
	assert.Contains(t, body.Data.Properties[0], "match_score")
}

func TestPropertySearchDemoFallback(t *testing.T) {
	s := newTestServer(t, nil, fakeSearcher{})

	w := doJSON(s, http.MethodPost, "/api/properties/search", map[string]any{
		"city": "Berlin",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "mocked-demo-data", body["source"])
	assert.NotEmpty(t, body["results"])
}

func TestPropertySearchPassThrough(t *testing.T) {
	searcher := fakeSearcher{
		listings: []immo.Listing{{ID: "x", Title: "Haus mit Garten"}},
		total:    37,
	}
	s := newTestServer(t, nil, searcher)

	w := doJSON(s, http.MethodPost, "/api/properties/search", map[string]any{
		"city":         "Hamburg",
		"propertyType": "HOUSEBUY",
		"size":         10,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total   int              `json:"total"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 37, body.Total)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "x", body.Results[0]["id"])
}

func TestPropertySearchTypeValidation(t *testing.T) {
	s := newTestServer(t, nil, fakeSearcher{})

	for _, valid := range []string{"", "ALL", "APARTMENTBUY", "HOUSEBUY", "LANDBUY", "GARAGEBUY", "OFFICEBUY"} {
		w := doJSON(s, http.MethodPost, "/api/properties/search", map[string]any{
			"city":         "Berlin",
			"propertyType": valid,
		})
		assert.Equal(t, http.StatusOK, w.Code, valid)
	}

	w := doJSON(s, http.MethodPost, "/api/properties/search", map[string]any{
		"city":         "Berlin",
		"propertyType": "CASTLEBUY",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatWithoutAdvisor(t *testing.T) {
	s := newTestServer(t, nil, fakeSearcher{})

	w := doJSON(s, http.MethodPost, "/api/chat", map[string]string{"message": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
