package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiService asks a generative model to rate how strongly a board
// digest expresses each feature category. It is strictly best-effort:
// every failure mode resolves to "unavailable" and the caller keeps
// its lexical scores.
type GeminiService struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiService creates the refinement client. Returns an error
// when no API key is configured; callers treat that as "no refiner".
func NewGeminiService(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash-exp"
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2) // Low temperature for consistent ratings

	return &GeminiService{client: client, model: model, timeout: timeout}, nil
}

// Close releases the underlying client.
func (s *GeminiService) Close() error {
	return s.client.Close()
}

// ScoreCategories rates the digest against the category list on a
// 0-100 scale. ok=false means the refinement step must be skipped.
func (s *GeminiService) ScoreCategories(ctx context.Context, digest string, categories []string) (map[string]int, bool) {
	if strings.TrimSpace(digest) == "" || len(categories) == 0 {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildScoringPrompt(digest, categories)
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("[ai] gemini request failed: %v", err)
		return nil, false
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		log.Printf("[ai] gemini returned no candidates")
		return nil, false
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	scores, err := parseScores(sb.String(), categories)
	if err != nil {
		log.Printf("[ai] gemini response unusable: %v", err)
		return nil, false
	}
	return scores, true
}

func buildScoringPrompt(digest string, categories []string) string {
	return fmt.Sprintf(`You rate how strongly a home-inspiration board expresses housing preferences.

## Board digest
%s

## Categories
%s

For each category, give an integer confidence from 0 to 100 for how
strongly the board expresses it. Rate 0 when a category is absent.

Return strictly a JSON object mapping category name to integer, e.g.
{"Balcony": 80, "Modern": 45}. No text outside the JSON.`, digest, strings.Join(categories, ", "))
}

// parseScores extracts the first JSON object from the model reply and
// keeps only known categories with values clamped to [0,100].
func parseScores(raw string, categories []string) (map[string]int, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var parsed map[string]int
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parse reply JSON: %w", err)
	}

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}

	scores := make(map[string]int, len(parsed))
	for cat, v := range parsed {
		if !known[cat] {
			continue
		}
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		scores[cat] = v
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("reply contained no known categories")
	}
	return scores, nil
}
