package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chits-nema/Nestify/pkg/match"
	openai "github.com/sashabaranov/go-openai"
)

// Message is one turn of the advisor conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries the user's question plus the budget and liked
// listings that ground the advice.
type Request struct {
	Message         string                `json:"message"`
	Budget          float64               `json:"budget"`
	LikedProperties []match.ScoredListing `json:"liked_properties"`
	History         []Message             `json:"history"`
}

// Advisor generates home-buying advice with an OpenAI chat model.
type Advisor struct {
	client *openai.Client
	model  string
}

const (
	maxAttempts = 3
	callTimeout = 30 * time.Second
)

// New creates an Advisor, or nil when no API key is configured.
func New(apiKey, model string) *Advisor {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &Advisor{client: openai.NewClient(apiKey), model: model}
}

// Advise answers the user's question. Retries transient failures with
// backoff before giving up.
func (a *Advisor) Advise(ctx context.Context, req Request) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)},
	}
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})

	var resp openai.ChatCompletionResponse
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, callTimeout)
		resp, err = a.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model:       a.model,
			Messages:    messages,
			Temperature: 0.7,
		})
		cancel()

		if err == nil && len(resp.Choices) > 0 {
			return resp.Choices[0].Message.Content, nil
		}

		log.Printf("[advisor] attempt %d failed: %v", attempt, err)
		if attempt < maxAttempts {
			select {
			case <-time.After(time.Duration(attempt*2) * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	if err != nil {
		return "", fmt.Errorf("advisor request failed after %d attempts: %w", maxAttempts, err)
	}
	return "", fmt.Errorf("advisor returned no choices")
}

func systemPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString(`You are an expert real estate advisor for the German housing market, particularly Munich and Bavaria.

Help buyers find a home within budget, explain German real-estate terms simply, and keep answers to 2-3 short paragraphs with one actionable next step.

## User's situation
`)
	if req.Budget > 0 {
		fmt.Fprintf(&sb, "Maximum buying power: €%.0f\n", req.Budget)
	} else {
		sb.WriteString("Budget not yet calculated.\n")
	}

	if len(req.LikedProperties) > 0 {
		sb.WriteString("Liked listings:\n")
		for i, p := range req.LikedProperties {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&sb, "- %s (€%.0f, %.0fm², %.1f rooms)\n",
				p.Title, p.BuyingPrice, p.SquareMeter, p.Rooms)
		}
	} else {
		sb.WriteString("No liked listings yet.\n")
	}

	return sb.String()
}
