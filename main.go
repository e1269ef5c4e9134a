package main

import (
	"context"
	"flag"
	"log"

	"github.com/chits-nema/Nestify/internal/config"
	"github.com/chits-nema/Nestify/internal/manager"
	"github.com/chits-nema/Nestify/pkg/advisor"
	"github.com/chits-nema/Nestify/pkg/analyze"
	"github.com/chits-nema/Nestify/pkg/board"
	"github.com/chits-nema/Nestify/pkg/immo"
	"github.com/chits-nema/Nestify/pkg/server"
	"github.com/chits-nema/Nestify/pkg/service"
	"github.com/chits-nema/Nestify/pkg/service/ai"
)

func main() {
	addrFlag := flag.String("addr", "", "listen address (overrides PORT)")
	flag.Parse()

	cfg := config.Load()

	vocab, err := analyze.LoadVocabulary()
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	fetcher := board.NewFetcher(cfg.FeedTimeout)
	searcher := immo.NewClient(cfg.ThinkImmoURL, cfg.SearchTimeout, cfg.SearchRate, cfg.SearchBurst)

	// Semantic refinement is optional: without a key the pipeline runs
	// lexical-only.
	var refiner analyze.Refiner
	geminiConfigured := false
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.RefineTimeout)
		if err != nil {
			log.Printf("Gemini unavailable, continuing without refinement: %v", err)
		} else {
			defer gemini.Close()
			refiner = gemini
			geminiConfigured = true
		}
	}

	cache, err := manager.NewCache[*service.AnalysisResult](cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to create analysis cache: %v", err)
	}

	analyzer := service.NewAnalyzerService(vocab, fetcher, searcher, refiner, cache, cfg.SearchPageSize)
	adv := advisor.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if adv == nil {
		log.Println("OPENAI_API_KEY not set, advisor endpoint disabled")
	}

	srv := server.NewServer(analyzer, searcher, adv, geminiConfigured)

	addr := *addrFlag
	if addr == "" {
		addr = ":" + cfg.Port
	}
	log.Printf("Starting Nestify backend on %s", addr)
	if err := srv.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
