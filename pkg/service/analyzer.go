package service

import (
	"context"
	"fmt"
	"log"

	"github.com/chits-nema/Nestify/internal/manager"
	"github.com/chits-nema/Nestify/pkg/analyze"
	"github.com/chits-nema/Nestify/pkg/board"
	apperrors "github.com/chits-nema/Nestify/pkg/common/errors"
	"github.com/chits-nema/Nestify/pkg/immo"
	"github.com/chits-nema/Nestify/pkg/match"
	"github.com/google/uuid"
)

// PinSource retrieves normalized pins for a feed URL.
type PinSource interface {
	Fetch(ctx context.Context, feedURL string) []board.Pin
}

// ListingSearcher queries the external property search service.
type ListingSearcher interface {
	Search(ctx context.Context, q immo.SearchQuery) ([]immo.Listing, int, error)
}

// AnalysisResult is the outcome of one full pipeline run.
type AnalysisResult struct {
	RunID           string                          `json:"run_id"`
	BoardContext    analyze.BoardContext            `json:"board_context"`
	FeatureScores   map[string]analyze.FeatureScore `json:"feature_scores"`
	Criteria        match.MatchCriteria             `json:"-"`
	SearchQuery     immo.SearchQuery                `json:"search_params"`
	Properties      []match.ScoredListing           `json:"properties"`
	TotalProperties int                             `json:"total_properties"`
	DemoData        bool                            `json:"demo_data"`
	PinCount        int                             `json:"pin_count"`
}

// AnalyzerService runs the board-to-listings pipeline. All stages are
// pure over their inputs; the only suspension points are the feed
// fetch, the search call, and the optional refinement call, each with
// its own timeout. Runs are independent: the service holds no mutable
// state besides the read-only vocabulary and the result cache.
type AnalyzerService struct {
	vocab     *analyze.Vocabulary
	extractor *analyze.Extractor
	pins      PinSource
	searcher  ListingSearcher
	refiner   analyze.Refiner // nil when refinement is not configured
	cache     *manager.Cache[*AnalysisResult]
	pageSize  int
}

// NewAnalyzerService wires the pipeline. refiner may be nil.
func NewAnalyzerService(vocab *analyze.Vocabulary, pins PinSource, searcher ListingSearcher, refiner analyze.Refiner, cache *manager.Cache[*AnalysisResult], pageSize int) *AnalyzerService {
	return &AnalyzerService{
		vocab:     vocab,
		extractor: analyze.NewExtractor(vocab),
		pins:      pins,
		searcher:  searcher,
		refiner:   refiner,
		cache:     cache,
		pageSize:  pageSize,
	}
}

// AnalyzeBoard validates the input, then runs ingestion, extraction,
// context analysis, aggregation, optional refinement, query building,
// search, and ranking. Validation failures surface as ErrInvalidInput;
// everything downstream degrades to fewer or no results instead of
// failing.
func (s *AnalyzerService) AnalyzeBoard(ctx context.Context, boardURL, city string) (*AnalysisResult, error) {
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", apperrors.ErrInvalidInput)
	}
	feedURL, err := board.NormalizeBoardURL(boardURL)
	if err != nil {
		return nil, err
	}

	cacheKey := feedURL + "|" + city
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			log.Printf("[service] cache hit for %s", feedURL)
			return cached, nil
		}
	}

	runID := uuid.NewString()
	log.Printf("[service] run %s: analyzing %s for %s", runID, feedURL, city)

	pins := s.pins.Fetch(ctx, feedURL)
	log.Printf("[service] run %s: %d pins ingested", runID, len(pins))

	vectors := make([]analyze.FeatureVector, len(pins))
	for i, pin := range pins {
		vectors[i] = s.extractor.Extract(pin)
	}

	boardCtx := analyze.AnalyzeContext(pins, s.vocab)
	scores := analyze.Aggregate(vectors, boardCtx)

	if s.refiner != nil {
		digest := analyze.BuildDigest(pins)
		if external, ok := s.refiner.ScoreCategories(ctx, digest, s.vocab.CategoryNames()); ok {
			analyze.ApplyRefinement(scores, external)
			log.Printf("[service] run %s: refinement applied (%d categories)", runID, len(external))
		} else {
			log.Printf("[service] run %s: refinement skipped", runID)
		}
	}

	query, criteria := match.Build(scores, boardCtx, s.vocab, city, s.pageSize)

	result := &AnalysisResult{
		RunID:         runID,
		BoardContext:  boardCtx,
		FeatureScores: scores,
		Criteria:      criteria,
		SearchQuery:   query,
		PinCount:      len(pins),
	}

	listings, total, err := s.searcher.Search(ctx, query)
	if err != nil {
		// Only context cancellation reaches here; unreachable services
		// already degraded to no data inside the client.
		return nil, err
	}

	if len(listings) == 0 {
		result.DemoData = true
		demo := immo.DemoListings(query.GeoSearches.GeoSearchQuery, query.GeoSearches.Region)
		result.Properties = match.ScoreUnfiltered(demo, criteria, boardCtx, s.vocab)
		result.TotalProperties = len(result.Properties)
	} else {
		result.Properties = match.Score(listings, criteria, boardCtx, s.vocab)
		result.TotalProperties = total
	}

	log.Printf("[service] run %s: %d properties ranked (demo=%v)", runID, len(result.Properties), result.DemoData)

	if s.cache != nil {
		s.cache.Add(cacheKey, result)
	}
	return result, nil
}
