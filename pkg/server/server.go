package server

import (
	"net/http"

	"github.com/chits-nema/Nestify/pkg/advisor"
	"github.com/chits-nema/Nestify/pkg/service"
	"github.com/gin-gonic/gin"
)

// Server holds the state for the REST API server.
type Server struct {
	analyzer         *service.AnalyzerService
	searcher         service.ListingSearcher
	advisor          *advisor.Advisor
	geminiConfigured bool
	router           *gin.Engine
}

// NewServer creates a new Server instance. adv may be nil when no
// OpenAI key is configured.
func NewServer(analyzer *service.AnalyzerService, searcher service.ListingSearcher, adv *advisor.Advisor, geminiConfigured bool) *Server {
	r := gin.Default()
	s := &Server{
		analyzer:         analyzer,
		searcher:         searcher,
		advisor:          adv,
		geminiConfigured: geminiConfigured,
		router:           r,
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/pinterest/health", s.pinterestHealth)
	s.router.POST("/pinterest/analyze", s.handleAnalyze)
	s.router.POST("/api/properties/search", s.handlePropertySearch)
	s.router.POST("/api/chat", s.handleChat)
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "nestify-backend"})
}

func (s *Server) pinterestHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                "ok",
		"gemini_api_configured": s.geminiConfigured,
	})
}
