package server

import (
	"net/http"

	"github.com/chits-nema/Nestify/pkg/advisor"
	"github.com/chits-nema/Nestify/pkg/common/errors"
	"github.com/chits-nema/Nestify/pkg/immo"
	"github.com/gin-gonic/gin"
)

// handleAnalyze runs the full board analysis pipeline.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req struct {
		BoardURL string `json:"board_url"`
		City     string `json:"city"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	if req.BoardURL == "" || req.City == "" {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "board_url and city are required", nil))
		return
	}

	result, err := s.analyzer.AnalyzeBoard(c.Request.Context(), req.BoardURL, req.City)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Property types the search service understands. Empty means all.
var validPropertyTypes = map[string]bool{
	"":                    true,
	immo.TypeApartmentBuy: true,
	immo.TypeHouseBuy:     true,
	immo.TypeLandBuy:      true,
	immo.TypeGarageBuy:    true,
	immo.TypeOfficeBuy:    true,
}

// handlePropertySearch proxies a plain search to the listing service,
// falling back to demo data when it returns nothing.
func (s *Server) handlePropertySearch(c *gin.Context) {
	req := struct {
		City         string `json:"city"`
		Region       string `json:"region"`
		Size         int    `json:"size"`
		FromIndex    int    `json:"from_index"`
		PropertyType string `json:"propertyType"`
	}{
		City: "München",
		Size: 200,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	region := req.Region
	if region == "" {
		region = immo.ResolveRegion(req.City)
	}

	// "ALL" (or empty) searches across property types.
	propertyType := req.PropertyType
	if propertyType == "ALL" {
		propertyType = ""
	}
	if !validPropertyTypes[propertyType] {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Unsupported propertyType", nil))
		return
	}

	query := immo.NewSearchQuery(req.City, region, propertyType, req.Size)
	query.From = req.FromIndex

	listings, total, err := s.searcher.Search(c.Request.Context(), query)
	if err != nil {
		handleError(c, err)
		return
	}

	if len(listings) == 0 {
		demo := immo.DemoListings(query.GeoSearches.GeoSearchQuery, query.GeoSearches.Region)
		c.JSON(http.StatusOK, gin.H{
			"total":   len(demo),
			"results": demo,
			"source":  "mocked-demo-data",
			"note":    "search service returned no results; using demo data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "results": listings})
}

// handleChat forwards the conversation to the advisor.
func (s *Server) handleChat(c *gin.Context) {
	if s.advisor == nil {
		handleError(c, errors.NewAppError(http.StatusServiceUnavailable, "Advisor not configured", nil))
		return
	}

	var req advisor.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid request body", err))
		return
	}
	if req.Message == "" {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "message is required", nil))
		return
	}

	reply, err := s.advisor.Advise(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply})
}

// handleError helper
func handleError(c *gin.Context, err error) {
	appErr := errors.MapError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
