package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"justlaw-backend/models"
	"justlaw-backend/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles HTTP requests for decision and statute searches
type SearchHandler struct {
	searchService  *service.SearchService
	statuteService *service.StatuteService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, statuteService *service.StatuteService) *SearchHandler {
	return &SearchHandler{
		searchService:  searchService,
		statuteService: statuteService,
	}
}

// Search handles GET /search and GET /api/legal/search
func (h *SearchHandler) Search(c *gin.Context) {
	h.search(c, models.ParseSources(c.Query("sources")))
}

// SearchYargitay handles GET /api/yargitay/search
func (h *SearchHandler) SearchYargitay(c *gin.Context) {
	h.search(c, []models.SourceTag{models.SourceYargitay})
}

func (h *SearchHandler) search(c *gin.Context, sources []models.SourceTag) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "query parameter is required")
		return
	}

	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	req := models.NewSearchRequest(query, sources, limit)
	env, err := h.searchService.Search(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "SEARCH_FAILED")
		return
	}

	c.JSON(http.StatusOK, env)
}

// ListSearches handles GET /api/legal/searches
func (h *SearchHandler) ListSearches(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	logs, err := h.searchService.RecentSearches(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "LIST_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"searches": logs,
	})
}

// SearchStatutes handles GET /api/mevzuat/search
func (h *SearchHandler) SearchStatutes(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "query parameter is required")
		return
	}

	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	env, err := h.statuteService.Suggest(c.Request.Context(), query, limit)
	if err != nil {
		respondServiceError(c, err, "SEARCH_FAILED")
		return
	}

	c.JSON(http.StatusOK, env)
}

// parseLimit reads ?limit=. A missing value means 0 (service default); a
// malformed one is answered with 400.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be an integer")
		return 0, false
	}
	return limit, true
}
