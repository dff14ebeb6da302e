package handlers

import (
	"io"
	"net/http"
	"strings"

	"cityscope-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SearchHistoryHandler handles the per-user city search history: a
// most-recent-first, deduplicated list capped by the repository.
type SearchHistoryHandler struct {
	searchHistoryRepository repositories.SearchHistoryRepository
}

// NewSearchHistoryHandler creates a new SearchHistoryHandler
func NewSearchHistoryHandler(historyRepo repositories.SearchHistoryRepository) *SearchHistoryHandler {
	return &SearchHistoryHandler{searchHistoryRepository: historyRepo}
}

// RegisterSearchHistoryRoutes registers search-history routes
func (h *SearchHistoryHandler) RegisterSearchHistoryRoutes(g *echo.Group) {
	g.GET("/searchHistory/:username", h.GetHistory)
	g.POST("/searchHistory/:username", h.AddEntry)
}

// GetHistory returns the user's recent city searches, most recent first.
func (h *SearchHistoryHandler) GetHistory(c echo.Context) error {
	actor, err := requireActor(c, c.Param("username"))
	if err != nil {
		return err
	}

	history, err := h.searchHistoryRepository.GetHistory(actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, history)
}

// AddEntry records a searched city name, sent as a plain-text body, and
// returns the updated history.
func (h *SearchHistoryHandler) AddEntry(c echo.Context) error {
	actor, err := requireActor(c, c.Param("username"))
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	cityName := strings.TrimSpace(string(body))
	if cityName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "City name must not be empty")
	}

	history, err := h.searchHistoryRepository.AddEntry(actor, cityName)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, history)
}
