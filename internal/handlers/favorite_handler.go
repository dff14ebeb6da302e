package handlers

import (
	"net/http"
	"sort"

	"cityscope-backend/internal/models"
	"cityscope-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FavoriteHandler handles HTTP requests for a user's favorite cities, plus
// the most-popular-cities aggregate derived from everyone's favorites.
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	commentRepository  repositories.CommentRepository
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteRepo repositories.FavoriteRepository, commentRepo repositories.CommentRepository) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepository: favoriteRepo,
		commentRepository:  commentRepo,
	}
}

// RegisterFavoriteRoutes registers favorite-related routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.GET("/favorites", h.GetFavorites)
	g.POST("/addToFavorites", h.AddFavorite)
	g.DELETE("/deleteFromFav/:cityName", h.RemoveFavorite)
	g.GET("/mostPopularCities", h.GetPopularCities)
}

// GetFavorites returns the user's favorite city names in insertion order.
func (h *FavoriteHandler) GetFavorites(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	favorites, err := h.favoriteRepository.GetFavoritesByUsername(actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cities := make([]string, 0, len(favorites))
	for _, f := range favorites {
		cities = append(cities, f.CityName)
	}
	return c.JSON(http.StatusOK, cities)
}

// AddFavorite bookmarks a city. Re-adding an existing favorite is a no-op,
// not an error, so the client's toggle can be retried safely.
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	var req models.AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor, err := requireActor(c, req.Username)
	if err != nil {
		return err
	}

	exists, err := h.favoriteRepository.IsFavorite(actor, req.CityName)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if exists {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"favorited": true}})
	}

	favorite := &models.Favorite{Username: actor, CityName: req.CityName}
	if err := h.favoriteRepository.AddFavorite(favorite); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"favorited": true}})
}

// RemoveFavorite drops a city from the user's favorites.
func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	if err := h.favoriteRepository.RemoveFavorite(actor, c.Param("cityName")); err != nil {
		if err.Error() == "favorite not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Favorite not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"favorited": false}})
}

// GetPopularCities returns the ten most-bookmarked cities, each decorated
// with its thread length and the first attached photo for a teaser card.
func (h *FavoriteHandler) GetPopularCities(c echo.Context) error {
	counts, err := h.favoriteRepository.CountByCity()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cities := make([]models.PopularCity, 0, len(counts))
	for city, total := range counts {
		cities = append(cities, models.PopularCity{CityName: city, FavoritesCount: total})
	}
	sort.Slice(cities, func(i, j int) bool {
		if cities[i].FavoritesCount != cities[j].FavoritesCount {
			return cities[i].FavoritesCount > cities[j].FavoritesCount
		}
		return cities[i].CityName < cities[j].CityName
	})
	if len(cities) > 10 {
		cities = cities[:10]
	}

	ctx := c.Request().Context()
	for i := range cities {
		commentsCount, err := h.commentRepository.CountCommentsByCity(ctx, cities[i].CityName)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		cities[i].CommentsCount = commentsCount

		photo, err := h.commentRepository.GetFirstImageByCity(ctx, cities[i].CityName)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		cities[i].FirstCommentPhoto = photo
	}

	return c.JSON(http.StatusOK, cities)
}
