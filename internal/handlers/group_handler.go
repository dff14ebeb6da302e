package handlers

import (
	"net/http"
	"strings"

	"cityscope-backend/internal/models"
	"cityscope-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// GroupHandler handles HTTP requests for named groups of favorite cities.
// Groups are scoped to one user; their city memberships live independently of
// the favorites table, so deleting a group never removes a favorite.
type GroupHandler struct {
	groupRepository repositories.GroupRepository
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository) *GroupHandler {
	return &GroupHandler{groupRepository: groupRepo}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.GET("/groups", h.GetGroups)
	g.POST("/groups", h.CreateGroup)
	g.DELETE("/groups", h.DeleteGroup)
	g.POST("/addCity", h.AddCityToGroup)
}

// GetGroups returns the user's groups with their city lists.
func (h *GroupHandler) GetGroups(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	groups, err := h.groupRepository.GetGroupsByUsername(actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.GroupResponse, 0, len(groups))
	for i := range groups {
		responses = append(responses, groups[i].ToResponse())
	}
	return c.JSON(http.StatusOK, responses)
}

// CreateGroup creates an empty group. A duplicate name within the user's
// namespace is a conflict and leaves the existing group untouched.
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	groupName := strings.TrimSpace(c.QueryParam("groupName"))
	if groupName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Group name must not be empty")
	}

	if _, err := h.groupRepository.GetGroup(actor, groupName); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "A group with this name already exists")
	} else if err != repositories.ErrGroupNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	group := &models.FavoriteGroup{Username: actor, Name: groupName}
	if err := h.groupRepository.CreateGroup(group); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, group.ToResponse())
}

// DeleteGroup removes a group and its membership records. The underlying
// favorites are untouched.
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	groupName := c.QueryParam("groupName")
	if err := h.groupRepository.DeleteGroup(actor, groupName); err != nil {
		if err == repositories.ErrGroupNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// AddCityToGroup adds one city to a group. Each city is an independent unit
// of failure: a city already in the group is not re-added, and the call never
// rolls back previously added cities.
func (h *GroupHandler) AddCityToGroup(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	groupName := c.QueryParam("groupName")
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "City must not be empty")
	}

	group, err := h.groupRepository.GetGroup(actor, groupName)
	if err != nil {
		if err == repositories.ErrGroupNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	hasCity, err := h.groupRepository.HasCity(group.ID, city)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !hasCity {
		if err := h.groupRepository.AddCity(group.ID, city); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	updated, err := h.groupRepository.GetGroup(actor, groupName)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated.ToResponse())
}
