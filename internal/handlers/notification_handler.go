package handlers

import (
	"net/http"
	"strconv"

	"cityscope-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles the notification feed: the unread counter, the
// list, and the read-state transition. Count and list are separate endpoints
// so a failure in one never blocks the other from refreshing.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/count", h.GetUnreadCount)
	g.POST("/notifications/:id/read", h.MarkAsRead)
	g.POST("/notifications/readAll", h.MarkAllAsRead)
}

// GetNotifications returns the user's notifications, newest first. Each one
// carries targetCity and commentId so the client can deep-link to the
// engaged comment.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	notifications, err := h.notificationRepository.GetByUsername(actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, count)
}

// MarkAsRead transitions a notification to read. The transition is one-way
// and idempotent: marking twice keeps read=true and never drives the unread
// count below zero.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if _, err := requireActor(c, ""); err != nil {
		return err
	}

	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.MarkAsRead(uint(notifID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks every unread notification of the user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAllAsRead(actor); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
