package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"cityscope-backend/internal/models"
	"github.com/labstack/echo/v4"
)

func seedNotification(t *testing.T, repo *fakeNotificationRepo, recipient, actor, notifType string) *models.Notification {
	t.Helper()
	n := &models.Notification{
		Username:   recipient,
		Actor:      actor,
		Type:       notifType,
		Message:    actor + " engaged with your comment",
		TargetCity: "Amsterdam",
		CommentID:  "c1",
	}
	if err := repo.CreateNotification(n); err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	return n
}

func unreadCount(t *testing.T, h *NotificationHandler, e *echo.Echo, username string) int64 {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/notifications/count", nil)
	c, rec := newContext(e, req, username)
	if err := h.GetUnreadCount(c); err != nil {
		t.Fatalf("unread count: %v", err)
	}
	var count int64
	if err := json.Unmarshal(rec.Body.Bytes(), &count); err != nil {
		t.Fatalf("decode count: %v", err)
	}
	return count
}

func markRead(t *testing.T, h *NotificationHandler, e *echo.Echo, username string, id uint) {
	t.Helper()
	idStr := strconv.FormatUint(uint64(id), 10)
	req := httptest.NewRequest(http.MethodPost, "/notifications/"+idStr+"/read", nil)
	c, _ := newContext(e, req, username)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	if err := h.MarkAsRead(c); err != nil {
		t.Fatalf("mark read: %v", err)
	}
}

func TestGetNotificationsNewestFirst(t *testing.T) {
	e := newTestEcho()
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo)

	seedNotification(t, repo, "A", "B", models.NotificationTypeLike)
	seedNotification(t, repo, "A", "C", models.NotificationTypeReply)
	seedNotification(t, repo, "Z", "B", models.NotificationTypeLike)

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	c, rec := newContext(e, req, "A")
	if err := h.GetNotifications(c); err != nil {
		t.Fatalf("get notifications: %v", err)
	}

	var notifications []models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &notifications); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications for A, got %d", len(notifications))
	}
	if notifications[0].Actor != "C" || notifications[1].Actor != "B" {
		t.Fatalf("expected newest first, got %+v", notifications)
	}
	if notifications[0].TargetCity != "Amsterdam" || notifications[0].CommentID != "c1" {
		t.Fatalf("deep link fields missing: %+v", notifications[0])
	}
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	e := newTestEcho()
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo)

	first := seedNotification(t, repo, "A", "B", models.NotificationTypeLike)
	seedNotification(t, repo, "A", "C", models.NotificationTypeReply)

	if count := unreadCount(t, h, e, "A"); count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	markRead(t, h, e, "A", first.ID)
	if count := unreadCount(t, h, e, "A"); count != 1 {
		t.Fatalf("expected 1 unread after mark, got %d", count)
	}

	// Marking the same notification again must not drive the count below 1.
	markRead(t, h, e, "A", first.ID)
	if count := unreadCount(t, h, e, "A"); count != 1 {
		t.Fatalf("expected 1 unread after re-mark, got %d", count)
	}
}

func TestMarkAsReadRejectsBadID(t *testing.T) {
	e := newTestEcho()
	h := NewNotificationHandler(&fakeNotificationRepo{})

	req := httptest.NewRequest(http.MethodPost, "/notifications/abc/read", nil)
	c, _ := newContext(e, req, "A")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.MarkAsRead(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestMarkAllAsRead(t *testing.T) {
	e := newTestEcho()
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo)

	seedNotification(t, repo, "A", "B", models.NotificationTypeLike)
	seedNotification(t, repo, "A", "C", models.NotificationTypeReply)
	seedNotification(t, repo, "Z", "B", models.NotificationTypeLike)

	req := httptest.NewRequest(http.MethodPost, "/notifications/readAll", nil)
	c, _ := newContext(e, req, "A")
	if err := h.MarkAllAsRead(c); err != nil {
		t.Fatalf("mark all read: %v", err)
	}

	if count := unreadCount(t, h, e, "A"); count != 0 {
		t.Fatalf("expected 0 unread for A, got %d", count)
	}
	// Z's feed is untouched.
	if count := unreadCount(t, h, e, "Z"); count != 1 {
		t.Fatalf("expected 1 unread for Z, got %d", count)
	}
}

func TestNotificationsRequireAuth(t *testing.T) {
	e := newTestEcho()
	h := NewNotificationHandler(&fakeNotificationRepo{})

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	c, _ := newContext(e, req, "")
	err := h.GetNotifications(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
