package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func recordSearch(t *testing.T, h *SearchHistoryHandler, e *echo.Echo, username, city string) []string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/searchHistory/"+username, strings.NewReader(city))
	c, rec := newContext(e, req, username)
	c.SetParamNames("username")
	c.SetParamValues(username)
	if err := h.AddEntry(c); err != nil {
		t.Fatalf("record search %q: %v", city, err)
	}
	var history []string
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	return history
}

func TestSearchHistoryMostRecentFirst(t *testing.T) {
	e := newTestEcho()
	h := NewSearchHistoryHandler(newFakeSearchHistoryRepo())

	recordSearch(t, h, e, "A", "Paris")
	recordSearch(t, h, e, "A", "Rome")
	history := recordSearch(t, h, e, "A", "Oslo")

	want := []string{"Oslo", "Rome", "Paris"}
	if len(history) != len(want) {
		t.Fatalf("expected %v, got %v", want, history)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, history)
		}
	}
}

func TestSearchHistoryDeduplicates(t *testing.T) {
	e := newTestEcho()
	h := NewSearchHistoryHandler(newFakeSearchHistoryRepo())

	recordSearch(t, h, e, "A", "Paris")
	recordSearch(t, h, e, "A", "Rome")
	history := recordSearch(t, h, e, "A", "Paris")

	if len(history) != 2 || history[0] != "Paris" || history[1] != "Rome" {
		t.Fatalf("re-search should move Paris to the front, got %v", history)
	}
}

func TestSearchHistoryCappedAtTen(t *testing.T) {
	e := newTestEcho()
	h := NewSearchHistoryHandler(newFakeSearchHistoryRepo())

	var history []string
	for i := 0; i < 12; i++ {
		history = recordSearch(t, h, e, "A", fmt.Sprintf("City%02d", i))
	}

	if len(history) != 10 {
		t.Fatalf("expected history capped at 10, got %d", len(history))
	}
	if history[0] != "City11" || history[9] != "City02" {
		t.Fatalf("unexpected window: %v", history)
	}
}

func TestSearchHistoryRejectsEmptyEntry(t *testing.T) {
	e := newTestEcho()
	h := NewSearchHistoryHandler(newFakeSearchHistoryRepo())

	req := httptest.NewRequest(http.MethodPost, "/searchHistory/A", strings.NewReader("   "))
	c, _ := newContext(e, req, "A")
	c.SetParamNames("username")
	c.SetParamValues("A")

	err := h.AddEntry(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSearchHistoryIsPrivate(t *testing.T) {
	e := newTestEcho()
	h := NewSearchHistoryHandler(newFakeSearchHistoryRepo())
	recordSearch(t, h, e, "B", "Paris")

	// A cannot read B's history.
	req := httptest.NewRequest(http.MethodGet, "/searchHistory/B", nil)
	c, _ := newContext(e, req, "A")
	c.SetParamNames("username")
	c.SetParamValues("B")

	err := h.GetHistory(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestGetSearchHistoryEmpty(t *testing.T) {
	e := newTestEcho()
	h := NewSearchHistoryHandler(newFakeSearchHistoryRepo())

	req := httptest.NewRequest(http.MethodGet, "/searchHistory/A", nil)
	c, rec := newContext(e, req, "A")
	c.SetParamNames("username")
	c.SetParamValues("A")

	if err := h.GetHistory(c); err != nil {
		t.Fatalf("get history: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}
