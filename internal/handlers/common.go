package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// usernameFromContext returns the identity resolved by the auth middleware,
// or "" for an unauthenticated request.
func usernameFromContext(c echo.Context) string {
	if username, ok := c.Get("username").(string); ok {
		return username
	}
	return ""
}

// requireActor resolves the acting user and cross-checks any username the
// request body or query still carries (the legacy contract keeps it on the
// wire). The token identity is authoritative; a client-side check is never a
// security boundary, so a mismatch is rejected here.
func requireActor(c echo.Context, claimed string) (string, error) {
	actor := usernameFromContext(c)
	if actor == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if claimed != "" && claimed != actor {
		return "", echo.NewHTTPError(http.StatusForbidden, "Username does not match authenticated user")
	}
	return actor, nil
}
