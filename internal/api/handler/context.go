package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/house-hunt/rental-api/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware and performs
// a fast-fail check before any service call: both claims must be non-empty
// (presence proves the middleware ran and the token carried a usable subject).
// The block flag is deliberately absent here; services read it fresh from the
// store so a block takes effect before the token expires.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Actor{ID: userID, Role: role}, nil
}
