package handler

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"hotelcluster/internal/auth"
)

// principalFromToken extracts the principal from the JWT the auth
// middleware stored in the context.
func principalFromToken(c echo.Context) (auth.Principal, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return auth.AnonymousPrincipal, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.Principal == "" {
		return auth.AnonymousPrincipal, false
	}
	return auth.Principal(claims.Principal), true
}
