package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

const actorKey = "actorID"

// ActorID returns the authenticated user id, or "" on public routes
func ActorID(c echo.Context) string {
	id, _ := c.Get(actorKey).(string)
	return id
}

// setActor records the authenticated user on the echo context and on the request logger
func setActor(c echo.Context, userID string) {
	c.Set(actorKey, userID)

	req := c.Request()
	entry := logger.From(req.Context()).WithField("user_id", userID)
	c.SetRequest(req.WithContext(logger.Into(req.Context(), entry)))
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
	}
	return parts[1], nil
}
