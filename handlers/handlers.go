// Package handlers holds the echo handlers serving per-page view models to
// the browser front-end.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"gachigayo/services"
	"gachigayo/services/backend"
	"gachigayo/utils"
)

const (
	ctxSessionID   = "sessionID"
	ctxAccessToken = "accessToken"
)

// SessionMiddleware resolves the bearer session id to a backend access token
// and stashes both on the context. A dead or missing session answers 401 with
// the login page, never a raw error.
func SessionMiddleware(sessions *services.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := bearerToken(c)

			access, err := sessions.AccessToken(c.Request().Context(), sessionID)
			if err != nil {
				if errors.Is(err, services.ErrSessionExpired) {
					return respondSessionExpired(c)
				}
				slog.Error("session lookup failed", "error", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": backend.GenericErrorText,
				})
			}

			c.Set(ctxSessionID, sessionID)
			c.Set(ctxAccessToken, access)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}

func sessionID(c echo.Context) string {
	v, _ := c.Get(ctxSessionID).(string)
	return v
}

func accessToken(c echo.Context) string {
	v, _ := c.Get(ctxAccessToken).(string)
	return v
}

func respondSessionExpired(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":      "로그인이 필요해요.",
		"redirectTo": "/login",
	})
}

// respondError maps a service error to the JSON shape every page expects:
// {"error": <reader-facing text>}. Backend detail text passes through
// verbatim; anything unrecognized gets the generic fallback.
func respondError(c echo.Context, err error) error {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": vErr.Message})
	}

	if errors.Is(err, services.ErrSessionExpired) {
		return respondSessionExpired(c)
	}

	if errors.Is(err, services.ErrCreateInFlight) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "요청을 처리하고 있어요. 잠시만 기다려주세요.",
		})
	}

	if errors.Is(err, utils.ErrCircuitOpen) {
		slog.Warn("request rejected by open circuit", "path", c.Request().URL.Path)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": backend.GenericErrorText,
		})
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return c.JSON(status, map[string]string{"error": apiErr.Message()})
	}

	slog.Error("request failed", "path", c.Request().URL.Path, "error", err)
	return c.JSON(http.StatusBadGateway, map[string]string{"error": backend.GenericErrorText})
}
