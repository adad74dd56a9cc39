package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/logging"
	"github.com/labstack/echo/v4"
)

const ctxUser = "user"

// requireAuth resolves the bearer token to a live account. Tokens of
// deleted users are rejected like bad signatures.
func requireAuth(tokens *Tokens, store *Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header")
			}

			id, _, err := tokens.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
			}
			u, err := store.User(id)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
			}

			c.Set(ctxUser, u)
			return next(c)
		}
	}
}

// requireRole must run after requireAuth.
func requireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, _ := c.Get(ctxUser).(models.User)
			for _, r := range roles {
				if u.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Not enough permissions")
		}
	}
}

// requestLogger writes one line per request, tagged with the caller's
// X-Request-ID when there is one.
func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			log.Info(req.Context(), "request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"request_id", req.Header.Get(echo.HeaderXRequestID),
				"elapsed", time.Since(started).String())
			return nil
		}
	}
}
