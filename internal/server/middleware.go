package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bookhub/bookhub/internal/model"
)

// context keys set by requireAuth for downstream handlers.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// requestLogger logs request metadata, never payloads.
func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Info("http",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("dur", time.Since(start)),
				zap.String("peer", c.RealIP()),
			)
			return err
		}
	}
}

// requireAuth validates the bearer token and stores subject and role in the
// request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return jsonError(c, http.StatusUnauthorized, "missing bearer token")
		}
		userID, role, err := parseAccessToken(s.signKey, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, "invalid token")
		}
		c.Set(ctxUserID, userID)
		c.Set(ctxRole, role)
		return next(c)
	}
}

// requireRole aborts with 403 unless the authenticated role is in the allowed
// set. Must run after requireAuth.
func requireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ctxRole).(model.Role)
			if !ok || !allowed[role] {
				return jsonError(c, http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

func currentRole(c echo.Context) model.Role {
	role, _ := c.Get(ctxRole).(model.Role)
	return role
}

// jsonError writes the error body shape the client expects.
func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}
