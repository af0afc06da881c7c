package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionChecker reports whether a session id is still active. Backed by the
// Redis session store; logout revokes the id before the token expires.
type SessionChecker interface {
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// Auth validates the session token (bearer header or session cookie),
// verifies the session has not been revoked, and injects the identity claims
// into the request context.
func Auth(jwtSecret string, cookieName string, sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c, cookieName)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sessionID, _ := claims["jti"].(string)
			if sessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session id")
			}

			active, err := sessions.Exists(c.Request().Context(), sessionID)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}
			if !active {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or revoked")
			}

			c.Set("identity_id", claims["sub"])
			c.Set("phone", claims["phone"])
			c.Set("session_id", sessionID)
			c.Set("token", token)

			return next(c)
		}
	}
}

// extractToken prefers the Authorization header, falling back to the browser
// session cookie.
func extractToken(c echo.Context, cookieName string) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}
