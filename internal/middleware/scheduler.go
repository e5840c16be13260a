package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SchedulerScope is the claim value the external job scheduler must carry
// to hit the account-deletion callback.
const SchedulerScope = "account_deletion"

// RequireSchedulerToken guards the deletion callback with an HMAC-signed
// token shared with the scheduler; end users never hold one.
func RequireSchedulerToken(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			tokenStr := strings.TrimPrefix(authz, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			}
			if scope, _ := claims["scope"].(string); scope != SchedulerScope {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			}
			return next(c)
		}
	}
}
