package middleware

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/monooki-app/monooki-backend/internal/identity"
)

const identityKey = "identity"

type AuthMiddleware struct {
	authClient *auth.Client
}

func NewAuthMiddleware(ctx context.Context, projectID string) (*AuthMiddleware, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthMiddleware{authClient: client}, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved identity on the echo context.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := m.resolve(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		if ident == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		c.Set(identityKey, ident)
		return next(c)
	}
}

// OptionalAuth resolves an identity when a token is present and lets
// anonymous requests through. A token that is present but invalid is still
// a 401 so clients notice expired credentials.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := m.resolve(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		if ident != nil {
			c.Set(identityKey, ident)
		}
		return next(c)
	}
}

// resolve returns (nil, nil) when no Authorization header is present.
func (m *AuthMiddleware) resolve(c echo.Context) (*identity.Identity, error) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return nil, nil
	}
	tokenStr := strings.TrimPrefix(authz, "Bearer ")
	token, err := m.authClient.VerifyIDToken(c.Request().Context(), tokenStr)
	if err != nil {
		return nil, err
	}
	ident := &identity.Identity{UserID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		ident.Email = email
	}
	return ident, nil
}

// CurrentIdentity returns the identity resolved by RequireAuth or
// OptionalAuth, or nil for anonymous requests.
func CurrentIdentity(c echo.Context) *identity.Identity {
	ident, _ := c.Get(identityKey).(*identity.Identity)
	return ident
}

// SetIdentity injects an identity directly; used by tests in place of the
// Firebase verifier.
func SetIdentity(c echo.Context, ident *identity.Identity) {
	c.Set(identityKey, ident)
}
