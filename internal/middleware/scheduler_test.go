package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func schedulerToken(t *testing.T, secret, scope string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"scope": scope,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func callGuarded(t *testing.T, authorization string) int {
	t.Helper()
	e := echo.New()
	handler := RequireSchedulerToken(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/account/delete/callback", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec.Code
}

func TestRequireSchedulerTokenAcceptsValidToken(t *testing.T) {
	code := callGuarded(t, "Bearer "+schedulerToken(t, testSecret, SchedulerScope))
	assert.Equal(t, http.StatusOK, code)
}

func TestRequireSchedulerTokenRejections(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"wrong secret":   "Bearer " + schedulerToken(t, "other-secret", SchedulerScope),
		"wrong scope":    "Bearer " + schedulerToken(t, testSecret, "something_else"),
		"garbage token":  "Bearer not.a.jwt",
	}
	for name, authz := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, callGuarded(t, authz))
		})
	}
}
