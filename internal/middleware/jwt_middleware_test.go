package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *Claims) {
	t.Helper()
	e := echo.New()
	var got *Claims
	h := JWTMiddleware()(func(c echo.Context) error {
		got = GetClaims(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec, got
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token, err := GenerateToken(42, "alice@x.edu", time.Hour)
	require.NoError(t, err)

	rec, claims := doRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@x.edu", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	rec, claims := doRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, claims)
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	rec, claims := doRequest(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, claims)
}

func TestJWTMiddleware_GarbageToken(t *testing.T) {
	rec, claims := doRequest(t, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, claims)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	token, err := GenerateToken(42, "alice@x.edu", -time.Hour)
	require.NoError(t, err)

	rec, claims := doRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, claims)
}
