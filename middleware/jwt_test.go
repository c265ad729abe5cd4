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

var key = []byte("secret")

func serve(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	var seen echo.Context
	e.GET("/", func(c echo.Context) error {
		seen = c
		return c.NoContent(http.StatusNoContent)
	}, JWT(key))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestUserHashFromUsername(t *testing.T) {
	a := UserHashFromUsername("Alice", key)
	assert.Equal(t, a, UserHashFromUsername("  alice ", key))
	assert.NotEqual(t, a, UserHashFromUsername("alice", []byte("other")))
	assert.Len(t, a, 64)
}

func TestJWT(t *testing.T) {
	tok, err := Sign("alice", key, time.Now().Add(time.Hour))
	require.NoError(t, err)

	for _, header := range []string{tok, "Bearer " + tok} {
		rec, c := serve(t, header)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "alice", c.Get(UsernameKey))
		assert.Equal(t, UserHashFromUsername("alice", key), c.Get(UserHashKey))
	}
}

func TestJWTRejects(t *testing.T) {
	expired, err := Sign("alice", key, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	forged, err := Sign("alice", []byte("not-the-key"), time.Now().Add(time.Hour))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusBadRequest},
		{"garbage", "Bearer not.a.token", http.StatusBadRequest},
		{"expired", expired, http.StatusUnauthorized},
		{"bad signature", forged, http.StatusUnauthorized},
		{"unsigned", none, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, c := serve(t, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, c)
		})
	}
}
