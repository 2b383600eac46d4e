package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtWithClaims(secret string, claims map[string]any) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims)).SignedString([]byte(secret))
}

func TestBearer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearer(r))

	r.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, bearer(r))

	r.Header.Set("Authorization", "bearer  tok ")
	assert.Equal(t, "tok", bearer(r))
}

func TestExpiredAdminToken(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	tok, err := SignAdminToken(testSecret, "ops", -time.Minute)
	require.NoError(t, err)
	rec := do(t, s, http.MethodGet, "/debug/words", "", "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminDisabledWithoutSecret(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	s2 := New(s.cache, Options{})
	tok, err := SignAdminToken(testSecret, "ops", time.Hour)
	require.NoError(t, err)
	rec := do(t, s2, http.MethodGet, "/debug/words", "", "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
