package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ctxAdminKey is the context key type for the authenticated admin subject.
type ctxAdminKey struct{}

// requireAdmin enforces a valid HS256 bearer token carrying role=admin.
// Admin routes answer 404 when no secret is configured.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	secret := []byte(s.opts.AdminSecret)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(secret) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
			return
		}
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if role, _ := claims["role"].(string); role != "admin" {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		sub, _ := claims.GetSubject()
		ctx := context.WithValue(r.Context(), ctxAdminKey{}, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// SignAdminToken creates an HS256 admin token for subject valid for ttl.
// Used by the CLI to mint tokens for operators.
func SignAdminToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": "admin",
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	})
	return t.SignedString([]byte(secret))
}
