// Package auth resolves the caller's identity for a request. Two
// strategies exist behind one interface: a trusted-header mode and a
// verified bearer-token mode. They are deliberately not equivalent trust
// models; deployments pick exactly one.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUserID ctxKey = "userID"

// ErrNoCredential is returned when a request carries no usable identity.
var ErrNoCredential = errors.New("no valid authorization credential provided")

// Authenticator extracts the external user id from a request.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// HeaderAuthenticator trusts the X-User-ID header verbatim. Any caller
// can assert any user id; this mode exists for deployments where a
// fronting proxy has already authenticated the caller.
type HeaderAuthenticator struct{}

func (HeaderAuthenticator) Authenticate(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		return "", ErrNoCredential
	}
	return userID, nil
}

// TokenAuthenticator verifies an HS256 bearer token issued by the
// identity provider. The subject claim carries the external user id.
type TokenAuthenticator struct {
	secret []byte
}

func NewTokenAuthenticator(secret string) *TokenAuthenticator {
	return &TokenAuthenticator{secret: []byte(secret)}
}

func (a *TokenAuthenticator) Authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", ErrNoCredential
	}
	tokenString := strings.TrimSpace(header[len("Bearer "):])
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid authentication token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

// Middleware authenticates the request and stores the user id in the
// context, rejecting with 401 otherwise.
func Middleware(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := a.Authenticate(r)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			ctx := context.WithValue(r.Context(), ctxUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by Middleware, or the
// empty string for unauthenticated requests.
func UserID(ctx context.Context) string {
	if val, ok := ctx.Value(ctxUserID).(string); ok {
		return val
	}
	return ""
}
