package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestHeaderAuthenticator(t *testing.T) {
	a := HeaderAuthenticator{}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := a.Authenticate(r)
	assert.ErrorIs(t, err, ErrNoCredential)

	r.Header.Set("X-User-ID", "user-42")
	userID, err := a.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestTokenAuthenticator(t *testing.T) {
	a := NewTokenAuthenticator("secret")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := a.Authenticate(r)
	assert.ErrorIs(t, err, ErrNoCredential)

	r.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "user-42"))
	userID, err := a.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	r.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", "user-42"))
	_, err = a.Authenticate(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Bearer not-a-token")
	_, err = a.Authenticate(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Bearer "+signToken(t, "secret", ""))
	_, err = a.Authenticate(r)
	assert.Error(t, err, "tokens without a subject carry no identity")
}

func TestMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
	})
	wrapped := Middleware(HeaderAuthenticator{})(next)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User-ID", "user-42")
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", seen)
}
