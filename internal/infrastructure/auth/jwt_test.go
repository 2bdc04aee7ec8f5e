package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestVerifier() *TokenVerifier {
	return NewTokenVerifier(config.AuthConfig{Enabled: true, Secret: testSecret, Issuer: "identity"})
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(subject, issuer string, expiresIn time.Duration) *Claims {
	now := time.Now()
	return &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}}
}

func TestTokenVerifier_IssueAndVerify(t *testing.T) {
	v := newTestVerifier()
	storeID := uuid.New()

	token, err := v.IssueToken("user-42", []uuid.UUID{storeID}, time.Minute)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.ActorID())
	assert.Equal(t, "identity", claims.Issuer)
	assert.True(t, claims.CanAccessStore(storeID))
	assert.False(t, claims.CanAccessStore(uuid.New()))
}

func TestTokenVerifier_Rejects(t *testing.T) {
	v := newTestVerifier()

	tests := []struct {
		name     string
		token    string
		expected error
	}{
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), claimsFor("u", "identity", time.Minute)), ErrInvalidToken},
		{"wrong algorithm", sign(t, jwt.SigningMethodHS512, []byte(testSecret), claimsFor("u", "identity", time.Minute)), ErrInvalidToken},
		{"wrong issuer", sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u", "elsewhere", time.Minute)), ErrInvalidToken},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u", "identity", -time.Hour)), ErrExpiredToken},
		{"no subject", sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("", "identity", time.Minute)), ErrMissingSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, tt.expected)
		})
	}

	t.Run("not yet valid", func(t *testing.T) {
		claims := claimsFor("u", "identity", 2*time.Hour)
		claims.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("no expiry", func(t *testing.T) {
		claims := claimsFor("u", "identity", 0)
		claims.ExpiresAt = nil
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenVerifier_LeewayAndIssuer(t *testing.T) {
	v := newTestVerifier()
	claims := claimsFor("u", "identity", -10*time.Second)
	_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	assert.NoError(t, err, "a token expired within the leeway is accepted")

	open := NewTokenVerifier(config.AuthConfig{Secret: testSecret})
	_, err = open.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u", "anyone", time.Minute)))
	assert.NoError(t, err, "no issuer configured accepts any issuer")
}

func TestClaims_CanAccessStore_Unrestricted(t *testing.T) {
	c := &Claims{}
	assert.True(t, c.CanAccessStore(uuid.New()))
}
