// Package auth verifies the bearer tokens that callers present. Tokens are
// issued by the external identity system; this service only checks the
// signature, lifetime and issuer and extracts the acting user.
package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("token has no subject")
	ErrStoreNotGranted  = errors.New("token does not grant access to this store")
)

// Claims are the claims read from an access token. StoreIDs limits the
// stores the caller may act on; an empty list grants every store.
type Claims struct {
	jwt.RegisteredClaims
	Username string   `json:"username,omitempty"`
	StoreIDs []string `json:"store_ids,omitempty"`
}

// ActorID is the token subject, recorded as createdBy on movements
func (c *Claims) ActorID() string {
	return c.Subject
}

// CanAccessStore reports whether the token grants storeID
func (c *Claims) CanAccessStore(storeID uuid.UUID) bool {
	return len(c.StoreIDs) == 0 || slices.Contains(c.StoreIDs, storeID.String())
}

// TokenVerifier validates HS256 access tokens
type TokenVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewTokenVerifier creates a verifier from auth configuration
func NewTokenVerifier(cfg config.AuthConfig) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		leeway: 30 * time.Second,
	}
}

// Verify parses tokenString and returns its claims
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// IssueToken signs a token with the verifier's secret. The service never
// issues tokens to callers; this exists for local tooling and tests.
func (v *TokenVerifier) IssueToken(subject string, storeIDs []uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    v.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	for _, id := range storeIDs {
		claims.StoreIDs = append(claims.StoreIDs, id.String())
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
