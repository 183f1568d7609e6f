package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned for tokens that are malformed, expired or signed with another key.
	ErrInvalidToken = errors.New("invalid token")

	// ErrEmptySecret is returned when a TokenIssuer is created without a signing key.
	ErrEmptySecret = errors.New("token secret must not be empty")
)

// Claims are the claims of an access token. Subject is the user id.
type Claims struct {
	Role string `json:"rol"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   string
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenIssuer.
type TokenOption func(*TokenIssuer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(ti *TokenIssuer) {
		ti.now = now
	}
}

// NewTokenIssuer returns a TokenIssuer signing with secret. Tokens are valid for ttl.
func NewTokenIssuer(secret string, ttl time.Duration, options ...TokenOption) (TokenIssuer, error) {
	if secret == "" {
		return TokenIssuer{}, ErrEmptySecret
	}

	ti := TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, option := range options {
		option(&ti)
	}

	return ti, nil
}

// Issue returns a signed token for the user.
func (ti TokenIssuer) Issue(userID string, role string) (string, error) {
	now := ti.now()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// Verify parses a token and returns its principal.
func (ti TokenIssuer) Verify(token string) (Principal, error) {
	claims := new(Claims)

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return ti.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Principal{}, errors.Join(ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

type principalKey struct{}

// WithPrincipal stores the authenticated caller in ctx.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFrom returns the caller stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(Principal)
	return principal, ok
}
