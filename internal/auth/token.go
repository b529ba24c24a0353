package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes the two kinds of tokens this service issues.
// A token of one type is never accepted where the other is required.
type TokenType string

const (
	TokenTypeAccess       TokenType = "access"
	TokenTypeConfirmation TokenType = "confirmation"
)

// Default token lifetimes.
const (
	DefaultAccessTokenTTL       = 30 * time.Minute
	DefaultConfirmationTokenTTL = 24 * time.Hour
)

// Claims is the signed claim set carried by every token.
type Claims struct {
	jwt.RegisteredClaims
	Type TokenType `json:"type"`
}

// TTLPolicy supplies token lifetimes at issuance time. The funcs are
// injectable so tests can force immediate expiry with a negative duration.
type TTLPolicy struct {
	AccessTokenTTL       func() time.Duration
	ConfirmationTokenTTL func() time.Duration
}

// NewTTLPolicy returns a policy with fixed lifetimes, substituting the
// defaults for zero values.
func NewTTLPolicy(accessTTL, confirmationTTL time.Duration) TTLPolicy {
	if accessTTL == 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if confirmationTTL == 0 {
		confirmationTTL = DefaultConfirmationTokenTTL
	}
	return TTLPolicy{
		AccessTokenTTL:       func() time.Duration { return accessTTL },
		ConfirmationTokenTTL: func() time.Duration { return confirmationTTL },
	}
}

// TokenCodec encodes and decodes signed, typed, expiring tokens. The secret
// key and TTL policy are fixed at construction and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	policy TTLPolicy
}

// NewTokenCodec creates a codec signing with HMAC-SHA256 under the given
// process-wide secret.
func NewTokenCodec(secret string, policy TTLPolicy) *TokenCodec {
	if policy.AccessTokenTTL == nil || policy.ConfirmationTokenTTL == nil {
		policy = NewTTLPolicy(0, 0)
	}
	return &TokenCodec{
		secret: []byte(secret),
		policy: policy,
	}
}

func (c *TokenCodec) ttlFor(tokenType TokenType) time.Duration {
	if tokenType == TokenTypeConfirmation {
		return c.policy.ConfirmationTokenTTL()
	}
	return c.policy.AccessTokenTTL()
}

// Encode issues a signed token for the subject with the policy's TTL for
// the given type.
func (c *TokenCodec) Encode(subject string, tokenType TokenType) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttlFor(tokenType))),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Type: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and returns the token's subject.
// Failures are reported with exactly one of ErrTokenExpired,
// ErrTokenMalformed, ErrTokenMissingSubject or ErrWrongTokenType.
func (c *TokenCodec) Decode(tokenString string, expectedType TokenType) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// A bad signature outranks an expired claim set: a forged token
		// is malformed no matter what its payload says.
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenMalformed) {
			return "", ErrTokenMalformed
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}

	if claims.Subject == "" {
		return "", ErrTokenMissingSubject
	}
	if claims.Type == "" || claims.Type != expectedType {
		return "", ErrWrongTokenType
	}

	return claims.Subject, nil
}
