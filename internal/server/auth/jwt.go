// Package auth verifies bearer tokens issued by the identity provider and
// mints HS256 tokens for local development. The token subject is the user id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier resolves a raw bearer token to a user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for userID that expires after validity.
func GenerateToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})
	return token.SignedString(secretKey)
}

// HMACVerifier checks HS256 tokens against a shared secret.
type HMACVerifier struct {
	secret []byte
	issuer string
}

func NewHMACVerifier(secret []byte, issuer string) *HMACVerifier {
	return &HMACVerifier{secret: secret, issuer: issuer}
}

func (v *HMACVerifier) Verify(_ context.Context, tokenString string) (string, error) {
	return parseSubject(tokenString, func(*jwt.Token) (any, error) { return v.secret, nil },
		[]string{jwt.SigningMethodHS256.Alg()}, v.issuer)
}

// GetUserIDFromToken is HMACVerifier.Verify without an issuer check.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	return NewHMACVerifier(secretKey, "").Verify(context.Background(), tokenString)
}

// JWKSVerifier checks RS256/ES256 tokens against the provider's key set.
type JWKSVerifier struct {
	keys   keyfunc.Keyfunc
	issuer string
}

// NewJWKSVerifier fetches the key set at url and keeps it refreshed in the
// background until ctx is cancelled.
func NewJWKSVerifier(ctx context.Context, url, issuer string) (*JWKSVerifier, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{url})
	if err != nil {
		return nil, fmt.Errorf("jwks %s: %w", url, err)
	}
	return NewJWKSVerifierWithKeyfunc(k, issuer), nil
}

func NewJWKSVerifierWithKeyfunc(k keyfunc.Keyfunc, issuer string) *JWKSVerifier {
	return &JWKSVerifier{keys: k, issuer: issuer}
}

func (v *JWKSVerifier) Verify(ctx context.Context, tokenString string) (string, error) {
	return parseSubject(tokenString, v.keys.KeyfuncCtx(ctx), []string{"RS256", "ES256"}, v.issuer)
}

func parseSubject(tokenString string, kf jwt.Keyfunc, methods []string, issuer string) (string, error) {
	if tokenString == "" {
		return "", common.ErrInvalidToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(methods), jwt.WithExpirationRequired()}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, kf, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
