// Package token issues access tokens for the identity service. The contract
// is an opaque string either way: callers must not assume any token is
// unforgeable or inspectable.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer issues an access token for a user ID
type Issuer interface {
	Issue(userID string) (string, error)
}

// OpaqueIssuer issues random, stateless tokens. Nothing validates them;
// they exist to satisfy the session-token shape of the auth responses.
type OpaqueIssuer struct{}

// NewOpaqueIssuer creates a new opaque token issuer
func NewOpaqueIssuer() *OpaqueIssuer {
	return &OpaqueIssuer{}
}

// Issue returns a random token bound to nothing
func (i *OpaqueIssuer) Issue(userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// JWTIssuer issues HS256-signed tokens carrying the user ID
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTIssuer creates a new JWT token issuer
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Claims are the JWT claims carried by issued tokens
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Issue signs a token for userID
func (i *JWTIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Parse validates a signed token and returns its claims
func (i *JWTIssuer) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
