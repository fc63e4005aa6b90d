// Package auth issues and checks the API keys used to join rooms.
// An API key is an HS256 JWT scoped to a project and a room ("*" for every room).
package auth

import (
	"collab-lab/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer    = "collab-lab"
	AnyRoom   = "*"
	keyPrefix = "ck_"
)

// APIKeyClaims is the payload of an API key.
type APIKeyClaims struct {
	Project string `json:"project" validate:"required"`
	Room    string `json:"room" validate:"required"`
	jwt.RegisteredClaims
}

// Allows reports whether the key grants access to room.
func (c *APIKeyClaims) Allows(room string) bool {
	return c.Room == AnyRoom || c.Room == room
}

// GenerateToken signs a key for project and room, valid for ttl.
func GenerateToken(secret []byte, project, room string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &APIKeyClaims{
		Project: project,
		Room:    room,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   project,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	if err := ValidateClaims(claims); err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}
	return keyPrefix + signed, nil
}

// ValidateToken checks signature, expiration and issuer. Used by the relay.
func ValidateToken(secret []byte, key string) (*APIKeyClaims, error) {
	token, err := jwt.ParseWithClaims(trimPrefix(key), &APIKeyClaims{},
		func(token *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*APIKeyClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthorized, jwt.ErrSignatureInvalid)
	}
	if err := ValidateClaims(claims); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	return claims, nil
}

// InspectToken decodes a key without verifying its signature. Clients do not hold
// the secret; they only check the shape, the expiration and the room scope before
// connecting. The relay verifies for real.
func InspectToken(key string) (*APIKeyClaims, error) {
	claims := &APIKeyClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(trimPrefix(key), claims); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if err := ValidateClaims(claims); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthorized, jwt.ErrTokenExpired)
	}
	return claims, nil
}

func trimPrefix(key string) string {
	if len(key) > len(keyPrefix) && key[:len(keyPrefix)] == keyPrefix {
		return key[len(keyPrefix):]
	}
	return key
}
