// Copyright 2026 The Turnesa Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token issues and verifies the signed session tokens that carry a
// user's identity and tenant membership between requests. Tokens are not
// persisted server-side; a claim set is immutable once issued.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the session claim set embedded in every issued token.
// Subject (RegisteredClaims.Subject) carries the user ID.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// UserID returns the subject user ID.
func (c *Claims) UserID() string {
	return c.Subject
}

// Codec signs and verifies session tokens with a symmetric secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec. ttl is the lifetime of issued tokens; a zero ttl
// produces tokens that are already expired, which is only useful in tests.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

// Issue signs a new HS256 token for the given identity. No side effects.
func (c *Codec) Issue(userID, email, role, tenantID string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    email,
		Role:     role,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify parses and validates a token string. It returns ErrExpiredToken once
// the current time reaches the embedded expiry (the expiry instant itself is
// already invalid) and ErrInvalidToken for any other validation failure.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
