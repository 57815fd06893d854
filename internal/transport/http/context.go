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

package http

import (
	"context"

	"github.com/turnesa/turnesa/internal/token"
)

type contextKey string

const claimsKey contextKey = "session_claims"

// GetClaims retrieves the verified session claims from context. Returns nil
// on routes that did not pass through AuthMiddleware.
func GetClaims(ctx context.Context) *token.Claims {
	if val, ok := ctx.Value(claimsKey).(*token.Claims); ok {
		return val
	}
	return nil
}

// GetUserID retrieves the authenticated user ID from context.
func GetUserID(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.UserID()
	}
	return ""
}

// GetTenantID retrieves the tenant ID from context. Tenant context is derived
// exclusively from the verified token, never from headers or query parameters.
func GetTenantID(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.TenantID
	}
	return ""
}
