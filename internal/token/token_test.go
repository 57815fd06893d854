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

package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPurpose: Validates that a claim set survives an issue/verify round trip
// unchanged while the token is still within its lifetime.
// Scope: Unit Test
// Expected: Verify(Issue(claims)) yields the same subject, email, role and
// tenant id that were issued.
// Test Case ID: TOK-01
func TestToken_RoundTrip(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	tok, err := codec.Issue("user-1", "alice@x.com", "ADMIN", "tenant-1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "tenant-1", claims.TenantID)
}

// TestPurpose: Validates that a token signed with one secret is rejected when
// verified with another.
// Scope: Unit Test
// Security: Integrity protection of the session boundary
// Expected: Verify fails with ErrInvalidToken, never ErrExpiredToken.
// Test Case ID: TOK-02
func TestToken_WrongSecret_Rejected(t *testing.T) {
	issuer := NewCodec([]byte("secret-a"), time.Hour)
	verifier := NewCodec([]byte("secret-b"), time.Hour)

	tok, err := issuer.Issue("user-1", "alice@x.com", "ADMIN", "tenant-1")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestPurpose: Validates the expiry boundary: a token whose expiry equals the
// current instant is already invalid.
// Scope: Unit Test
// Expected: A token issued with ttl=0 fails verification with ErrExpiredToken.
// Test Case ID: TOK-03
func TestToken_ZeroTTL_ExpiredImmediately(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 0)

	tok, err := codec.Issue("user-1", "alice@x.com", "ADMIN", "tenant-1")
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

// TestPurpose: Validates that garbage input never verifies.
// Scope: Unit Test
// Expected: Malformed strings fail with ErrInvalidToken.
// Test Case ID: TOK-04
func TestToken_Malformed_Rejected(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", tok)
	}
}
