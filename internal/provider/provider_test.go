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

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestPurpose: Validates the recovery request shape sent to the provider.
// Scope: Unit Test
// Security: API key must travel in the apikey header, never in the body or URL.
// Expected: POST /auth/v1/recover with JSON {email, redirect_to} and the apikey header.
// Test Case ID: PRV-01
func TestProvider_SendRecoveryEmail(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key", "https://app.example.com/reiniciar-contrasena")
	if err := c.SendRecoveryEmail(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("expected success, got err: %v", err)
	}

	if gotPath != "/auth/v1/recover" {
		t.Errorf("expected /auth/v1/recover, got %s", gotPath)
	}
	if gotKey != "service-key" {
		t.Errorf("expected apikey header, got %q", gotKey)
	}
	if gotBody["email"] != "user@example.com" {
		t.Errorf("expected email in body, got %q", gotBody["email"])
	}
	if gotBody["redirect_to"] != "https://app.example.com/reiniciar-contrasena" {
		t.Errorf("expected redirect_to in body, got %q", gotBody["redirect_to"])
	}
}

// TestPurpose: Validates that provider rejections surface as ErrRecoveryFailed with the provider's message.
// Scope: Unit Test
// Security: Provider internals must not leak beyond the short error message.
// Expected: ErrRecoveryFailed wrapping the provider's msg field.
// Test Case ID: PRV-02
func TestProvider_SendRecoveryEmail_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"msg": "email rate limit exceeded"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key", "https://app.example.com/reiniciar-contrasena")
	err := c.SendRecoveryEmail(context.Background(), "user@example.com")
	if !errors.Is(err, ErrRecoveryFailed) {
		t.Fatalf("expected ErrRecoveryFailed, got %v", err)
	}
}

// TestPurpose: Validates that an unconfigured client fails closed.
// Scope: Unit Test
// Security: N/A
// Expected: ErrNotConfigured without any network call.
// Test Case ID: PRV-03
func TestProvider_NotConfigured(t *testing.T) {
	c := NewClient("", "", "")
	if c.Configured() {
		t.Error("empty base URL must report unconfigured")
	}
	err := c.SendRecoveryEmail(context.Background(), "user@example.com")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
