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

// Package provider is a thin client for the third-party identity provider
// used for password recovery. The provider is an opaque credential source:
// we only call its recovery endpoint and never inspect its internals.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client errors
var (
	ErrNotConfigured   = errors.New("identity provider not configured")
	ErrRecoveryFailed  = errors.New("recovery request rejected by provider")
	ErrProviderUnavail = errors.New("identity provider unavailable")
)

// Client talks to the identity provider's REST API.
type Client struct {
	baseURL     string
	apiKey      string
	redirectURL string
	httpClient  *http.Client
}

// NewClient creates a provider client. baseURL may be empty, in which case
// every call fails with ErrNotConfigured.
func NewClient(baseURL, apiKey, redirectURL string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		redirectURL: redirectURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the client has a provider endpoint.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// SendRecoveryEmail asks the provider to send a password recovery email. The
// provider redirects the user to redirectURL once the password is reset.
func (c *Client) SendRecoveryEmail(ctx context.Context, email string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{
		"email":       email,
		"redirect_to": c.redirectURL,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/recover", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavail, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Providers return a short JSON error; keep only its message.
		msg := readErrorMessage(resp.Body)
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("%w: %s", ErrRecoveryFailed, msg)
	}

	return nil
}

func readErrorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Msg
}
