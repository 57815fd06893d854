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

package logger

import (
	"errors"
	"log/slog"
	"testing"
)

// TestPurpose: Validates that the identity attr helpers emit the stable keys
// log pipelines filter on.
// Scope: Unit Test
// Expected: Each helper produces the documented snake_case key with the given
// value.
// Test Case ID: LOG-01
func TestLogger_AttrKeys(t *testing.T) {
	tests := []struct {
		attr  slog.Attr
		key   string
		value string
	}{
		{UserID("user-1"), "user_id", "user-1"},
		{TenantID("tenant-1"), "tenant_id", "tenant-1"},
		{ServiceID("svc-1"), "service_id", "svc-1"},
		{Email("a@example.com"), "email", "a@example.com"},
		{Error(errors.New("boom")), "error", "boom"},
	}

	for _, tt := range tests {
		if tt.attr.Key != tt.key {
			t.Errorf("expected key %q, got %q", tt.key, tt.attr.Key)
		}
		if got := tt.attr.Value.String(); got != tt.value {
			t.Errorf("%s: expected value %q, got %q", tt.key, tt.value, got)
		}
	}
}
