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

package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPurpose: Validates that every pool tuning knob reaches the pgx pool
// configuration, including the connection lifetime.
// Scope: Unit Test
// Expected: ParseConfig of the built DSN reflects max/min conns and
// MaxConnLifetime.
// Test Case ID: DB-01
func TestDB_ConnString_PoolTuning(t *testing.T) {
	cfg := Config{
		Host:            "localhost",
		Port:            "5432",
		User:            "turnesa",
		Password:        "secret",
		Database:        "turnesa",
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}

	parsed, err := pgxpool.ParseConfig(connString(cfg))
	require.NoError(t, err)

	assert.Equal(t, int32(25), parsed.MaxConns)
	assert.Equal(t, int32(5), parsed.MinConns)
	assert.Equal(t, 5*time.Minute, parsed.MaxConnLifetime)
	assert.Equal(t, "localhost", parsed.ConnConfig.Host)
	assert.Equal(t, "turnesa", parsed.ConnConfig.Database)
}

// TestPurpose: Validates that an unset connection lifetime keeps the pgx
// default instead of forcing zero.
// Scope: Unit Test
// Expected: The DSN omits pool_max_conn_lifetime when the lifetime is zero.
// Test Case ID: DB-02
func TestDB_ConnString_ZeroLifetimeOmitted(t *testing.T) {
	cfg := Config{
		Host:         "localhost",
		Port:         "5432",
		User:         "turnesa",
		Password:     "secret",
		Database:     "turnesa",
		SSLMode:      "disable",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
	}

	assert.NotContains(t, connString(cfg), "pool_max_conn_lifetime")

	_, err := pgxpool.ParseConfig(connString(cfg))
	require.NoError(t, err)
}
