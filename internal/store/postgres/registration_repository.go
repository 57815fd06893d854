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
	"context"
	"fmt"

	"github.com/turnesa/turnesa/internal/identity"
	"github.com/turnesa/turnesa/internal/tenant"
)

// RegistrationRepository implements auth.RegistrationStore. It is the only
// code path that inserts tenants or users.
type RegistrationRepository struct {
	db *DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// CreateTenantWithAdmin inserts the tenant and its first admin user inside a
// single transaction. Either both rows commit or neither does.
func (r *RegistrationRepository) CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, u *identity.User) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO tenants (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO users (id, tenant_id, email, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.TenantID, u.Email, u.Name, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}

	return nil
}
