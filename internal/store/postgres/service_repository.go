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
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/turnesa/turnesa/internal/catalog"
)

// ServiceRepository implements catalog.Repository. Every query is filtered
// by tenant_id; a row belonging to another tenant is indistinguishable from
// a missing row.
type ServiceRepository struct {
	db *DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `
	s.id, s.tenant_id, s.name, s.description, s.duration_min, s.price,
	s.professional_id, s.created_by, s.updated_by, s.created_at, s.updated_at,
	COALESCE(p.name, '')`

// Create inserts a new service
func (r *ServiceRepository) Create(ctx context.Context, svc *catalog.Service) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO services (
			id, tenant_id, name, description, duration_min, price,
			professional_id, created_by, updated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		svc.ID, svc.TenantID, svc.Name, svc.Description, svc.DurationMin, svc.Price,
		svc.ProfessionalID, svc.CreatedBy, svc.UpdatedBy, svc.CreatedAt, svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	return nil
}

// List returns all services owned by tenantID, with the professional's name
// denormalized from the users table.
func (r *ServiceRepository) List(ctx context.Context, tenantID string) ([]*catalog.Service, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services s
		LEFT JOIN users p ON p.id = s.professional_id
		WHERE s.tenant_id = $1
		ORDER BY s.created_at
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []*catalog.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

// GetByID retrieves a service by {id, tenantID}
func (r *ServiceRepository) GetByID(ctx context.Context, id, tenantID string) (*catalog.Service, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT `+serviceColumns+`
		FROM services s
		LEFT JOIN users p ON p.id = s.professional_id
		WHERE s.id = $1 AND s.tenant_id = $2
	`, id, tenantID)

	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

// Update rewrites the mutable columns of a service within its tenant
func (r *ServiceRepository) Update(ctx context.Context, svc *catalog.Service) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE services
		SET name = $3, description = $4, duration_min = $5, price = $6,
			professional_id = $7, updated_by = $8, updated_at = $9
		WHERE id = $1 AND tenant_id = $2
	`,
		svc.ID, svc.TenantID, svc.Name, svc.Description, svc.DurationMin,
		svc.Price, svc.ProfessionalID, svc.UpdatedBy, svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

// Delete removes a service permanently within its tenant
func (r *ServiceRepository) Delete(ctx context.Context, id, tenantID string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM services WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func scanService(row pgx.Row) (*catalog.Service, error) {
	var svc catalog.Service
	var professionalID sql.NullString
	err := row.Scan(
		&svc.ID, &svc.TenantID, &svc.Name, &svc.Description, &svc.DurationMin,
		&svc.Price, &professionalID, &svc.CreatedBy, &svc.UpdatedBy,
		&svc.CreatedAt, &svc.UpdatedAt, &svc.ProfessionalName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan service: %w", err)
	}
	if professionalID.Valid {
		svc.ProfessionalID = &professionalID.String
	}
	return &svc, nil
}
