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

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/turnesa/turnesa/internal/audit"
	"github.com/turnesa/turnesa/internal/id"
)

// CreateInput holds the validated fields for a new service.
type CreateInput struct {
	Name           string
	Description    string
	DurationMin    int
	Price          float64
	ProfessionalID *string
}

// Catalog provides tenant-scoped CRUD over service offerings.
type Catalog struct {
	repo        Repository
	auditLogger audit.Logger
}

// NewCatalog creates a new catalog
func NewCatalog(repo Repository, auditLogger audit.Logger) *Catalog {
	return &Catalog{repo: repo, auditLogger: auditLogger}
}

// Create persists a new service stamped with the caller's tenant and actor.
func (c *Catalog) Create(ctx context.Context, in CreateInput, tenantID, actorID string) (*Service, error) {
	now := time.Now()
	svc := &Service{
		ID:             id.NewUUIDv7(),
		TenantID:       tenantID,
		Name:           in.Name,
		Description:    in.Description,
		DurationMin:    in.DurationMin,
		Price:          in.Price,
		ProfessionalID: in.ProfessionalID,
		CreatedBy:      actorID,
		UpdatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := c.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	c.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeServiceCreated,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: svc.ID,
	})

	return svc, nil
}

// List returns every service owned by tenantID.
func (c *Catalog) List(ctx context.Context, tenantID string) ([]*Service, error) {
	return c.repo.List(ctx, tenantID)
}

// GetByID returns the service only if it belongs to tenantID.
func (c *Catalog) GetByID(ctx context.Context, serviceID, tenantID string) (*Service, error) {
	return c.repo.GetByID(ctx, serviceID, tenantID)
}

// Update applies a partial patch to a service within the caller's tenant.
// Only non-nil patch fields change; UpdatedBy is stamped with the actor.
func (c *Catalog) Update(ctx context.Context, serviceID, tenantID string, patch Patch, actorID string) (*Service, error) {
	svc, err := c.repo.GetByID(ctx, serviceID, tenantID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		svc.Name = *patch.Name
	}
	if patch.Description != nil {
		svc.Description = *patch.Description
	}
	if patch.DurationMin != nil {
		svc.DurationMin = *patch.DurationMin
	}
	if patch.Price != nil {
		svc.Price = *patch.Price
	}
	if patch.ProfessionalID != nil {
		svc.ProfessionalID = patch.ProfessionalID
	}
	svc.UpdatedBy = actorID
	svc.UpdatedAt = time.Now()

	if err := c.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	c.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeServiceUpdated,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: svc.ID,
	})

	return svc, nil
}

// Delete removes a service permanently within the caller's tenant.
func (c *Catalog) Delete(ctx context.Context, serviceID, tenantID, actorID string) error {
	if _, err := c.repo.GetByID(ctx, serviceID, tenantID); err != nil {
		return err
	}

	if err := c.repo.Delete(ctx, serviceID, tenantID); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	c.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeServiceDeleted,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: serviceID,
	})

	return nil
}
