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

// Package catalog manages the service offerings a tenant sells. Every
// operation is scoped to the caller's tenant at the query layer.
package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrServiceNotFound is returned both when an ID does not exist and when it
// belongs to another tenant. The two cases are deliberately
// indistinguishable so callers cannot enumerate other tenants' data.
var ErrServiceNotFound = errors.New("service not found")

// Service is a bookable offering owned by a tenant. TenantID is immutable
// after creation.
type Service struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenantId"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	DurationMin    int       `json:"duration"`
	Price          float64   `json:"price"`
	ProfessionalID *string   `json:"professionalId,omitempty"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	UpdatedBy      string    `json:"updatedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// ProfessionalName is denormalized from the users table on reads.
	ProfessionalName string `json:"professionalName,omitempty"`
}

// Patch describes a partial update. Nil fields are left unchanged.
type Patch struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	DurationMin    *int     `json:"duration,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	ProfessionalID *string  `json:"professionalId,omitempty"`
}

// Repository defines the interface for service storage. Implementations must
// filter every lookup and mutation by {id, tenantID} and return
// ErrServiceNotFound for cross-tenant IDs.
type Repository interface {
	Create(ctx context.Context, s *Service) error
	List(ctx context.Context, tenantID string) ([]*Service, error)
	GetByID(ctx context.Context, id, tenantID string) (*Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id, tenantID string) error
}
