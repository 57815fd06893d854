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

// Package identity holds the user model and credential handling.
package identity

import (
	"context"
	"errors"
	"time"
)

// Domain errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Role is a user's role within its tenant. The role is fixed at creation.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleProfessional Role = "PROFESSIONAL"
	RoleCustomer     Role = "CUSTOMER"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfessional, RoleCustomer:
		return true
	}
	return false
}

// User represents a user account. Email is globally unique; TenantID binds
// the user to exactly one tenant.
type User struct {
	ID           string
	TenantID     string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary is the redacted view of a user returned to clients. It never
// carries the password hash.
type Summary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	TenantID string `json:"tenantId"`
}

// Summarize returns the client-safe view of the user.
func (u *User) Summarize() Summary {
	return Summary{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		TenantID: u.TenantID,
	}
}

// Repository defines the interface for user persistence. User creation only
// happens through the registration transaction, so it is not part of this
// interface.
type Repository interface {
	// GetByEmail retrieves a user by email, ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID retrieves a user by ID, ErrUserNotFound if absent.
	GetByID(ctx context.Context, id string) (*User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
