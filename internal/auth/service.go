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

// Package auth orchestrates registration and login: it is the only writer of
// tenants and users, and the only issuer of session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/turnesa/turnesa/internal/audit"
	"github.com/turnesa/turnesa/internal/id"
	"github.com/turnesa/turnesa/internal/identity"
	"github.com/turnesa/turnesa/internal/tenant"
	"github.com/turnesa/turnesa/internal/token"
)

// Domain errors
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistrationFailed = errors.New("registration failed")
)

// RegistrationStore creates a tenant together with its first admin user in a
// single transaction. Either both rows commit or neither does.
type RegistrationStore interface {
	CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, u *identity.User) error
}

// RegistrationResult identifies the tenant/user pair created by Register.
type RegistrationResult struct {
	TenantID string `json:"tenantId"`
	UserID   string `json:"userId"`
}

// LoginResult carries the issued session token and the redacted user view.
type LoginResult struct {
	Token string
	User  identity.Summary
}

// Service provides the registration/login flow
type Service struct {
	users         identity.Repository
	registrations RegistrationStore
	hasher        *identity.PasswordHasher
	codec         *token.Codec
	auditLogger   audit.Logger
}

// NewService creates a new auth service
func NewService(
	users identity.Repository,
	registrations RegistrationStore,
	hasher *identity.PasswordHasher,
	codec *token.Codec,
	auditLogger audit.Logger,
) *Service {
	return &Service{
		users:         users,
		registrations: registrations,
		hasher:        hasher,
		codec:         codec,
		auditLogger:   auditLogger,
	}
}

// Register creates a new tenant and its first user, who is always the tenant
// admin. The pair is created atomically: a failure inside the transaction
// leaves no partial tenant/user behind and surfaces as ErrRegistrationFailed.
func (s *Service) Register(ctx context.Context, email, password, name string) (*RegistrationResult, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, identity.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRegistrationFailed, "lookup failed")
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRegistrationFailed, "hashing failed")
	}

	now := time.Now()
	t := &tenant.Tenant{
		ID:          id.NewUUIDv7(),
		Name:        fmt.Sprintf("Negocio de %s", name),
		Description: "Mi empresa en Turnesa",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	u := &identity.User{
		ID:           id.NewUUIDv7(),
		TenantID:     t.ID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         identity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.registrations.CreateTenantWithAdmin(ctx, t, u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantCreated,
		TenantID: t.ID,
		ActorID:  u.ID,
		Resource: "tenant",
	})
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeUserRegistered,
		TenantID: t.ID,
		ActorID:  u.ID,
		Resource: "user",
		Metadata: map[string]any{audit.AttrEmail: u.Email},
	})

	return &RegistrationResult{TenantID: t.ID, UserID: u.ID}, nil
}

// Login authenticates a user and mints a session token. An unknown email and
// a wrong password fail with the same error so callers cannot probe which
// addresses are registered.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeLoginFailed,
			Resource: "login",
			Metadata: map[string]any{audit.AttrReason: "user_not_found"},
		})
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeLoginFailed,
			TenantID: user.TenantID,
			ActorID:  user.ID,
			Resource: "login",
			Metadata: map[string]any{audit.AttrReason: "invalid_password"},
		})
		return nil, ErrInvalidCredentials
	}

	tok, err := s.codec.Issue(user.ID, user.Email, string(user.Role), user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeLoginSuccess,
		TenantID: user.TenantID,
		ActorID:  user.ID,
		Resource: "login",
	})

	return &LoginResult{Token: tok, User: user.Summarize()}, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, userID string) (*identity.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ChangePassword replaces a user's password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePasswordChanged,
		TenantID: user.TenantID,
		ActorID:  user.ID,
		Resource: "user",
	})

	return nil
}
