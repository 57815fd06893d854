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

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/turnesa/turnesa/internal/audit"
	"github.com/turnesa/turnesa/internal/identity"
	"github.com/turnesa/turnesa/internal/tenant"
	"github.com/turnesa/turnesa/internal/token"
)

// MockUserRepository is a simple in-memory implementation of identity.Repository
type MockUserRepository struct {
	users map[string]*identity.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*identity.User)}
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*identity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return identity.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// MockRegistrationStore records the tenant/user pair like the transactional
// store would. When failErr is set nothing is persisted, mimicking a rollback.
type MockRegistrationStore struct {
	users   *MockUserRepository
	tenants map[string]*tenant.Tenant
	failErr error
}

func NewMockRegistrationStore(users *MockUserRepository) *MockRegistrationStore {
	return &MockRegistrationStore{
		users:   users,
		tenants: make(map[string]*tenant.Tenant),
	}
}

func (m *MockRegistrationStore) CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, u *identity.User) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.tenants[t.ID] = t
	m.users.users[u.ID] = u
	return nil
}

func newTestService() (*Service, *MockUserRepository, *MockRegistrationStore, *token.Codec) {
	users := NewMockUserRepository()
	registrations := NewMockRegistrationStore(users)
	hasher := identity.NewPasswordHasher(4)
	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	s := NewService(users, registrations, hasher, codec, audit.NewSlogLogger())
	return s, users, registrations, codec
}

// TestPurpose: Validates that registration creates a tenant and its admin user together.
// Scope: Unit Test
// Security: First registered user must own the tenant with the ADMIN role.
// Expected: A tenant and an ADMIN user exist after registration, linked by tenant ID.
// Test Case ID: AUTH-01
func TestAuth_Service_Register(t *testing.T) {
	s, users, registrations, _ := newTestService()
	ctx := context.Background()

	result, err := s.Register(ctx, "owner@example.com", "password123", "Ana")
	if err != nil {
		t.Fatalf("expected success, got err: %v", err)
	}
	if result.TenantID == "" || result.UserID == "" {
		t.Fatalf("expected tenant and user IDs, got %+v", result)
	}

	created, ok := registrations.tenants[result.TenantID]
	if !ok {
		t.Fatal("tenant was not persisted")
	}
	if created.Name != "Negocio de Ana" {
		t.Errorf("expected default tenant name, got %q", created.Name)
	}

	u, err := users.GetByID(ctx, result.UserID)
	if err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
	if u.TenantID != result.TenantID {
		t.Errorf("user tenant %s does not match created tenant %s", u.TenantID, result.TenantID)
	}
	if u.Role != identity.RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", u.Role)
	}
	if u.PasswordHash == "password123" || u.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

// TestPurpose: Validates that registration fails when the email is already registered.
// Scope: Unit Test
// Security: Unique credential enforcement
// Expected: ErrEmailTaken and no new tenant.
// Test Case ID: AUTH-02
func TestAuth_Service_Register_Conflict(t *testing.T) {
	s, _, registrations, _ := newTestService()
	ctx := context.Background()

	if _, err := s.Register(ctx, "dup@example.com", "password123", "Ana"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := s.Register(ctx, "dup@example.com", "password456", "Bea")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(registrations.tenants) != 1 {
		t.Errorf("expected 1 tenant, got %d", len(registrations.tenants))
	}
}

// TestPurpose: Validates that a store failure during registration leaves no partial state.
// Scope: Unit Test
// Security: Atomicity of tenant/user creation (no orphan tenants or admin-less users)
// Expected: ErrRegistrationFailed, zero tenants and zero users persisted.
// Test Case ID: AUTH-03
func TestAuth_Service_Register_Atomicity(t *testing.T) {
	s, users, registrations, _ := newTestService()
	registrations.failErr = errors.New("connection reset")

	_, err := s.Register(context.Background(), "lost@example.com", "password123", "Ana")
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
	if len(registrations.tenants) != 0 || len(users.users) != 0 {
		t.Errorf("partial state after failed registration: %d tenants, %d users",
			len(registrations.tenants), len(users.users))
	}
}

// TestPurpose: Validates the login flow and the claims embedded in the issued token.
// Scope: Unit Test
// Security: Session token must carry the user's identity and tenant membership.
// Expected: Token verifies and carries subject, email, role and tenant ID.
// Test Case ID: AUTH-04
func TestAuth_Service_Login(t *testing.T) {
	s, _, _, codec := newTestService()
	ctx := context.Background()

	result, err := s.Register(ctx, "login@example.com", "password123", "Ana")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	login, err := s.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("expected success, got err: %v", err)
	}

	claims, err := codec.Verify(login.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID() != result.UserID {
		t.Errorf("expected subject %s, got %s", result.UserID, claims.UserID())
	}
	if claims.TenantID != result.TenantID {
		t.Errorf("expected tenant %s, got %s", result.TenantID, claims.TenantID)
	}
	if claims.Email != "login@example.com" {
		t.Errorf("expected email claim, got %s", claims.Email)
	}
	if claims.Role != string(identity.RoleAdmin) {
		t.Errorf("expected ADMIN role claim, got %s", claims.Role)
	}
	if login.User.ID != result.UserID {
		t.Errorf("login result user mismatch: %s", login.User.ID)
	}
}

// TestPurpose: Validates that an unknown email and a wrong password fail identically.
// Scope: Unit Test
// Security: Account enumeration prevention (CWE-204)
// Expected: Both failures return exactly ErrInvalidCredentials.
// Test Case ID: AUTH-05
func TestAuth_Service_Login_IndistinguishableFailures(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := s.Register(ctx, "known@example.com", "password123", "Ana"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, errUnknown := s.Login(ctx, "nobody@example.com", "password123")
	_, errWrongPass := s.Login(ctx, "known@example.com", "wrong-password")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Errorf("failure modes are distinguishable: %q vs %q", errUnknown, errWrongPass)
	}
}

// TestPurpose: Validates password change requires the current password and persists the new hash.
// Scope: Unit Test
// Security: Credential update authorization
// Expected: Wrong current password is rejected; after a change, only the new password logs in.
// Test Case ID: AUTH-06
func TestAuth_Service_ChangePassword(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	result, err := s.Register(ctx, "change@example.com", "oldpassword", "Ana")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	err = s.ChangePassword(ctx, result.UserID, "not-the-password", "newpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := s.ChangePassword(ctx, result.UserID, "oldpassword", "newpassword"); err != nil {
		t.Fatalf("expected success, got err: %v", err)
	}

	if _, err := s.Login(ctx, "change@example.com", "oldpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted after change")
	}
	if _, err := s.Login(ctx, "change@example.com", "newpassword"); err != nil {
		t.Errorf("new password rejected after change: %v", err)
	}
}
