package tenant

import (
	"context"
	"errors"
	"time"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Tenant represents an isolated business account. All business data is
// partitioned by tenant ID. Tenants are created exactly once, during
// registration, and are never deleted.
type Tenant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repository defines the interface for tenant storage. Creation is not part
// of this interface: a tenant only comes into existence inside the
// registration transaction, together with its first admin user.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Tenant, error)
}
