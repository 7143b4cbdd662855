package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
)

// Tenant represents one organisation using the ledger. Every tenant-scoped
// aggregate carries a TenantID referencing this. The login endpoint resolves
// the tenant from its code; nothing else looks tenants up by anything but ID.
type Tenant struct {
	shared.BaseAggregateRoot
	Code     string // URL-safe slug, unique, stored lowercase
	Name     string
	IsActive bool
}

// NewTenant creates a new active tenant
func NewTenant(code, name string) (*Tenant, error) {
	if err := validateTenantCode(code); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToLower(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		IsActive:          true,
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Rename changes the tenant's display name
func (t *Tenant) Rename(name string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(name)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Activate re-enables logins for the tenant's users
func (t *Tenant) Activate() error {
	if t.IsActive {
		return shared.NewValidationError("Tenant is already active")
	}

	t.IsActive = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Deactivate disables logins for the tenant's users. Existing data is
// untouched; only authentication is refused.
func (t *Tenant) Deactivate() error {
	if !t.IsActive {
		return shared.NewValidationError("Tenant is already deactivated")
	}

	t.IsActive = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

func validateTenantCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewValidationError("Tenant code cannot be empty")
	}
	if len(code) < 2 {
		return shared.NewValidationError("Tenant code must be at least 2 characters")
	}
	if len(code) > 50 {
		return shared.NewValidationError("Tenant code cannot exceed 50 characters")
	}

	codeRegex := regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9\-]*$`)
	if !codeRegex.MatchString(code) {
		return shared.NewValidationError("Tenant code must start with a letter and contain only letters, numbers, and hyphens")
	}

	return nil
}

func validateTenantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Tenant name cannot exceed 200 characters")
	}
	return nil
}
