package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// Role codes shipped with the system. The catalog is global, not
// tenant-scoped; every tenant's users draw from the same four roles.
const (
	RoleCodeAdmin     = "ADMIN"
	RoleCodeSalesman  = "SALESMAN"
	RoleCodeDelivery  = "DELIVERY"
	RoleCodeOrganiser = "ORGANISER"
)

// Permission codes. The set is fixed at seed time; grants toggle
// per role, the catalog itself never grows at runtime.
const (
	PermViewBills     = "view_bills"
	PermCreateBill    = "create_bill"
	PermConfirmBill   = "confirm_bill"
	PermCancelBill    = "cancel_bill"
	PermAuthorizeBill = "authorize_bill"

	PermViewCredits  = "view_credits"
	PermCreateCredit = "create_credit"
	PermEditCredit   = "edit_credit"

	PermViewVendors  = "view_vendors"
	PermCreateVendor = "create_vendor"
	PermEditVendor   = "edit_vendor"
	PermDeleteVendor = "delete_vendor"

	PermViewDeliveries = "view_deliveries"
	PermCreateDelivery = "create_delivery"
	PermUpdateDelivery = "update_delivery"

	PermViewReports = "view_reports"

	PermManagePermissions = "manage_permissions"
)

// Permission categories used to group the catalog in listings
const (
	CategoryBills          = "Bills"
	CategoryCredits        = "Credits"
	CategoryVendors        = "Vendors"
	CategoryDeliveries     = "Deliveries"
	CategoryReports        = "Reports"
	CategoryAdministration = "Administration"
)

// Role represents an operator role in the global catalog. A superrole
// passes every permission check without consulting grants, and its
// grant set cannot be edited.
type Role struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Description string
	IsSuperrole bool
	SortOrder   int
}

// NewRole creates a new role with required fields
func NewRole(code, name string) (*Role, error) {
	if err := ValidateRoleCode(code); err != nil {
		return nil, err
	}
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	role := &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
	}

	role.AddDomainEvent(NewRoleCreatedEvent(role))

	return role, nil
}

// NewSuperrole creates a role that bypasses all permission checks
func NewSuperrole(code, name string) (*Role, error) {
	role, err := NewRole(code, name)
	if err != nil {
		return nil, err
	}
	role.IsSuperrole = true
	return role, nil
}

// SetDescription sets the role's description
func (r *Role) SetDescription(description string) error {
	if len(description) > 500 {
		return shared.NewValidationError("Description cannot exceed 500 characters")
	}

	r.Description = strings.TrimSpace(description)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order in role listings
func (r *Role) SetSortOrder(order int) {
	r.SortOrder = order
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Permission represents one entry in the fixed permission catalog
type Permission struct {
	shared.BaseEntity
	Code        string
	Name        string
	Description string
	Category    string
}

// NewPermission creates a catalog entry
func NewPermission(code, name, category string) (*Permission, error) {
	if err := validatePermissionCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Permission name cannot be empty")
	}
	if strings.TrimSpace(category) == "" {
		return nil, shared.NewValidationError("Permission category cannot be empty")
	}

	return &Permission{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToLower(strings.TrimSpace(code)),
		Name:       strings.TrimSpace(name),
		Category:   strings.TrimSpace(category),
	}, nil
}

// RolePermission records whether a role holds a permission. The pair
// (RoleID, PermissionID) is unique; toggling flips Granted rather than
// deleting the row, so revocations stay visible.
type RolePermission struct {
	ID           uuid.UUID
	RoleID       uuid.UUID
	PermissionID uuid.UUID
	Granted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRolePermission creates a grant record for a role/permission pair
func NewRolePermission(roleID, permissionID uuid.UUID, granted bool) (*RolePermission, error) {
	if roleID == uuid.Nil {
		return nil, shared.NewValidationError("Role ID cannot be empty")
	}
	if permissionID == uuid.Nil {
		return nil, shared.NewValidationError("Permission ID cannot be empty")
	}

	now := time.Now()
	return &RolePermission{
		ID:           uuid.New(),
		RoleID:       roleID,
		PermissionID: permissionID,
		Granted:      granted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SetGranted flips the grant flag
func (rp *RolePermission) SetGranted(granted bool) {
	rp.Granted = granted
	rp.UpdatedAt = time.Now()
}

// RoleSeed describes one role to seed
type RoleSeed struct {
	Code        string
	Name        string
	Description string
	IsSuperrole bool
	SortOrder   int
}

// RoleCatalog returns the roles shipped with the system in display order
func RoleCatalog() []RoleSeed {
	return []RoleSeed{
		{RoleCodeAdmin, "Administrator", "Full access to every operation, including user and permission management", true, 1},
		{RoleCodeSalesman, "Salesman", "Creates bills and credit entries and manages vendors", false, 2},
		{RoleCodeDelivery, "Delivery Agent", "Works the delivery orders assigned to them", false, 3},
		{RoleCodeOrganiser, "Organiser", "Reviews authorized bills and reports", false, 4},
	}
}

// CatalogEntry describes one permission to seed
type CatalogEntry struct {
	Code     string
	Name     string
	Category string
}

// PermissionCatalog returns the full permission catalog in display order
func PermissionCatalog() []CatalogEntry {
	return []CatalogEntry{
		{PermViewBills, "View Bills", CategoryBills},
		{PermCreateBill, "Create Bill", CategoryBills},
		{PermConfirmBill, "Confirm Bill", CategoryBills},
		{PermCancelBill, "Cancel Bill", CategoryBills},
		{PermAuthorizeBill, "Authorize Bill", CategoryBills},
		{PermViewCredits, "View Credits", CategoryCredits},
		{PermCreateCredit, "Create Credit", CategoryCredits},
		{PermEditCredit, "Edit Credit", CategoryCredits},
		{PermViewVendors, "View Vendors", CategoryVendors},
		{PermCreateVendor, "Create Vendor", CategoryVendors},
		{PermEditVendor, "Edit Vendor", CategoryVendors},
		{PermDeleteVendor, "Delete Vendor", CategoryVendors},
		{PermViewDeliveries, "View Deliveries", CategoryDeliveries},
		{PermCreateDelivery, "Create Delivery", CategoryDeliveries},
		{PermUpdateDelivery, "Update Delivery", CategoryDeliveries},
		{PermViewReports, "View Reports", CategoryReports},
		{PermManagePermissions, "Manage Permissions", CategoryAdministration},
	}
}

// DefaultRoleGrants returns the permission codes each non-superrole
// holds out of the box. ADMIN is absent: superroles bypass grants.
func DefaultRoleGrants() map[string][]string {
	return map[string][]string{
		RoleCodeSalesman: {
			PermViewBills,
			PermCreateBill,
			PermConfirmBill,
			PermViewCredits,
			PermCreateCredit,
			PermViewVendors,
			PermCreateVendor,
			PermEditVendor,
			PermViewReports,
		},
		RoleCodeDelivery: {
			PermViewDeliveries,
			PermUpdateDelivery,
			PermViewBills,
		},
		RoleCodeOrganiser: {
			PermViewBills,
			PermViewReports,
		},
	}
}

// Validation functions

// ValidateRoleCode validates the shape of a role code. Whether the
// code exists in the catalog is the repository's concern.
func ValidateRoleCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewValidationError("Role code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewValidationError("Role code cannot exceed 50 characters")
	}

	codeRegex := regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	if !codeRegex.MatchString(code) {
		return shared.NewValidationError("Role code must start with a letter and contain only letters, numbers, and underscores")
	}

	return nil
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("Role name cannot exceed 100 characters")
	}
	return nil
}

func validatePermissionCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewValidationError("Permission code cannot be empty")
	}
	if len(code) > 100 {
		return shared.NewValidationError("Permission code cannot exceed 100 characters")
	}

	codeRegex := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	if !codeRegex.MatchString(code) {
		return shared.NewValidationError("Permission code must be lowercase with underscores")
	}

	return nil
}
