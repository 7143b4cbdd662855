package partner

import (
	"strconv"
	"strings"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "ACTIVE"
	VendorStatusInactive VendorStatus = "INACTIVE"
)

// IsValid checks if the vendor status is valid
func (s VendorStatus) IsValid() bool {
	return s == VendorStatusActive || s == VendorStatusInactive
}

// VendorType represents the commercial relationship with a vendor
type VendorType string

const (
	VendorTypeSupplier VendorType = "SUPPLIER" // We buy from them
	VendorTypeCustomer VendorType = "CUSTOMER" // We sell to them
	VendorTypeBoth     VendorType = "BOTH"     // Both directions
)

// IsValid checks if the vendor type is valid
func (t VendorType) IsValid() bool {
	switch t {
	case VendorTypeSupplier, VendorTypeCustomer, VendorTypeBoth:
		return true
	}
	return false
}

// Vendor represents a trading counterparty in the partner context.
// It is the aggregate root for vendor-related operations. Bills, proxy
// bills, and credit entries all reference a vendor; a vendor with any
// such reference cannot be deleted.
type Vendor struct {
	shared.TenantAggregateRoot
	Name            string
	CustomerCode    string // External ledger code, unique per tenant when set
	Type            VendorType
	Status          VendorStatus
	IsBlocked       bool // Blocked for new trade due to payment issues
	ContactPerson   string
	ContactPhone    string
	Email           string
	Address         string
	BillingAddress  string
	ShippingAddress string
	City            string
	State           string
	Country         string
	Pincode         string
	GSTNumber       string // GSTIN, dedup key on import when set
	PAN             string
	AlternateName   string
	AlternateMobile string
	WhatsappNumber  string
	CreditLimit     decimal.Decimal // Advisory figure, never blocks a payment
	CreditDays      int
	Notes           string
	AdditionalData  string // Custom attributes as JSON
}

// NewVendor creates a new vendor with required fields
func NewVendor(tenantID uuid.UUID, name string, vendorType VendorType) (*Vendor, error) {
	if err := validateVendorName(name); err != nil {
		return nil, err
	}
	if !vendorType.IsValid() {
		return nil, shared.NewValidationError("Vendor type must be SUPPLIER, CUSTOMER, or BOTH")
	}

	vendor := &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Type:                vendorType,
		Status:              VendorStatusActive,
		CreditLimit:         decimal.Zero,
		AdditionalData:      "{}",
	}

	vendor.AddDomainEvent(NewVendorCreatedEvent(vendor))

	return vendor, nil
}

// Rename changes the vendor's display name
func (v *Vendor) Rename(name string) error {
	if err := validateVendorName(name); err != nil {
		return err
	}

	v.Name = name
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorUpdatedEvent(v))

	return nil
}

// ChangeType changes the commercial relationship. Historic bills keep
// their recorded vendor name regardless.
func (v *Vendor) ChangeType(vendorType VendorType) error {
	if !vendorType.IsValid() {
		return shared.NewValidationError("Vendor type must be SUPPLIER, CUSTOMER, or BOTH")
	}

	v.Type = vendorType
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetCustomerCode sets the external ledger code. Uniqueness within the
// tenant is enforced at the service boundary.
func (v *Vendor) SetCustomerCode(code string) error {
	code = strings.TrimSpace(code)
	if len(code) > 50 {
		return shared.NewValidationError("Customer code cannot exceed 50 characters")
	}

	v.CustomerCode = code
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetContact sets the primary contact information
func (v *Vendor) SetContact(contactPerson, phone, email string) error {
	if contactPerson != "" && len(contactPerson) > 100 {
		return shared.NewValidationError("Contact person cannot exceed 100 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewValidationError("Phone cannot exceed 50 characters")
	}
	if email != "" {
		if err := validateVendorEmail(email); err != nil {
			return err
		}
	}

	v.ContactPerson = contactPerson
	v.ContactPhone = phone
	v.Email = email
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetAlternateContact sets the secondary contact channel
func (v *Vendor) SetAlternateContact(alternateName, alternateMobile, whatsappNumber string) error {
	if alternateName != "" && len(alternateName) > 200 {
		return shared.NewValidationError("Alternate name cannot exceed 200 characters")
	}
	if alternateMobile != "" && len(alternateMobile) > 50 {
		return shared.NewValidationError("Alternate mobile cannot exceed 50 characters")
	}
	if whatsappNumber != "" && len(whatsappNumber) > 50 {
		return shared.NewValidationError("Whatsapp number cannot exceed 50 characters")
	}

	v.AlternateName = alternateName
	v.AlternateMobile = alternateMobile
	v.WhatsappNumber = whatsappNumber
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetAddress sets the vendor's address information
func (v *Vendor) SetAddress(address, billingAddress, shippingAddress, city, state, country, pincode string) error {
	if address != "" && len(address) > 500 {
		return shared.NewValidationError("Address cannot exceed 500 characters")
	}
	if billingAddress != "" && len(billingAddress) > 500 {
		return shared.NewValidationError("Billing address cannot exceed 500 characters")
	}
	if shippingAddress != "" && len(shippingAddress) > 500 {
		return shared.NewValidationError("Shipping address cannot exceed 500 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewValidationError("City cannot exceed 100 characters")
	}
	if state != "" && len(state) > 100 {
		return shared.NewValidationError("State cannot exceed 100 characters")
	}
	if country != "" && len(country) > 100 {
		return shared.NewValidationError("Country cannot exceed 100 characters")
	}
	if pincode != "" && len(pincode) > 20 {
		return shared.NewValidationError("Pincode cannot exceed 20 characters")
	}

	v.Address = address
	v.BillingAddress = billingAddress
	v.ShippingAddress = shippingAddress
	v.City = city
	v.State = state
	v.Country = country
	v.Pincode = pincode
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetTaxInfo sets the vendor's tax identifiers. Length guards only: files
// imported from external ledgers carry historic, sometimes malformed values.
func (v *Vendor) SetTaxInfo(gstNumber, pan string) error {
	gstNumber = strings.TrimSpace(gstNumber)
	pan = strings.TrimSpace(pan)
	if len(gstNumber) > 20 {
		return shared.NewValidationError("GST number cannot exceed 20 characters")
	}
	if len(pan) > 20 {
		return shared.NewValidationError("PAN cannot exceed 20 characters")
	}

	v.GSTNumber = strings.ToUpper(gstNumber)
	v.PAN = strings.ToUpper(pan)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetCreditTerms sets the advisory credit limit and credit days. The limit
// informs reports; exceeding it never blocks a bill or a payment.
func (v *Vendor) SetCreditTerms(creditLimit decimal.Decimal, creditDays int) error {
	if creditLimit.IsNegative() {
		return shared.NewValidationError("Credit limit cannot be negative")
	}
	if creditDays < 0 {
		return shared.NewValidationError("Credit days cannot be negative")
	}
	if creditDays > 365 {
		return shared.NewValidationError("Credit days cannot exceed 365")
	}

	oldLimit := v.CreditLimit
	v.CreditLimit = creditLimit
	v.CreditDays = creditDays
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorCreditTermsChangedEvent(v, oldLimit, creditLimit))

	return nil
}

// SetNotes sets free-form notes
func (v *Vendor) SetNotes(notes string) {
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// SetAdditionalData sets custom attributes as a JSON object
func (v *Vendor) SetAdditionalData(data string) error {
	if data == "" {
		data = "{}"
	}
	trimmed := strings.TrimSpace(data)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return shared.NewValidationError("Additional data must be a JSON object")
	}

	v.AdditionalData = trimmed
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// Activate activates the vendor
func (v *Vendor) Activate() error {
	if v.Status == VendorStatusActive {
		return shared.NewValidationError("Vendor is already active")
	}

	oldStatus := v.Status
	v.Status = VendorStatusActive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorStatusChangedEvent(v, oldStatus, VendorStatusActive))

	return nil
}

// Deactivate deactivates the vendor
func (v *Vendor) Deactivate() error {
	if v.Status == VendorStatusInactive {
		return shared.NewValidationError("Vendor is already inactive")
	}

	oldStatus := v.Status
	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorStatusChangedEvent(v, oldStatus, VendorStatusInactive))

	return nil
}

// Block blocks the vendor for new trade
func (v *Vendor) Block() {
	v.IsBlocked = true
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Unblock lifts the trade block
func (v *Vendor) Unblock() {
	v.IsBlocked = false
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// IsActive returns true if the vendor is active
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}

// HasCreditTerms returns true if credit terms are configured
func (v *Vendor) HasCreditTerms() bool {
	return v.CreditDays > 0 || v.CreditLimit.GreaterThan(decimal.Zero)
}

// AssociationCounts holds the reference counts that guard vendor deletion
type AssociationCounts struct {
	Bills         int64
	ProxyBills    int64
	CreditEntries int64
}

// Any returns true when at least one record references the vendor
func (c AssociationCounts) Any() bool {
	return c.Bills > 0 || c.ProxyBills > 0 || c.CreditEntries > 0
}

// Describe renders the counts for the deletion-refused message
func (c AssociationCounts) Describe() string {
	parts := []string{}
	if c.Bills > 0 {
		parts = append(parts, plural(c.Bills, "bill", "bills"))
	}
	if c.ProxyBills > 0 {
		parts = append(parts, plural(c.ProxyBills, "proxy bill", "proxy bills"))
	}
	if c.CreditEntries > 0 {
		parts = append(parts, plural(c.CreditEntries, "credit entry", "credit entries"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int64, singular, pluralForm string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.FormatInt(n, 10) + " " + pluralForm
}

// Validation functions

func validateVendorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Vendor name cannot exceed 200 characters")
	}
	return nil
}

func validateVendorEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("Email cannot exceed 200 characters")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return shared.NewValidationError("Email format is invalid")
	}
	return nil
}
