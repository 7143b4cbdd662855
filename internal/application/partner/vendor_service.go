package partner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/partner"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorService handles vendor-related business operations. Deletion is
// guarded by the ledger reference counts; a vendor with bills, proxy bills,
// or credit entries on file stays on record.
type VendorService struct {
	vendorRepo partner.VendorRepository
	billRepo   ledger.BillRepository
	proxyRepo  ledger.ProxyBillRepository
	creditRepo ledger.CreditEntryRepository
	recorder   audit.Recorder
	txManager  shared.TxManager
}

// NewVendorService creates a new VendorService
func NewVendorService(
	vendorRepo partner.VendorRepository,
	billRepo ledger.BillRepository,
	proxyRepo ledger.ProxyBillRepository,
	creditRepo ledger.CreditEntryRepository,
	recorder audit.Recorder,
	txManager shared.TxManager,
) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		creditRepo: creditRepo,
		recorder:   recorder,
		txManager:  txManager,
	}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, actor authz.Principal, req CreateVendorRequest) (*VendorResponse, error) {
	// Check if customer code already exists
	if req.CustomerCode != "" {
		exists, err := s.vendorRepo.ExistsByCustomerCode(ctx, actor.TenantID, req.CustomerCode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Vendor with customer code %s already exists", req.CustomerCode))
		}
	}

	// Check if GST number already exists
	if req.GSTNumber != "" {
		exists, err := s.vendorRepo.ExistsByGSTNumber(ctx, actor.TenantID, req.GSTNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Vendor with GST number %s already exists", req.GSTNumber))
		}
	}

	vendor, err := partner.NewVendor(actor.TenantID, req.Name, partner.VendorType(req.Type))
	if err != nil {
		return nil, err
	}

	// Set optional fields
	if req.CustomerCode != "" {
		if err := vendor.SetCustomerCode(req.CustomerCode); err != nil {
			return nil, err
		}
	}
	if req.ContactPerson != "" || req.ContactPhone != "" || req.Email != "" {
		if err := vendor.SetContact(req.ContactPerson, req.ContactPhone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.AlternateName != "" || req.AlternateMobile != "" || req.WhatsappNumber != "" {
		if err := vendor.SetAlternateContact(req.AlternateName, req.AlternateMobile, req.WhatsappNumber); err != nil {
			return nil, err
		}
	}
	if req.Address != "" || req.BillingAddress != "" || req.ShippingAddress != "" ||
		req.City != "" || req.State != "" || req.Country != "" || req.Pincode != "" {
		if err := vendor.SetAddress(req.Address, req.BillingAddress, req.ShippingAddress,
			req.City, req.State, req.Country, req.Pincode); err != nil {
			return nil, err
		}
	}
	if req.GSTNumber != "" || req.PAN != "" {
		if err := vendor.SetTaxInfo(req.GSTNumber, req.PAN); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil || req.CreditDays != nil {
		limit := decimal.Zero
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		days := 0
		if req.CreditDays != nil {
			days = *req.CreditDays
		}
		if err := vendor.SetCreditTerms(limit, days); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		vendor.SetNotes(req.Notes)
	}
	if req.AdditionalData != "" {
		if err := vendor.SetAdditionalData(req.AdditionalData); err != nil {
			return nil, err
		}
	}
	vendor.SetCreatedBy(actor.UserID)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.vendorRepo.Save(ctx, vendor); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionCreateVendor, vendor.ID, detailsJSON(map[string]any{
			"name": vendor.Name,
			"type": vendor.Type,
		}))
	})
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors with filtering and pagination. The default order
// is by name, matching how the ledger office looks counterparties up.
func (s *VendorService) List(ctx context.Context, tenantID uuid.UUID, filter VendorListFilter) ([]VendorListResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := partner.VendorFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
			Filters:  make(map[string]any),
		},
		IsBlocked:      filter.IsBlocked,
		City:           filter.City,
		State:          filter.State,
		CreditLimitMin: filter.CreditLimitMin,
		CreditLimitMax: filter.CreditLimitMax,
	}
	if filter.Type != "" {
		vendorType := partner.VendorType(filter.Type)
		domainFilter.Type = &vendorType
	}
	if filter.Status != "" {
		status := partner.VendorStatus(filter.Status)
		domainFilter.Status = &status
	}

	vendors, err := s.vendorRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.vendorRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToVendorListResponses(vendors), total, nil
}

// Update updates a vendor. Only the fields present in the request change;
// grouped setters merge the request with the current values.
func (s *VendorService) Update(ctx context.Context, actor authz.Principal, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != vendor.Name {
		if err := vendor.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		if err := vendor.ChangeType(partner.VendorType(*req.Type)); err != nil {
			return nil, err
		}
	}
	if req.CustomerCode != nil && *req.CustomerCode != vendor.CustomerCode {
		if *req.CustomerCode != "" {
			exists, err := s.vendorRepo.ExistsByCustomerCode(ctx, actor.TenantID, *req.CustomerCode)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Vendor with customer code %s already exists", *req.CustomerCode))
			}
		}
		if err := vendor.SetCustomerCode(*req.CustomerCode); err != nil {
			return nil, err
		}
	}
	if req.ContactPerson != nil || req.ContactPhone != nil || req.Email != nil {
		contactPerson := vendor.ContactPerson
		if req.ContactPerson != nil {
			contactPerson = *req.ContactPerson
		}
		phone := vendor.ContactPhone
		if req.ContactPhone != nil {
			phone = *req.ContactPhone
		}
		email := vendor.Email
		if req.Email != nil {
			email = *req.Email
		}
		if err := vendor.SetContact(contactPerson, phone, email); err != nil {
			return nil, err
		}
	}
	if req.AlternateName != nil || req.AlternateMobile != nil || req.WhatsappNumber != nil {
		alternateName := vendor.AlternateName
		if req.AlternateName != nil {
			alternateName = *req.AlternateName
		}
		alternateMobile := vendor.AlternateMobile
		if req.AlternateMobile != nil {
			alternateMobile = *req.AlternateMobile
		}
		whatsapp := vendor.WhatsappNumber
		if req.WhatsappNumber != nil {
			whatsapp = *req.WhatsappNumber
		}
		if err := vendor.SetAlternateContact(alternateName, alternateMobile, whatsapp); err != nil {
			return nil, err
		}
	}
	if req.Address != nil || req.BillingAddress != nil || req.ShippingAddress != nil ||
		req.City != nil || req.State != nil || req.Country != nil || req.Pincode != nil {
		address := vendor.Address
		if req.Address != nil {
			address = *req.Address
		}
		billing := vendor.BillingAddress
		if req.BillingAddress != nil {
			billing = *req.BillingAddress
		}
		shipping := vendor.ShippingAddress
		if req.ShippingAddress != nil {
			shipping = *req.ShippingAddress
		}
		city := vendor.City
		if req.City != nil {
			city = *req.City
		}
		state := vendor.State
		if req.State != nil {
			state = *req.State
		}
		country := vendor.Country
		if req.Country != nil {
			country = *req.Country
		}
		pincode := vendor.Pincode
		if req.Pincode != nil {
			pincode = *req.Pincode
		}
		if err := vendor.SetAddress(address, billing, shipping, city, state, country, pincode); err != nil {
			return nil, err
		}
	}
	if req.GSTNumber != nil || req.PAN != nil {
		gst := vendor.GSTNumber
		if req.GSTNumber != nil {
			gst = *req.GSTNumber
		}
		pan := vendor.PAN
		if req.PAN != nil {
			pan = *req.PAN
		}
		if req.GSTNumber != nil && *req.GSTNumber != "" && *req.GSTNumber != vendor.GSTNumber {
			exists, err := s.vendorRepo.ExistsByGSTNumber(ctx, actor.TenantID, *req.GSTNumber)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Vendor with GST number %s already exists", *req.GSTNumber))
			}
		}
		if err := vendor.SetTaxInfo(gst, pan); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil || req.CreditDays != nil {
		limit := vendor.CreditLimit
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		days := vendor.CreditDays
		if req.CreditDays != nil {
			days = *req.CreditDays
		}
		if err := vendor.SetCreditTerms(limit, days); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		vendor.SetNotes(*req.Notes)
	}
	if req.AdditionalData != nil {
		if err := vendor.SetAdditionalData(*req.AdditionalData); err != nil {
			return nil, err
		}
	}
	if req.Status != nil && partner.VendorStatus(*req.Status) != vendor.Status {
		switch partner.VendorStatus(*req.Status) {
		case partner.VendorStatusActive:
			if err := vendor.Activate(); err != nil {
				return nil, err
			}
		case partner.VendorStatusInactive:
			if err := vendor.Deactivate(); err != nil {
				return nil, err
			}
		}
	}
	if req.IsBlocked != nil && *req.IsBlocked != vendor.IsBlocked {
		if *req.IsBlocked {
			vendor.Block()
		} else {
			vendor.Unblock()
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.vendorRepo.Save(ctx, vendor); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionUpdateVendor, vendor.ID, detailsJSON(map[string]any{
			"name": vendor.Name,
		}))
	})
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Delete deletes a vendor. A vendor referenced by any bill, proxy bill, or
// credit entry cannot be deleted; the error names every count so the
// operator knows what stands in the way.
func (s *VendorService) Delete(ctx context.Context, actor authz.Principal, id uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}

	counts, err := s.associationCounts(ctx, actor.TenantID, vendor.ID)
	if err != nil {
		return err
	}
	if counts.Any() {
		return shared.NewReferentialConflictError(fmt.Sprintf(
			"Cannot delete vendor %q because it has %s associated with it", vendor.Name, counts.Describe()))
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.vendorRepo.DeleteForTenant(ctx, actor.TenantID, vendor.ID); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionDeleteVendor, vendor.ID, detailsJSON(map[string]any{
			"name": vendor.Name,
		}))
	})
}

// BulkImport creates vendors from pre-parsed rows. Rows are validated
// independently; valid rows are saved in one batch while bad rows are
// reported back with their row number, so one malformed counterparty does
// not sink a five-hundred-row ledger migration.
func (s *VendorService) BulkImport(ctx context.Context, actor authz.Principal, req BulkImportRequest) (*BulkImportResponse, error) {
	result := &BulkImportResponse{
		Total:  len(req.Vendors),
		Errors: []ImportRowError{},
	}

	// Codes and GST numbers claimed by earlier rows in this request count
	// as duplicates too, not just what is already in the store.
	seenCodes := make(map[string]string)
	seenGST := make(map[string]struct{})

	created := make([]*partner.Vendor, 0, len(req.Vendors))
	for i := range req.Vendors {
		vendor, err := s.buildImportVendor(ctx, actor.TenantID, &req.Vendors[i], seenCodes, seenGST)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		vendor.SetCreatedBy(actor.UserID)
		created = append(created, vendor)
	}

	result.Succeeded = len(created)
	result.Skipped = result.Total - result.Succeeded

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if len(created) > 0 {
			if err := s.vendorRepo.SaveBatch(ctx, created); err != nil {
				return err
			}
		}
		// The run is recorded even when every row was skipped.
		entry, err := audit.NewCatalogAuditLog(actor.TenantID, actor.UserID, audit.ActionBulkImportVendors, audit.EntityVendor)
		if err != nil {
			return err
		}
		entry.WithUsername(actor.Username).WithIPAddress(actor.ClientIP).WithDetails(detailsJSON(map[string]any{
			"total":     result.Total,
			"succeeded": result.Succeeded,
			"skipped":   result.Skipped,
		}))
		return s.recorder.Record(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// buildImportVendor validates one row against the store and against rows
// earlier in the same request, then assembles the vendor.
func (s *VendorService) buildImportVendor(ctx context.Context, tenantID uuid.UUID, row *VendorImportRow, seenCodes map[string]string, seenGST map[string]struct{}) (*partner.Vendor, error) {
	code := strings.TrimSpace(row.CustomerCode)
	gst := strings.ToUpper(strings.TrimSpace(row.GSTNumber))

	if code != "" {
		if name, dup := seenCodes[code]; dup {
			return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Duplicate customer code %q (existing vendor: %s)", code, name))
		}
		existing, err := s.vendorRepo.FindByCustomerCode(ctx, tenantID, code)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Duplicate customer code %q (existing vendor: %s)", code, existing.Name))
		}
	}
	if gst != "" {
		if _, dup := seenGST[gst]; dup {
			return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Duplicate GST number %q", gst))
		}
		exists, err := s.vendorRepo.ExistsByGSTNumber(ctx, tenantID, gst)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Duplicate GST number %q", gst))
		}
	}

	vendorType := partner.VendorTypeCustomer
	if row.Type != "" {
		vendorType = partner.VendorType(row.Type)
	}

	vendor, err := partner.NewVendor(tenantID, row.Name, vendorType)
	if err != nil {
		return nil, err
	}

	if code != "" {
		if err := vendor.SetCustomerCode(code); err != nil {
			return nil, err
		}
	}
	if row.ContactPerson != "" || row.ContactPhone != "" || row.Email != "" {
		if err := vendor.SetContact(row.ContactPerson, row.ContactPhone, row.Email); err != nil {
			return nil, err
		}
	}
	if row.AlternateName != "" || row.AlternateMobile != "" || row.WhatsappNumber != "" {
		if err := vendor.SetAlternateContact(row.AlternateName, row.AlternateMobile, row.WhatsappNumber); err != nil {
			return nil, err
		}
	}
	if row.Address != "" || row.BillingAddress != "" || row.ShippingAddress != "" ||
		row.City != "" || row.State != "" || row.Country != "" || row.Pincode != "" {
		if err := vendor.SetAddress(row.Address, row.BillingAddress, row.ShippingAddress,
			row.City, row.State, row.Country, row.Pincode); err != nil {
			return nil, err
		}
	}
	if row.GSTNumber != "" || row.PAN != "" {
		if err := vendor.SetTaxInfo(row.GSTNumber, row.PAN); err != nil {
			return nil, err
		}
	}
	if row.CreditLimit != nil || row.CreditDays != nil {
		limit := decimal.Zero
		if row.CreditLimit != nil {
			limit = *row.CreditLimit
		}
		days := 0
		if row.CreditDays != nil {
			days = *row.CreditDays
		}
		if err := vendor.SetCreditTerms(limit, days); err != nil {
			return nil, err
		}
	}
	if row.Notes != "" {
		vendor.SetNotes(row.Notes)
	}
	if row.AdditionalData != "" {
		if err := vendor.SetAdditionalData(row.AdditionalData); err != nil {
			return nil, err
		}
	}
	if partner.VendorStatus(row.Status) == partner.VendorStatusInactive {
		if err := vendor.Deactivate(); err != nil {
			return nil, err
		}
	}
	if row.IsBlocked {
		vendor.Block()
	}

	if code != "" {
		seenCodes[code] = vendor.Name
	}
	if gst != "" {
		seenGST[gst] = struct{}{}
	}

	return vendor, nil
}

// associationCounts gathers the ledger reference counts that guard deletion
func (s *VendorService) associationCounts(ctx context.Context, tenantID, vendorID uuid.UUID) (partner.AssociationCounts, error) {
	var counts partner.AssociationCounts
	var err error

	counts.Bills, err = s.billRepo.CountByVendor(ctx, tenantID, vendorID)
	if err != nil {
		return counts, err
	}
	counts.ProxyBills, err = s.proxyRepo.CountByVendor(ctx, tenantID, vendorID)
	if err != nil {
		return counts, err
	}
	counts.CreditEntries, err = s.creditRepo.CountByVendor(ctx, tenantID, vendorID)
	if err != nil {
		return counts, err
	}

	return counts, nil
}

func (s *VendorService) recordAudit(ctx context.Context, actor authz.Principal, action string, entityID uuid.UUID, details string) error {
	entry, err := audit.NewAuditLog(actor.TenantID, actor.UserID, action, audit.EntityVendor, entityID)
	if err != nil {
		return err
	}
	entry.WithUsername(actor.Username).WithDetails(details).WithIPAddress(actor.ClientIP)
	return s.recorder.Record(ctx, entry)
}

// detailsJSON renders audit detail payloads. A payload that cannot
// marshal degrades to empty details rather than failing the mutation.
func detailsJSON(kv map[string]any) string {
	b, err := json.Marshal(kv)
	if err != nil {
		return ""
	}
	return string(b)
}
