package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/partner"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditEntryService handles credit entry operations. Creation here covers
// bare vendor entries only; entries against a bill or proxy bill go through
// the accept-payment paths where the cap is enforced.
type CreditEntryService struct {
	creditRepo ledger.CreditEntryRepository
	billRepo   ledger.BillRepository
	proxyRepo  ledger.ProxyBillRepository
	vendorRepo partner.VendorRepository
	recon      *ledger.ReconciliationService
	recorder   audit.Recorder
	txManager  shared.TxManager
}

// NewCreditEntryService creates a new CreditEntryService
func NewCreditEntryService(
	creditRepo ledger.CreditEntryRepository,
	billRepo ledger.BillRepository,
	proxyRepo ledger.ProxyBillRepository,
	vendorRepo partner.VendorRepository,
	recon *ledger.ReconciliationService,
	recorder audit.Recorder,
	txManager shared.TxManager,
) *CreditEntryService {
	return &CreditEntryService{
		creditRepo: creditRepo,
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		vendorRepo: vendorRepo,
		recon:      recon,
		recorder:   recorder,
		txManager:  txManager,
	}
}

// Create records a bare vendor entry, an advance, refund, or adjustment
// that settles no particular bill but still moves the vendor's outstanding.
func (s *CreditEntryService) Create(ctx context.Context, actor authz.Principal, req CreateCreditEntryRequest) (*CreditEntryResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, actor.TenantID, req.VendorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Vendor not found")
		}
		return nil, err
	}

	entry, err := ledger.NewCreditEntry(
		actor.TenantID,
		vendor.ID,
		vendor.Name,
		valueobject.NewMoneyINR(req.Amount),
		ledger.PaymentDirection(req.Direction),
		ledger.PaymentMethod(req.Method),
		req.Date,
	)
	if err != nil {
		return nil, err
	}
	entry.ReferenceNumber = req.ReferenceNumber
	entry.Notes = req.Notes
	entry.SetCreatedBy(actor.UserID)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.creditRepo.Save(ctx, entry); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionCreateCredit, entry.ID, detailsJSON(map[string]any{
			"vendor":    vendor.Name,
			"amount":    entry.Amount,
			"direction": entry.Direction,
		}))
	})
	if err != nil {
		return nil, err
	}

	response := ToCreditEntryResponse(entry)
	return &response, nil
}

// GetByID retrieves a credit entry by ID
func (s *CreditEntryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CreditEntryResponse, error) {
	entry, err := s.creditRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToCreditEntryResponse(entry)
	return &response, nil
}

// List retrieves credit entries with filtering and pagination
func (s *CreditEntryService) List(ctx context.Context, tenantID uuid.UUID, filter CreditEntryListFilter) ([]CreditEntryResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "payment_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := ledger.CreditEntryFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
			Filters:  make(map[string]any),
		},
		VendorID:    filter.VendorID,
		BillID:      filter.BillID,
		ProxyBillID: filter.ProxyBillID,
		FromDate:    filter.FromDate,
		ToDate:      filter.ToDate,
		MinAmount:   filter.MinAmount,
		MaxAmount:   filter.MaxAmount,
	}
	if filter.Direction != "" {
		direction := ledger.PaymentDirection(filter.Direction)
		domainFilter.Direction = &direction
	}
	if filter.Method != "" {
		method := ledger.PaymentMethod(filter.Method)
		domainFilter.Method = &method
	}

	entries, err := s.creditRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.creditRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCreditEntryResponses(entries), total, nil
}

// Update applies an explicit edit to a credit entry. When the edited entry
// is linked to a container with direction INCOMING, the payment cap is
// re-validated against that container under a row lock, with the entry's own
// previous contribution excluded from the paid snapshot.
func (s *CreditEntryService) Update(ctx context.Context, actor authz.Principal, id uuid.UUID, req UpdateCreditEntryRequest) (*CreditEntryResponse, error) {
	if req.BillID != nil && req.ProxyBillID != nil {
		return nil, shared.NewValidationError("Credit entry cannot be linked to both a bill and a proxy bill")
	}

	var entry *ledger.CreditEntry

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.creditRepo.FindByIDForTenant(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}

		update := ledger.CreditEntryUpdate{
			Amount:          valueobject.NewMoneyINR(req.Amount),
			Direction:       ledger.PaymentDirection(req.Direction),
			PaymentMethod:   ledger.PaymentMethod(req.Method),
			PaymentDate:     req.Date,
			ReferenceNumber: req.ReferenceNumber,
			Notes:           req.Notes,
			BillID:          req.BillID,
			ProxyBillID:     req.ProxyBillID,
		}

		if err := s.checkUpdateAgainstCap(ctx, actor.TenantID, entry, update); err != nil {
			return err
		}

		if err := entry.Update(update); err != nil {
			return err
		}

		if err := s.creditRepo.Save(ctx, entry); err != nil {
			return err
		}

		return s.recordAudit(ctx, actor, audit.ActionUpdateCredit, entry.ID, detailsJSON(map[string]any{
			"amount":    entry.Amount,
			"direction": entry.Direction,
		}))
	})
	if err != nil {
		return nil, err
	}

	response := ToCreditEntryResponse(entry)
	return &response, nil
}

// checkUpdateAgainstCap re-validates the payment-exceeds-remaining rule for
// an edit that leaves the entry linked to a container. The container row is
// locked so the snapshot stays consistent until the edit commits.
func (s *CreditEntryService) checkUpdateAgainstCap(ctx context.Context, tenantID uuid.UUID, entry *ledger.CreditEntry, update ledger.CreditEntryUpdate) error {
	if update.Direction != ledger.DirectionIncoming {
		return nil
	}

	var total, totalPaid decimal.Decimal
	switch {
	case update.BillID != nil:
		bill, err := s.billRepo.FindByIDForTenantForUpdate(ctx, tenantID, *update.BillID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("Bill not found")
			}
			return err
		}
		total = bill.TotalAmount
		totalPaid, err = s.creditRepo.SumForBill(ctx, tenantID, bill.ID, ledger.DirectionIncoming)
		if err != nil {
			return err
		}
	case update.ProxyBillID != nil:
		proxy, err := s.proxyRepo.FindByIDForTenantForUpdate(ctx, tenantID, *update.ProxyBillID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("Proxy bill not found")
			}
			return err
		}
		total = proxy.TotalAmount
		totalPaid, err = s.creditRepo.SumForProxyBill(ctx, tenantID, proxy.ID, ledger.DirectionIncoming)
		if err != nil {
			return err
		}
	default:
		return nil
	}

	// The entry's previous contribution leaves the snapshot when it stays
	// on the same container.
	if entry.Direction == ledger.DirectionIncoming && sameContainer(entry, update) {
		totalPaid = totalPaid.Sub(entry.Amount)
	}

	newTotal := totalPaid.Add(update.Amount.Amount())
	if newTotal.GreaterThan(total) {
		return shared.NewInvariantViolationError(fmt.Sprintf(
			"Edited payment brings paid total to %s, exceeding container total %s", newTotal, total))
	}
	return nil
}

func sameContainer(entry *ledger.CreditEntry, update ledger.CreditEntryUpdate) bool {
	if update.BillID != nil {
		return entry.BillID != nil && *entry.BillID == *update.BillID
	}
	if update.ProxyBillID != nil {
		return entry.ProxyBillID != nil && *entry.ProxyBillID == *update.ProxyBillID
	}
	return false
}

func (s *CreditEntryService) recordAudit(ctx context.Context, actor authz.Principal, action string, entityID uuid.UUID, details string) error {
	record, err := audit.NewAuditLog(actor.TenantID, actor.UserID, action, audit.EntityCreditEntry, entityID)
	if err != nil {
		return err
	}
	record.WithUsername(actor.Username).WithDetails(details).WithIPAddress(actor.ClientIP)
	return s.recorder.Record(ctx, record)
}
