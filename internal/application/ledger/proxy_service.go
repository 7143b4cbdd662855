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
	"github.com/google/uuid"
)

// ProxyBillService handles proxy bill operations. N-way splits live on
// BillService; this service covers the standalone lifecycle of a single
// proxy bill.
type ProxyBillService struct {
	proxyRepo  ledger.ProxyBillRepository
	billRepo   ledger.BillRepository
	creditRepo ledger.CreditEntryRepository
	vendorRepo partner.VendorRepository
	recon      *ledger.ReconciliationService
	recorder   audit.Recorder
	txManager  shared.TxManager
}

// NewProxyBillService creates a new ProxyBillService
func NewProxyBillService(
	proxyRepo ledger.ProxyBillRepository,
	billRepo ledger.BillRepository,
	creditRepo ledger.CreditEntryRepository,
	vendorRepo partner.VendorRepository,
	recon *ledger.ReconciliationService,
	recorder audit.Recorder,
	txManager shared.TxManager,
) *ProxyBillService {
	return &ProxyBillService{
		proxyRepo:  proxyRepo,
		billRepo:   billRepo,
		creditRepo: creditRepo,
		vendorRepo: vendorRepo,
		recon:      recon,
		recorder:   recorder,
		txManager:  txManager,
	}
}

// Create creates a single proxy bill against an existing parent. The vendor
// defaults to the parent's vendor when the request leaves it empty.
func (s *ProxyBillService) Create(ctx context.Context, actor authz.Principal, req CreateProxyBillRequest) (*ProxyBillResponse, error) {
	exists, err := s.proxyRepo.ExistsByProxyNumber(ctx, actor.TenantID, req.ProxyNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Proxy bill with number %s already exists", req.ProxyNumber))
	}

	parent, err := s.billRepo.FindByIDForTenant(ctx, actor.TenantID, req.ParentBillID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Parent bill not found")
		}
		return nil, err
	}
	if !parent.CanSplit() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot add a proxy bill to a bill in %s status", parent.Status))
	}

	vendorID, vendorName := parent.VendorID, parent.VendorName
	if req.VendorID != nil && *req.VendorID != parent.VendorID {
		vendor, err := s.vendorRepo.FindByIDForTenant(ctx, actor.TenantID, *req.VendorID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewNotFoundError("Vendor not found")
			}
			return nil, err
		}
		vendorID, vendorName = vendor.ID, vendor.Name
	}

	items, err := toDomainProxyItems(req.Items)
	if err != nil {
		return nil, err
	}

	proxy, err := ledger.NewProxyBill(actor.TenantID, req.ProxyNumber, parent.ID, vendorID, vendorName, items)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		proxy.Notes = req.Notes
	}
	proxy.SetCreatedBy(actor.UserID)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.proxyRepo.Save(ctx, proxy); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionCreateProxyBill, proxy.ID, detailsJSON(map[string]any{
			"proxy_number": proxy.ProxyNumber,
			"parent_bill":  parent.BillNumber,
			"vendor":       proxy.VendorName,
		}))
	})
	if err != nil {
		return nil, err
	}

	return s.proxyResponse(ctx, proxy)
}

// GetByID retrieves a proxy bill with its derived reconciliation state
func (s *ProxyBillService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProxyBillResponse, error) {
	proxy, err := s.proxyRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.proxyResponse(ctx, proxy)
}

// List retrieves proxy bills with filtering and pagination
func (s *ProxyBillService) List(ctx context.Context, tenantID uuid.UUID, filter ProxyBillListFilter) ([]ProxyBillResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := ledger.ProxyBillFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
			Filters:  make(map[string]any),
		},
		ParentBillID: filter.ParentBillID,
		VendorID:     filter.VendorID,
		FromDate:     filter.FromDate,
		ToDate:       filter.ToDate,
	}
	if filter.Status != "" {
		status := ledger.BillStatus(filter.Status)
		domainFilter.Status = &status
	}

	proxies, err := s.proxyRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.proxyRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProxyBillResponses(proxies), total, nil
}

// ListByParent retrieves all proxy bills split off one bill
func (s *ProxyBillService) ListByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) ([]ProxyBillResponse, error) {
	proxies, err := s.proxyRepo.FindByParentBill(ctx, tenantID, parentBillID)
	if err != nil {
		return nil, err
	}
	return ToProxyBillResponses(proxies), nil
}

// ReassignVendor moves a draft proxy bill to another vendor
func (s *ProxyBillService) ReassignVendor(ctx context.Context, actor authz.Principal, id uuid.UUID, req ReassignProxyVendorRequest) (*ProxyBillResponse, error) {
	proxy, err := s.proxyRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, actor.TenantID, req.VendorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Vendor not found")
		}
		return nil, err
	}

	previous := proxy.VendorName
	if err := proxy.ReassignVendor(vendor.ID, vendor.Name); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.proxyRepo.Save(ctx, proxy); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionReassignProxyVendor, proxy.ID, detailsJSON(map[string]any{
			"proxy_number": proxy.ProxyNumber,
			"from":         previous,
			"to":           vendor.Name,
		}))
	})
	if err != nil {
		return nil, err
	}

	return s.proxyResponse(ctx, proxy)
}

// Confirm transitions a proxy bill from DRAFT to CONFIRMED
func (s *ProxyBillService) Confirm(ctx context.Context, actor authz.Principal, id uuid.UUID) (*ProxyBillResponse, error) {
	proxy, err := s.proxyRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := proxy.Confirm(); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.proxyRepo.Save(ctx, proxy); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionConfirmProxyBill, proxy.ID, detailsJSON(map[string]any{
			"proxy_number": proxy.ProxyNumber,
		}))
	})
	if err != nil {
		return nil, err
	}

	return s.proxyResponse(ctx, proxy)
}

// Cancel transitions a proxy bill to CANCELLED
func (s *ProxyBillService) Cancel(ctx context.Context, actor authz.Principal, id uuid.UUID, reason string) (*ProxyBillResponse, error) {
	proxy, err := s.proxyRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := proxy.Cancel(reason); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.proxyRepo.Save(ctx, proxy); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionCancelProxyBill, proxy.ID, detailsJSON(map[string]any{
			"proxy_number": proxy.ProxyNumber,
			"reason":       reason,
		}))
	})
	if err != nil {
		return nil, err
	}

	return s.proxyResponse(ctx, proxy)
}

// AcceptPayment records a payment against a proxy bill under a row lock, the
// same serialization the bill path uses.
func (s *ProxyBillService) AcceptPayment(ctx context.Context, actor authz.Principal, id uuid.UUID, req AcceptPaymentRequest) (*CreditEntryResponse, error) {
	var entry *ledger.CreditEntry

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		proxy, err := s.proxyRepo.FindByIDForTenantForUpdate(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}

		totalPaid, err := s.creditRepo.SumForProxyBill(ctx, actor.TenantID, proxy.ID, ledger.DirectionIncoming)
		if err != nil {
			return err
		}

		amount, err := resolvePaymentAmount(proxy, req.Type, req.Amount)
		if err != nil {
			return err
		}

		spec := paymentSpec(&req, proxy.CreatedAt, fmt.Sprintf("Payment for proxy bill %s", proxy.ProxyNumber))

		entry, err = s.recon.AcceptPayment(proxy, totalPaid, amount, spec)
		if err != nil {
			return err
		}
		entry.SetCreatedBy(actor.UserID)

		if err := s.creditRepo.Save(ctx, entry); err != nil {
			return err
		}

		record, err := audit.NewAuditLog(actor.TenantID, actor.UserID, audit.ActionCreateCredit, audit.EntityCreditEntry, entry.ID)
		if err != nil {
			return err
		}
		record.WithUsername(actor.Username).WithIPAddress(actor.ClientIP).WithDetails(detailsJSON(map[string]any{
			"proxy_number": proxy.ProxyNumber,
			"amount":       entry.Amount,
			"direction":    entry.Direction,
		}))
		return s.recorder.Record(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	response := ToCreditEntryResponse(entry)
	return &response, nil
}

// proxyResponse assembles the detail response with its reconciliation block
func (s *ProxyBillService) proxyResponse(ctx context.Context, proxy *ledger.ProxyBill) (*ProxyBillResponse, error) {
	totalPaid, err := s.creditRepo.SumForProxyBill(ctx, proxy.TenantID, proxy.ID, ledger.DirectionIncoming)
	if err != nil {
		return nil, err
	}

	remaining, err := s.recon.Remaining(proxy.TotalAmount, totalPaid)
	if err != nil {
		return nil, err
	}

	response := ToProxyBillResponse(proxy)
	response.Reconciliation = &ReconciliationResponse{
		TotalPaid:     totalPaid,
		Remaining:     remaining,
		PaymentStatus: s.recon.PaymentStatusFor(totalPaid, proxy.TotalAmount).String(),
	}
	return &response, nil
}

func (s *ProxyBillService) recordAudit(ctx context.Context, actor authz.Principal, action string, entityID uuid.UUID, details string) error {
	entry, err := audit.NewAuditLog(actor.TenantID, actor.UserID, action, audit.EntityProxyBill, entityID)
	if err != nil {
		return err
	}
	entry.WithUsername(actor.Username).WithDetails(details).WithIPAddress(actor.ClientIP)
	return s.recorder.Record(ctx, entry)
}
