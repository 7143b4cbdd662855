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
	"github.com/shopspring/decimal"
)

// BillService handles bill-related business operations. Every mutation
// appends its trail entry inside the same transaction as the store write.
type BillService struct {
	billRepo   ledger.BillRepository
	proxyRepo  ledger.ProxyBillRepository
	creditRepo ledger.CreditEntryRepository
	vendorRepo partner.VendorRepository
	recon      *ledger.ReconciliationService
	recorder   audit.Recorder
	txManager  shared.TxManager
	taxRate    decimal.Decimal
}

// NewBillService creates a new BillService. The tax rate applies to every
// bill created through the service; items carry pre-tax prices.
func NewBillService(
	billRepo ledger.BillRepository,
	proxyRepo ledger.ProxyBillRepository,
	creditRepo ledger.CreditEntryRepository,
	vendorRepo partner.VendorRepository,
	recon *ledger.ReconciliationService,
	recorder audit.Recorder,
	txManager shared.TxManager,
	taxRate decimal.Decimal,
) *BillService {
	return &BillService{
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		creditRepo: creditRepo,
		vendorRepo: vendorRepo,
		recon:      recon,
		recorder:   recorder,
		txManager:  txManager,
		taxRate:    taxRate,
	}
}

// Create creates a new bill in DRAFT status. When the request carries an
// immediate payment block, the payment is recorded through the
// reconciliation path in the same transaction; a rejected payment rolls the
// bill back too.
func (s *BillService) Create(ctx context.Context, actor authz.Principal, req CreateBillRequest) (*BillResponse, error) {
	// Check if bill number already exists
	exists, err := s.billRepo.ExistsByBillNumber(ctx, actor.TenantID, req.BillNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Bill with number %s already exists", req.BillNumber))
	}

	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, actor.TenantID, req.VendorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Vendor not found")
		}
		return nil, err
	}

	items, err := toDomainBillItems(req.Items)
	if err != nil {
		return nil, err
	}

	bill, err := ledger.NewBill(
		actor.TenantID,
		req.BillNumber,
		vendor.ID,
		vendor.Name,
		ledger.BillType(req.BillType),
		req.BillDate,
		items,
		s.taxRate,
	)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		bill.Notes = req.Notes
	}
	bill.SetCreatedBy(actor.UserID)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}
		if err := s.recordAudit(ctx, actor, audit.ActionCreateBill, audit.EntityBill, bill.ID, detailsJSON(map[string]any{
			"bill_number": bill.BillNumber,
			"vendor":      bill.VendorName,
			"total":       bill.TotalAmount,
		})); err != nil {
			return err
		}
		if req.ImmediatePayment == nil {
			return nil
		}
		// No payments can exist yet, the paid snapshot is zero.
		_, err := s.recordBillPayment(ctx, actor, bill, decimal.Zero, req.ImmediatePayment.asPaymentRequest())
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.billResponse(ctx, bill)
}

// GetByID retrieves a bill with its derived reconciliation state. With
// authorizedOnly set, unauthorized bills surface as NOT_FOUND rather than
// FORBIDDEN so the restricted role cannot probe for their existence.
func (s *BillService) GetByID(ctx context.Context, tenantID, id uuid.UUID, authorizedOnly bool) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if authorizedOnly && !bill.IsAuthorized {
		return nil, shared.ErrNotFound
	}
	return s.billResponse(ctx, bill)
}

// List retrieves bills with filtering and pagination
func (s *BillService) List(ctx context.Context, tenantID uuid.UUID, filter BillListFilter) ([]BillListResponse, int64, error) {
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

	domainFilter := ledger.BillFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
			Filters:  make(map[string]any),
		},
		VendorID:       filter.VendorID,
		FromDate:       filter.FromDate,
		ToDate:         filter.ToDate,
		MinAmount:      filter.MinAmount,
		MaxAmount:      filter.MaxAmount,
		AuthorizedOnly: filter.AuthorizedOnly,
	}
	if filter.Status != "" {
		status := ledger.BillStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.BillType != "" {
		billType := ledger.BillType(filter.BillType)
		domainFilter.BillType = &billType
	}
	if filter.PaymentStatus != "" {
		paymentStatus := ledger.PaymentStatus(filter.PaymentStatus)
		domainFilter.PaymentStatus = &paymentStatus
	}

	bills, err := s.billRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.billRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBillListResponses(bills), total, nil
}

// Confirm transitions a bill from DRAFT to CONFIRMED
func (s *BillService) Confirm(ctx context.Context, actor authz.Principal, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := bill.Confirm(); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionConfirmBill, audit.EntityBill, bill.ID, detailsJSON(map[string]any{
			"bill_number": bill.BillNumber,
		}))
	})
	if err != nil {
		return nil, err
	}

	return s.billResponse(ctx, bill)
}

// Cancel transitions a bill to CANCELLED. Recorded payments stay on the
// ledger; cancellation only closes the bill to new activity.
func (s *BillService) Cancel(ctx context.Context, actor authz.Principal, id uuid.UUID, reason string) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := bill.Cancel(reason); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionCancelBill, audit.EntityBill, bill.ID, detailsJSON(map[string]any{
			"bill_number": bill.BillNumber,
			"reason":      reason,
		}))
	})
	if err != nil {
		return nil, err
	}

	return s.billResponse(ctx, bill)
}

// Authorize makes a bill visible to the restricted organiser role
func (s *BillService) Authorize(ctx context.Context, actor authz.Principal, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := bill.Authorize(actor.UserID); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionAuthorizeBill, audit.EntityBill, bill.ID, detailsJSON(map[string]any{
			"bill_number": bill.BillNumber,
		}))
	})
	if err != nil {
		return nil, err
	}

	return s.billResponse(ctx, bill)
}

// Unauthorize withdraws organiser visibility from a bill
func (s *BillService) Unauthorize(ctx context.Context, actor authz.Principal, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	bill.Unauthorize()

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionUnauthorizeBill, audit.EntityBill, bill.ID, detailsJSON(map[string]any{
			"bill_number": bill.BillNumber,
		}))
	})
	if err != nil {
		return nil, err
	}

	return s.billResponse(ctx, bill)
}

// AcceptPayment records a payment against a bill. The bill row stays locked
// while the paid snapshot is read and the cap checked, so two concurrent
// payments cannot jointly overshoot the total.
func (s *BillService) AcceptPayment(ctx context.Context, actor authz.Principal, id uuid.UUID, req AcceptPaymentRequest) (*CreditEntryResponse, error) {
	var entry *ledger.CreditEntry

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.FindByIDForTenantForUpdate(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}

		totalPaid, err := s.creditRepo.SumForBill(ctx, actor.TenantID, bill.ID, ledger.DirectionIncoming)
		if err != nil {
			return err
		}

		entry, err = s.recordBillPayment(ctx, actor, bill, totalPaid, &req)
		if err != nil {
			return err
		}

		return s.recordAudit(ctx, actor, audit.ActionMarkBillPaid, audit.EntityBill, bill.ID, detailsJSON(map[string]any{
			"bill_number":  bill.BillNumber,
			"payment_type": req.Type,
			"amount":       entry.Amount,
		}))
	})
	if err != nil {
		return nil, err
	}

	response := ToCreditEntryResponse(entry)
	return &response, nil
}

// Split atomically carves a bill into N proxy bills. Any bad part, an
// unknown vendor, a duplicate proxy number, a malformed item, fails the
// whole operation and no proxy bill is persisted.
func (s *BillService) Split(ctx context.Context, actor authz.Principal, id uuid.UUID, req SplitBillRequest) (*SplitBillResponse, error) {
	var parent *ledger.Bill
	var created []*ledger.ProxyBill

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.FindByIDForTenantForUpdate(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if !bill.CanSplit() {
			return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot split bill in %s status", bill.Status))
		}
		parent = bill

		seen := make(map[string]struct{}, len(req.Splits))
		proxies := make([]*ledger.ProxyBill, 0, len(req.Splits))
		for i := range req.Splits {
			part := &req.Splits[i]

			if _, dup := seen[part.ProxyNumber]; dup {
				return shared.NewDuplicateKeyError(fmt.Sprintf("Proxy number %s appears twice in the split", part.ProxyNumber))
			}
			seen[part.ProxyNumber] = struct{}{}

			exists, err := s.proxyRepo.ExistsByProxyNumber(ctx, actor.TenantID, part.ProxyNumber)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDuplicateKeyError(fmt.Sprintf("Proxy bill with number %s already exists", part.ProxyNumber))
			}

			vendorID, vendorName := bill.VendorID, bill.VendorName
			if part.VendorID != nil && *part.VendorID != bill.VendorID {
				vendor, err := s.vendorRepo.FindByIDForTenant(ctx, actor.TenantID, *part.VendorID)
				if err != nil {
					if errors.Is(err, shared.ErrNotFound) {
						return shared.NewNotFoundError(fmt.Sprintf("Vendor not found for split %s", part.ProxyNumber))
					}
					return err
				}
				vendorID, vendorName = vendor.ID, vendor.Name
			}

			items, err := toDomainProxyItems(part.Items)
			if err != nil {
				return err
			}

			proxy, err := ledger.NewProxyBill(actor.TenantID, part.ProxyNumber, bill.ID, vendorID, vendorName, items)
			if err != nil {
				return err
			}
			if part.Notes != "" {
				proxy.Notes = part.Notes
			}
			proxy.SetCreatedBy(actor.UserID)
			proxies = append(proxies, proxy)
		}

		if err := s.proxyRepo.SaveAll(ctx, proxies); err != nil {
			return err
		}
		created = proxies

		return s.recordAudit(ctx, actor, audit.ActionCreateProxySplits, audit.EntityBill, bill.ID, detailsJSON(map[string]any{
			"bill_number": bill.BillNumber,
			"splits":      len(proxies),
		}))
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ProxyBillResponse, len(created))
	for i, proxy := range created {
		responses[i] = ToProxyBillResponse(proxy)
	}
	return &SplitBillResponse{ParentBillID: parent.ID, Created: responses}, nil
}

// recordBillPayment validates one payment against a consistent paid snapshot,
// persists the entry, and writes its CREATE_CREDIT trail row. Callers run it
// inside the surrounding transaction.
func (s *BillService) recordBillPayment(ctx context.Context, actor authz.Principal, bill *ledger.Bill, totalPaid decimal.Decimal, req *AcceptPaymentRequest) (*ledger.CreditEntry, error) {
	amount, err := resolvePaymentAmount(bill, req.Type, req.Amount)
	if err != nil {
		return nil, err
	}

	spec := paymentSpec(req, bill.BillDate, fmt.Sprintf("Payment for bill %s", bill.BillNumber))

	entry, err := s.recon.AcceptPayment(bill, totalPaid, amount, spec)
	if err != nil {
		return nil, err
	}
	entry.SetCreatedBy(actor.UserID)

	if err := s.creditRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.recordAudit(ctx, actor, audit.ActionCreateCredit, audit.EntityCreditEntry, entry.ID, detailsJSON(map[string]any{
		"bill_number": bill.BillNumber,
		"amount":      entry.Amount,
		"direction":   entry.Direction,
	})); err != nil {
		return nil, err
	}

	return entry, nil
}

// billResponse assembles the detail response with its reconciliation block
func (s *BillService) billResponse(ctx context.Context, bill *ledger.Bill) (*BillResponse, error) {
	totalPaid, err := s.creditRepo.SumForBill(ctx, bill.TenantID, bill.ID, ledger.DirectionIncoming)
	if err != nil {
		return nil, err
	}

	remaining, err := s.recon.Remaining(bill.TotalAmount, totalPaid)
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	response.Reconciliation = &ReconciliationResponse{
		TotalPaid:     totalPaid,
		Remaining:     remaining,
		PaymentStatus: s.recon.PaymentStatusFor(totalPaid, bill.TotalAmount).String(),
	}
	return &response, nil
}

func (s *BillService) recordAudit(ctx context.Context, actor authz.Principal, action, entityType string, entityID uuid.UUID, details string) error {
	entry, err := audit.NewAuditLog(actor.TenantID, actor.UserID, action, entityType, entityID)
	if err != nil {
		return err
	}
	entry.WithUsername(actor.Username).WithDetails(details).WithIPAddress(actor.ClientIP)
	return s.recorder.Record(ctx, entry)
}
