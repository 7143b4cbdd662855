package report

import (
	"context"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/delivery"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/partner"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// ReportService assembles the read-only reporting surface. Every figure
// is derived on demand from the ledger's current snapshot through the
// reconciliation service; nothing here is stored or cached.
type ReportService struct {
	vendorRepo partner.VendorRepository
	billRepo   ledger.BillRepository
	creditRepo ledger.CreditEntryRepository
	orderRepo  delivery.DeliveryOrderRepository
	recon      *ledger.ReconciliationService
}

// NewReportService creates a new ReportService
func NewReportService(
	vendorRepo partner.VendorRepository,
	billRepo ledger.BillRepository,
	creditRepo ledger.CreditEntryRepository,
	orderRepo delivery.DeliveryOrderRepository,
	recon *ledger.ReconciliationService,
) *ReportService {
	return &ReportService{
		vendorRepo: vendorRepo,
		billRepo:   billRepo,
		creditRepo: creditRepo,
		orderRepo:  orderRepo,
		recon:      recon,
	}
}

// Dashboard returns the tenant's headline figures. The outstanding total
// uses the same formula as the per-vendor report, applied to tenant-wide
// sums.
func (s *ReportService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*DashboardResponse, error) {
	vendorCount, err := s.vendorRepo.CountForTenant(ctx, tenantID, partner.VendorFilter{})
	if err != nil {
		return nil, err
	}

	billCount, err := s.billRepo.CountForTenant(ctx, tenantID, ledger.BillFilter{})
	if err != nil {
		return nil, err
	}

	billed, err := s.billRepo.SumConfirmedTotalForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	incoming, err := s.creditRepo.SumForTenant(ctx, tenantID, ledger.DirectionIncoming, nil, nil)
	if err != nil {
		return nil, err
	}

	outgoing, err := s.creditRepo.SumForTenant(ctx, tenantID, ledger.DirectionOutgoing, nil, nil)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		VendorCount: vendorCount,
		BillCount:   billCount,
		Outstanding: s.recon.VendorOutstanding(billed, incoming, outgoing),
	}, nil
}

// OutstandingByVendor computes the net unsettled amount per vendor.
// Vendors with no billing history and a settled balance stay out of the
// report.
func (s *ReportService) OutstandingByVendor(ctx context.Context, tenantID uuid.UUID) ([]VendorOutstandingResponse, error) {
	vendors, err := s.vendorRepo.FindAllForTenant(ctx, tenantID, partner.VendorFilter{
		Filter: shared.Filter{OrderBy: "name", OrderDir: "asc"},
	})
	if err != nil {
		return nil, err
	}

	results := make([]VendorOutstandingResponse, 0, len(vendors))
	for i := range vendors {
		vendor := &vendors[i]

		billed, err := s.billRepo.SumConfirmedTotalByVendor(ctx, tenantID, vendor.ID)
		if err != nil {
			return nil, err
		}
		incoming, err := s.creditRepo.SumForVendor(ctx, tenantID, vendor.ID, ledger.DirectionIncoming)
		if err != nil {
			return nil, err
		}
		outgoing, err := s.creditRepo.SumForVendor(ctx, tenantID, vendor.ID, ledger.DirectionOutgoing)
		if err != nil {
			return nil, err
		}

		outstanding := s.recon.VendorOutstanding(billed, incoming, outgoing)
		if outstanding.IsZero() && !billed.IsPositive() {
			continue
		}

		results = append(results, VendorOutstandingResponse{
			VendorID:      vendor.ID,
			VendorName:    vendor.Name,
			CustomerCode:  vendor.CustomerCode,
			TotalBilled:   billed,
			TotalIncoming: incoming,
			TotalOutgoing: outgoing,
			Outstanding:   outstanding,
			CreditLimit:   vendor.CreditLimit,
		})
	}

	return results, nil
}

// Collections summarizes incoming and outgoing credit entries over an
// inclusive date range.
func (s *ReportService) Collections(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*CollectionsResponse, error) {
	if to.Before(from) {
		return nil, shared.NewValidationError("Date range end cannot precede its start")
	}

	incoming, err := s.creditRepo.SumForTenant(ctx, tenantID, ledger.DirectionIncoming, &from, &to)
	if err != nil {
		return nil, err
	}

	outgoing, err := s.creditRepo.SumForTenant(ctx, tenantID, ledger.DirectionOutgoing, &from, &to)
	if err != nil {
		return nil, err
	}

	return &CollectionsResponse{
		FromDate:      from,
		ToDate:        to,
		TotalIncoming: incoming,
		TotalOutgoing: outgoing,
		Net:           incoming.Sub(outgoing),
	}, nil
}

// DeliveryStatusCounts counts the tenant's delivery orders per status
func (s *ReportService) DeliveryStatusCounts(ctx context.Context, tenantID uuid.UUID) (*DeliveryStatusReportResponse, error) {
	counts, err := s.orderRepo.CountByStatusForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := &DeliveryStatusReportResponse{
		Pending:   counts[delivery.DeliveryStatusPending],
		InTransit: counts[delivery.DeliveryStatusInTransit],
		Delivered: counts[delivery.DeliveryStatusDelivered],
		Cancelled: counts[delivery.DeliveryStatusCancelled],
	}
	response.Total = response.Pending + response.InTransit + response.Delivered + response.Cancelled

	return response, nil
}
