package delivery

import (
	"context"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryOrderFilter defines filtering options for delivery order queries
type DeliveryOrderFilter struct {
	shared.Filter
	Status      *DeliveryStatus
	AssignedTo  *uuid.UUID // Set for DELIVERY users so they list only their own runs
	VendorID    *uuid.UUID
	BillID      *uuid.UUID
	ProxyBillID *uuid.UUID
	FromDate    *time.Time
	ToDate      *time.Time
}

// DeliveryOrderRepository defines the persistence contract for delivery orders
type DeliveryOrderRepository interface {
	// FindByIDForTenant retrieves a delivery order by ID within a tenant.
	// Returns shared.ErrNotFound when absent.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*DeliveryOrder, error)

	// FindAllForTenant retrieves delivery orders matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter DeliveryOrderFilter) ([]*DeliveryOrder, error)

	// CountForTenant counts delivery orders matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter DeliveryOrderFilter) (int64, error)

	// Save persists a delivery order (insert or update)
	Save(ctx context.Context, order *DeliveryOrder) error

	// ExistsByOrderNumber checks number uniqueness within a tenant
	ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error)

	// CountByStatusForTenant returns order counts grouped by status
	CountByStatusForTenant(ctx context.Context, tenantID uuid.UUID) (map[DeliveryStatus]int64, error)
}
