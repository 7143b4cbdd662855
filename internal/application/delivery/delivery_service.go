package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/delivery"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryService handles delivery order operations. Reads for the
// restricted delivery role pass the assignee scope; an order assigned to
// someone else then surfaces as NOT_FOUND, never FORBIDDEN, so the role
// cannot probe for other runs.
type DeliveryService struct {
	orderRepo delivery.DeliveryOrderRepository
	billRepo  ledger.BillRepository
	proxyRepo ledger.ProxyBillRepository
	userRepo  identity.UserRepository
	recorder  audit.Recorder
	txManager shared.TxManager
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(
	orderRepo delivery.DeliveryOrderRepository,
	billRepo ledger.BillRepository,
	proxyRepo ledger.ProxyBillRepository,
	userRepo identity.UserRepository,
	recorder audit.Recorder,
	txManager shared.TxManager,
) *DeliveryService {
	return &DeliveryService{
		orderRepo: orderRepo,
		billRepo:  billRepo,
		proxyRepo: proxyRepo,
		userRepo:  userRepo,
		recorder:  recorder,
		txManager: txManager,
	}
}

// Create creates a pending delivery order for a bill or a proxy bill. The
// vendor is taken from the referenced container and the order is assigned
// to an active delivery user at creation.
func (s *DeliveryService) Create(ctx context.Context, actor authz.Principal, req CreateDeliveryRequest) (*DeliveryOrderResponse, error) {
	exists, err := s.orderRepo.ExistsByOrderNumber(ctx, actor.TenantID, req.OrderNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDuplicateKeyError(fmt.Sprintf("Delivery order with number %s already exists", req.OrderNumber))
	}

	vendorID, err := s.resolveContainer(ctx, actor.TenantID, req.BillID, req.ProxyBillID)
	if err != nil {
		return nil, err
	}

	if err := s.validateAssignee(ctx, actor.TenantID, req.AssignedTo); err != nil {
		return nil, err
	}

	order, err := delivery.NewDeliveryOrder(actor.TenantID, req.OrderNumber, vendorID, req.BillID, req.ProxyBillID, req.Address)
	if err != nil {
		return nil, err
	}
	if err := order.Assign(req.AssignedTo); err != nil {
		return nil, err
	}
	if req.ContactPhone != "" {
		if err := order.SetContactPhone(req.ContactPhone); err != nil {
			return nil, err
		}
	}
	if req.ScheduledDate != nil {
		order.SetScheduledDate(*req.ScheduledDate)
	}
	if req.Remarks != "" {
		if err := order.SetRemarks(req.Remarks); err != nil {
			return nil, err
		}
	}
	order.SetCreatedBy(actor.UserID)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionCreateDelivery, order.ID, detailsJSON(map[string]any{
			"order_number": order.OrderNumber,
			"address":      order.Address,
		}))
	})
	if err != nil {
		return nil, err
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a delivery order. With assignedTo set, orders assigned
// to anyone else surface as NOT_FOUND.
func (s *DeliveryService) GetByID(ctx context.Context, tenantID, id uuid.UUID, assignedTo *uuid.UUID) (*DeliveryOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if assignedTo != nil && !order.IsAssignedTo(*assignedTo) {
		return nil, shared.ErrNotFound
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}

// List retrieves delivery orders with filtering and pagination. The HTTP
// layer forces AssignedTo to the caller for the restricted delivery role,
// overriding any client-supplied value.
func (s *DeliveryService) List(ctx context.Context, tenantID uuid.UUID, filter DeliveryListFilter) ([]DeliveryOrderResponse, int64, error) {
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

	domainFilter := delivery.DeliveryOrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
			Filters:  make(map[string]any),
		},
		AssignedTo:  filter.AssignedTo,
		VendorID:    filter.VendorID,
		BillID:      filter.BillID,
		ProxyBillID: filter.ProxyBillID,
		FromDate:    filter.FromDate,
		ToDate:      filter.ToDate,
	}
	if filter.Status != "" {
		status := delivery.DeliveryStatus(filter.Status)
		domainFilter.Status = &status
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDeliveryOrderResponses(orders), total, nil
}

// UpdateStatus moves an order to the named status. The reason, when given,
// is recorded on cancellation. The same assignee scope as GetByID applies.
func (s *DeliveryService) UpdateStatus(ctx context.Context, actor authz.Principal, id uuid.UUID, req UpdateDeliveryStatusRequest, assignedTo *uuid.UUID) (*DeliveryOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if assignedTo != nil && !order.IsAssignedTo(*assignedTo) {
		return nil, shared.ErrNotFound
	}

	from := order.Status
	target := delivery.DeliveryStatus(req.Status)
	if target == delivery.DeliveryStatusCancelled && req.Reason != "" {
		err = order.Cancel(req.Reason)
	} else {
		err = order.TransitionTo(target)
	}
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		return s.recordAudit(ctx, actor, audit.ActionUpdateDeliveryStatus, order.ID, detailsJSON(map[string]any{
			"order_number": order.OrderNumber,
			"from":         from,
			"to":           order.Status,
		}))
	})
	if err != nil {
		return nil, err
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}

// resolveContainer validates the bill XOR proxy bill link and returns the
// container's vendor.
func (s *DeliveryService) resolveContainer(ctx context.Context, tenantID uuid.UUID, billID, proxyBillID *uuid.UUID) (uuid.UUID, error) {
	switch {
	case billID != nil && proxyBillID != nil:
		return uuid.Nil, shared.NewValidationError("Delivery cannot reference both a bill and a proxy bill")
	case billID != nil:
		bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, *billID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.NewNotFoundError("Bill not found")
			}
			return uuid.Nil, err
		}
		return bill.VendorID, nil
	case proxyBillID != nil:
		proxy, err := s.proxyRepo.FindByIDForTenant(ctx, tenantID, *proxyBillID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.NewNotFoundError("Proxy bill not found")
			}
			return uuid.Nil, err
		}
		return proxy.VendorID, nil
	default:
		return uuid.Nil, shared.NewValidationError("Delivery must reference a bill or a proxy bill")
	}
}

// validateAssignee checks that the assignee is a delivery user who can
// still take runs. A locked assignee passes; the lock expires well before
// the run does.
func (s *DeliveryService) validateAssignee(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("Assignee not found")
		}
		return err
	}
	if user.RoleCode != identity.RoleCodeDelivery {
		return shared.NewValidationError("Assignee must hold the DELIVERY role")
	}
	if user.Status == identity.UserStatusDeactivated {
		return shared.NewValidationError("Assignee account is deactivated")
	}
	return nil
}

func (s *DeliveryService) recordAudit(ctx context.Context, actor authz.Principal, action string, entityID uuid.UUID, details string) error {
	entry, err := audit.NewAuditLog(actor.TenantID, actor.UserID, action, audit.EntityDeliveryOrder, entityID)
	if err != nil {
		return err
	}
	entry.WithUsername(actor.Username).WithDetails(details).WithIPAddress(actor.ClientIP)
	return s.recorder.Record(ctx, entry)
}

func detailsJSON(kv map[string]any) string {
	b, err := json.Marshal(kv)
	if err != nil {
		return ""
	}
	return string(b)
}
