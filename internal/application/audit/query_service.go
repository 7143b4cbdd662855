package audit

import (
	"context"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/google/uuid"
)

// QueryService serves the admin activity page. It only reads; entries
// are appended by the services that perform the recorded actions.
type QueryService struct {
	repo audit.AuditLogRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(repo audit.AuditLogRepository) *QueryService {
	return &QueryService{repo: repo}
}

// List retrieves trail entries for a tenant, newest first by default
func (s *QueryService) List(ctx context.Context, tenantID uuid.UUID, filter AuditLogListFilter) ([]AuditLogResponse, int64, error) {
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

	domainFilter := audit.AuditLogFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Filters:  make(map[string]any),
		},
		UserID:   filter.UserID,
		EntityID: filter.EntityID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	if filter.Action != "" {
		action := filter.Action
		domainFilter.Action = &action
	}
	if filter.EntityType != "" {
		entityType := filter.EntityType
		domainFilter.EntityType = &entityType
	}

	entries, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAuditLogResponses(entries), total, nil
}
