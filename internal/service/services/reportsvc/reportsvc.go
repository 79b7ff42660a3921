package reportsvc

import (
	"context"

	"github.com/corray333/order-management/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/order-management/internal/service/models/report"
)

const (
	defaultLimit = 5
	maxLimit     = 50
)

// ReportService aggregates persisted orders for reporting queries.
type ReportService struct {
	orderRepo iorderrepo.IOrderRepository
}

// option is a function that configures the ReportService.
type option func(*ReportService)

// MustNewReportService creates a new ReportService.
func MustNewReportService(opts ...option) *ReportService {
	s := &ReportService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order repository for the ReportService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *ReportService) {
		s.orderRepo = repo
	}
}

// TopCustomers returns customers ranked by summed BRL order totals. The
// limit is clamped to [1, 50]; zero means the default of 5. Customers that
// no longer exist are dropped by the aggregation's inner join.
func (s *ReportService) TopCustomers(ctx context.Context, limit int) ([]report.TopCustomer, error) {
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return s.orderRepo.TopCustomers(ctx, limit)
}
