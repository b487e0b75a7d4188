package ports

import (
	"context"
	"time"

	"github.com/hrkit/leave-system/internal/core/domain"
)

// ListLeavesFilter carries all query parameters for listing leave requests.
// UserID is always enforced by the service layer.
type ListLeavesFilter struct {
	UserID string
	Type   domain.LeaveType // optional: zero value means no type filter
	Page   int              // 1-based
	Limit  int              // rows per page
}

// LeaveRepository defines persistence operations for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, l *domain.LeaveRequest) error
	// FindByUserAndDate retrieves the request filed by userID for the given
	// (already day-normalised) date, or domain.ErrLeaveNotFound.
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.LeaveRequest, error)
	// FindByID is scoped to userID: a request owned by a different user is
	// reported as not found, never as forbidden.
	FindByID(ctx context.Context, id, userID string) (*domain.LeaveRequest, error)
	// List returns a page of requests ordered by date descending plus the
	// total count of requests matching the filter.
	List(ctx context.Context, filter ListLeavesFilter) ([]*domain.LeaveRequest, int64, error)
}
