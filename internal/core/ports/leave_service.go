package ports

import (
	"context"
	"time"

	"github.com/hrkit/leave-system/internal/core/domain"
)

// ApplyLeaveInput carries all data needed to file a leave request. Date may
// carry a time-of-day; the service truncates it to a UTC calendar day.
type ApplyLeaveInput struct {
	UserID string
	Type   string
	Date   time.Time
	Reason string
}

// ListLeavesInput carries all parameters for the list endpoint.
type ListLeavesInput struct {
	UserID string
	Type   string // optional filter
	Page   int    // defaults to 1
	Limit  int    // defaults to 10
}

// ListLeavesResult is returned by List.
type ListLeavesResult struct {
	Items      []*domain.LeaveRequest
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// LeaveService defines use-case operations for leave requests.
type LeaveService interface {
	Apply(ctx context.Context, input ApplyLeaveInput) (*domain.LeaveRequest, error)
	List(ctx context.Context, input ListLeavesInput) (*ListLeavesResult, error)
	GetByID(ctx context.Context, leaveID, userID string) (*domain.LeaveRequest, error)
}
