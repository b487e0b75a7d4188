package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrkit/leave-system/internal/api/metrics"
	"github.com/hrkit/leave-system/internal/core/domain"
	"github.com/hrkit/leave-system/internal/core/ports"
)

const (
	// backdateWindowDays is how far in the past a leave date may lie. The
	// admissible window starts at today-3d (inclusive) and has no upper bound.
	backdateWindowDays = 3

	defaultPageLimit = 10
)

// LeaveService implements leave-request admission and retrieval.
type LeaveService struct {
	repo   ports.LeaveRepository
	logger zerolog.Logger
}

func NewLeaveService(repo ports.LeaveRepository, logger zerolog.Logger) *LeaveService {
	return &LeaveService{repo: repo, logger: logger}
}

// Apply validates and persists a new leave request with status Pending.
//
// The conflict pre-check gives a friendly error under normal operation; the
// store's unique (user, date) index remains the source of truth, so two
// concurrent applies for the same day cannot both land — the loser's insert
// comes back as a duplicate and is reported as the same conflict.
func (s *LeaveService) Apply(ctx context.Context, input ports.ApplyLeaveInput) (*domain.LeaveRequest, error) {
	leaveType := domain.LeaveType(input.Type)
	if !leaveType.Valid() {
		metrics.LeaveRejectionsTotal.WithLabelValues("invalid_type").Inc()
		return nil, domain.ErrInvalidLeaveType
	}

	date := domain.DayUTC(input.Date)

	existing, err := s.repo.FindByUserAndDate(ctx, input.UserID, date)
	if err != nil && !errors.Is(err, domain.ErrLeaveNotFound) {
		return nil, fmt.Errorf("apply leave: %w", err)
	}
	if existing != nil {
		metrics.LeaveRejectionsTotal.WithLabelValues("conflict").Inc()
		return nil, domain.ErrLeaveConflict
	}

	earliest := domain.DayUTC(time.Now()).AddDate(0, 0, -backdateWindowDays)
	if date.Before(earliest) {
		metrics.LeaveRejectionsTotal.WithLabelValues("backdated").Inc()
		return nil, domain.ErrLeaveBackdated
	}

	now := time.Now().UTC()
	leave := &domain.LeaveRequest{
		UserID:    input.UserID,
		Type:      leaveType,
		Date:      date,
		Reason:    input.Reason,
		Status:    domain.LeavePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, leave); err != nil {
		if errors.Is(err, domain.ErrLeaveConflict) {
			metrics.LeaveRejectionsTotal.WithLabelValues("conflict").Inc()
			return nil, domain.ErrLeaveConflict
		}
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create leave request")
		return nil, err
	}

	metrics.LeavesAppliedTotal.WithLabelValues(string(leaveType)).Inc()
	s.logger.Info().
		Str("user_id", input.UserID).
		Str("type", string(leaveType)).
		Time("date", date).
		Msg("leave request admitted")

	return leave, nil
}

// List returns one page of the user's leave requests ordered by date
// descending. Each call produces a fresh page; no cursor is retained.
func (s *LeaveService) List(ctx context.Context, input ports.ListLeavesInput) (*ports.ListLeavesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListLeavesFilter{
		UserID: input.UserID,
		Type:   domain.LeaveType(input.Type),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListLeavesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID returns the request only when it belongs to userID. Cross-user
// access reports not-found, never forbidden, so existence does not leak.
func (s *LeaveService) GetByID(ctx context.Context, leaveID, userID string) (*domain.LeaveRequest, error) {
	return s.repo.FindByID(ctx, leaveID, userID)
}
