package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrkit/leave-system/internal/core/domain"
	"github.com/hrkit/leave-system/internal/core/ports"
)

type stubLeaveRepo struct {
	leaves []*domain.LeaveRequest
	nextID int
}

func newStubLeaveRepo() *stubLeaveRepo {
	return &stubLeaveRepo{}
}

func cloneLeave(l *domain.LeaveRequest) *domain.LeaveRequest {
	clone := *l
	return &clone
}

func (r *stubLeaveRepo) Create(_ context.Context, l *domain.LeaveRequest) error {
	for _, existing := range r.leaves {
		if existing.UserID == l.UserID && existing.Date.Equal(l.Date) {
			return domain.ErrLeaveConflict
		}
	}
	r.nextID++
	l.ID = fmt.Sprintf("leave_%d", r.nextID)
	r.leaves = append(r.leaves, cloneLeave(l))
	return nil
}

func (r *stubLeaveRepo) FindByUserAndDate(_ context.Context, userID string, date time.Time) (*domain.LeaveRequest, error) {
	for _, l := range r.leaves {
		if l.UserID == userID && l.Date.Equal(date) {
			return cloneLeave(l), nil
		}
	}
	return nil, domain.ErrLeaveNotFound
}

func (r *stubLeaveRepo) FindByID(_ context.Context, id, userID string) (*domain.LeaveRequest, error) {
	for _, l := range r.leaves {
		if l.ID == id && l.UserID == userID {
			return cloneLeave(l), nil
		}
	}
	return nil, domain.ErrLeaveNotFound
}

func (r *stubLeaveRepo) List(_ context.Context, filter ports.ListLeavesFilter) ([]*domain.LeaveRequest, int64, error) {
	var matched []*domain.LeaveRequest
	for _, l := range r.leaves {
		if l.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && l.Type != filter.Type {
			continue
		}
		matched = append(matched, cloneLeave(l))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func newLeaveService(repo *stubLeaveRepo) *LeaveService {
	return NewLeaveService(repo, zerolog.Nop())
}

func TestLeaveService_Apply_Success(t *testing.T) {
	svc := newLeaveService(newStubLeaveRepo())

	date := time.Now().UTC().AddDate(0, 0, 7)
	leave, err := svc.Apply(context.Background(), ports.ApplyLeaveInput{
		UserID: "u1",
		Type:   "Planned",
		Date:   date,
		Reason: "family trip",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if leave.Status != domain.LeavePending {
		t.Fatalf("expected Pending status, got %s", leave.Status)
	}
	if leave.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestLeaveService_Apply_TruncatesToCalendarDay(t *testing.T) {
	svc := newLeaveService(newStubLeaveRepo())

	noon := time.Date(2026, 9, 14, 12, 34, 56, 0, time.UTC)
	leave, err := svc.Apply(context.Background(), ports.ApplyLeaveInput{
		UserID: "u1", Type: "Emergency", Date: noon,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	if !leave.Date.Equal(want) {
		t.Fatalf("expected date truncated to %v, got %v", want, leave.Date)
	}
}

func TestLeaveService_Apply_InvalidType(t *testing.T) {
	svc := newLeaveService(newStubLeaveRepo())

	_, err := svc.Apply(context.Background(), ports.ApplyLeaveInput{
		UserID: "u1",
		Type:   "Vacation",
		Date:   time.Now().UTC(),
	})
	if !errors.Is(err, domain.ErrInvalidLeaveType) {
		t.Fatalf("expected ErrInvalidLeaveType, got %v", err)
	}
}

func TestLeaveService_Apply_Conflict(t *testing.T) {
	svc := newLeaveService(newStubLeaveRepo())
	ctx := context.Background()

	date := time.Now().UTC().AddDate(0, 0, 3)
	if _, err := svc.Apply(ctx, ports.ApplyLeaveInput{UserID: "u1", Type: "Planned", Date: date, Reason: "first"}); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}

	// Same calendar day, different time-of-day and reason.
	_, err := svc.Apply(ctx, ports.ApplyLeaveInput{UserID: "u1", Type: "Planned", Date: date.Add(5 * time.Hour), Reason: "second"})
	if !errors.Is(err, domain.ErrLeaveConflict) {
		t.Fatalf("expected ErrLeaveConflict, got %v", err)
	}

	// A different user is free to take the same day.
	if _, err := svc.Apply(ctx, ports.ApplyLeaveInput{UserID: "u2", Type: "Planned", Date: date}); err != nil {
		t.Fatalf("other user blocked: %v", err)
	}
}

func TestLeaveService_Apply_BackdatingWindow(t *testing.T) {
	svc := newLeaveService(newStubLeaveRepo())
	ctx := context.Background()

	_, err := svc.Apply(ctx, ports.ApplyLeaveInput{
		UserID: "u1", Type: "Emergency", Date: time.Now().UTC().AddDate(0, 0, -4),
	})
	if !errors.Is(err, domain.ErrLeaveBackdated) {
		t.Fatalf("today-4d: expected ErrLeaveBackdated, got %v", err)
	}

	// today-3d is the inclusive lower bound of the window.
	if _, err := svc.Apply(ctx, ports.ApplyLeaveInput{
		UserID: "u1", Type: "Emergency", Date: time.Now().UTC().AddDate(0, 0, -3),
	}); err != nil {
		t.Fatalf("today-3d must be admissible, got %v", err)
	}
}

func TestLeaveService_Apply_DuplicateInsertReportsConflict(t *testing.T) {
	// Even if the pre-check misses (concurrent apply), the store's duplicate
	// rejection surfaces as the same conflict error.
	repo := newStubLeaveRepo()
	svc := newLeaveService(repo)
	ctx := context.Background()

	date := domain.DayUTC(time.Now().UTC().AddDate(0, 0, 1))
	repo.leaves = append(repo.leaves, &domain.LeaveRequest{
		ID: "leave_x", UserID: "u1", Type: domain.LeavePlanned, Date: date, Status: domain.LeavePending,
	})

	_, err := svc.Apply(ctx, ports.ApplyLeaveInput{UserID: "u1", Type: "Planned", Date: date})
	if !errors.Is(err, domain.ErrLeaveConflict) {
		t.Fatalf("expected ErrLeaveConflict, got %v", err)
	}
}

func seedLeaves(t *testing.T, repo *stubLeaveRepo, userID string, n int) []time.Time {
	t.Helper()
	base := domain.DayUTC(time.Now()).AddDate(0, 0, 1)
	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		d := base.AddDate(0, 0, i)
		leaveType := domain.LeavePlanned
		if i%2 == 1 {
			leaveType = domain.LeaveEmergency
		}
		err := repo.Create(context.Background(), &domain.LeaveRequest{
			UserID: userID, Type: leaveType, Date: d, Status: domain.LeavePending,
		})
		if err != nil {
			t.Fatalf("seed leave %d: %v", i, err)
		}
		dates = append(dates, d)
	}
	return dates
}

func TestLeaveService_List_Pagination(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newLeaveService(repo)
	dates := seedLeaves(t, repo, "u1", 25)

	result, err := svc.List(context.Background(), ports.ListLeavesInput{UserID: "u1", Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 25 || result.TotalPages != 3 {
		t.Fatalf("expected total=25 pages=3, got total=%d pages=%d", result.Total, result.TotalPages)
	}
	if len(result.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(result.Items))
	}

	// Date descending: page 2 holds the 11th through 20th newest, i.e.
	// dates[14] down to dates[5].
	if !result.Items[0].Date.Equal(dates[14]) {
		t.Fatalf("expected first item %v, got %v", dates[14], result.Items[0].Date)
	}
	if !result.Items[9].Date.Equal(dates[5]) {
		t.Fatalf("expected last item %v, got %v", dates[5], result.Items[9].Date)
	}
}

func TestLeaveService_List_TypeFilter(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newLeaveService(repo)
	seedLeaves(t, repo, "u1", 10)

	result, err := svc.List(context.Background(), ports.ListLeavesInput{UserID: "u1", Type: "Emergency"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("expected 5 emergency leaves, got %d", result.Total)
	}
	for _, l := range result.Items {
		if l.Type != domain.LeaveEmergency {
			t.Fatalf("filter leaked type %s", l.Type)
		}
	}
}

func TestLeaveService_List_Defaults(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newLeaveService(repo)
	seedLeaves(t, repo, "u1", 15)

	result, err := svc.List(context.Background(), ports.ListLeavesInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Page != 1 || result.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got page=%d limit=%d", result.Page, result.Limit)
	}
	if len(result.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(result.Items))
	}
}

func TestLeaveService_GetByID_ScopedToOwner(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newLeaveService(repo)
	ctx := context.Background()

	leave, err := svc.Apply(ctx, ports.ApplyLeaveInput{
		UserID: "u1", Type: "Planned", Date: time.Now().UTC().AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, err := svc.GetByID(ctx, leave.ID, "u1")
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.ID != leave.ID {
		t.Fatalf("unexpected leave: %+v", got)
	}

	// Cross-user access must look like a missing record, not a permission
	// failure.
	if _, err := svc.GetByID(ctx, leave.ID, "u2"); !errors.Is(err, domain.ErrLeaveNotFound) {
		t.Fatalf("expected ErrLeaveNotFound, got %v", err)
	}
}
