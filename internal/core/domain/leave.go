package domain

import (
	"errors"
	"time"
)

// LeaveType distinguishes planned absences from emergencies.
type LeaveType string

const (
	LeavePlanned   LeaveType = "Planned"
	LeaveEmergency LeaveType = "Emergency"
)

// LeaveStatus is the review state of a request. Transitions out of Pending
// belong to the reviewing flow, not to admission.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

var ErrLeaveNotFound = errors.New("leave request not found")
var ErrLeaveConflict = errors.New("leave request already exists for this date")
var ErrLeaveBackdated = errors.New("leave date is outside the backdating window")
var ErrInvalidLeaveType = errors.New("invalid leave type")

// Valid reports whether t is an admissible leave type.
func (t LeaveType) Valid() bool {
	return t == LeavePlanned || t == LeaveEmergency
}

// LeaveRequest is a single day of absence filed by a user. Date is always a
// UTC midnight boundary; at most one request may exist per (user, date).
type LeaveRequest struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Type      LeaveType   `json:"type"`
	Date      time.Time   `json:"date"`
	Reason    string      `json:"reason,omitempty"`
	Status    LeaveStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// DayUTC truncates t to its calendar-day boundary in UTC. All leave dates are
// normalised through this before comparison or storage, so behaviour near
// midnight does not depend on the host timezone.
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
