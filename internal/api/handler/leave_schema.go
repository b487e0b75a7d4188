package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type applyLeaveRequest struct {
	Type   string `json:"type"   validate:"required"`
	Date   string `json:"date"   validate:"required"`
	Reason string `json:"reason"`
}

type leaveResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Date      string    `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listLeavesResponse struct {
	Data       []leaveResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
