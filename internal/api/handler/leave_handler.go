package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrkit/leave-system/internal/core/domain"
	"github.com/hrkit/leave-system/internal/core/ports"
)

const dateLayout = "2006-01-02"

// LeaveHandler handles HTTP requests for leave operations.
type LeaveHandler struct {
	service ports.LeaveService
}

func NewLeaveHandler(service ports.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

// Apply handles POST /v1/leaves.
//
// @Summary      File a leave request
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyLeaveRequest  true  "Leave details"
// @Success      201   {object}  leaveResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/leaves [post]
func (h *LeaveHandler) Apply(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req applyLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD or RFC 3339")
	}

	leave, err := h.service.Apply(c.Request().Context(), ports.ApplyLeaveInput{
		UserID: userID,
		Type:   req.Type,
		Date:   date,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLeaveType), errors.Is(err, domain.ErrLeaveBackdated):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrLeaveConflict):
			return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, toLeaveResponse(leave))
}

// List handles GET /v1/leaves.
//
// @Summary      List own leave requests
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        type   query     string  false  "Filter by leave type"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 10)"
// @Success      200    {object}  listLeavesResponse
// @Router       /v1/leaves [get]
func (h *LeaveHandler) List(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListLeavesInput{
		UserID: userID,
		Type:   c.QueryParam("type"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	data := make([]leaveResponse, 0, len(result.Items))
	for _, l := range result.Items {
		data = append(data, toLeaveResponse(l))
	}

	return c.JSON(http.StatusOK, listLeavesResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// GetByID handles GET /v1/leaves/:id.
//
// @Summary      Get one of your own leave requests
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Leave request id"
// @Success      200  {object}  leaveResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/leaves/{id} [get]
func (h *LeaveHandler) GetByID(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	leave, err := h.service.GetByID(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrLeaveNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "leave request not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toLeaveResponse(leave))
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func toLeaveResponse(l *domain.LeaveRequest) leaveResponse {
	return leaveResponse{
		ID:        l.ID,
		Type:      string(l.Type),
		Date:      l.Date.Format(dateLayout),
		Reason:    l.Reason,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
