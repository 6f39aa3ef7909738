package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskplanner/internal/auth"
	"taskplanner/internal/errors"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
	"taskplanner/internal/service"
)

// ScheduleHandler handles schedule endpoints.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// ScheduleCreateRequest represents a schedule creation request.
type ScheduleCreateRequest struct {
	Title            string     `json:"title" validate:"required,min=1,max=200"`
	Description      string     `json:"description" validate:"omitempty,max=1000"`
	Location         string     `json:"location" validate:"omitempty,max=255"`
	StartTime        time.Time  `json:"start_time" validate:"required"`
	EndTime          *time.Time `json:"end_time"`
	ReminderTime     *time.Time `json:"reminder_time"`
	Status           string     `json:"status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	ScheduleType     string     `json:"schedule_type" validate:"omitempty,max=50"`
	IsRecurring      bool       `json:"is_recurring"`
	RecurringPattern string     `json:"recurring_pattern" validate:"omitempty,max=50"`
}

// ScheduleUpdateRequest represents a partial schedule update. Absent fields
// mean "leave unchanged".
type ScheduleUpdateRequest struct {
	Title            *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description      *string    `json:"description" validate:"omitempty,max=1000"`
	Location         *string    `json:"location" validate:"omitempty,max=255"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	ReminderTime     *time.Time `json:"reminder_time"`
	Status           *string    `json:"status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	ScheduleType     *string    `json:"schedule_type" validate:"omitempty,max=50"`
	IsRecurring      *bool      `json:"is_recurring"`
	RecurringPattern *string    `json:"recurring_pattern" validate:"omitempty,max=50"`
}

// Create godoc
// @Summary Create a schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScheduleCreateRequest true "Schedule data"
// @Success 201 {object} model.Schedule
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c echo.Context) error {
	var req ScheduleCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	user := auth.CurrentUser(c)
	schedule, err := h.scheduleService.Create(c.Request().Context(), user.ID, service.ScheduleCreate{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ReminderTime:     req.ReminderTime,
		Status:           model.ScheduleStatus(req.Status),
		ScheduleType:     req.ScheduleType,
		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, schedule)
}

// List godoc
// @Summary List schedules
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param schedule_type query string false "Filter by type"
// @Param start_date query string false "From date (RFC3339)"
// @Param end_date query string false "Until date (RFC3339)"
// @Param limit query int false "Page size (max 1000)"
// @Param offset query int false "Number of schedules to skip"
// @Success 200 {array} model.Schedule
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /schedules [get]
func (h *ScheduleHandler) List(c echo.Context) error {
	filter := repository.ScheduleFilter{
		Status:       c.QueryParam("status"),
		ScheduleType: c.QueryParam("schedule_type"),
		Limit:        queryInt(c, "limit", 100, 1, 1000),
		Offset:       queryInt(c, "offset", 0, 0, 1<<30),
	}

	for param, dest := range map[string]**time.Time{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	} {
		if raw := c.QueryParam(param); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
					Error: "invalid " + param + ", expected RFC3339",
					Code:  "INVALID_DATE",
				})
			}
			*dest = &parsed
		}
	}

	user := auth.CurrentUser(c)
	schedules, err := h.scheduleService.List(c.Request().Context(), user.ID, filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, schedules)
}

// Get godoc
// @Summary Get a schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} model.Schedule
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user := auth.CurrentUser(c)
	schedule, err := h.scheduleService.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, schedule)
}

// Update godoc
// @Summary Update a schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body ScheduleUpdateRequest true "Fields to update"
// @Success 200 {object} model.Schedule
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /schedules/{id} [put]
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ScheduleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	update := service.ScheduleUpdate{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ReminderTime:     req.ReminderTime,
		ScheduleType:     req.ScheduleType,
		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
	}
	if req.Status != nil {
		status := model.ScheduleStatus(*req.Status)
		update.Status = &status
	}

	user := auth.CurrentUser(c)
	schedule, err := h.scheduleService.Update(c.Request().Context(), id, user.ID, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, schedule)
}

// Delete godoc
// @Summary Delete a schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user := auth.CurrentUser(c)
	if err := h.scheduleService.Delete(c.Request().Context(), id, user.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "schedule deleted successfully",
	})
}

// Today godoc
// @Summary List today's schedules
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Schedule
// @Failure 401 {object} errors.ErrorResponse
// @Router /schedules/today [get]
func (h *ScheduleHandler) Today(c echo.Context) error {
	user := auth.CurrentUser(c)
	schedules, err := h.scheduleService.Today(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, schedules)
}

// Upcoming godoc
// @Summary List upcoming schedules
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param days query int false "Days to look ahead (1-30)"
// @Success 200 {array} model.Schedule
// @Failure 401 {object} errors.ErrorResponse
// @Router /schedules/upcoming [get]
func (h *ScheduleHandler) Upcoming(c echo.Context) error {
	user := auth.CurrentUser(c)
	days := queryInt(c, "days", 7, 1, 30)
	schedules, err := h.scheduleService.Upcoming(c.Request().Context(), user.ID, days)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, schedules)
}
