package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskplanner/internal/model"
	"taskplanner/internal/service"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password-123"
)

// SeedHandler handles demo data endpoints, useful for local development.
type SeedHandler struct {
	authService     service.AuthService
	taskService     service.TaskService
	scheduleService service.ScheduleService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(authService service.AuthService, taskService service.TaskService, scheduleService service.ScheduleService) *SeedHandler {
	return &SeedHandler{
		authService:     authService,
		taskService:     taskService,
		scheduleService: scheduleService,
	}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message   string `json:"message"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Tasks     int    `json:"tasks"`
	Schedules int    `json:"schedules"`
}

// SeedDemo godoc
// @Summary Seed a demo user with sample tasks and schedules
// @Tags seed
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 500 {object} map[string]string
// @Router /seed/demo [get]
func (h *SeedHandler) SeedDemo(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.authService.Register(ctx, demoEmail, demoPassword, "Demo User")
	if err != nil {
		if err == service.ErrEmailAlreadyRegistered {
			return c.JSON(http.StatusOK, SeedResponse{
				Message:  "demo user already exists",
				Email:    demoEmail,
				Password: demoPassword,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
			"error": "failed to seed demo user: " + err.Error(),
		})
	}

	tasks := h.seedTasks(ctx, user.ID)
	schedules := h.seedSchedules(ctx, user.ID)

	return c.JSON(http.StatusOK, SeedResponse{
		Message:   "demo data seeded successfully",
		Email:     demoEmail,
		Password:  demoPassword,
		Tasks:     tasks,
		Schedules: schedules,
	})
}

func (h *SeedHandler) seedTasks(ctx context.Context, userID uint) int {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 7)

	samples := []service.TaskCreate{
		{Title: "Review pull requests", Priority: model.TaskPriorityHigh, DueDate: &yesterday},
		{Title: "Write weekly report", Description: "Summarize sprint progress", Priority: model.TaskPriorityMedium, DueDate: &nextWeek},
		{Title: "Book dentist appointment", Priority: model.TaskPriorityLow},
	}

	count := 0
	for _, sample := range samples {
		if _, err := h.taskService.Create(ctx, userID, sample); err == nil {
			count++
		}
	}
	return count
}

func (h *SeedHandler) seedSchedules(ctx context.Context, userID uint) int {
	now := time.Now()
	inTwoHours := now.Add(2 * time.Hour)
	tomorrow := now.AddDate(0, 0, 1)

	samples := []service.ScheduleCreate{
		{Title: "Team standup", Location: "Meet room A", StartTime: inTwoHours, ScheduleType: "meeting"},
		{Title: "Gym session", StartTime: tomorrow, ScheduleType: "personal"},
	}

	count := 0
	for _, sample := range samples {
		if _, err := h.scheduleService.Create(ctx, userID, sample); err == nil {
			count++
		}
	}
	return count
}
