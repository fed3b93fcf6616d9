package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/app/models/dto"
	"github.com/yigit/degreeplan/internal/middleware"
)

// SchedulePlanner generates, validates and stores schedules
type SchedulePlanner interface {
	GenerateNextTermSchedule(ctx context.Context, studentID int64, year int, term models.Term) (*models.Schedule, error)
	ValidateSchedule(ctx context.Context, schedule *models.Schedule) error
	SaveSchedule(ctx context.Context, schedule *models.Schedule) error
	GetSchedule(ctx context.Context, id int64) (*models.Schedule, error)
}

// ScheduleController handles schedule planning requests
type ScheduleController struct {
	scheduleService SchedulePlanner
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService SchedulePlanner) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// GenerateSchedule plans the next term of a student. Nothing is saved.
// @Summary Generate next-term schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param year query int false "Year, defaults to the next term"
// @Param term query string false "SPRING, SUMMER or FALL"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/schedules/generate [post]
func (c *ScheduleController) GenerateSchedule(ctx *gin.Context) {
	studentID, ok := parseID(ctx, "id", "Student")
	if !ok {
		return
	}
	var query dto.GenerateScheduleQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	if err := middleware.AuthorizeStudent(ctx, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule, err := c.scheduleService.GenerateNextTermSchedule(ctx.Request.Context(), studentID, query.Year, models.Term(query.Term))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewScheduleResponse(schedule), "Schedule generated"))
}

// ValidateSchedule checks a submitted schedule
// @Summary Validate a schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleRequest true "Schedule"
// @Success 200 {object} dto.APIResponse{data=dto.ValidationResultResponse}
// @Failure 422 {object} dto.ErrorResponse{error=dto.ErrorDetail{details=dto.ScheduleViolation}} "Schedule rejected"
// @Router /schedules/validate [post]
func (c *ScheduleController) ValidateSchedule(ctx *gin.Context) {
	var req dto.ScheduleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if err := middleware.AuthorizeStudent(ctx, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule := req.ToModel()
	if err := c.scheduleService.ValidateSchedule(ctx.Request.Context(), schedule); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ValidationResultResponse{
		Valid:        true,
		TotalCredits: schedule.TotalCredits(),
	}, "Schedule is valid"))
}

// CreateSchedule validates and saves a schedule
// @Summary Save a schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleRequest true "Schedule"
// @Success 201 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Failure 422 {object} dto.ErrorResponse "Schedule rejected"
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
	var req dto.ScheduleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if err := middleware.AuthorizeStudent(ctx, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule := req.ToModel()
	if err := c.scheduleService.SaveSchedule(ctx.Request.Context(), schedule); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewScheduleResponse(schedule), "Schedule saved"))
}

// GetSchedule returns a saved schedule
// @Summary Get a saved schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id} [get]
func (c *ScheduleController) GetSchedule(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Schedule")
	if !ok {
		return
	}

	schedule, err := c.scheduleService.GetSchedule(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := middleware.AuthorizeStudent(ctx, schedule.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewScheduleResponse(schedule), ""))
}
