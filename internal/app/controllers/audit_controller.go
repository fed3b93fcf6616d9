package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/degreeplan/internal/app/models/dto"
	"github.com/yigit/degreeplan/internal/app/services"
	"github.com/yigit/degreeplan/internal/middleware"
)

// DegreeAuditor runs degree audits
type DegreeAuditor interface {
	Audit(ctx context.Context, studentID int64) (*services.StudentAudit, error)
	AuditStudentDegree(ctx context.Context, studentID int64) ([]string, error)
}

// AuditController handles degree audit requests
type AuditController struct {
	auditService DegreeAuditor
}

// NewAuditController creates a new AuditController
func NewAuditController(auditService DegreeAuditor) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetAudit returns the full degree audit of a student
// @Summary Get degree audit
// @Description Evaluates the student's passing courses against every requirement of their program
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.AuditResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to read this student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "No program configured for the student's department"
// @Router /students/{id}/audit [get]
func (c *AuditController) GetAudit(ctx *gin.Context) {
	studentID, ok := parseID(ctx, "id", "Student")
	if !ok {
		return
	}
	if err := middleware.AuthorizeStudent(ctx, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	a, err := c.auditService.Audit(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuditResponse{
		StudentID:      a.StudentID,
		Department:     a.Department,
		Program:        a.Audit.Program,
		Standing:       a.Standing,
		PassingCredits: a.PassingCredits,
		ChosenTrack:    a.Audit.ChosenTrack,
		Complete:       a.Audit.Complete(),
		Completed:      a.Completed,
		Results:        a.Audit.Results,
		Scenarios:      a.Audit.Scenarios,
		Missing:        a.Missing,
	}, "Degree audit evaluated"))
}

// GetMissingRequirements lists the unsatisfied requirements of a student
// @Summary List missing requirements
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.MissingRequirementsResponse}
// @Router /students/{id}/audit/missing [get]
func (c *AuditController) GetMissingRequirements(ctx *gin.Context) {
	studentID, ok := parseID(ctx, "id", "Student")
	if !ok {
		return
	}
	if err := middleware.AuthorizeStudent(ctx, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	missing, err := c.auditService.AuditStudentDegree(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MissingRequirementsResponse{
		StudentID: studentID,
		Missing:   missing,
	}, ""))
}
