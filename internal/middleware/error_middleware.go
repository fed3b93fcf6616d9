package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/degreeplan/internal/app/models/dto"
	"github.com/yigit/degreeplan/internal/app/scheduling"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var verr *scheduling.ValidationError
	switch {
	case errors.As(err, &verr):
		detail := dto.NewErrorDetail(dto.ErrorCodeScheduleInvalid, "Schedule rejected").
			WithSeverity(dto.ErrorSeverityWarning).
			WithDetails(dto.ScheduleViolation{
				Kind:          dto.ViolationKind(verr),
				CourseCode:    verr.CourseCode,
				OfferingID:    verr.OfferingID,
				ConflictsWith: verr.Other,
				Message:       verr.Error(),
			})
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(detail))
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found").WithDetails(err.Error())))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case apperrors.Is(err, apperrors.ErrBadRequest, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Bad request").WithDetails(err.Error())))
	case errors.Is(err, apperrors.ErrConfiguration):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Configuration error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConfiguration, "Configuration error").
				WithSeverity(dto.ErrorSeverityCritical).
				WithDetails(err.Error())))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
