package dto

import (
	"errors"
	"time"

	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

// Violation kinds reported for rejected schedules
const (
	ViolationNilSchedule          = "NIL_SCHEDULE"
	ViolationCreditLimitExceeded  = "CREDIT_LIMIT_EXCEEDED"
	ViolationInvalidOffering      = "INVALID_OFFERING"
	ViolationPrerequisitesNotMet  = "PREREQUISITES_NOT_MET"
	ViolationInsufficientStanding = "INSUFFICIENT_STANDING"
	ViolationTimeConflict         = "TIME_CONFLICT"
	ViolationMalformedMeetingTime = "MALFORMED_MEETING_TIME"
)

var violationKinds = []struct {
	err  error
	kind string
}{
	{apperrors.ErrNilSchedule, ViolationNilSchedule},
	{apperrors.ErrCreditLimitExceeded, ViolationCreditLimitExceeded},
	{apperrors.ErrInvalidOffering, ViolationInvalidOffering},
	{apperrors.ErrPrerequisitesNotMet, ViolationPrerequisitesNotMet},
	{apperrors.ErrInsufficientStanding, ViolationInsufficientStanding},
	{apperrors.ErrTimeConflict, ViolationTimeConflict},
	{apperrors.ErrMalformedMeetingTime, ViolationMalformedMeetingTime},
}

// ViolationKind names the schedule validation kind of err, or "" when err is not one
func ViolationKind(err error) string {
	for _, v := range violationKinds {
		if errors.Is(err, v.err) {
			return v.kind
		}
	}
	return ""
}

// ScheduleViolation describes why a schedule was rejected
type ScheduleViolation struct {
	Kind          string `json:"kind" example:"TIME_CONFLICT"`
	CourseCode    string `json:"courseCode,omitempty" example:"CS 201"`
	OfferingID    int64  `json:"offeringId,omitempty" example:"42"`
	ConflictsWith string `json:"conflictsWith,omitempty" example:"CS 210"`
	Message       string `json:"message"`
}

// ScheduleSlotResponse is one slot of a schedule
type ScheduleSlotResponse struct {
	OfferingID int64  `json:"offeringId"`
	CourseCode string `json:"courseCode"`
	Credits    int    `json:"credits"`
	Schedule   string `json:"schedule"`
	Tier       string `json:"tier,omitempty"`
}

// ScheduleResponse is a generated or saved schedule
type ScheduleResponse struct {
	ID           int64                  `json:"id,omitempty"`
	StudentID    int64                  `json:"studentId"`
	Year         int                    `json:"year"`
	Term         string                 `json:"term"`
	TotalCredits int                    `json:"totalCredits"`
	Slots        []ScheduleSlotResponse `json:"slots"`
	CreatedAt    *time.Time             `json:"createdAt,omitempty"`
}

// NewScheduleResponse converts a schedule
func NewScheduleResponse(s *models.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}
	resp := &ScheduleResponse{
		ID:           s.ID,
		StudentID:    s.StudentID,
		Year:         s.Year,
		Term:         string(s.Term),
		TotalCredits: s.TotalCredits(),
		Slots:        make([]ScheduleSlotResponse, 0, len(s.Slots)),
	}
	if !s.CreatedAt.IsZero() {
		created := s.CreatedAt
		resp.CreatedAt = &created
	}
	for _, slot := range s.Slots {
		resp.Slots = append(resp.Slots, ScheduleSlotResponse{
			OfferingID: slot.OfferingID,
			CourseCode: slot.CourseCode,
			Credits:    slot.Credits,
			Schedule:   slot.Schedule,
			Tier:       slot.Tier,
		})
	}
	return resp
}

// ValidationResultResponse is returned for a schedule that passed validation
type ValidationResultResponse struct {
	Valid        bool `json:"valid"`
	TotalCredits int  `json:"totalCredits"`
}
