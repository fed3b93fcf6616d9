package dto

import "github.com/yigit/degreeplan/internal/app/models"

// GenerateScheduleQuery selects the term to plan. Leaving either field empty plans the next term.
type GenerateScheduleQuery struct {
	Year int    `form:"year" validate:"omitempty,gte=2000,lte=2100"`
	Term string `form:"term" validate:"omitempty,term"`
}

// SlotRequest is one offering of a submitted schedule
type SlotRequest struct {
	OfferingID int64  `json:"offeringId" validate:"required,gt=0"`
	CourseCode string `json:"courseCode" validate:"omitempty,coursecode"`
	Credits    int    `json:"credits" validate:"gte=0"`
	Schedule   string `json:"schedule"`
}

// ScheduleRequest is a schedule submitted for validation or saving.
// Omitting slots submits a missing schedule, which validation rejects.
type ScheduleRequest struct {
	StudentID int64         `json:"studentId" validate:"required,gt=0"`
	Year      int           `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Term      string        `json:"term" validate:"omitempty,term"`
	Slots     []SlotRequest `json:"slots" validate:"omitempty,dive"`
}

// ToModel converts the request into a schedule, keeping a nil slot list nil
func (r *ScheduleRequest) ToModel() *models.Schedule {
	s := &models.Schedule{
		StudentID: r.StudentID,
		Year:      r.Year,
		Term:      models.Term(r.Term),
	}
	if r.Slots == nil {
		return s
	}
	s.Slots = make([]models.ScheduleSlot, 0, len(r.Slots))
	for _, slot := range r.Slots {
		s.Slots = append(s.Slots, models.ScheduleSlot{
			OfferingID: slot.OfferingID,
			CourseCode: slot.CourseCode,
			Credits:    slot.Credits,
			Schedule:   slot.Schedule,
		})
	}
	return s
}
