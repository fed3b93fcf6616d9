package models

import "time"

// MaxScheduleCredits is the credit cap of a single term schedule
const MaxScheduleCredits = 15

// ScheduleSlot is one offering placed in a schedule
type ScheduleSlot struct {
	OfferingID int64  `json:"offeringId" db:"offering_id" validate:"required,gt=0"`
	CourseCode string `json:"courseCode" db:"course_code"` // Denormalized for display
	Credits    int    `json:"credits" db:"credits" validate:"gte=0"`
	Schedule   string `json:"schedule" db:"schedule"`
	Tier       string `json:"tier,omitempty" db:"tier"`
}

// Schedule is an ordered list of slots for one student and term
type Schedule struct {
	ID        int64          `json:"id,omitempty" db:"id"`
	StudentID int64          `json:"studentId" db:"student_id" validate:"required,gt=0"`
	Year      int            `json:"year" db:"year"`
	Term      Term           `json:"term" db:"term"`
	Slots     []ScheduleSlot `json:"slots" validate:"dive"`
	CreatedAt time.Time      `json:"createdAt,omitempty" db:"created_at"`
}

// TotalCredits sums the credits of all slots
func (s *Schedule) TotalCredits() int {
	total := 0
	for _, slot := range s.Slots {
		total += slot.Credits
	}
	return total
}

// Codes returns the course codes placed in the schedule
func (s *Schedule) Codes() CourseSet {
	set := make(CourseSet, len(s.Slots))
	for _, slot := range s.Slots {
		set.Add(slot.CourseCode)
	}
	return set
}

// Recommendation is one ranked suggestion from the recommendation service
type Recommendation struct {
	CourseCode  string  `json:"course_code"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}
