package models

// ScheduleTBD marks an offering with no fixed meeting time
const ScheduleTBD = "TBD"

// CourseOffering represents a specific section of a course taught in a given year and term.
type CourseOffering struct {
	ID           int64  `json:"id" db:"id"`
	CourseID     int64  `json:"courseId" db:"course_id"`
	InstructorID int64  `json:"instructorId" db:"instructor_id"`
	Instructor   string `json:"instructor" db:"instructor_name"`
	Year         int    `json:"year" db:"year"`
	Term         Term   `json:"term" db:"term"`
	Section      string `json:"section" db:"section"`
	// Schedule holds one or more "DAY HH:MMam-HH:MMpm" ranges separated by commas, or "TBD".
	Schedule string `json:"schedule" db:"schedule"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// Code returns the code of the offered course, or "" when the course is not loaded
func (o *CourseOffering) Code() string {
	if o == nil || o.Course == nil {
		return ""
	}
	return o.Course.Code
}

// Credits returns the credit count of the offered course
func (o *CourseOffering) Credits() int {
	if o == nil || o.Course == nil {
		return 0
	}
	return o.Course.Credits
}
