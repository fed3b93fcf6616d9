package models

// Grades that do not count as a completion
const (
	GradeFail     = "F"
	GradeWithdraw = "W"
)

// Enrollment links a student to a course with the grade received
type Enrollment struct {
	StudentID int64   `json:"studentId" db:"student_id"`
	CourseID  int64   `json:"courseId" db:"course_id"`
	Grade     *string `json:"grade,omitempty" db:"grade"` // Nullable

	Course *Course `json:"course,omitempty"`
}

// IsPassing reports whether the enrollment counts as a completed course.
// A missing grade is treated as passing: self-reported enrollments count as completions.
func (e *Enrollment) IsPassing() bool {
	if e.Grade == nil {
		return true
	}
	return *e.Grade != GradeFail && *e.Grade != GradeWithdraw
}
