// Package scheduling validates course offerings against a student's record and a schedule
// under construction: prerequisites, class standing, meeting-time overlap and the credit cap.
package scheduling

import (
	"context"
	"fmt"

	"github.com/yigit/degreeplan/internal/app/models"
)

// CompletedCoursesProvider reads a student's passing course history
type CompletedCoursesProvider interface {
	// CompletedCourses returns the codes of courses passed (grade not F or W, or ungraded)
	CompletedCourses(ctx context.Context, studentID int64) (models.CourseSet, error)
	// PassingCredits returns the credits earned by those courses
	PassingCredits(ctx context.Context, studentID int64) (int, error)
}

// OfferingCatalog reads course offerings. Offerings are returned with Course populated.
type OfferingCatalog interface {
	OfferingsByTerm(ctx context.Context, year int, term models.Term) ([]*models.CourseOffering, error)
	OfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error)
}

// StudentRecord is the read-once view of a student used by every constraint check
type StudentRecord struct {
	StudentID      int64
	Completed      models.CourseSet
	PassingCredits int
}

// Standing derives the class standing from passing credits
func (r *StudentRecord) Standing() models.Standing {
	return models.StandingForCredits(r.PassingCredits)
}

// LoadStudentRecord reads the completed courses and passing credits of a student
func LoadStudentRecord(ctx context.Context, provider CompletedCoursesProvider, studentID int64) (*StudentRecord, error) {
	completed, err := provider.CompletedCourses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading completed courses: %w", err)
	}
	credits, err := provider.PassingCredits(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading passing credits: %w", err)
	}
	if completed == nil {
		completed = models.CourseSet{}
	}
	return &StudentRecord{StudentID: studentID, Completed: completed, PassingCredits: credits}, nil
}
