package auth

import (
	"fmt"

	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID    int64
	StudentID int64
	Role      models.RoleType
}

// CanAccessStudent checks whether the caller may read or plan for a student.
// Advisors and instructors may act for any student; students only for themselves.
func CanAccessStudent(p Principal, studentID int64) error {
	switch p.Role {
	case models.RoleAdvisor, models.RoleInstructor:
		return nil
	case models.RoleStudent:
		if p.StudentID > 0 && p.StudentID == studentID {
			return nil
		}
	}
	return fmt.Errorf("%w: user %d cannot access student %d", apperrors.ErrPermissionDenied, p.UserID, studentID)
}
