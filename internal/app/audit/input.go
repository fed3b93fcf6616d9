package audit

import (
	"context"
	"fmt"

	"github.com/yigit/degreeplan/internal/app/models"
)

// CourseSource reads the course details an audit needs
type CourseSource interface {
	CoursesByCodes(ctx context.Context, codes []string) ([]*models.Course, error)
	GenEdCourses(ctx context.Context) ([]*models.Course, error)
}

// LoadInput reads the details of the completed courses and of every gen-ed course
func LoadInput(ctx context.Context, src CourseSource, completed models.CourseSet) (*Input, error) {
	done, err := src.CoursesByCodes(ctx, completed.Sorted())
	if err != nil {
		return nil, fmt.Errorf("error loading completed course details: %w", err)
	}
	genEd, err := src.GenEdCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading general education courses: %w", err)
	}
	return NewInput(completed, append(done, genEd...)...), nil
}
