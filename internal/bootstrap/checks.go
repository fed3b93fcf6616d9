package bootstrap

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/degreeplan/internal/app/audit"
	"github.com/yigit/degreeplan/internal/app/models"
)

// DepartmentLister lists the departments stored in the database
type DepartmentLister interface {
	GetAll(ctx context.Context) ([]*models.Department, error)
}

type programRouter interface {
	ForDepartment(code string) (audit.Evaluator, error)
}

// CheckDepartmentPrograms warns about stored departments that no catalog program covers
// and returns their codes.
func CheckDepartmentPrograms(ctx context.Context, departments DepartmentLister, router programRouter, lgr zerolog.Logger) []string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	all, err := departments.GetAll(ctx)
	if err != nil {
		lgr.Warn().Err(err).Msg("Could not list departments for the program check")
		return nil
	}

	var uncovered []string
	for _, d := range all {
		if _, err := router.ForDepartment(d.Code); err != nil {
			uncovered = append(uncovered, d.Code)
			lgr.Warn().Str("department", d.Code).Msg("Department has no degree program; its students cannot be audited")
		}
	}
	lgr.Info().Int("departments", len(all)).Int("uncovered", len(uncovered)).Msg("Department program check complete")
	return uncovered
}
