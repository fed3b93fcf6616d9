package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

// DepartmentCreator inserts departments
type DepartmentCreator interface {
	Create(ctx context.Context, department *appModels.Department) error
}

// CreateCatalogDepartments creates a department for every department code the catalog maps
// onto a program. Existing departments are left untouched. It returns how many were created.
func CreateCatalogDepartments(ctx context.Context, repo DepartmentCreator, cat *catalog.Catalog, lgr zerolog.Logger) (int, error) {
	lgr.Info().Msg("Checking/Creating catalog departments...")
	var finalErr error
	created := 0

	for _, program := range cat.Programs {
		for _, code := range program.Departments {
			dept := &appModels.Department{
				Name: fmt.Sprintf("%s (%s)", program.Name, code),
				Code: code,
			}
			err := repo.Create(ctx, dept)
			switch {
			case err == nil:
				created++
				lgr.Info().Str("code", code).Str("program", program.Name).Msg("Department created")
			case errors.Is(err, apperrors.ErrDepartmentAlreadyExists):
			default:
				lgr.Error().Err(err).Str("code", code).Msg("Error creating department")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Int("created", created).Msg("Catalog departments checked")
	return created, finalErr
}
