package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
	"github.com/yigit/degreeplan/internal/pkg/dberrors"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Create inserts a department and sets its ID
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (faculty_id, name, code)
		VALUES (NULLIF($1, 0), $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, department.FacultyID, department.Name, department.Code).Scan(&department.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "departments_code_key") {
			return fmt.Errorf("%w: %s", apperrors.ErrDepartmentAlreadyExists, department.Code)
		}
		logger.Error().Err(err).Str("code", department.Code).Msg("Error creating department")
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetAll retrieves all departments ordered by code
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT id, COALESCE(faculty_id, 0), name, code
		FROM departments
		ORDER BY code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.FacultyID, &d.Name, &d.Code); err != nil {
			return nil, fmt.Errorf("error scanning department: %w", err)
		}
		departments = append(departments, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating departments: %w", err)
	}

	return departments, nil
}
