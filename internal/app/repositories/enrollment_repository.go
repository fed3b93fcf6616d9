package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// passingGrade matches enrollments that count as completions. Ungraded enrollments pass.
var passingGrade = squirrel.Or{
	squirrel.Eq{"e.grade": nil},
	squirrel.NotEq{"e.grade": []string{models.GradeFail, models.GradeWithdraw}},
}

// EnrollmentRepository reads a student's course history
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CompletedCourses returns the codes of the courses a student passed
func (r *EnrollmentRepository) CompletedCourses(ctx context.Context, studentID int64) (models.CourseSet, error) {
	sql, args, err := r.sb.Select("DISTINCT c.code").
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		Where(passingGrade).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building completed courses SQL")
		return nil, fmt.Errorf("failed to build completed courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing completed courses query")
		return nil, fmt.Errorf("error querying completed courses: %w", err)
	}
	defer rows.Close()

	completed := models.CourseSet{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("error scanning completed course: %w", err)
		}
		completed.Add(code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completed courses: %w", err)
	}
	return completed, nil
}

// PassingCredits sums the credits of the courses a student passed
func (r *EnrollmentRepository) PassingCredits(ctx context.Context, studentID int64) (int, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(c.credits), 0)").
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		Where(passingGrade).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building passing credits SQL")
		return 0, fmt.Errorf("failed to build passing credits query: %w", err)
	}

	var credits int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&credits); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning passing credits")
		return 0, fmt.Errorf("error retrieving passing credits: %w", err)
	}
	return credits, nil
}
