package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// courseColumns is the column list scanned by scanCourse, qualified by the "c" alias
var courseColumns = []string{
	"c.id", "COALESCE(c.department_id, 0)", "c.code", "c.name", "c.description",
	"c.credits", "c.prerequisites", "c.themes",
}

// CourseRepository reads courses with their prerequisites and themes
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row, c *models.Course) error {
	return row.Scan(&c.ID, &c.DepartmentID, &c.Code, &c.Name, &c.Description,
		&c.Credits, &c.Prerequisites, &c.Themes)
}

func (r *CourseRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course query SQL")
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// CoursesByCodes returns the courses with the given codes, ordered by code. Unknown codes are skipped.
func (r *CourseRepository) CoursesByCodes(ctx context.Context, codes []string) ([]*models.Course, error) {
	if len(codes) == 0 {
		return []*models.Course{}, nil
	}
	return r.query(ctx, r.sb.Select(courseColumns...).
		From("courses c").
		Where(squirrel.Eq{"c.code": codes}).
		OrderBy("c.code"))
}

// GenEdCourses returns every course carrying at least one theme
func (r *CourseRepository) GenEdCourses(ctx context.Context) ([]*models.Course, error) {
	return r.query(ctx, r.sb.Select(courseColumns...).
		From("courses c").
		Where("cardinality(c.themes) > 0").
		OrderBy("c.code"))
}
