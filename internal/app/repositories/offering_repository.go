package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// OfferingRepository reads course offerings joined with their course
type OfferingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOfferingRepository creates a new OfferingRepository
func NewOfferingRepository(db *pgxpool.Pool) *OfferingRepository {
	return &OfferingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *OfferingRepository) selectOfferings() squirrel.SelectBuilder {
	cols := append([]string{
		"o.id", "o.course_id", "COALESCE(o.instructor_id, 0)", "o.instructor_name",
		"o.year", "o.term", "o.section", "o.schedule",
	}, courseColumns...)
	return r.sb.Select(cols...).
		From("course_offerings o").
		Join("courses c ON c.id = o.course_id")
}

func scanOffering(row pgx.Row) (*models.CourseOffering, error) {
	var o models.CourseOffering
	var c models.Course
	err := row.Scan(&o.ID, &o.CourseID, &o.InstructorID, &o.Instructor,
		&o.Year, &o.Term, &o.Section, &o.Schedule,
		&c.ID, &c.DepartmentID, &c.Code, &c.Name, &c.Description,
		&c.Credits, &c.Prerequisites, &c.Themes)
	if err != nil {
		return nil, err
	}
	o.Course = &c
	return &o, nil
}

func (r *OfferingRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.CourseOffering, error) {
	sql, args, err := q.OrderBy("o.id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building offering query SQL")
		return nil, fmt.Errorf("failed to build offering query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing offering query")
		return nil, fmt.Errorf("error querying offerings: %w", err)
	}
	defer rows.Close()

	offerings := []*models.CourseOffering{}
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning offering row")
			return nil, fmt.Errorf("error scanning offering: %w", err)
		}
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offerings: %w", err)
	}
	return offerings, nil
}

// OfferingsByTerm returns every section taught in the given year and term
func (r *OfferingRepository) OfferingsByTerm(ctx context.Context, year int, term models.Term) ([]*models.CourseOffering, error) {
	return r.list(ctx, r.selectOfferings().Where(squirrel.Eq{"o.year": year, "o.term": string(term)}))
}

// OfferingByID retrieves one section
func (r *OfferingRepository) OfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	sql, args, err := r.selectOfferings().Where(squirrel.Eq{"o.id": id}).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get offering SQL")
		return nil, fmt.Errorf("failed to build get offering query: %w", err)
	}

	o, err := scanOffering(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("offeringID", id).Msg("Course offering not found")
			return nil, fmt.Errorf("%w: id %d", apperrors.ErrOfferingNotFound, id)
		}
		logger.Error().Err(err).Int64("offeringID", id).Msg("Error scanning offering row")
		return nil, fmt.Errorf("error retrieving offering: %w", err)
	}
	return o, nil
}
