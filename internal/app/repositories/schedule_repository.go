package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/db"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
	"github.com/yigit/degreeplan/internal/pkg/dberrors"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// ScheduleRepository stores generated and validated schedules
type ScheduleRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(database *db.PostgresDB) *ScheduleRepository {
	return &ScheduleRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// SaveSchedule inserts the schedule and its slots in one transaction and sets ID and CreatedAt
func (r *ScheduleRepository) SaveSchedule(ctx context.Context, schedule *models.Schedule) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("schedules").
			Columns("student_id", "year", "term", "total_credits").
			Values(schedule.StudentID, schedule.Year, string(schedule.Term), schedule.TotalCredits()).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building insert schedule SQL")
			return fmt.Errorf("failed to build insert schedule query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&schedule.ID, &schedule.CreatedAt); err != nil {
			if dberrors.IsForeignKeyError(err, "schedules_student_id_fkey") {
				return fmt.Errorf("%w: student %d", apperrors.ErrStudentNotFound, schedule.StudentID)
			}
			logger.Error().Err(err).Int64("studentID", schedule.StudentID).Msg("Error inserting schedule")
			return fmt.Errorf("error inserting schedule: %w", err)
		}

		if len(schedule.Slots) == 0 {
			return nil
		}
		insert := r.sb.Insert("schedule_slots").
			Columns("schedule_id", "position", "offering_id", "course_code", "credits", "schedule", "tier")
		for i, slot := range schedule.Slots {
			insert = insert.Values(schedule.ID, i, slot.OfferingID, slot.CourseCode, slot.Credits, slot.Schedule, slot.Tier)
		}
		sql, args, err = insert.ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building insert schedule slots SQL")
			return fmt.Errorf("failed to build insert schedule slots query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyError(err, "schedule_slots_offering_id_fkey") {
				return fmt.Errorf("%w: %v", apperrors.ErrOfferingNotFound, err)
			}
			logger.Error().Err(err).Int64("scheduleID", schedule.ID).Msg("Error inserting schedule slots")
			return fmt.Errorf("error inserting schedule slots: %w", err)
		}

		logger.Info().
			Int64("scheduleID", schedule.ID).
			Int64("studentID", schedule.StudentID).
			Int("slots", len(schedule.Slots)).
			Msg("Schedule saved")
		return nil
	})
}

// GetScheduleByID retrieves a schedule with its slots in their saved order
func (r *ScheduleRepository) GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error) {
	sql, args, err := r.sb.Select("id", "student_id", "year", "term", "created_at").
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get schedule SQL")
		return nil, fmt.Errorf("failed to build get schedule query: %w", err)
	}

	var schedule models.Schedule
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&schedule.ID, &schedule.StudentID, &schedule.Year, &schedule.Term, &schedule.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", apperrors.ErrScheduleNotFound, id)
		}
		logger.Error().Err(err).Int64("scheduleID", id).Msg("Error scanning schedule row")
		return nil, fmt.Errorf("error retrieving schedule: %w", err)
	}

	sql, args, err = r.sb.Select("offering_id", "course_code", "credits", "schedule", "tier").
		From("schedule_slots").
		Where(squirrel.Eq{"schedule_id": id}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get schedule slots query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("scheduleID", id).Msg("Error querying schedule slots")
		return nil, fmt.Errorf("error querying schedule slots: %w", err)
	}
	defer rows.Close()

	schedule.Slots = []models.ScheduleSlot{}
	for rows.Next() {
		var slot models.ScheduleSlot
		if err := rows.Scan(&slot.OfferingID, &slot.CourseCode, &slot.Credits, &slot.Schedule, &slot.Tier); err != nil {
			return nil, fmt.Errorf("error scanning schedule slot: %w", err)
		}
		schedule.Slots = append(schedule.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule slots: %w", err)
	}
	return &schedule, nil
}
