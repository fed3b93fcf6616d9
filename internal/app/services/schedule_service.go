package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/app/planner"
	"github.com/yigit/degreeplan/internal/app/scheduling"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

// ScheduleStore persists schedules
type ScheduleStore interface {
	SaveSchedule(ctx context.Context, schedule *models.Schedule) error
	GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error)
}

// ScheduleService generates, validates and stores next-term schedules
type ScheduleService struct {
	planner   *planner.Planner
	engine    *scheduling.Engine
	students  StudentReader
	schedules ScheduleStore
	now       func() time.Time
	logger    zerolog.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(p *planner.Planner, engine *scheduling.Engine, students StudentReader,
	schedules ScheduleStore, lgr zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		planner:   p,
		engine:    engine,
		students:  students,
		schedules: schedules,
		now:       time.Now,
		logger:    lgr,
	}
}

// WithClock replaces the clock used to pick the default term
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	s.now = now
	return s
}

// GenerateNextTermSchedule plans a schedule for the given term.
// A zero year or empty term selects the term following the current date.
func (s *ScheduleService) GenerateNextTermSchedule(ctx context.Context, studentID int64, year int, term models.Term) (*models.Schedule, error) {
	if year == 0 || term == "" {
		year, term = planner.NextTerm(s.now())
	}
	if !term.Valid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown term %q", term))
	}

	student, err := s.students.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.planner.Plan(ctx, student, year, term)
}

// ValidateSchedule checks a schedule against every constraint. Rejections are *scheduling.ValidationError.
// The student must exist.
func (s *ScheduleService) ValidateSchedule(ctx context.Context, schedule *models.Schedule) error {
	if schedule != nil {
		if _, err := s.students.GetStudentByID(ctx, schedule.StudentID); err != nil {
			return err
		}
	}
	err := s.engine.ValidateSchedule(ctx, schedule)
	var verr *scheduling.ValidationError
	if errors.As(err, &verr) {
		ev := s.logger.Info().Str("kind", verr.Kind.Error()).Str("course", verr.CourseCode)
		if schedule != nil {
			ev = ev.Int64("studentId", schedule.StudentID)
		}
		ev.Msg("Schedule rejected")
	}
	return err
}

// SaveSchedule validates a schedule and stores it. Slot credits and meeting times are
// refreshed from the catalog before saving, and a schedule without a term is saved for the
// next term.
func (s *ScheduleService) SaveSchedule(ctx context.Context, schedule *models.Schedule) error {
	if err := s.ValidateSchedule(ctx, schedule); err != nil {
		return err
	}
	if schedule.Year == 0 || schedule.Term == "" {
		schedule.Year, schedule.Term = planner.NextTerm(s.now())
	}
	if !schedule.Term.Valid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown term %q", schedule.Term))
	}
	if err := s.engine.Refresh(ctx, schedule); err != nil {
		return err
	}
	if err := s.schedules.SaveSchedule(ctx, schedule); err != nil {
		return fmt.Errorf("error saving schedule: %w", err)
	}
	return nil
}

// GetSchedule returns a saved schedule
func (s *ScheduleService) GetSchedule(ctx context.Context, id int64) (*models.Schedule, error) {
	return s.schedules.GetScheduleByID(ctx, id)
}
