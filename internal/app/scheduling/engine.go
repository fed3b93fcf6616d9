package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// Engine checks offerings against a student record and a schedule under construction
type Engine struct {
	offerings  OfferingCatalog
	completed  CompletedCoursesProvider
	maxCredits int
	order      OfferingOrder
	logger     zerolog.Logger
}

// Option customizes an Engine
type Option func(*Engine)

// WithMaxCredits lowers the credit cap. Values outside (0, MaxScheduleCredits] are ignored.
func WithMaxCredits(n int) Option {
	return func(e *Engine) {
		if n > 0 && n <= models.MaxScheduleCredits {
			e.maxCredits = n
		}
	}
}

// WithOrder replaces the policy used to pick between matching offerings
func WithOrder(order OfferingOrder) Option {
	return func(e *Engine) {
		if order != nil {
			e.order = order
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates a constraint engine over the given sources
func NewEngine(offerings OfferingCatalog, completed CompletedCoursesProvider, opts ...Option) *Engine {
	e := &Engine{
		offerings:  offerings,
		completed:  completed,
		maxCredits: models.MaxScheduleCredits,
		order:      CatalogOrder,
		logger:     logger.Get(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxCredits returns the credit cap applied to schedules
func (e *Engine) MaxCredits() int {
	return e.maxCredits
}

// Order sorts offerings with the engine's selection policy
func (e *Engine) Order(offerings []*models.CourseOffering) []*models.CourseOffering {
	return e.order.Sorted(offerings)
}

// Student reads the record every other check works against
func (e *Engine) Student(ctx context.Context, studentID int64) (*StudentRecord, error) {
	return LoadStudentRecord(ctx, e.completed, studentID)
}

// PrerequisitesMet reports whether every prerequisite of the offered course has been passed
func (e *Engine) PrerequisitesMet(o *models.CourseOffering, s *StudentRecord) bool {
	if o == nil || o.Course == nil {
		return false
	}
	return s.Completed.ContainsAll(o.Course.Prerequisites)
}

// ValidStanding reports whether the student may take the offered course.
// Upper-division courses require sophomore standing or above.
func (e *Engine) ValidStanding(o *models.CourseOffering, s *StudentRecord) bool {
	if o == nil || o.Course == nil {
		return false
	}
	if o.Course.Division() == models.DivisionLower {
		return true
	}
	return s.Standing() >= models.StandingSophomore
}

// HasTimeConflict reports whether the candidate meets at the same time as any existing slot.
// A candidate whose meeting time cannot be parsed always conflicts.
func (e *Engine) HasTimeConflict(candidate *models.CourseOffering, existing []models.ScheduleSlot) bool {
	if _, err := ParseSchedule(candidate.Schedule); err != nil {
		e.logger.Warn().Err(err).Str("courseCode", candidate.Code()).Msg("Skipping offering with unparsable meeting time")
		return true
	}
	for _, slot := range existing {
		if overlap, err := Conflicts(candidate.Schedule, slot.Schedule); err != nil || overlap {
			return true
		}
	}
	return false
}

// Admissible runs the offering-level checks FindOffering applies to each candidate
func (e *Engine) Admissible(o *models.CourseOffering, currentCredits int, existing []models.ScheduleSlot, s *StudentRecord) bool {
	switch {
	case o == nil || o.Course == nil:
		return false
	case currentCredits+o.Credits() > e.maxCredits:
		return false
	case e.HasTimeConflict(o, existing):
		return false
	case !e.PrerequisitesMet(o, s):
		return false
	case !e.ValidStanding(o, s):
		return false
	}
	return true
}

// FindOffering returns the first offering of code, in the engine's order, that fits the
// credit cap, does not overlap an existing slot, and whose prerequisites and standing the
// student meets. It returns nil when nothing fits.
func (e *Engine) FindOffering(available []*models.CourseOffering, code string, currentCredits int, existing []models.ScheduleSlot, s *StudentRecord) *models.CourseOffering {
	var matching []*models.CourseOffering
	for _, o := range available {
		if o.Code() == code {
			matching = append(matching, o)
		}
	}
	for _, o := range e.order.Sorted(matching) {
		if e.Admissible(o, currentCredits, existing, s) {
			return o
		}
	}
	return nil
}

// ValidateSchedule checks a complete schedule and returns a *ValidationError naming the first
// offending slot, or nil. Other errors come from reading the student record or offerings.
func (e *Engine) ValidateSchedule(ctx context.Context, schedule *models.Schedule) error {
	if schedule == nil || schedule.Slots == nil {
		return nilSchedule()
	}
	if total := schedule.TotalCredits(); total > e.maxCredits {
		return creditLimit(total, e.maxCredits)
	}

	resolved := make([]*models.CourseOffering, len(schedule.Slots))
	for i, slot := range schedule.Slots {
		o, err := e.offerings.OfferingByID(ctx, slot.OfferingID)
		if err != nil {
			if errors.Is(err, apperrors.ErrOfferingNotFound) {
				return invalidOffering(slot.OfferingID, slot.CourseCode)
			}
			return fmt.Errorf("error resolving offering %d: %w", slot.OfferingID, err)
		}
		if o == nil || o.Course == nil {
			return invalidOffering(slot.OfferingID, slot.CourseCode)
		}
		if _, err := ParseSchedule(o.Schedule); err != nil {
			return malformedMeetingTime(o.ID, o.Code(), err)
		}
		resolved[i] = o
	}

	// slot credits are client supplied, so the cap is checked again against the catalog
	total := 0
	for _, o := range resolved {
		total += o.Credits()
	}
	if total > e.maxCredits {
		return creditLimit(total, e.maxCredits)
	}

	student, err := e.Student(ctx, schedule.StudentID)
	if err != nil {
		return err
	}

	for _, o := range resolved {
		if !e.PrerequisitesMet(o, student) {
			return prerequisitesNotMet(o.ID, o.Code())
		}
	}
	for _, o := range resolved {
		if !e.ValidStanding(o, student) {
			return insufficientStanding(o.ID, o.Code())
		}
	}
	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			// every meeting time parsed above
			if overlap, _ := Conflicts(resolved[i].Schedule, resolved[j].Schedule); overlap {
				return timeConflict(resolved[j].ID, resolved[j].Code(), resolved[i].Code())
			}
		}
	}

	e.logger.Debug().
		Int64("studentId", schedule.StudentID).
		Int("slots", len(resolved)).
		Int("credits", total).
		Msg("Schedule validated")
	return nil
}

// Refresh overwrites the code, credits and meeting time of every slot with the catalog values
func (e *Engine) Refresh(ctx context.Context, schedule *models.Schedule) error {
	if schedule == nil {
		return nilSchedule()
	}
	for i := range schedule.Slots {
		slot := &schedule.Slots[i]
		o, err := e.offerings.OfferingByID(ctx, slot.OfferingID)
		if err != nil {
			if errors.Is(err, apperrors.ErrOfferingNotFound) {
				return invalidOffering(slot.OfferingID, slot.CourseCode)
			}
			return fmt.Errorf("error resolving offering %d: %w", slot.OfferingID, err)
		}
		slot.CourseCode = o.Code()
		slot.Credits = o.Credits()
		slot.Schedule = o.Schedule
	}
	return nil
}
