// Package planner assembles a next-term schedule for a student by walking the degree
// requirements in priority order and greedily placing offerings that pass every constraint.
package planner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/degreeplan/internal/app/audit"
	"github.com/yigit/degreeplan/internal/app/gened"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/app/scheduling"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// DefaultMaxCoreCourses is how many core courses one schedule may take
const DefaultMaxCoreCourses = 3

// Recommender ranks candidate courses. It never fails; an empty ranking means "no opinion".
type Recommender interface {
	Recommend(ctx context.Context, passed, candidates []string) []models.Recommendation
}

// Planner builds next-term schedules
type Planner struct {
	router         *audit.Router
	solver         *gened.Solver
	engine         *scheduling.Engine
	offerings      scheduling.OfferingCatalog
	courses        audit.CourseSource
	recommender    Recommender
	maxCoreCourses int
	logger         zerolog.Logger
}

// Option customizes a Planner
type Option func(*Planner)

// WithRecommender sets the recommendation client used by the gen-ed and free elective tiers
func WithRecommender(r Recommender) Option {
	return func(p *Planner) {
		if r != nil {
			p.recommender = r
		}
	}
}

// WithMaxCoreCourses changes how many core courses the core tier may add
func WithMaxCoreCourses(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.maxCoreCourses = n
		}
	}
}

// WithLogger sets the planner logger
func WithLogger(l zerolog.Logger) Option {
	return func(p *Planner) {
		p.logger = l
	}
}

// New creates a planner
func New(router *audit.Router, solver *gened.Solver, engine *scheduling.Engine,
	offerings scheduling.OfferingCatalog, courses audit.CourseSource, opts ...Option) *Planner {
	p := &Planner{
		router:         router,
		solver:         solver,
		engine:         engine,
		offerings:      offerings,
		courses:        courses,
		recommender:    noRecommendations{},
		maxCoreCourses: DefaultMaxCoreCourses,
		logger:         logger.Get(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type noRecommendations struct{}

func (noRecommendations) Recommend(context.Context, []string, []string) []models.Recommendation {
	return nil
}

// Plan builds the schedule of one student for the given term. Nothing is persisted.
// Failing to place a course in a tier is not an error.
func (p *Planner) Plan(ctx context.Context, student *models.Student, year int, term models.Term) (*models.Schedule, error) {
	evaluator, err := p.router.ForDepartment(student.DepartmentCode())
	if err != nil {
		return nil, err
	}

	record, err := p.engine.Student(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	available, err := p.offerings.OfferingsByTerm(ctx, year, term)
	if err != nil {
		return nil, fmt.Errorf("error loading offerings for %s %d: %w", term, year, err)
	}

	in, err := audit.LoadInput(ctx, p.courses, record.Completed)
	if err != nil {
		return nil, err
	}

	b := &build{
		planner:   p,
		evaluator: evaluator,
		input:     in,
		audit:     evaluator.Evaluate(in),
		record:    record,
		completed: in.CompletedCourses(),
		available: p.engine.Order(available),
		schedule: &models.Schedule{
			StudentID: student.ID,
			Year:      year,
			Term:      term,
			Slots:     []models.ScheduleSlot{},
		},
		logger: logger.ForStudent(p.logger, student.ID),
	}

	for _, t := range tiers {
		if b.full() {
			b.logger.Debug().Str("tier", t.name).Msg("Credit cap reached, skipping tier")
			continue
		}
		before := len(b.schedule.Slots)
		t.run(ctx, b)
		b.logger.Debug().
			Str("tier", t.name).
			Int("added", len(b.schedule.Slots)-before).
			Int("credits", b.credits).
			Msg("Tier finished")
	}

	b.logger.Info().
		Int("year", year).
		Str("term", string(term)).
		Int("slots", len(b.schedule.Slots)).
		Int("credits", b.credits).
		Msg("Schedule generated")
	return b.schedule, nil
}

// build is the state of one planning call
type build struct {
	planner   *Planner
	evaluator audit.Evaluator
	input     *audit.Input
	audit     *audit.Audit
	record    *scheduling.StudentRecord
	completed []*models.Course
	available []*models.CourseOffering
	schedule  *models.Schedule
	credits   int
	logger    zerolog.Logger
}

func (b *build) full() bool {
	return b.credits >= b.planner.engine.MaxCredits()
}

// missing returns the eligible codes of an unsatisfied requirement
func (b *build) missing(name string) []string {
	r, ok := b.audit.Result(name)
	if !ok || r.Satisfied {
		return nil
	}
	return r.Eligible
}

// place adds the first admissible offering of code and reports whether one was added
func (b *build) place(code, tier string) bool {
	if b.record.Completed.Has(code) || b.scheduled(code) {
		return false
	}
	o := b.planner.engine.FindOffering(b.available, code, b.credits, b.schedule.Slots, b.record)
	if o == nil {
		return false
	}
	b.schedule.Slots = append(b.schedule.Slots, models.ScheduleSlot{
		OfferingID: o.ID,
		CourseCode: o.Code(),
		Credits:    o.Credits(),
		Schedule:   o.Schedule,
		Tier:       tier,
	})
	b.credits += o.Credits()
	return true
}

// placeFirst tries codes in order and stops at the first success
func (b *build) placeFirst(codes []string, tier string) bool {
	for _, code := range codes {
		if b.full() {
			return false
		}
		if b.place(code, tier) {
			return true
		}
	}
	return false
}

// offered keeps the codes that have at least one offering this term
func (b *build) offered(codes []string) []string {
	have := make(models.CourseSet, len(b.available))
	for _, o := range b.available {
		have.Add(o.Code())
	}
	var out []string
	for _, c := range codes {
		if have.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (b *build) scheduled(code string) bool {
	for _, s := range b.schedule.Slots {
		if s.CourseCode == code {
			return true
		}
	}
	return false
}

// rank puts recommended codes first, in recommendation order, then the rest in their given order
func (b *build) rank(ctx context.Context, codes []string) []string {
	if len(codes) < 2 {
		return codes
	}
	recs := b.planner.recommender.Recommend(ctx, b.record.Completed.Sorted(), codes)
	if len(recs) == 0 {
		return codes
	}

	allowed := models.NewCourseSet(codes...)
	picked := make(models.CourseSet, len(recs))
	out := make([]string, 0, len(codes))
	for _, r := range recs {
		if allowed.Has(r.CourseCode) && !picked.Has(r.CourseCode) {
			picked.Add(r.CourseCode)
			out = append(out, r.CourseCode)
		}
	}
	for _, c := range codes {
		if !picked.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
