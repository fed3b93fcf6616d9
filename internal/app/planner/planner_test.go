package planner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/degreeplan/internal/app/audit"
	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/gened"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/app/planner"
	"github.com/yigit/degreeplan/internal/app/scheduling"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
	"github.com/yigit/degreeplan/internal/pkg/logger"
	"github.com/yigit/degreeplan/internal/testutils"
)

type fixture struct {
	store   *testutils.Store
	engine  *scheduling.Engine
	planner *planner.Planner
}

func newFixture(t *testing.T, opts ...planner.Option) *fixture {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	solver := gened.NewSolver(cat.GenEd)
	router, err := audit.NewRouter(cat, solver)
	require.NoError(t, err)

	store := testutils.NewStore()
	engine := scheduling.NewEngine(store, store, scheduling.WithLogger(logger.Nop()))
	opts = append([]planner.Option{planner.WithLogger(logger.Nop())}, opts...)
	return &fixture{
		store:   store,
		engine:  engine,
		planner: planner.New(router, solver, engine, store, store, opts...),
	}
}

// offerAll adds one TBD offering for every fixture course
func (f *fixture) offerAll() {
	for _, c := range testutils.Courses() {
		f.store.AddOffering(c.Code, models.ScheduleTBD)
	}
}

func (f *fixture) plan(t *testing.T, student *models.Student) *models.Schedule {
	t.Helper()
	s, err := f.planner.Plan(context.Background(), student, testutils.Year, testutils.Term)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func codes(s *models.Schedule) []string {
	out := make([]string, 0, len(s.Slots))
	for _, slot := range s.Slots {
		out = append(out, slot.CourseCode)
	}
	return out
}

func sumCredits(s *models.Schedule) int {
	total := 0
	for _, slot := range s.Slots {
		total += slot.Credits
	}
	return total
}

func TestPlan_NoCompletedCourses(t *testing.T) {
	f := newFixture(t)
	f.offerAll()
	student := f.store.AddStudent(1, "CS")

	s := f.plan(t, student)

	assert.Equal(t, []string{"PM 100", "FA 100", "CD 100", "PE 101", "ENG 101"}, codes(s))
	foundation := 0
	for _, slot := range s.Slots {
		if slot.Credits > 0 {
			assert.Equal(t, planner.TierFoundation, slot.Tier)
			foundation++
		}
	}
	assert.LessOrEqual(t, foundation, 1)
	assert.Equal(t, sumCredits(s), s.TotalCredits())
	assert.Equal(t, 3, s.TotalCredits())
	assert.Equal(t, int64(1), s.StudentID)
	assert.Equal(t, testutils.Term, s.Term)

	require.NoError(t, f.engine.ValidateSchedule(context.Background(), s))
}

func TestPlan_NoOfferings(t *testing.T) {
	f := newFixture(t)
	student := f.store.AddStudent(1, "BUS")

	s := f.plan(t, student)
	assert.Empty(t, s.Slots)
	assert.NotNil(t, s.Slots)
}

func TestPlan_CoreTierLimitsCourses(t *testing.T) {
	f := newFixture(t)
	f.offerAll()
	student := f.store.AddStudent(1, "CS",
		"ENG 101", "ENG 102", "MATH 110", "PE 101", "PE 102", "FA 100", "CD 100", "PM 100",
		"CS 101", "CS 102")

	s := f.plan(t, student)

	var core []string
	for _, slot := range s.Slots {
		if slot.Tier == planner.TierCore {
			core = append(core, slot.CourseCode)
		}
	}
	// every open core course is upper-division and 15 credits is still freshman standing
	assert.Empty(t, core)

	f2 := newFixture(t, planner.WithMaxCoreCourses(1))
	f2.offerAll()
	student = f2.store.AddStudent(2, "CS",
		"ENG 101", "ENG 102", "MATH 110", "PE 101", "PE 102", "FA 100", "CD 100", "PM 100",
		"CS 101", "CS 102", "HUM 101", "HUM 102", "SOC 101", "STAT 210", "ART 150")
	s = f2.plan(t, student)
	core = core[:0]
	for _, slot := range s.Slots {
		if slot.Tier == planner.TierCore {
			core = append(core, slot.CourseCode)
		}
	}
	assert.Equal(t, []string{"CS 201"}, core)
	assert.LessOrEqual(t, s.TotalCredits(), models.MaxScheduleCredits)
}

func TestPlan_CreditCap(t *testing.T) {
	f := newFixture(t)
	f.offerAll()
	// 30 credits: sophomore, most of the lower-division catalog is open
	student := f.store.AddStudent(1, "CS",
		"ENG 101", "ENG 102", "MATH 110", "CS 101", "CS 102",
		"HUM 101", "HUM 102", "SOC 101", "STAT 210", "ART 150",
		"PE 101", "PE 102", "FA 100", "CD 100", "PM 100")

	s := f.plan(t, student)

	assert.LessOrEqual(t, s.TotalCredits(), models.MaxScheduleCredits)
	assert.Equal(t, sumCredits(s), s.TotalCredits())
	// core stops at three courses, humanities needs an upper-division course and the
	// Software Engineering required courses are not open yet, so an elective fills the cap
	assert.Equal(t, []string{"CS 201", "CS 210", "MATH 201", "HUM 201", "CS 341"}, codes(s))
	assert.Equal(t, models.MaxScheduleCredits, s.TotalCredits())
	require.NoError(t, f.engine.ValidateSchedule(context.Background(), s))
}

func TestPlan_TimeConflictsAreAvoided(t *testing.T) {
	f := newFixture(t)
	f.store.AddOffering("PM 100", "MON 9:30am-10:00am")
	f.store.AddOffering("ENG 101", "MON 9:00am-10:15am")
	wed := f.store.AddOffering("ENG 101", "WED 9:00am-10:15am")
	student := f.store.AddStudent(1, "BUS")

	s := f.plan(t, student)

	assert.Equal(t, []string{"PM 100", "ENG 101"}, codes(s))
	assert.Equal(t, wed.ID, s.Slots[1].OfferingID)
	require.NoError(t, f.engine.ValidateSchedule(context.Background(), s))
}

func TestPlan_CapstoneWhenEverythingElseIsDone(t *testing.T) {
	tests := []struct {
		dept      string
		completed []string
		capstone  string
	}{
		{"CS", testutils.ComputerScienceAllButCapstone, "CS 499"},
		{"BUS", testutils.BusinessAllButCapstone, "BUS 490"},
	}
	for _, tt := range tests {
		t.Run(tt.dept, func(t *testing.T) {
			f := newFixture(t)
			f.offerAll()
			student := f.store.AddStudent(1, tt.dept, tt.completed...)

			s := f.plan(t, student)
			require.Len(t, s.Slots, 1)
			assert.Equal(t, tt.capstone, s.Slots[0].CourseCode)
			assert.Equal(t, planner.TierCapstone, s.Slots[0].Tier)
		})
	}
}

func TestPlan_CapstoneAfterFinishingASmallerTrack(t *testing.T) {
	f := newFixture(t)
	f.offerAll()
	completed := append(testutils.Without(testutils.ComputerScienceAllButCapstone), "CS 350", "CS 351", "CS 352", "STAT 320", "STAT 330")
	student := f.store.AddStudent(1, "CS", completed...)

	s := f.plan(t, student)
	assert.Equal(t, []string{"CS 499"}, codes(s))
}

func TestPlan_NoCapstoneWhileACoreCourseIsMissing(t *testing.T) {
	f := newFixture(t)
	for _, c := range testutils.Courses() {
		if c.Code != "CS 220" {
			f.store.AddOffering(c.Code, models.ScheduleTBD)
		}
	}
	student := f.store.AddStudent(1, "CS", testutils.Without(testutils.ComputerScienceAllButCapstone, "CS 220")...)

	s := f.plan(t, student)
	assert.NotContains(t, codes(s), "CS 499")
}

func TestPlan_CapstoneCountsCoursesPlacedThisTerm(t *testing.T) {
	f := newFixture(t)
	f.offerAll()
	student := f.store.AddStudent(1, "CS", testutils.Without(testutils.ComputerScienceAllButCapstone, "CS 220")...)

	s := f.plan(t, student)
	assert.Equal(t, []string{"CS 220", "CS 499"}, codes(s))

	// the simulated completion did not leak into the student's record
	completed, err := f.store.CompletedCourses(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, completed.Has("CS 220"))
}

func TestPlan_CapstoneGateIsPerStudent(t *testing.T) {
	f := newFixture(t)
	f.offerAll()
	ready := f.store.AddStudent(1, "CS", testutils.ComputerScienceAllButCapstone...)
	notReady := f.store.AddStudent(2, "CS", testutils.Without(testutils.ComputerScienceAllButCapstone, "CS 341", "CS 342")...)

	done := make(chan []string, 2)
	for _, st := range []*models.Student{ready, notReady} {
		go func(st *models.Student) {
			s, err := f.planner.Plan(context.Background(), st, testutils.Year, testutils.Term)
			if err != nil {
				done <- nil
				return
			}
			done <- codes(s)
		}(st)
	}
	results := [][]string{<-done, <-done}

	withCapstone := 0
	for _, r := range results {
		require.NotNil(t, r)
		if assert.NotEmpty(t, r) && r[len(r)-1] == "CS 499" {
			withCapstone++
		}
	}
	assert.Equal(t, 1, withCapstone)
}

func TestPlan_GeneralEducationTopTheme(t *testing.T) {
	completed := []string{
		"ENG 101", "ENG 102", "MATH 110", "HUM 101", "HUM 102",
		"HUM 201", "SOC 101", "CS 101", "CS 102", "STAT 210",
	}

	setup := func(t *testing.T, opts ...planner.Option) (*fixture, *models.Student) {
		f := newFixture(t, opts...)
		for _, code := range []string{"SOC 101", "SOC 130", "SOC 210", "SOC 220", "MATH 120", "STAT 250"} {
			f.store.AddOffering(code, models.ScheduleTBD)
		}
		return f, f.store.AddStudent(1, "CS", completed...)
	}

	t.Run("catalog order", func(t *testing.T) {
		f, st := setup(t)
		assert.Equal(t, []string{"SOC 210"}, codes(f.plan(t, st)))
	})

	t.Run("recommendation reorders candidates", func(t *testing.T) {
		rec := &testutils.Recommender{Ranking: []string{"MATH 120", "SOC 220"}}
		f, st := setup(t, planner.WithRecommender(rec))
		assert.Equal(t, []string{"SOC 220"}, codes(f.plan(t, st)))
		require.Len(t, rec.Calls, 1)
		assert.Equal(t, []string{"SOC 210", "SOC 220"}, rec.Calls[0])
	})

	t.Run("empty recommendation falls back to catalog order", func(t *testing.T) {
		f, st := setup(t, planner.WithRecommender(&testutils.Recommender{}))
		assert.Equal(t, []string{"SOC 210"}, codes(f.plan(t, st)))
	})
}

func TestPlan_FreshmanSkipsUpperDivisionGenEd(t *testing.T) {
	f := newFixture(t)
	for _, code := range []string{"SOC 101", "SOC 210", "SOC 220"} {
		f.store.AddOffering(code, models.ScheduleTBD)
	}
	// social science theme 4 still needs an upper-division course, which a freshman cannot take
	student := f.store.AddStudent(1, "CS", "ENG 101", "HUM 101", "HUM 102", "HUM 201", "SOC 101", "MATH 120")

	s := f.plan(t, student)
	assert.Empty(t, s.Slots)
}

func TestPlan_TrackAndFreeElective(t *testing.T) {
	f := newFixture(t)
	for _, code := range []string{"CS 351", "CS 341", "PHIL 230", "MUS 120"} {
		f.store.AddOffering(code, models.ScheduleTBD)
	}
	student := f.store.AddStudent(1, "CS", append(testutils.Without(testutils.ComputerScienceAllButCapstone,
		"CS 330", "CS 340", "CS 341", "CS 342", "MUS 120"), "CS 350", "STAT 310")...)

	s := f.plan(t, student)

	// Data Science leads with two completed courses; its required courses are done so an elective is next
	require.Len(t, s.Slots, 2)
	assert.Equal(t, "CS 351", s.Slots[0].CourseCode)
	assert.Equal(t, planner.TierTrack, s.Slots[0].Tier)
	assert.Equal(t, "MUS 120", s.Slots[1].CourseCode)
	assert.Equal(t, planner.TierFreeElective, s.Slots[1].Tier)
}

func TestPlan_Errors(t *testing.T) {
	f := newFixture(t)
	physics := f.store.AddStudent(1, "PHYS")
	_, err := f.planner.Plan(context.Background(), physics, testutils.Year, testutils.Term)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	cs := f.store.AddStudent(2, "CS")
	f.store.FailReads = errors.New("connection refused")
	_, err = f.planner.Plan(context.Background(), cs, testutils.Year, testutils.Term)
	assert.Error(t, err)
}

func TestNextTerm(t *testing.T) {
	tests := []struct {
		month time.Month
		year  int
		term  models.Term
	}{
		{time.January, 2026, models.TermSummer},
		{time.April, 2026, models.TermSummer},
		{time.May, 2026, models.TermFall},
		{time.July, 2026, models.TermFall},
		{time.August, 2027, models.TermSpring},
		{time.December, 2027, models.TermSpring},
	}
	for _, tt := range tests {
		year, term := planner.NextTerm(time.Date(2026, tt.month, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, tt.year, year, tt.month.String())
		assert.Equal(t, tt.term, term, tt.month.String())
	}
}
