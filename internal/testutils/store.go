package testutils

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

// Default term used for offerings added through the store
const (
	Year = 2026
	Term = models.TermFall
)

// Store is an in-memory stand-in for the course, offering, enrollment, student and
// schedule repositories.
type Store struct {
	mu         sync.RWMutex
	courses    map[string]*models.Course
	students   map[int64]*models.Student
	enrolled   map[int64][]*models.Enrollment
	offerings  []*models.CourseOffering
	schedules  map[int64]*models.Schedule
	nextOffer  int64
	nextSched  int64
	FailReads  error // returned by every read when set
	FailWrites error // returned by SaveSchedule when set
}

// NewStore creates a store seeded with the fixture courses and no students or offerings
func NewStore() *Store {
	return &Store{
		courses:   CourseMap(),
		students:  make(map[int64]*models.Student),
		enrolled:  make(map[int64][]*models.Enrollment),
		schedules: make(map[int64]*models.Schedule),
		nextOffer: 100,
		nextSched: 1,
	}
}

// AddStudent registers a student of the given department with ungraded enrollments in the
// completed courses
func (s *Store) AddStudent(id int64, department string, completed ...string) *models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &models.Student{
		ID:           id,
		UserID:       id,
		Identifier:   fmt.Sprintf("S%05d", id),
		DepartmentID: 1,
		Department:   &models.Department{ID: 1, Name: department, Code: department},
	}
	s.students[id] = st
	s.enrolled[id] = nil
	for _, code := range completed {
		s.enroll(id, code, nil)
	}
	return st
}

// AddEnrollment records a graded enrollment for an existing student
func (s *Store) AddEnrollment(studentID int64, code, grade string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enroll(studentID, code, &grade)
}

func (s *Store) enroll(studentID int64, code string, grade *string) {
	c, ok := s.courses[code]
	if !ok {
		// history may hold courses the catalog no longer lists; they earn no credits
		c = &models.Course{Code: code}
	}
	s.enrolled[studentID] = append(s.enrolled[studentID], &models.Enrollment{
		StudentID: studentID,
		CourseID:  c.ID,
		Grade:     grade,
		Course:    c,
	})
}

// passed returns the courses of the student's passing enrollments
func (s *Store) passed(studentID int64) []*models.Course {
	var out []*models.Course
	for _, e := range s.enrolled[studentID] {
		if e.IsPassing() {
			out = append(out, e.Course)
		}
	}
	return out
}

// AddOffering creates an offering of a fixture course in the default term
func (s *Store) AddOffering(code, schedule string) *models.CourseOffering {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[code]
	if !ok {
		panic("testutils: unknown course " + code)
	}
	s.nextOffer++
	o := &models.CourseOffering{
		ID:         s.nextOffer,
		CourseID:   c.ID,
		Instructor: "Staff",
		Year:       Year,
		Term:       Term,
		Section:    "01",
		Schedule:   schedule,
		Course:     c,
	}
	s.offerings = append(s.offerings, o)
	return o
}

// CompletedCourses implements the completed-courses provider
func (s *Store) CompletedCourses(ctx context.Context, studentID int64) (models.CourseSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	set := models.CourseSet{}
	for _, c := range s.passed(studentID) {
		set.Add(c.Code)
	}
	return set, nil
}

// PassingCredits sums the credits of the student's passed courses
func (s *Store) PassingCredits(ctx context.Context, studentID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return 0, s.FailReads
	}
	total := 0
	seen := models.CourseSet{}
	for _, c := range s.passed(studentID) {
		if !seen.Has(c.Code) {
			seen.Add(c.Code)
			total += c.Credits
		}
	}
	return total, nil
}

// OfferingsByTerm returns the offerings of one term ordered by id
func (s *Store) OfferingsByTerm(ctx context.Context, year int, term models.Term) ([]*models.CourseOffering, error) {
	return s.filterOfferings(func(o *models.CourseOffering) bool {
		return o.Year == year && o.Term == term
	})
}

// OfferingByID resolves one offering
func (s *Store) OfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	for _, o := range s.offerings {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: offering %d", apperrors.ErrOfferingNotFound, id)
}

func (s *Store) filterOfferings(keep func(*models.CourseOffering) bool) ([]*models.CourseOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	var out []*models.CourseOffering
	for _, o := range s.offerings {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CoursesByCodes returns the known courses among codes, ordered by code
func (s *Store) CoursesByCodes(ctx context.Context, codes []string) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	var out []*models.Course
	for _, code := range models.NewCourseSet(codes...).Sorted() {
		if c, ok := s.courses[code]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// GenEdCourses returns every course carrying at least one theme, ordered by code
func (s *Store) GenEdCourses(ctx context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	var out []*models.Course
	for _, c := range s.courses {
		if len(c.Themes) > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// GetStudentByID returns the student with their department loaded
func (s *Store) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	st, ok := s.students[id]
	if !ok {
		return nil, fmt.Errorf("%w: student %d", apperrors.ErrStudentNotFound, id)
	}
	return st, nil
}

// SaveSchedule stores a copy of the schedule and sets its ID and CreatedAt
func (s *Store) SaveSchedule(ctx context.Context, schedule *models.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	schedule.ID = s.nextSched
	schedule.CreatedAt = time.Now().UTC()
	s.nextSched++
	cp := *schedule
	cp.Slots = append([]models.ScheduleSlot{}, schedule.Slots...)
	s.schedules[cp.ID] = &cp
	return nil
}

// GetScheduleByID returns a stored schedule
func (s *Store) GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.schedules[id]
	if !ok {
		return nil, fmt.Errorf("%w: schedule %d", apperrors.ErrScheduleNotFound, id)
	}
	return sc, nil
}

// Recommender returns a fixed ranking and records the candidate lists it was asked about
type Recommender struct {
	mu      sync.Mutex
	Ranking []string
	Calls   [][]string
}

// Recommend ranks the candidates found in Ranking, in Ranking order
func (r *Recommender) Recommend(ctx context.Context, passed, candidates []string) []models.Recommendation {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, append([]string{}, candidates...))

	allowed := models.NewCourseSet(candidates...)
	var out []models.Recommendation
	for i, code := range r.Ranking {
		if allowed.Has(code) {
			out = append(out, models.Recommendation{CourseCode: code, Score: float64(len(r.Ranking) - i)})
		}
	}
	return out
}
