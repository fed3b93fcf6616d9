// Package audit evaluates a student's completed courses against their program's requirements.
package audit

import (
	"fmt"
	"sort"

	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/gened"
	"github.com/yigit/degreeplan/internal/app/models"
)

// Input is the course view an audit runs against.
//
// Completed is usually the student's passing courses. During planning it is the union of
// those and the courses already placed in the schedule being built; the caller builds that
// union for one call only, so nothing is shared between students.
type Input struct {
	Completed models.CourseSet
	// Courses holds course details by code. It must cover the completed codes for the
	// general-education check; any extra courses become gen-ed candidates.
	Courses map[string]*models.Course
}

// NewInput builds an input from a completed set and course details
func NewInput(completed models.CourseSet, courses ...*models.Course) *Input {
	byCode := make(map[string]*models.Course, len(courses))
	for _, c := range courses {
		if c != nil {
			byCode[c.Code] = c
		}
	}
	if completed == nil {
		completed = models.CourseSet{}
	}
	return &Input{Completed: completed, Courses: byCode}
}

// WithCompleted returns a copy of the input whose completed set is extended by extra.
// The receiver is left untouched.
func (in *Input) WithCompleted(extra models.CourseSet) *Input {
	return &Input{Completed: in.Completed.Union(extra), Courses: in.Courses}
}

// CompletedCourses returns the details of completed courses, ordered by code
func (in *Input) CompletedCourses() []*models.Course {
	out := make([]*models.Course, 0, len(in.Completed))
	for _, code := range in.Completed.Sorted() {
		if c, ok := in.Courses[code]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Evaluator converts a student's course view into requirement results for one program.
type Evaluator interface {
	Program() *catalog.Program
	Evaluate(in *Input) *Audit
	PickChosenTrack(in *Input) catalog.Track
}

// rules are the checks a program variant defines for itself
type rules interface {
	Core(in *Input) models.RequirementResult
	FreeElective(in *Input) models.RequirementResult
}

// base implements the checks shared by every program
type base struct {
	program *catalog.Program
	solver  *gened.Solver
}

// Program returns the catalog entry the evaluator checks against
func (b *base) Program() *catalog.Program {
	return b.program
}

// evaluate runs every check in report order, delegating program-specific ones to r
func (b *base) evaluate(in *Input, r rules) *Audit {
	scenarios := b.Scenarios(in)
	chosen := b.PickChosenTrack(in)
	if done, ok := b.completedTrack(scenarios); ok {
		chosen = done
	}

	results := []models.RequirementResult{
		b.Foundation(in),
		b.PhysicalEducation(in),
		b.FirstAid(in),
		b.CivilDefense(in),
		b.PeerMentoring(in),
		r.Core(in),
		b.GeneralEducation(in),
		trackResult(chosen, in.Completed),
		r.FreeElective(in),
		b.Capstone(in),
	}

	return &Audit{
		Program:     b.program.Name,
		ChosenTrack: chosen.Name,
		Results:     results,
		Scenarios:   scenarios,
	}
}

// Foundation requires every foundation course
func (b *base) Foundation(in *Input) models.RequirementResult {
	return allOf(models.RequirementFoundation, b.program.Foundation, in.Completed)
}

// PhysicalEducation requires Pick courses out of the PE list
func (b *base) PhysicalEducation(in *Input) models.RequirementResult {
	return pickN(models.RequirementPhysicalEducation, b.program.PhysicalEducation, in.Completed)
}

// FirstAid requires every first-aid course
func (b *base) FirstAid(in *Input) models.RequirementResult {
	return allOf(models.RequirementFirstAid, b.program.FirstAid, in.Completed)
}

// CivilDefense requires every civil-defense course
func (b *base) CivilDefense(in *Input) models.RequirementResult {
	return allOf(models.RequirementCivilDefense, b.program.CivilDefense, in.Completed)
}

// PeerMentoring requires every peer-mentoring course
func (b *base) PeerMentoring(in *Input) models.RequirementResult {
	return allOf(models.RequirementPeerMentoring, b.program.PeerMentoring, in.Completed)
}

// Capstone requires the capstone course
func (b *base) Capstone(in *Input) models.RequirementResult {
	return allOf(models.RequirementCapstone, b.program.Capstone, in.Completed)
}

// GeneralEducation is satisfied when the completed courses admit a full cluster plan.
// Otherwise HowManyLeft sums, over uncovered sectors, the cheapest theme's missing total, and
// is at least one.
func (b *base) GeneralEducation(in *Input) models.RequirementResult {
	completed := in.CompletedCourses()
	if b.solver.IsSatisfiable(completed) {
		return models.NewRequirementResult(models.RequirementGeneralEducation, nil, 0)
	}

	cheapest := make(map[string]int)
	for _, n := range b.solver.FindNeededClusters(completed) {
		if cur, ok := cheapest[n.Sector]; !ok || n.MissingTotal < cur {
			cheapest[n.Sector] = n.MissingTotal
		}
	}
	left := 0
	for _, v := range cheapest {
		left += v
	}
	left = max(left, 1)

	var eligible []string
	for _, c := range b.solver.Eligible(coursesOf(in.Courses)) {
		if !in.Completed.Has(c.Code) {
			eligible = append(eligible, c.Code)
		}
	}
	return models.NewRequirementResult(models.RequirementGeneralEducation, eligible, left)
}

// coreResult is the shared core rule: every required course plus one course from each group
func coreResult(program *catalog.Program, completed models.CourseSet) models.RequirementResult {
	missing := completed.Missing(program.Core.Required)
	left := len(missing)
	eligible := append([]string{}, missing...)
	for _, group := range program.Core.PickOneOf {
		if completed.CountIn(group) == 0 {
			left++
			eligible = append(eligible, group...)
		}
	}
	return models.NewRequirementResult(models.RequirementCore, eligible, left)
}

// freeElectiveResult counts completed courses from the free elective list that no other
// requirement claims and that accept passes.
func freeElectiveResult(program *catalog.Program, completed models.CourseSet, accept func(code string) bool) models.RequirementResult {
	reserved := program.ReservedCodes()
	var pool []string
	for _, code := range program.FreeElective.Courses {
		if _, taken := reserved[code]; taken {
			continue
		}
		if accept != nil && !accept(code) {
			continue
		}
		pool = append(pool, code)
	}
	done := completed.CountIn(pool)
	left := program.FreeElective.Pick - done
	var eligible []string
	if left > 0 {
		eligible = completed.Missing(pool)
	}
	return models.NewRequirementResult(models.RequirementFreeElective, eligible, left)
}

func allOf(name string, codes []string, completed models.CourseSet) models.RequirementResult {
	missing := completed.Missing(codes)
	return models.NewRequirementResult(name, missing, len(missing))
}

func pickN(name string, g catalog.PickGroup, completed models.CourseSet) models.RequirementResult {
	left := g.Pick - completed.CountIn(g.Courses)
	var eligible []string
	if left > 0 {
		eligible = completed.Missing(g.Courses)
	}
	return models.NewRequirementResult(name, eligible, left)
}

func coursesOf(m map[string]*models.Course) []*models.Course {
	out := make([]*models.Course, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// trackName formats the requirement name of a track result
func trackName(t catalog.Track) string {
	return fmt.Sprintf("Track: %s", t.Name)
}
