package audit

import (
	"strings"

	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/gened"
	"github.com/yigit/degreeplan/internal/app/models"
)

// ComputerScienceEvaluator checks the computer science program.
// Any listed free elective that no other requirement claims counts.
type ComputerScienceEvaluator struct {
	base
}

// NewComputerScienceEvaluator creates an evaluator for a computer-science program entry
func NewComputerScienceEvaluator(program *catalog.Program, solver *gened.Solver) *ComputerScienceEvaluator {
	return &ComputerScienceEvaluator{base: base{program: program, solver: solver}}
}

// Evaluate runs every requirement check
func (e *ComputerScienceEvaluator) Evaluate(in *Input) *Audit {
	return e.evaluate(in, e)
}

// Core requires every core course and one course per pick-one-of group
func (e *ComputerScienceEvaluator) Core(in *Input) models.RequirementResult {
	return coreResult(e.program, in.Completed)
}

// FreeElective counts unreserved free elective courses
func (e *ComputerScienceEvaluator) FreeElective(in *Input) models.RequirementResult {
	return freeElectiveResult(e.program, in.Completed, nil)
}

// BusinessEvaluator checks the business administration program.
// Free electives must come from outside the program's own departments.
type BusinessEvaluator struct {
	base
}

// NewBusinessEvaluator creates an evaluator for a business program entry
func NewBusinessEvaluator(program *catalog.Program, solver *gened.Solver) *BusinessEvaluator {
	return &BusinessEvaluator{base: base{program: program, solver: solver}}
}

// Evaluate runs every requirement check
func (e *BusinessEvaluator) Evaluate(in *Input) *Audit {
	return e.evaluate(in, e)
}

// Core requires every core course and one course per pick-one-of group
func (e *BusinessEvaluator) Core(in *Input) models.RequirementResult {
	return coreResult(e.program, in.Completed)
}

// FreeElective counts unreserved free electives whose subject is not a home department
func (e *BusinessEvaluator) FreeElective(in *Input) models.RequirementResult {
	return freeElectiveResult(e.program, in.Completed, func(code string) bool {
		return !e.program.OwnsDepartment(subjectOf(code))
	})
}

// subjectOf returns the subject prefix of a course code ("ACC 201" -> "ACC")
func subjectOf(code string) string {
	if i := strings.IndexAny(code, " 0123456789"); i > 0 {
		return code[:i]
	}
	return code
}
