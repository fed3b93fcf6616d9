package audit

import (
	"fmt"
	"strings"

	"github.com/yigit/degreeplan/internal/app/models"
)

// Audit is the outcome of evaluating one student's course view
type Audit struct {
	Program     string                       `json:"program"`
	ChosenTrack string                       `json:"chosenTrack"`
	Results     []models.RequirementResult   `json:"results"`
	Scenarios   []models.DegreeAuditScenario `json:"scenarios"`
}

// Result returns the result with the given name
func (a *Audit) Result(name string) (models.RequirementResult, bool) {
	for _, r := range a.Results {
		if r.Name == name {
			return r, true
		}
	}
	return models.RequirementResult{}, false
}

// Missing returns the unsatisfied results in report order
func (a *Audit) Missing() []models.RequirementResult {
	var out []models.RequirementResult
	for _, r := range a.Results {
		if !r.Satisfied {
			out = append(out, r)
		}
	}
	return out
}

// Complete reports whether every requirement is satisfied
func (a *Audit) Complete() bool {
	return len(a.Missing()) == 0
}

// AllElseDoneButCapstone reports whether every requirement other than the capstone is satisfied
func (a *Audit) AllElseDoneButCapstone() bool {
	for _, r := range a.Results {
		if r.Name != models.RequirementCapstone && !r.Satisfied {
			return false
		}
	}
	return true
}

// AnyTrackComplete reports whether some track scenario is fully satisfied
func (a *Audit) AnyTrackComplete() bool {
	for _, s := range a.Scenarios {
		if s.Satisfied() {
			return true
		}
	}
	return false
}

// Descriptions renders every unsatisfied requirement as one human-readable line
func (a *Audit) Descriptions() []string {
	missing := a.Missing()
	out := make([]string, 0, len(missing))
	for _, r := range missing {
		out = append(out, Describe(r))
	}
	return out
}

// Describe renders one requirement result
func Describe(r models.RequirementResult) string {
	if r.Satisfied {
		return fmt.Sprintf("%s: satisfied", r.Name)
	}
	noun := "courses"
	if r.HowManyLeft == 1 {
		noun = "course"
	}
	if len(r.Eligible) == 0 {
		return fmt.Sprintf("%s: %d more %s needed", r.Name, r.HowManyLeft, noun)
	}
	return fmt.Sprintf("%s: %d more %s needed from %s", r.Name, r.HowManyLeft, noun, strings.Join(r.Eligible, ", "))
}
