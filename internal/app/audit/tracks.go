package audit

import (
	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/models"
)

// PickChosenTrack returns the track with the most completed courses in its pool.
// Ties go to the track declared first in the catalog.
func (b *base) PickChosenTrack(in *Input) catalog.Track {
	best := b.program.Tracks[0]
	bestCount := in.Completed.CountIn(best.Pool())
	for _, t := range b.program.Tracks[1:] {
		if n := in.Completed.CountIn(t.Pool()); n > bestCount {
			best, bestCount = t, n
		}
	}
	return best
}

// completedTrack returns the first track whose scenario is satisfied. A finished track
// satisfies the track requirement even when another track holds more completed courses.
func (b *base) completedTrack(scenarios []models.DegreeAuditScenario) (catalog.Track, bool) {
	for i, s := range scenarios {
		if s.Satisfied() {
			return b.program.Tracks[i], true
		}
	}
	return catalog.Track{}, false
}

// Scenarios evaluates every track as its own attempt: required courses and electives
func (b *base) Scenarios(in *Input) []models.DegreeAuditScenario {
	out := make([]models.DegreeAuditScenario, 0, len(b.program.Tracks))
	for _, t := range b.program.Tracks {
		out = append(out, models.DegreeAuditScenario{
			Track: t.Name,
			Results: []models.RequirementResult{
				allOf(trackName(t)+" required", t.Required, in.Completed),
				trackElectives(t, in.Completed),
			},
		})
	}
	return out
}

func trackElectives(t catalog.Track, completed models.CourseSet) models.RequirementResult {
	left := t.ElectivesNeeded - completed.CountIn(t.Electives)
	var eligible []string
	if left > 0 {
		eligible = completed.Missing(t.Electives)
	}
	return models.NewRequirementResult(trackName(t)+" electives", eligible, left)
}

// trackResult folds a track's required and elective checks into one result
func trackResult(t catalog.Track, completed models.CourseSet) models.RequirementResult {
	req := allOf(trackName(t), t.Required, completed)
	el := trackElectives(t, completed)
	eligible := append(append([]string{}, req.Eligible...), el.Eligible...)
	return models.NewRequirementResult(trackName(t), eligible, req.HowManyLeft+el.HowManyLeft)
}
