package planner

import (
	"context"

	"github.com/yigit/degreeplan/internal/app/models"
)

// Tier names recorded on schedule slots
const (
	TierPeerMentoring    = "peer-mentoring"
	TierSafety           = "first-aid-civil-defense"
	TierPhysical         = "physical-education"
	TierFoundation       = "foundation"
	TierCore             = "core"
	TierGeneralEducation = "general-education"
	TierTrack            = "track"
	TierFreeElective     = "free-elective"
	TierCapstone         = "capstone"
)

type tier struct {
	name string
	run  func(ctx context.Context, b *build)
}

// tiers run in this order; each one may add slots until the credit cap is reached
var tiers = []tier{
	{TierPeerMentoring, peerMentoring},
	{TierSafety, safety},
	{TierPhysical, physicalEducation},
	{TierFoundation, foundation},
	{TierCore, core},
	{TierGeneralEducation, generalEducation},
	{TierTrack, track},
	{TierFreeElective, freeElective},
	{TierCapstone, capstone},
}

func peerMentoring(_ context.Context, b *build) {
	b.placeFirst(b.missing(models.RequirementPeerMentoring), TierPeerMentoring)
}

// safety adds every missing first-aid and civil-defense course it can
func safety(_ context.Context, b *build) {
	for _, name := range []string{models.RequirementFirstAid, models.RequirementCivilDefense} {
		for _, code := range b.missing(name) {
			if b.full() {
				return
			}
			b.place(code, TierSafety)
		}
	}
}

func physicalEducation(_ context.Context, b *build) {
	b.placeFirst(b.missing(models.RequirementPhysicalEducation), TierPhysical)
}

func foundation(_ context.Context, b *build) {
	b.placeFirst(b.missing(models.RequirementFoundation), TierFoundation)
}

// core adds required core courses in catalog order, then one option per open pick-one-of group
func core(_ context.Context, b *build) {
	program := b.evaluator.Program()
	completed := b.record.Completed
	added := 0

	for _, code := range completed.Missing(program.Core.Required) {
		if added >= b.planner.maxCoreCourses || b.full() {
			return
		}
		if b.place(code, TierCore) {
			added++
		}
	}
	for _, group := range program.Core.PickOneOf {
		if added >= b.planner.maxCoreCourses || b.full() {
			return
		}
		if completed.CountIn(group) > 0 {
			continue
		}
		if b.placeFirst(group, TierCore) {
			added++
		}
	}
}

// generalEducation works on the theme closest to completion. Candidates are offered courses of
// that theme whose division the cluster still lacks and whose standing requirement the student meets.
func generalEducation(ctx context.Context, b *build) {
	if len(b.missing(models.RequirementGeneralEducation)) == 0 {
		return
	}
	needed := b.planner.solver.FindNeededClusters(b.completed)
	if len(needed) == 0 {
		return
	}
	top := needed[0]

	standing := b.record.Standing()
	seen := models.CourseSet{}
	var candidates []string
	for _, o := range b.available {
		c := o.Course
		if c == nil || !c.HasTheme(top.Theme) || seen.Has(c.Code) {
			continue
		}
		div := c.Division()
		if !divisionWanted(top, div) {
			continue
		}
		if div == models.DivisionUpper && standing < models.StandingSophomore {
			continue
		}
		seen.Add(c.Code)
		candidates = append(candidates, c.Code)
	}

	b.logger.Debug().
		Int("theme", top.Theme).
		Str("sector", top.Sector).
		Int("missingTotal", top.MissingTotal).
		Strs("candidates", candidates).
		Msg("General education candidates")
	b.placeFirst(b.rank(ctx, candidates), TierGeneralEducation)
}

// divisionWanted reports whether a course of div helps close the cluster.
// When only one division is missing, only that division is wanted.
func divisionWanted(n models.NeededCluster, div models.Division) bool {
	switch {
	case n.MissingLower > 0 && n.MissingUpper == 0:
		return div == models.DivisionLower
	case n.MissingUpper > 0 && n.MissingLower == 0:
		return div == models.DivisionUpper
	default:
		return true
	}
}

// track adds one course of the best-fit track unless some track is already complete
func track(_ context.Context, b *build) {
	if b.audit.AnyTrackComplete() {
		return
	}
	t := b.evaluator.PickChosenTrack(b.input)
	completed := b.record.Completed

	codes := completed.Missing(t.Required)
	if completed.CountIn(t.Electives) < t.ElectivesNeeded {
		codes = append(codes, completed.Missing(t.Electives)...)
	}
	b.placeFirst(codes, TierTrack)
}

func freeElective(ctx context.Context, b *build) {
	candidates := b.offered(b.missing(models.RequirementFreeElective))
	b.placeFirst(b.rank(ctx, candidates), TierFreeElective)
}

// capstone is attempted only when every other requirement would be satisfied by the student's
// passed courses together with the courses already placed in this schedule
func capstone(_ context.Context, b *build) {
	simulated := b.input.WithCompleted(b.schedule.Codes())
	if !b.evaluator.Evaluate(simulated).AllElseDoneButCapstone() {
		b.logger.Debug().Msg("Capstone gate closed")
		return
	}
	b.placeFirst(b.missing(models.RequirementCapstone), TierCapstone)
}
