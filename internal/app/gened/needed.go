package gened

import (
	"sort"

	"github.com/yigit/degreeplan/internal/app/models"
)

// Coverage is the largest partial plan found over a course list
type Coverage struct {
	Clusters []Cluster
	covered  map[string]bool
	used     map[string]bool
}

// Covers reports whether the sector already has a cluster
func (c *Coverage) Covers(sector string) bool {
	return c.covered[sector]
}

// BestCoverage finds an assignment covering as many sectors as possible.
// Sectors are tried in order and the first maximal assignment wins.
func (s *Solver) BestCoverage(courses []*models.Course) *Coverage {
	st := &search{
		sectors: s.genEd.Sectors,
		size:    s.genEd.ClusterSize,
		pool:    s.Eligible(courses),
	}
	st.used = make([]bool, len(st.pool))

	var best []Cluster
	full := len(st.sectors)
	var rec func(stage int) bool
	rec = func(stage int) bool {
		if len(st.stack) > len(best) {
			best = append([]Cluster(nil), st.stack...)
		}
		if len(best) == full {
			return false
		}
		if stage == len(st.sectors) || len(st.stack)+(len(st.sectors)-stage) <= len(best) {
			return true
		}
		sector := st.sectors[stage]
		for _, theme := range sector.Themes {
			cont := true
			st.eachCombination(st.candidates(theme), func(picked []int) bool {
				st.push(sector.Name, theme, picked)
				cont = rec(stage + 1)
				st.pop(picked)
				return cont
			})
			if !cont {
				return false
			}
		}
		// leave this sector uncovered
		return rec(stage + 1)
	}
	rec(0)

	cov := &Coverage{Clusters: best, covered: map[string]bool{}, used: map[string]bool{}}
	for _, cl := range best {
		cov.covered[cl.Sector] = true
		for _, c := range cl.Courses {
			cov.used[c.Code] = true
		}
	}
	return cov
}

// FindNeededClusters estimates, for every theme of every sector not yet covered, how many more
// lower-division, upper-division and total courses would close a cluster on that theme.
// Courses already consumed by covered sectors are not counted. The result is ordered by
// ascending MissingTotal; ties keep sector then theme declaration order.
func (s *Solver) FindNeededClusters(completed []*models.Course) []models.NeededCluster {
	cov := s.BestCoverage(completed)
	pool := s.Eligible(completed)
	size := s.genEd.ClusterSize

	var needed []models.NeededCluster
	for _, sector := range s.genEd.Sectors {
		if cov.Covers(sector.Name) {
			continue
		}
		for _, theme := range sector.Themes {
			lower, upper := 0, 0
			for _, c := range pool {
				if cov.used[c.Code] || !c.HasTheme(theme) {
					continue
				}
				if c.Division() == models.DivisionLower {
					lower++
				} else {
					upper++
				}
			}
			n := models.NeededCluster{
				Theme:        theme,
				Sector:       sector.Name,
				MissingLower: max(0, 1-lower),
				MissingUpper: max(0, 1-upper),
			}
			n.MissingTotal = max(size-min(lower+upper, size), n.MissingLower+n.MissingUpper)
			needed = append(needed, n)
		}
	}

	sort.SliceStable(needed, func(i, j int) bool {
		return needed[i].MissingTotal < needed[j].MissingTotal
	})
	return needed
}
