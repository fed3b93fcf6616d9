// Package gened searches for general-education cluster plans.
//
// A plan assigns one cluster to every sector (humanities, social-science, quantitative).
// A cluster is ClusterSize courses sharing one theme of that sector, with at least one
// lower-division and one upper-division course. No course may appear in two clusters.
package gened

import (
	"sort"

	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/models"
)

// Cluster is one sector's group of courses sharing a theme
type Cluster struct {
	Sector  string           `json:"sector"`
	Theme   int              `json:"theme"`
	Courses []*models.Course `json:"courses"`
}

// Solution assigns one cluster to each sector, in sector order
type Solution []Cluster

// Solver runs cluster searches over a fixed sector layout
type Solver struct {
	genEd catalog.GenEd
}

// NewSolver creates a solver for the given gen-ed layout
func NewSolver(genEd catalog.GenEd) *Solver {
	return &Solver{genEd: genEd}
}

// Eligible filters courses down to those carrying at least one gen-ed theme, sorted by code
func (s *Solver) Eligible(courses []*models.Course) []*models.Course {
	out := make([]*models.Course, 0, len(courses))
	seen := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		if c == nil {
			continue
		}
		if _, dup := seen[c.Code]; dup {
			continue
		}
		for _, t := range c.Themes {
			if s.genEd.IsGenEdTheme(t) {
				out = append(out, c)
				seen[c.Code] = struct{}{}
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// IsSatisfiable reports whether at least one complete plan exists
func (s *Solver) IsSatisfiable(courses []*models.Course) bool {
	return len(s.FindClusters(courses, 1)) > 0
}

// FindClusters returns up to max complete plans. max <= 0 returns every plan.
func (s *Solver) FindClusters(courses []*models.Course, max int) []Solution {
	st := &search{
		sectors: s.genEd.Sectors,
		size:    s.genEd.ClusterSize,
		pool:    s.Eligible(courses),
		max:     max,
	}
	st.used = make([]bool, len(st.pool))
	st.solve(0)
	return st.solutions
}

type search struct {
	sectors []catalog.Sector
	size    int
	pool    []*models.Course
	used    []bool
	max     int

	stack     []Cluster
	solutions []Solution
}

func (st *search) done() bool {
	return st.max > 0 && len(st.solutions) >= st.max
}

func (st *search) solve(stage int) {
	if st.done() {
		return
	}
	if stage == len(st.sectors) {
		st.solutions = append(st.solutions, append(Solution(nil), st.stack...))
		return
	}

	sector := st.sectors[stage]
	for _, theme := range sector.Themes {
		candidates := st.candidates(theme)
		st.eachCombination(candidates, func(picked []int) bool {
			st.push(sector.Name, theme, picked)
			st.solve(stage + 1)
			st.pop(picked)
			return !st.done()
		})
		if st.done() {
			return
		}
	}
}

// candidates returns the unused pool indices carrying theme
func (st *search) candidates(theme int) []int {
	var idx []int
	for i, c := range st.pool {
		if !st.used[i] && c.HasTheme(theme) {
			idx = append(idx, i)
		}
	}
	return idx
}

// eachCombination calls fn for every size-subset of candidates that mixes divisions.
// Enumeration stops as soon as fn returns false.
func (st *search) eachCombination(candidates []int, fn func(picked []int) bool) {
	if len(candidates) < st.size {
		return
	}
	picked := make([]int, 0, st.size)
	var rec func(start int) bool
	rec = func(start int) bool {
		if len(picked) == st.size {
			if !st.mixed(picked) {
				return true
			}
			return fn(append([]int(nil), picked...))
		}
		for i := start; i <= len(candidates)-(st.size-len(picked)); i++ {
			picked = append(picked, candidates[i])
			ok := rec(i + 1)
			picked = picked[:len(picked)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	rec(0)
}

func (st *search) mixed(picked []int) bool {
	lower, upper := false, false
	for _, i := range picked {
		if st.pool[i].Division() == models.DivisionLower {
			lower = true
		} else {
			upper = true
		}
	}
	return lower && upper
}

func (st *search) push(sector string, theme int, picked []int) {
	courses := make([]*models.Course, len(picked))
	for n, i := range picked {
		st.used[i] = true
		courses[n] = st.pool[i]
	}
	st.stack = append(st.stack, Cluster{Sector: sector, Theme: theme, Courses: courses})
}

func (st *search) pop(picked []int) {
	for _, i := range picked {
		st.used[i] = false
	}
	st.stack = st.stack[:len(st.stack)-1]
}
