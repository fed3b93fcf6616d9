package gened

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/models"
)

var layout = catalog.GenEd{
	ClusterSize: 3,
	Sectors: []catalog.Sector{
		{Name: "humanities", Themes: []int{1, 2, 3}},
		{Name: "social-science", Themes: []int{4, 5, 6}},
		{Name: "quantitative", Themes: []int{7, 8, 9}},
	},
}

func course(code string, themes ...int) *models.Course {
	return &models.Course{Code: code, Credits: 3, Themes: themes}
}

func fullPlan() []*models.Course {
	return []*models.Course{
		course("HUM 101", 1), course("HUM 102", 1), course("HUM 201", 1),
		course("SOC 101", 4), course("SOC 210", 4), course("SOC 220", 4),
		course("MATH 120", 7), course("STAT 250", 7), course("MATH 260", 7),
	}
}

func assertValidSolution(t *testing.T, sol Solution) {
	t.Helper()
	require.Len(t, sol, len(layout.Sectors))
	seen := map[string]bool{}
	for i, cl := range sol {
		assert.Equal(t, layout.Sectors[i].Name, cl.Sector)
		require.Len(t, cl.Courses, layout.ClusterSize)
		lower, upper := false, false
		for _, c := range cl.Courses {
			assert.True(t, c.HasTheme(cl.Theme), "%s lacks theme %d", c.Code, cl.Theme)
			assert.False(t, seen[c.Code], "%s reused across clusters", c.Code)
			seen[c.Code] = true
			if c.Division() == models.DivisionLower {
				lower = true
			} else {
				upper = true
			}
		}
		assert.True(t, lower && upper, "cluster %d lacks a division mix", i)
	}
}

func TestFindClusters_CompletePlan(t *testing.T) {
	s := NewSolver(layout)

	sols := s.FindClusters(fullPlan(), 1)
	require.Len(t, sols, 1)
	assertValidSolution(t, sols[0])
	assert.Equal(t, 1, sols[0][0].Theme)
	assert.Equal(t, 4, sols[0][1].Theme)
	assert.Equal(t, 7, sols[0][2].Theme)
	assert.True(t, s.IsSatisfiable(fullPlan()))
}

func TestFindClusters_RequiresDivisionMix(t *testing.T) {
	s := NewSolver(layout)
	courses := fullPlan()
	// replace the only upper-division humanities course with a lower-division one
	courses[2] = course("HUM 103", 1)

	assert.False(t, s.IsSatisfiable(courses))
	assert.Empty(t, s.FindClusters(courses, 0))
}

func TestFindClusters_NoCourseReuse(t *testing.T) {
	s := NewSolver(layout)
	// X 105 is the only lower-division course for both themes 1 and 4
	courses := []*models.Course{
		course("HUM 201", 1), course("HUM 202", 1), course("X 105", 1, 4),
		course("SOC 210", 4), course("SOC 220", 4),
		course("MATH 120", 7), course("STAT 250", 7), course("MATH 260", 7),
	}

	assert.False(t, s.IsSatisfiable(courses))

	// a second lower-division social course makes it solvable again
	courses = append(courses, course("SOC 105", 4))
	sols := s.FindClusters(courses, 0)
	require.NotEmpty(t, sols)
	for _, sol := range sols {
		assertValidSolution(t, sol)
	}
}

func TestFindClusters_StopsAtMax(t *testing.T) {
	s := NewSolver(layout)
	courses := append(fullPlan(), course("HUM 202", 1), course("SOC 230", 4))

	all := s.FindClusters(courses, 0)
	require.Greater(t, len(all), 2)

	limited := s.FindClusters(courses, 2)
	require.Len(t, limited, 2)
	assert.Equal(t, all[:2], limited)
}

func TestFindClusters_IgnoresNonGenEdCourses(t *testing.T) {
	s := NewSolver(layout)
	courses := append(fullPlan(), course("CS 101"), course("ART 150", 42), nil)

	eligible := s.Eligible(courses)
	assert.Len(t, eligible, 9)
	assert.Equal(t, "HUM 101", eligible[0].Code)
	assert.True(t, s.IsSatisfiable(courses))
}

func TestFindClusters_RandomPoolsOnlyYieldValidSolutions(t *testing.T) {
	s := NewSolver(layout)
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 25; round++ {
		var courses []*models.Course
		for i := 0; i < 14; i++ {
			number := 100 + rng.Intn(250)
			themes := []int{1 + rng.Intn(9)}
			if rng.Intn(4) == 0 {
				themes = append(themes, 1+rng.Intn(9))
			}
			courses = append(courses, course(fmt.Sprintf("%c %d", rune('A'+i), number), themes...))
		}
		for _, sol := range s.FindClusters(courses, 20) {
			assertValidSolution(t, sol)
		}
	}
}

func TestFindNeededClusters(t *testing.T) {
	s := NewSolver(layout)
	completed := []*models.Course{
		course("HUM 101", 1), course("HUM 102", 1), course("HUM 201", 1),
		course("SOC 101", 4), course("SOC 210", 4),
		course("MATH 120", 8), course("MATH 121", 8), course("MATH 122", 8),
	}

	needed := s.FindNeededClusters(completed)

	for _, n := range needed {
		assert.NotEqual(t, "humanities", n.Sector, "covered sector must not be reported")
	}
	require.NotEmpty(t, needed)
	assert.Equal(t, models.NeededCluster{Theme: 4, Sector: "social-science", MissingTotal: 1}, needed[0])
	assert.Equal(t, models.NeededCluster{Theme: 8, Sector: "quantitative", MissingUpper: 1, MissingTotal: 1}, needed[1])

	for i := 1; i < len(needed); i++ {
		assert.LessOrEqual(t, needed[i-1].MissingTotal, needed[i].MissingTotal)
	}
	last := needed[len(needed)-1]
	assert.Equal(t, 3, last.MissingTotal)
	assert.Equal(t, 1, last.MissingLower)
	assert.Equal(t, 1, last.MissingUpper)
}

func TestFindNeededClusters_NothingNeededWhenComplete(t *testing.T) {
	s := NewSolver(layout)
	assert.Empty(t, s.FindNeededClusters(fullPlan()))
}

func TestBestCoverage_PrefersMoreSectors(t *testing.T) {
	s := NewSolver(layout)
	courses := fullPlan()[:6]

	cov := s.BestCoverage(courses)
	assert.Len(t, cov.Clusters, 2)
	assert.True(t, cov.Covers("humanities"))
	assert.True(t, cov.Covers("social-science"))
	assert.False(t, cov.Covers("quantitative"))
}
