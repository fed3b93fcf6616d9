// Package testutils holds course fixtures matching the embedded catalog and in-memory
// implementations of the repository contracts, for use in package tests.
package testutils

import (
	"sort"

	"github.com/yigit/degreeplan/internal/app/models"
)

type courseSpec struct {
	code    string
	credits int
	prereqs []string
	themes  []int
}

var courseSpecs = []courseSpec{
	// zero-credit requirements
	{code: "PE 101"}, {code: "PE 102"}, {code: "PE 103"}, {code: "PE 104"},
	{code: "FA 100"}, {code: "CD 100"}, {code: "PM 100"},

	// foundation
	{code: "ENG 101", credits: 3},
	{code: "ENG 102", credits: 3, prereqs: []string{"ENG 101"}},
	{code: "MATH 105", credits: 3},
	{code: "MATH 110", credits: 3},

	// computer science core
	{code: "CS 101", credits: 3},
	{code: "CS 102", credits: 3, prereqs: []string{"CS 101"}},
	{code: "CS 201", credits: 3, prereqs: []string{"CS 102"}},
	{code: "CS 210", credits: 3, prereqs: []string{"CS 102"}},
	{code: "CS 220", credits: 3, prereqs: []string{"CS 201"}},
	{code: "CS 301", credits: 3, prereqs: []string{"CS 201"}},
	{code: "CS 310", credits: 3, prereqs: []string{"CS 210"}},
	{code: "MATH 201", credits: 3, prereqs: []string{"MATH 110"}},
	{code: "MATH 205", credits: 3, prereqs: []string{"MATH 110"}},
	{code: "STAT 210", credits: 3},
	{code: "STAT 220", credits: 3},

	// computer science tracks
	{code: "CS 330", credits: 3, prereqs: []string{"CS 301"}},
	{code: "CS 340", credits: 3, prereqs: []string{"CS 301"}},
	{code: "CS 341", credits: 3}, {code: "CS 342", credits: 3},
	{code: "CS 343", credits: 3}, {code: "CS 344", credits: 3},
	{code: "CS 350", credits: 3, prereqs: []string{"CS 301"}},
	{code: "STAT 310", credits: 3, prereqs: []string{"STAT 210"}},
	{code: "CS 351", credits: 3}, {code: "CS 352", credits: 3},
	{code: "STAT 320", credits: 3}, {code: "STAT 330", credits: 3},
	{code: "CS 360", credits: 3, prereqs: []string{"CS 310"}},
	{code: "CS 370", credits: 3, prereqs: []string{"CS 310"}},
	{code: "CS 361", credits: 3}, {code: "CS 362", credits: 3}, {code: "CS 371", credits: 3},
	{code: "CS 499", credits: 3, prereqs: []string{"CS 301", "CS 310"}},

	// business core and tracks
	{code: "BUS 101", credits: 3},
	{code: "BUS 110", credits: 3},
	{code: "BUS 215", credits: 3},
	{code: "ACC 201", credits: 3},
	{code: "ACC 202", credits: 3, prereqs: []string{"ACC 201"}},
	{code: "FIN 210", credits: 3},
	{code: "MKT 220", credits: 3},
	{code: "MGMT 230", credits: 3},
	{code: "ECON 101", credits: 3},
	{code: "ECON 102", credits: 3},
	{code: "FIN 310", credits: 3, prereqs: []string{"FIN 210"}},
	{code: "FIN 320", credits: 3, prereqs: []string{"FIN 210"}},
	{code: "FIN 330", credits: 3}, {code: "FIN 340", credits: 3}, {code: "ACC 310", credits: 3},
	{code: "MKT 310", credits: 3, prereqs: []string{"MKT 220"}},
	{code: "MKT 320", credits: 3, prereqs: []string{"MKT 220"}},
	{code: "MKT 330", credits: 3}, {code: "MKT 340", credits: 3},
	{code: "BUS 490", credits: 3, prereqs: []string{"BUS 101", "MGMT 230"}},

	// free electives
	{code: "ART 150", credits: 3}, {code: "MUS 120", credits: 3}, {code: "PHIL 230", credits: 3},
	{code: "PSY 101", credits: 3}, {code: "COMM 210", credits: 3}, {code: "LANG 101", credits: 3},
	{code: "HIST 110", credits: 3},

	// general education, one workable cluster per sector plus spares
	{code: "HUM 101", credits: 3, themes: []int{1}},
	{code: "HUM 102", credits: 3, themes: []int{1}},
	{code: "HUM 201", credits: 3, themes: []int{1}},
	{code: "HUM 120", credits: 3, themes: []int{2}},
	{code: "HUM 250", credits: 3, themes: []int{2}},
	{code: "SOC 101", credits: 3, themes: []int{4}},
	{code: "SOC 210", credits: 3, themes: []int{4}},
	{code: "SOC 220", credits: 3, themes: []int{4}},
	{code: "SOC 130", credits: 3, themes: []int{5}},
	{code: "MATH 120", credits: 3, themes: []int{7}},
	{code: "STAT 250", credits: 3, themes: []int{7}},
	{code: "MATH 260", credits: 3, themes: []int{7}},
}

var foundation = models.NewCourseSet("ENG 101", "ENG 102", "MATH 105", "MATH 110")

// Courses returns fresh copies of every fixture course, ordered by code.
// Course ids are assigned in declaration order starting at 1. Every credit-bearing course
// outside the foundation that lists no prerequisite requires ENG 101.
func Courses() []*models.Course {
	out := make([]*models.Course, 0, len(courseSpecs))
	for i, def := range courseSpecs {
		prereqs := append([]string{}, def.prereqs...)
		if len(prereqs) == 0 && def.credits > 0 && !foundation.Has(def.code) {
			prereqs = []string{"ENG 101"}
		}
		out = append(out, &models.Course{
			ID:            int64(i + 1),
			Code:          def.code,
			Name:          def.code,
			Credits:       def.credits,
			Prerequisites: prereqs,
			Themes:        append([]int{}, def.themes...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// CourseMap returns Courses keyed by code
func CourseMap() map[string]*models.Course {
	m := make(map[string]*models.Course, len(courseSpecs))
	for _, c := range Courses() {
		m[c.Code] = c
	}
	return m
}

// Course returns a copy of one fixture course; it panics on unknown codes
func Course(code string) *models.Course {
	c, ok := CourseMap()[code]
	if !ok {
		panic("testutils: unknown course " + code)
	}
	return c
}

// GenEdComplete lists completed courses that close every gen-ed sector
var GenEdComplete = []string{
	"HUM 101", "HUM 102", "HUM 201",
	"SOC 101", "SOC 210", "SOC 220",
	"MATH 120", "STAT 250", "MATH 260",
}

// ComputerScienceAllButCapstone completes every computer science requirement except CS 499,
// finishing the Software Engineering track
var ComputerScienceAllButCapstone = append([]string{
	"ENG 101", "ENG 102", "MATH 110",
	"PE 101", "PE 102", "FA 100", "CD 100", "PM 100",
	"CS 101", "CS 102", "CS 201", "CS 210", "CS 220", "CS 301", "CS 310", "MATH 201", "STAT 210",
	"CS 330", "CS 340", "CS 341", "CS 342",
	"ART 150", "MUS 120",
}, GenEdComplete...)

// BusinessAllButCapstone completes every business requirement except BUS 490,
// finishing the Finance track
var BusinessAllButCapstone = append([]string{
	"ENG 101", "ENG 102", "MATH 105",
	"PE 101", "PE 102", "FA 100", "CD 100", "PM 100",
	"BUS 101", "BUS 110", "ACC 201", "ACC 202", "FIN 210", "MKT 220", "MGMT 230", "ECON 101", "STAT 210",
	"FIN 310", "FIN 320", "FIN 330", "FIN 340",
	"ART 150", "MUS 120",
}, GenEdComplete...)

// Without returns codes minus the excluded ones
func Without(codes []string, exclude ...string) []string {
	skip := models.NewCourseSet(exclude...)
	var out []string
	for _, c := range codes {
		if !skip.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
