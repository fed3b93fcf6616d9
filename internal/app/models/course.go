package models

import (
	"strconv"
	"strings"
	"unicode"
)

// Course represents a course offered by a department.
type Course struct {
	ID            int64    `json:"id" db:"id"`
	DepartmentID  int64    `json:"departmentId" db:"department_id"`
	Code          string   `json:"code" db:"code"`
	Name          string   `json:"name" db:"name"`
	Description   *string  `json:"description,omitempty" db:"description"` // Nullable
	Credits       int      `json:"credits" db:"credits"`
	Prerequisites []string `json:"prerequisites" db:"prerequisites"` // Course codes
	Themes        []int    `json:"themes" db:"themes"`               // General education theme ids

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}

// Division derives lower/upper division from the course number
func (c *Course) Division() Division {
	return DivisionOf(c.Code)
}

// HasTheme reports whether the course carries the given theme id
func (c *Course) HasTheme(theme int) bool {
	for _, t := range c.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// CourseNumber extracts the first run of digits in a course code.
func CourseNumber(code string) int {
	start := strings.IndexFunc(code, unicode.IsDigit)
	if start < 0 {
		return 0
	}
	end := start
	for end < len(code) && unicode.IsDigit(rune(code[end])) {
		end++
	}
	n, err := strconv.Atoi(code[start:end])
	if err != nil {
		return 0
	}
	return n
}

// DivisionOf returns the division of a course code
func DivisionOf(code string) Division {
	if CourseNumber(code) < UpperDivisionThreshold {
		return DivisionLower
	}
	return DivisionUpper
}
