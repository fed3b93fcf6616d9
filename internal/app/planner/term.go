package planner

import (
	"time"

	"github.com/yigit/degreeplan/internal/app/models"
)

// NextTerm returns the term a student would register for at the given time:
// January-April plans summer, May-July plans fall and August-December plans next spring.
func NextTerm(now time.Time) (int, models.Term) {
	switch m := now.Month(); {
	case m <= time.April:
		return now.Year(), models.TermSummer
	case m <= time.July:
		return now.Year(), models.TermFall
	default:
		return now.Year() + 1, models.TermSpring
	}
}
