package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/degreeplan/internal/app/models"
)

// Validation rule patterns
var (
	// Course codes are a subject prefix and a three digit number, e.g. "CS 101" or "PE 101L"
	CourseCodePattern = `^[A-Z]{2,5} \d{3}[A-Z]?$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

// IsCourseCode reports whether s is a well-formed course code
func IsCourseCode(s string) bool {
	return CompiledPatterns.CourseCode.MatchString(s)
}

// Register adds the "coursecode" and "term" tags to v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return IsCourseCode(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("term", func(fl validator.FieldLevel) bool {
		return models.Term(fl.Field().String()).Valid()
	})
}
