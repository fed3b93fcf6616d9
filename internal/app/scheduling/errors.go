package scheduling

import (
	"fmt"

	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

// ValidationError reports why a schedule was rejected and which slot caused it.
// Kind is one of the apperrors schedule validation sentinels, so errors.Is works on it.
type ValidationError struct {
	Kind       error  `json:"-"`
	CourseCode string `json:"courseCode,omitempty"`
	OfferingID int64  `json:"offeringId,omitempty"`
	Other      string `json:"conflictsWith,omitempty"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	switch {
	case e.Other != "":
		return fmt.Sprintf("%v: %s conflicts with %s", e.Kind, e.CourseCode, e.Other)
	case e.CourseCode != "":
		return fmt.Sprintf("%v: %s (offering %d)", e.Kind, e.CourseCode, e.OfferingID)
	case e.OfferingID != 0:
		return fmt.Sprintf("%v: offering %d", e.Kind, e.OfferingID)
	case e.Message != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes the sentinel kind
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func nilSchedule() error {
	return &ValidationError{Kind: apperrors.ErrNilSchedule}
}

func creditLimit(total, limit int) error {
	return &ValidationError{
		Kind:    apperrors.ErrCreditLimitExceeded,
		Message: fmt.Sprintf("%d credits scheduled, limit is %d", total, limit),
	}
}

func invalidOffering(id int64, code string) error {
	return &ValidationError{Kind: apperrors.ErrInvalidOffering, OfferingID: id, CourseCode: code}
}

func prerequisitesNotMet(id int64, code string) error {
	return &ValidationError{Kind: apperrors.ErrPrerequisitesNotMet, OfferingID: id, CourseCode: code}
}

func insufficientStanding(id int64, code string) error {
	return &ValidationError{Kind: apperrors.ErrInsufficientStanding, OfferingID: id, CourseCode: code}
}

func timeConflict(id int64, code, other string) error {
	return &ValidationError{Kind: apperrors.ErrTimeConflict, OfferingID: id, CourseCode: code, Other: other}
}

func malformedMeetingTime(id int64, code string, err error) error {
	return &ValidationError{Kind: apperrors.ErrMalformedMeetingTime, OfferingID: id, CourseCode: code, Message: err.Error()}
}
