package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	ErrDepartmentAlreadyExists = errors.New("department already exists")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Configuration errors are fatal: a request cannot be served without a program mapping.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrUnknownProgram = errors.New("no program is configured for department")
)

// Not-found errors
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrOfferingNotFound = errors.New("course offering not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// Schedule validation errors. Each is wrapped by scheduling.ValidationError with the offending code.
var (
	ErrNilSchedule          = errors.New("schedule is missing")
	ErrCreditLimitExceeded  = errors.New("schedule exceeds the credit limit")
	ErrInvalidOffering      = errors.New("schedule references an unknown offering")
	ErrPrerequisitesNotMet  = errors.New("prerequisites not met")
	ErrInsufficientStanding = errors.New("class standing too low for upper-division course")
	ErrTimeConflict         = errors.New("time conflict between offerings")
	ErrMalformedMeetingTime = errors.New("offering has an unparsable meeting time")
)

// Upstream errors never leave the planner; they are logged and replaced by a fallback.
var (
	ErrRecommendationUnavailable = errors.New("recommendation service unavailable")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConfigurationError creates a configuration error naming the offending key
func NewConfigurationError(key, message string) error {
	return &CustomError{
		Err:     ErrConfiguration,
		Message: message,
		Code:    key,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// IsValidation reports whether err is one of the schedule validation kinds
func IsValidation(err error) bool {
	return Is(err, ErrNilSchedule,
		ErrCreditLimitExceeded,
		ErrInvalidOffering,
		ErrPrerequisitesNotMet,
		ErrInsufficientStanding,
		ErrTimeConflict,
		ErrMalformedMeetingTime,
		ErrValidationFailed,
	)
}

// IsNotFound reports whether err is one of the not-found kinds
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound,
		ErrStudentNotFound,
		ErrOfferingNotFound,
		ErrCourseNotFound,
		ErrScheduleNotFound,
	)
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
