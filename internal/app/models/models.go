package models

// RoleType defines the user role type carried in access tokens
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleAdvisor    RoleType = "ADVISOR"
)

// Term represents a semester term
type Term string

// Term constants
const (
	TermSpring Term = "SPRING"
	TermSummer Term = "SUMMER"
	TermFall   Term = "FALL"
)

// Valid reports whether t is one of the known terms
func (t Term) Valid() bool {
	switch t {
	case TermSpring, TermSummer, TermFall:
		return true
	}
	return false
}

// Division classifies a course as lower or upper division
type Division string

const (
	DivisionLower Division = "LOWER"
	DivisionUpper Division = "UPPER"
)

// UpperDivisionThreshold is the first course number counted as upper division
const UpperDivisionThreshold = 200

// Standing is the academic class level derived from total passing credits
type Standing int

const (
	StandingFreshman Standing = iota
	StandingSophomore
	StandingJunior
	StandingSenior
)

// String returns the display name of the standing
func (s Standing) String() string {
	switch s {
	case StandingFreshman:
		return "FRESHMAN"
	case StandingSophomore:
		return "SOPHOMORE"
	case StandingJunior:
		return "JUNIOR"
	case StandingSenior:
		return "SENIOR"
	default:
		return "UNKNOWN"
	}
}

// StandingForCredits maps total passing credits onto the fixed credit bands:
// 0-29 freshman, 30-59 sophomore, 60-89 junior, 90+ senior.
func StandingForCredits(credits int) Standing {
	switch {
	case credits >= 90:
		return StandingSenior
	case credits >= 60:
		return StandingJunior
	case credits >= 30:
		return StandingSophomore
	default:
		return StandingFreshman
	}
}
