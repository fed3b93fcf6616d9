package models

// Requirement names reported by the degree audit
const (
	RequirementFoundation        = "Foundation"
	RequirementPhysicalEducation = "Physical Education"
	RequirementFirstAid          = "First Aid"
	RequirementCivilDefense      = "Civil Defense"
	RequirementPeerMentoring     = "Peer Mentoring"
	RequirementCore              = "Core"
	RequirementGeneralEducation  = "General Education"
	RequirementFreeElective      = "Free Elective"
	RequirementCapstone          = "Capstone"
)

// RequirementResult is the outcome of checking one degree requirement.
// Satisfied is always equivalent to HowManyLeft <= 0.
type RequirementResult struct {
	Name        string   `json:"name"`
	Satisfied   bool     `json:"satisfied"`
	Eligible    []string `json:"eligible"` // Course codes that can still satisfy the requirement
	HowManyLeft int      `json:"howManyLeft"`
}

// NewRequirementResult builds a result whose Satisfied flag follows howManyLeft
func NewRequirementResult(name string, eligible []string, howManyLeft int) RequirementResult {
	if howManyLeft < 0 {
		howManyLeft = 0
	}
	if eligible == nil {
		eligible = []string{}
	}
	return RequirementResult{
		Name:        name,
		Satisfied:   howManyLeft <= 0,
		Eligible:    eligible,
		HowManyLeft: howManyLeft,
	}
}

// DegreeAuditScenario is one named track attempt
type DegreeAuditScenario struct {
	Track   string              `json:"track"`
	Results []RequirementResult `json:"results"`
}

// Satisfied reports whether every result of the scenario is satisfied
func (s DegreeAuditScenario) Satisfied() bool {
	for _, r := range s.Results {
		if !r.Satisfied {
			return false
		}
	}
	return true
}

// NeededCluster estimates what is still missing to close a gen-ed cluster for one theme
type NeededCluster struct {
	Theme        int    `json:"theme"`
	Sector       string `json:"sector"`
	MissingLower int    `json:"missingLower"`
	MissingUpper int    `json:"missingUpper"`
	MissingTotal int    `json:"missingTotal"`
}
