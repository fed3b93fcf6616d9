package dto

import "github.com/yigit/degreeplan/internal/app/models"

// AuditResponse is the degree audit of one student
type AuditResponse struct {
	StudentID      int64                        `json:"studentId" example:"1"`
	Department     string                       `json:"department" example:"CS"`
	Program        string                       `json:"program" example:"Computer Science"`
	Standing       string                       `json:"standing" example:"SOPHOMORE"`
	PassingCredits int                          `json:"passingCredits" example:"33"`
	ChosenTrack    string                       `json:"chosenTrack" example:"Software Engineering"`
	Complete       bool                         `json:"complete"`
	Completed      []string                     `json:"completed"`
	Results        []models.RequirementResult   `json:"results"`
	Scenarios      []models.DegreeAuditScenario `json:"scenarios"`
	Missing        []string                     `json:"missing"`
}

// MissingRequirementsResponse lists the unsatisfied requirements of a student, one line each
type MissingRequirementsResponse struct {
	StudentID int64    `json:"studentId"`
	Missing   []string `json:"missing"`
}
