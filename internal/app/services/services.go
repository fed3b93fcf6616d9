// Package services exposes the degree audit and schedule planning operations to the HTTP layer.
//
// Services defined in this package:
// - AuditService: evaluates a student's passing courses against their program
// - ScheduleService: generates, validates and stores next-term schedules
package services

// Services holds all the service instances
type Services struct {
	AuditService    *AuditService
	ScheduleService *ScheduleService
}
