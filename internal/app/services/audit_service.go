package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/degreeplan/internal/app/audit"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/app/scheduling"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

// StudentReader loads students with their department
type StudentReader interface {
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
}

// StudentAudit is the full degree audit of one student
type StudentAudit struct {
	StudentID      int64        `json:"studentId"`
	Department     string       `json:"department"`
	Standing       string       `json:"standing"`
	PassingCredits int          `json:"passingCredits"`
	Completed      []string     `json:"completed"`
	Audit          *audit.Audit `json:"audit"`
	Missing        []string     `json:"missing"`
}

// AuditService runs degree audits
type AuditService struct {
	router   *audit.Router
	engine   *scheduling.Engine
	students StudentReader
	courses  audit.CourseSource
	logger   zerolog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(router *audit.Router, engine *scheduling.Engine, students StudentReader,
	courses audit.CourseSource, lgr zerolog.Logger) *AuditService {
	return &AuditService{
		router:   router,
		engine:   engine,
		students: students,
		courses:  courses,
		logger:   lgr,
	}
}

// Audit evaluates a student's passing courses against their program
func (s *AuditService) Audit(ctx context.Context, studentID int64) (*StudentAudit, error) {
	student, err := s.students.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	evaluator, err := s.router.ForDepartment(student.DepartmentCode())
	if err != nil {
		s.logger.Error().Err(err).
			Int64("studentId", studentID).
			Str("department", student.DepartmentCode()).
			Msg("No program for student department")
		return nil, err
	}

	record, err := s.engine.Student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	in, err := audit.LoadInput(ctx, s.courses, record.Completed)
	if err != nil {
		return nil, err
	}

	result := evaluator.Evaluate(in)
	missing := result.Descriptions()
	studentLogger := logger.ForStudent(s.logger, studentID)
	studentLogger.Debug().
		Str("program", result.Program).
		Int("missing", len(missing)).
		Msg("Degree audit evaluated")

	return &StudentAudit{
		StudentID:      studentID,
		Department:     student.DepartmentCode(),
		Standing:       record.Standing().String(),
		PassingCredits: record.PassingCredits,
		Completed:      record.Completed.Sorted(),
		Audit:          result,
		Missing:        missing,
	}, nil
}

// AuditStudentDegree returns one description per unsatisfied requirement, in report order
func (s *AuditService) AuditStudentDegree(ctx context.Context, studentID int64) ([]string, error) {
	a, err := s.Audit(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return a.Missing, nil
}
