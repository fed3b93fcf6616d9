package repositories

import (
	"github.com/yigit/degreeplan/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository     *CourseRepository
	OfferingRepository   *OfferingRepository
	EnrollmentRepository *EnrollmentRepository
	StudentRepository    *StudentRepository
	ScheduleRepository   *ScheduleRepository
	DepartmentRepository *DepartmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(database.Pool),
		OfferingRepository:   NewOfferingRepository(database.Pool),
		EnrollmentRepository: NewEnrollmentRepository(database.Pool),
		StudentRepository:    NewStudentRepository(database.Pool),
		ScheduleRepository:   NewScheduleRepository(database),
		DepartmentRepository: NewDepartmentRepository(database.Pool),
	}
}
