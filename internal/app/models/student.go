package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID             int64  `json:"id" db:"id" example:"1"`
	UserID         int64  `json:"userId" db:"user_id" example:"5"`
	Identifier     string `json:"identifier" db:"identifier" example:"12345678"`
	DepartmentID   int64  `json:"departmentId" db:"department_id" example:"3"`
	GraduationYear int    `json:"graduationYear" db:"graduation_year" example:"2026"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}

// DepartmentCode returns the code of the student's department, if loaded
func (s *Student) DepartmentCode() string {
	if s == nil || s.Department == nil {
		return ""
	}
	return s.Department.Code
}
