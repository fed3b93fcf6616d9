package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

func TestCanAccessStudent(t *testing.T) {
	tests := []struct {
		name    string
		p       Principal
		student int64
		allowed bool
	}{
		{"own record", Principal{UserID: 1, StudentID: 5, Role: models.RoleStudent}, 5, true},
		{"other student", Principal{UserID: 1, StudentID: 5, Role: models.RoleStudent}, 6, false},
		{"student without record", Principal{UserID: 1, Role: models.RoleStudent}, 0, false},
		{"advisor", Principal{UserID: 2, Role: models.RoleAdvisor}, 6, true},
		{"instructor", Principal{UserID: 3, Role: models.RoleInstructor}, 6, true},
		{"unknown role", Principal{UserID: 4, StudentID: 6, Role: "GUEST"}, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAccessStudent(tt.p, tt.student)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
			}
		})
	}
}
