package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollment_IsPassing(t *testing.T) {
	grade := func(g string) *string { return &g }
	tests := []struct {
		name  string
		grade *string
		want  bool
	}{
		{"ungraded", nil, true},
		{"letter grade", grade("B"), true},
		{"pass", grade("P"), true},
		{"fail", grade(GradeFail), false},
		{"withdrawn", grade(GradeWithdraw), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Enrollment{Grade: tt.grade}
			assert.Equal(t, tt.want, e.IsPassing())
		})
	}
}
