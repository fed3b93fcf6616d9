package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/degreeplan/internal/app/audit"
	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/gened"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

func TestRouter_ForDepartment(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		dept    string
		program string
	}{
		{"CS", "Computer Science"},
		{"cmpe", "Computer Science"},
		{" BUS ", "Business Administration"},
		{"MGMT", "Business Administration"},
	}
	for _, tt := range tests {
		ev, err := r.ForDepartment(tt.dept)
		require.NoError(t, err, tt.dept)
		assert.Equal(t, tt.program, ev.Program().Name)
	}

	assert.IsType(t, &audit.ComputerScienceEvaluator{}, mustRoute(t, r, "CS"))
	assert.IsType(t, &audit.BusinessEvaluator{}, mustRoute(t, r, "BUS"))
	assert.Len(t, r.Programs(), 2)
}

func mustRoute(t *testing.T, r *audit.Router, dept string) audit.Evaluator {
	t.Helper()
	ev, err := r.ForDepartment(dept)
	require.NoError(t, err)
	return ev
}

func TestRouter_UnknownDepartmentIsConfigurationError(t *testing.T) {
	_, err := newRouter(t).ForDepartment("PHYS")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	assert.ErrorIs(t, err, apperrors.ErrUnknownProgram)
	assert.Contains(t, err.Error(), "PHYS")
}

func TestNewRouter_UnsupportedKind(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	cat.Programs[0].Kind = "astrology"

	_, err = audit.NewRouter(cat, gened.NewSolver(cat.GenEd))
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestPickChosenTrack(t *testing.T) {
	ev := evaluator(t, "CS")

	tests := []struct {
		name      string
		completed []string
		want      string
	}{
		{"nothing completed uses declaration order", nil, "Software Engineering"},
		{"most completed wins", []string{"CS 350", "CS 351", "CS 330"}, "Data Science"},
		{"tie goes to earlier track", []string{"CS 360", "CS 351"}, "Data Science"},
		{"tie across all tracks", []string{"CS 341", "CS 352", "CS 362"}, "Software Engineering"},
		{"systems", []string{"CS 360", "CS 370", "CS 371"}, "Systems"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input(tt.completed...)
			first := ev.PickChosenTrack(in)
			assert.Equal(t, tt.want, first.Name)
			for i := 0; i < 10; i++ {
				assert.Equal(t, first.Name, ev.PickChosenTrack(in).Name)
			}
			assert.Equal(t, tt.want, ev.Evaluate(in).ChosenTrack)
		})
	}
}

func TestScenarios_OnePerTrack(t *testing.T) {
	a := evaluator(t, "BUS").Evaluate(input("MKT 310", "MKT 320", "MKT 330", "COMM 210"))

	require.Len(t, a.Scenarios, 2)
	assert.Equal(t, "Finance", a.Scenarios[0].Track)
	assert.False(t, a.Scenarios[0].Satisfied())
	assert.Equal(t, "Marketing", a.Scenarios[1].Track)
	assert.True(t, a.Scenarios[1].Satisfied())
	assert.Equal(t, "Marketing", a.ChosenTrack)
	assert.True(t, a.AnyTrackComplete())
}
