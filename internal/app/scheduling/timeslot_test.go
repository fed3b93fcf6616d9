package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		in   string
		want []Interval
	}{
		{"", nil},
		{"TBD", nil},
		{" tbd ", nil},
		{"MON 10:00am-11:15am", []Interval{{"MON", 600, 675}}},
		{"TUE 12:00pm-1:15pm", []Interval{{"TUE", 720, 795}}},
		{"WED 12:30am-1:00am", []Interval{{"WED", 30, 60}}},
		{"MON 9:00AM-9:50AM, WED 9:00am-9:50am", []Interval{{"MON", 540, 590}, {"WED", 540, 590}}},
		{"mon/thu 2:00pm-3:15pm", []Interval{{"MON", 840, 915}, {"THU", 840, 915}}},
		{"FRI 6pm-9pm", []Interval{{"FRI", 1080, 1260}}},
		{"MON 10:00am-11:15am WED 10:00am-11:15am", []Interval{{"MON", 600, 675}, {"WED", 600, 675}}},
		{"TUE 9:00am - 10:15am; THU 9:00 am-10:15 am", []Interval{{"TUE", 540, 615}, {"THU", 540, 615}}},
		{"MON WED 1:00pm-1:50pm", []Interval{{"MON", 780, 830}, {"WED", 780, 830}}},
	}
	for _, tt := range tests {
		got, err := ParseSchedule(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseSchedule_Malformed(t *testing.T) {
	for _, in := range []string{
		"MON",
		"MON 10:00-11:00",
		"XYZ 10:00am-11:00am",
		"MON 11:00am-10:00am",
		"MON 13:00pm-2:00pm",
		"MON 10:61am-11:00am",
		"MON 10:00am 11:00am",
		"10:00am-11:00am",
		"MON 10:00am-11:00am WED",
		"sometime",
	} {
		_, err := ParseSchedule(in)
		assert.ErrorIs(t, err, ErrMalformedSchedule, in)
	}
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"touching ranges", "MON 10:00am-11:15am", "MON 11:15am-12:30pm", false},
		{"nested range", "MON 10:00am-11:15am", "MON 10:30am-11:00am", true},
		{"partial overlap", "TUE 9:00am-10:15am", "TUE 10:00am-11:00am", true},
		{"different days", "MON 10:00am-11:15am", "TUE 10:00am-11:15am", false},
		{"shared day in a list", "MON 9:00am-9:50am, WED 9:00am-9:50am", "WED 9:30am-10:45am", true},
		{"tbd left", "TBD", "MON 10:00am-11:15am", false},
		{"tbd right", "MON 10:00am-11:15am", "TBD", false},
		{"empty", "", "MON 10:00am-11:15am", false},
		{"identical", "THU 1:00pm-2:15pm", "THU 1:00pm-2:15pm", true},
		{"space separated list", "MON 10:00am-11:15am WED 10:00am-11:15am", "MON 10:30am-11:00am", true},
		{"spaced dash", "FRI 1:00pm - 2:00pm", "FRI 1:30pm-3:00pm", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Conflicts(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			got, err = Conflicts(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConflicts_Unparsable(t *testing.T) {
	_, err := Conflicts("sometime", "MON 10:00am-11:15am")
	assert.ErrorIs(t, err, ErrMalformedSchedule)
	_, err = Conflicts("TBD", "MON 10:00am")
	assert.ErrorIs(t, err, ErrMalformedSchedule)
}
