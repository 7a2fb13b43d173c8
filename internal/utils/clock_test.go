package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockHours(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"2", 2, false},
		{"0", 0, false},
		{"2:15", 2.25, false},
		{"1:30", 1.5, false},
		{"0:45", 0.75, false},
		{" 3:00 ", 3, false},
		{"10", 10, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1:xx", 0, true},
		{"1:", 0, true},
		{":30", 0, true},
		{"1:60", 0, true},
		{"-1", 0, true},
		{"1:-5", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClockHours(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.input)
	}
}

func TestParseClockHours_Additive(t *testing.T) {
	first, err := ParseClockHours("1:30")
	require.NoError(t, err)
	second, err := ParseClockHours("2:00")
	require.NoError(t, err)

	assert.InDelta(t, 3.5, first+second, 1e-9)
}

func TestSplitClockHours(t *testing.T) {
	hours, minutes, err := SplitClockHours("2:15")
	require.NoError(t, err)
	assert.Equal(t, 2.0, hours)
	assert.Equal(t, 15.0, minutes)

	hours, minutes, err = SplitClockHours("4")
	require.NoError(t, err)
	assert.Equal(t, 4.0, hours)
	assert.Equal(t, 0.0, minutes)

	_, _, err = SplitClockHours("4:99")
	assert.Error(t, err)
}
