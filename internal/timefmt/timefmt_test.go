package timefmt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		expected string
	}{
		{name: "Midnight", minutes: 0, expected: "00:00"},
		{name: "Single digit hour and minute", minutes: 65, expected: "01:05"},
		{name: "Morning", minutes: 630, expected: "10:30"},
		{name: "Last minute of the day", minutes: 1439, expected: "23:59"},
		{name: "Past midnight is not wrapped", minutes: 1500, expected: "25:00"},
		{name: "Multi-day offset", minutes: 100*60 + 7, expected: "100:07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatClock(tt.minutes))
		})
	}
}

func TestFormatClockWithinOneDay(t *testing.T) {
	for m := 0; m < 1440; m++ {
		expected := fmt.Sprintf("%02d:%02d", m/60, m%60)
		if got := FormatClock(m); got != expected {
			t.Fatalf("FormatClock(%d) = %q, want %q", m, got, expected)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		expected string
	}{
		{name: "Zero", minutes: 0, expected: "0 min"},
		{name: "Under an hour", minutes: 45, expected: "45 min"},
		{name: "Just under an hour", minutes: 59, expected: "59 min"},
		{name: "Exactly one hour", minutes: 60, expected: "1h00"},
		{name: "Whole hours", minutes: 120, expected: "2h00"},
		{name: "Hours and minutes", minutes: 150, expected: "2h30"},
		{name: "Padded minutes", minutes: 65, expected: "1h05"},
		{name: "Long trip", minutes: 260, expected: "4h20"},
		{name: "More than a day", minutes: 1501, expected: "25h01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.minutes))
		})
	}
}

func TestFormatDurationHourFormBoundary(t *testing.T) {
	for d := 0; d < 600; d++ {
		got := FormatDuration(d)
		if d < 60 {
			assert.Equal(t, fmt.Sprintf("%d min", d), got)
		} else {
			assert.Equal(t, fmt.Sprintf("%dh%02d", d/60, d%60), got)
		}
	}
}

func TestFormatDurationNegativeIsNotValidated(t *testing.T) {
	// Malformed input renders as-is rather than failing.
	assert.Equal(t, "-5 min", FormatDuration(-5))
}
