// Package timefmt converts integer minute offsets into the clock and duration
// strings shown on trip cards, timelines and map popups.
package timefmt

import "fmt"

// FormatClock renders a minute offset as "HH:MM".
//
// Hours are not wrapped at 24: offsets are minutes since the itinerary epoch,
// so a trip that runs past midnight renders "25:10" rather than "01:10".
// totalMinutes must be non-negative.
func FormatClock(totalMinutes int) string {
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// FormatDuration renders a duration in minutes as "45 min" below one hour and
// "2h05" from one hour upwards. Negative input is not validated.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	remainder := minutes % 60

	if hours == 0 {
		return fmt.Sprintf("%d min", remainder)
	}
	return fmt.Sprintf("%dh%02d", hours, remainder)
}
