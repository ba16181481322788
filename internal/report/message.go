// Package report renders workout summaries as human-readable lines.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"example.com/workout/internal/training"
)

// Message renders a summary as a single line. Every numeric field is shown with
// three fixed decimals; halfway values round to even.
func Message(s training.Summary) string {
	var b strings.Builder
	b.WriteString("Training type: ")
	b.WriteString(s.Label)
	fmt.Fprintf(&b, "; Duration: %s h", fixed(s.DurationHours))
	fmt.Fprintf(&b, "; Distance: %s km", fixed(s.DistanceKm))
	fmt.Fprintf(&b, "; Mean speed: %s km/h", fixed(s.MeanSpeedKmh))
	fmt.Fprintf(&b, "; Calories burned: %s.", fixed(s.CaloriesKcal))
	return b.String()
}

// Lines renders one message per summary, preserving order.
func Lines(summaries []training.Summary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, Message(s))
	}
	return out
}

func fixed(v float64) string {
	out := strconv.FormatFloat(v, 'f', 3, 64)
	if out == "-0.000" {
		return "0.000"
	}
	return out
}
