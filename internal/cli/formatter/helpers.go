package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Location is the zone timestamps are displayed in.
var Location = time.Local

const (
	instantLayout = "2006-01-02 15:04"
	clockLayout   = "15:04"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// FormatInstant renders t as "2006-01-02 15:04" in Location.
func FormatInstant(t time.Time) string {
	return t.In(Location).Format(instantLayout)
}

// FormatRange renders a range compactly; the end drops its date when it falls
// on the same day as the start.
func FormatRange(r domain.DateTimeRange) string {
	start := r.Start().In(Location)
	end := r.End().In(Location)
	if domain.DateOf(start) == domain.DateOf(end) {
		return start.Format(instantLayout) + " → " + end.Format(clockLayout)
	}
	return start.Format(instantLayout) + " → " + end.Format(instantLayout)
}

// FormatDuration converts a duration into "1d 2h 30m" form.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	total := int(d.Minutes())
	days, hours, mins := total/(24*60), total/60%24, total%60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	return strings.Join(parts, " ")
}
