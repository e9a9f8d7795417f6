package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jdcasey/myshift/internal/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	userStyle    = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// formatShiftTimes renders one interval as "2024-03-20: 09:00 to 17:00".
// A shift ending on a later day carries the end date too.
func formatShiftTimes(s domain.Shift) string {
	day := s.Start.Format("2006-01-02")
	start := s.Start.Format("15:04")
	end := s.End.Format("15:04")
	if s.End.Format("2006-01-02") != day {
		end = s.End.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%s: %s to %s", day, start, end)
}

// renderShifts prints one line per shift. users joins ids to resolved
// records; ids missing from it render as the bare id.
func renderShifts(w io.Writer, shifts []domain.Shift, users map[string]domain.User) {
	for _, s := range shifts {
		line := "  " + formatShiftTimes(s)
		if users != nil {
			line += "  " + userStyle.Render(users[s.UserID].Label(s.UserID))
		}
		fmt.Fprintln(w, line)
	}
}

func renderHeader(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf(format, args...)))
}

func renderError(err error) string {
	return failureStyle.Render("error: ") + err.Error()
}
