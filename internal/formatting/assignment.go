package formatting

import (
	"fmt"
	"strings"

	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// FormatAssignment renders one assignment as a card.
func FormatAssignment(a *model.Assignment) string {
	display := GetAssignmentStatusDisplay(a.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n\n", display.Emoji, a.Title)
	writeField(&b, "Level", a.Level)
	writeField(&b, "Subject", a.Subject)
	writeField(&b, "Location", a.Location)
	writeField(&b, "Rate", a.Rate)
	writeField(&b, "Frequency", a.Frequency)
	writeField(&b, "Start", a.StartDate)
	writeField(&b, "Status", display.Text)

	if a.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", a.Description)
	}
	if a.Requirements != "" {
		fmt.Fprintf(&b, "\n*Requirements*: %s\n", a.Requirements)
	}
	fmt.Fprintf(&b, "\n📅 Posted: %s", a.CreatedAt.Format("02 Jan 2006"))

	return b.String()
}

// FormatAnnouncement renders the channel announcement for an assignment.
func FormatAnnouncement(a *model.Assignment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📢 *New assignment: %s*\n\n", a.Title)
	writeField(&b, "Level", a.Level)
	writeField(&b, "Subject", a.Subject)
	writeField(&b, "Location", a.Location)
	writeField(&b, "Rate", a.Rate)
	writeField(&b, "Frequency", a.Frequency)
	writeField(&b, "Start", a.StartDate)

	if a.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", a.Description)
	}
	if a.Requirements != "" {
		fmt.Fprintf(&b, "\n*Requirements*: %s\n", a.Requirements)
	}

	if a.Status != model.StatusOpen {
		display := GetAssignmentStatusDisplay(a.Status)
		fmt.Fprintf(&b, "\n%s *This assignment is %s.*", display.Emoji, strings.ToLower(display.Text))
	}

	return b.String()
}

// FormatApplication renders a tutor's own application entry.
func FormatApplication(a *model.Assignment, app *model.Application) string {
	display := GetApplicationStatusDisplay(app.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n\n", display.Emoji, a.Title)
	writeField(&b, "Level", a.Level)
	writeField(&b, "Subject", a.Subject)
	writeField(&b, "Location", a.Location)
	writeField(&b, "Application status", display.Text)
	fmt.Fprintf(&b, "\n📅 Applied: %s", app.AppliedAt.Format("02 Jan 2006 15:04"))
	if app.Notes != "" {
		fmt.Fprintf(&b, "\n📝 %s", app.Notes)
	}
	return b.String()
}
