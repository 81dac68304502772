package formatting

import "github.com/sgtutorhub/assignment_bot/internal/model"

// StatusDisplay pairs an emoji with status text for rendering.
type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

// GetAssignmentStatusDisplay returns the display pair for an assignment
// status. The enumeration is open: admin tooling can write values outside
// the known set, and those render as-is with a neutral marker.
func GetAssignmentStatusDisplay(status model.AssignmentStatus) StatusDisplay {
	displays := map[model.AssignmentStatus]StatusDisplay{
		model.StatusOpen:      {"🟢", "Open"},
		model.StatusClosed:    {"🔴", "Closed"},
		model.StatusCompleted: {"✅", "Completed"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"⚪️", status}
}

// GetApplicationStatusDisplay returns the display pair for an application
// status.
func GetApplicationStatusDisplay(status model.ApplicationStatus) StatusDisplay {
	displays := map[model.ApplicationStatus]StatusDisplay{
		model.ApplicationPending:  {"⏳", "Pending"},
		model.ApplicationAccepted: {"🎉", "Accepted"},
		model.ApplicationRejected: {"❌", "Rejected"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"⚪️", status}
}
