package formatting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sgtutorhub/assignment_bot/internal/model"
)

func TestStatusDisplayString(t *testing.T) {
	assert.Equal(t, "🟢 Open", GetAssignmentStatusDisplay(model.StatusOpen).String())
	assert.Equal(t, "🔴 Closed", fmt.Sprintf("%s", GetAssignmentStatusDisplay(model.StatusClosed)))
	assert.Equal(t, "⏳ Pending", GetApplicationStatusDisplay(model.ApplicationPending).String())
}

func TestStatusDisplayUnknownPassesThrough(t *testing.T) {
	d := GetAssignmentStatusDisplay("Archived")
	assert.Equal(t, "⚪️ Archived", d.String())
}
