package session

import (
	"time"

	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// State is the current step of a chat's conversation.
type State string

const (
	StateNone State = ""

	// StateAwaitingContact: no tutor bound yet, waiting for a phone share.
	StateAwaitingContact State = "awaiting_contact"

	// StateProfileVerification: tutor matched, waiting for confirm/edit.
	StateProfileVerification State = "profile_verification"

	// StateMainMenu: authenticated and idle.
	StateMainMenu State = "main_menu"

	// AwaitingPrefix marks one-shot free-text capture states; the remainder
	// of the token is the profile field being captured.
	AwaitingPrefix = "awaiting_"
)

// AwaitingField builds the capture state for one profile field.
func AwaitingField(field string) State {
	return State(AwaitingPrefix + field)
}

// CapturedField returns the field a capture state is waiting for, if any.
func (s State) CapturedField() (string, bool) {
	str := string(s)
	if len(str) > len(AwaitingPrefix) && str[:len(AwaitingPrefix)] == AwaitingPrefix {
		return str[len(AwaitingPrefix):], true
	}
	return "", false
}

// Filters are browse-only preferences applied when listing assignments.
// They live on the session and are never persisted.
type Filters struct {
	Level    string
	Location string
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.Level == "" && f.Location == ""
}

// Session is the ephemeral per-chat conversational state. A process restart
// loses all sessions and forces re-authentication; that is accepted.
type Session struct {
	ChatID              int64
	TutorID             int64 // 0 until the phone is verified
	State               State
	PendingAssignmentID string // set by a deep link before authentication
	Filters             Filters
	LastActivity        time.Time
}

// Authenticated reports whether a tutor is bound to the session.
func (s *Session) Authenticated() bool {
	return s != nil && s.TutorID != 0
}

// PostingStep indexes the linear admin assignment-posting conversation.
type PostingStep int

const (
	StepTitle PostingStep = iota
	StepLevel
	StepSubject
	StepLocation
	StepRate
	StepFrequency
	StepStartDate
	StepDescription
	StepRequirements
	StepConfirm
)

// PostingSession drives the admin's linear posting flow. It doubles as the
// pending-broadcast marker: when Broadcast is set the next admin message is
// the broadcast text, not a posting answer.
type PostingSession struct {
	ChatID    int64
	Step      PostingStep
	Draft     model.Assignment
	Broadcast bool
}
