package model

import "time"

// AssignmentStatus is an open string enumeration: admin tooling may write
// values outside the constants below.
type AssignmentStatus = string

const (
	StatusOpen      AssignmentStatus = "Open"
	StatusClosed    AssignmentStatus = "Closed"
	StatusCompleted AssignmentStatus = "Completed"
)

// Assignment is one open tutoring job posting.
type Assignment struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Level            string           `json:"level"`
	Subject          string           `json:"subject"`
	Location         string           `json:"location"`
	Rate             string           `json:"rate"`
	Frequency        string           `json:"frequency"`
	StartDate        string           `json:"start_date"`
	Description      string           `json:"description"`
	Requirements     string           `json:"requirements"`
	Status           AssignmentStatus `json:"status"`
	ChannelMessageID int              `json:"channel_message_id"` // 0 = never posted
	Applications     []Application    `json:"applications"`
	CreatedAt        time.Time        `json:"created_at"`
}

type ApplicationStatus = string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// Application is a tutor's expression of interest in one assignment.
// Owned exclusively by its parent Assignment.
type Application struct {
	TutorID   int64             `json:"tutor_id"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"applied_at"`
	Notes     string            `json:"notes,omitempty"`
}

// ApplicationOf returns the application for one tutor, or nil.
func (a *Assignment) ApplicationOf(tutorID int64) *Application {
	for i := range a.Applications {
		if a.Applications[i].TutorID == tutorID {
			return &a.Applications[i]
		}
	}
	return nil
}

// HasApplicant reports whether the tutor already applied.
func (a *Assignment) HasApplicant(tutorID int64) bool {
	return a.ApplicationOf(tutorID) != nil
}

// RemoveApplicant deletes the tutor's application entry, preserving order.
// Returns false if none existed.
func (a *Assignment) RemoveApplicant(tutorID int64) bool {
	for i := range a.Applications {
		if a.Applications[i].TutorID == tutorID {
			a.Applications = append(a.Applications[:i], a.Applications[i+1:]...)
			return true
		}
	}
	return false
}
