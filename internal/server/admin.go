package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/formatting"
	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// TutorAdmin is the tutor slice the admin API needs.
type TutorAdmin interface {
	GetByID(ctx context.Context, id int64) (*model.Tutor, error)
	AttachChat(ctx context.Context, tutorID, chatID int64) error
}

// AssignmentAdmin is the assignment slice the admin API needs.
type AssignmentAdmin interface {
	Create(ctx context.Context, a *model.Assignment) error
	Save(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	Delete(ctx context.Context, id string) error
	ListStatusPage(ctx context.Context, status string, page int) ([]*model.Assignment, int, int, error)
	SetStatus(ctx context.Context, assignmentID, status string) (*model.Assignment, error)
	Accept(ctx context.Context, assignmentID string, tutorID int64) error
	Reject(ctx context.Context, assignmentID string, tutorID int64) error
}

// ChannelPoster publishes announcements to the public channel.
type ChannelPoster interface {
	PostToChannel(ctx context.Context, assignmentID, text string) int
}

type adminAPI struct {
	tutors      TutorAdmin
	assignments AssignmentAdmin
	poster      ChannelPoster
	logger      *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type createAssignmentRequest struct {
	Title        string `json:"title"`
	Level        string `json:"level"`
	Subject      string `json:"subject"`
	Location     string `json:"location"`
	Rate         string `json:"rate"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"start_date"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Announce     bool   `json:"announce"`
}

func (a *adminAPI) createAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	assignment := &model.Assignment{
		Title:        req.Title,
		Level:        req.Level,
		Subject:      req.Subject,
		Location:     req.Location,
		Rate:         req.Rate,
		Frequency:    req.Frequency,
		StartDate:    req.StartDate,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if err := a.assignments.Create(r.Context(), assignment); err != nil {
		a.logger.Error("Admin API: create assignment failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create assignment")
		return
	}

	if req.Announce {
		if msgID := a.poster.PostToChannel(r.Context(), assignment.ID, formatting.FormatAnnouncement(assignment)); msgID != 0 {
			assignment.ChannelMessageID = msgID
			if err := a.assignments.Save(r.Context(), assignment); err != nil {
				a.logger.Warn("Admin API: failed to store channel message id", zap.Error(err))
			}
		}
	}

	writeJSON(w, http.StatusCreated, assignment)
}

func (a *adminAPI) listAssignments(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = model.StatusOpen
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	items, page, totalPages, err := a.assignments.ListStatusPage(r.Context(), status, page)
	if err != nil {
		a.logger.Error("Admin API: list assignments failed", zap.String("status", status), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list assignments")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"assignments": items,
		"page":        page,
		"total_pages": totalPages,
	})
}

func (a *adminAPI) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	assignment, err := a.assignments.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load assignment")
		return
	}
	if assignment == nil {
		writeError(w, http.StatusNotFound, "assignment not found")
		return
	}

	if err := a.assignments.Delete(r.Context(), id); err != nil {
		a.logger.Error("Admin API: delete assignment failed", zap.String("assignment_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete assignment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *adminAPI) setStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	assignment, err := a.assignments.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		a.logger.Error("Admin API: set status failed", zap.String("assignment_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update status")
		return
	}
	if assignment == nil {
		writeError(w, http.StatusNotFound, "assignment not found")
		return
	}

	writeJSON(w, http.StatusOK, assignment)
}

func (a *adminAPI) decideApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tutorID, err := strconv.ParseInt(chi.URLParam(r, "tutorID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tutor id")
		return
	}

	var req struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch req.Decision {
	case "accept":
		err = a.assignments.Accept(r.Context(), id, tutorID)
	case "reject":
		err = a.assignments.Reject(r.Context(), id, tutorID)
	default:
		writeError(w, http.StatusBadRequest, `decision must be "accept" or "reject"`)
		return
	}
	if err != nil {
		a.logger.Error("Admin API: application decision failed",
			zap.String("assignment_id", id),
			zap.Int64("tutor_id", tutorID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not apply decision")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": req.Decision + "ed"})
}

func (a *adminAPI) bindChat(w http.ResponseWriter, r *http.Request) {
	tutorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tutor id")
		return
	}

	var req struct {
		ChatID int64 `json:"chat_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tutor, err := a.tutors.GetByID(r.Context(), tutorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load tutor")
		return
	}
	if tutor == nil {
		writeError(w, http.StatusNotFound, "tutor not found")
		return
	}

	if err := a.tutors.AttachChat(r.Context(), tutorID, req.ChatID); err != nil {
		a.logger.Error("Admin API: bind chat failed", zap.Int64("tutor_id", tutorID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not bind chat")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"tutor_id": tutorID, "chat_id": req.ChatID})
}
