package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/model"
)

type fakeAssignmentStore struct {
	assignments map[string]*model.Assignment
	updates     int
}

func newFakeAssignmentStore(assignments ...*model.Assignment) *fakeAssignmentStore {
	s := &fakeAssignmentStore{assignments: map[string]*model.Assignment{}}
	for _, a := range assignments {
		s.assignments[a.ID] = a
	}
	return s
}

func (s *fakeAssignmentStore) Create(_ context.Context, a *model.Assignment) error {
	a.CreatedAt = time.Now()
	s.assignments[a.ID] = a
	return nil
}

func (s *fakeAssignmentStore) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	a, ok := s.assignments[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	copied.Applications = append([]model.Application(nil), a.Applications...)
	return &copied, nil
}

func (s *fakeAssignmentStore) Update(_ context.Context, a *model.Assignment) error {
	s.assignments[a.ID] = a
	s.updates++
	return nil
}

func (s *fakeAssignmentStore) ListOpenFiltered(_ context.Context, level, location string, offset, limit int) ([]*model.Assignment, error) {
	var out []*model.Assignment
	for _, a := range s.assignments {
		if a.Status == model.StatusOpen && matchFilter(a.Level, level) && matchFilter(a.Location, location) {
			out = append(out, a)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (s *fakeAssignmentStore) CountOpenFiltered(_ context.Context, level, location string) (int, error) {
	n := 0
	for _, a := range s.assignments {
		if a.Status == model.StatusOpen && matchFilter(a.Level, level) && matchFilter(a.Location, location) {
			n++
		}
	}
	return n, nil
}

func matchFilter(value, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}

func (s *fakeAssignmentStore) Delete(_ context.Context, id string) error {
	delete(s.assignments, id)
	return nil
}

func (s *fakeAssignmentStore) ListByStatus(_ context.Context, status string, offset, limit int) ([]*model.Assignment, error) {
	var out []*model.Assignment
	for _, a := range s.assignments {
		if a.Status == status {
			out = append(out, a)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (s *fakeAssignmentStore) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	for _, a := range s.assignments {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *fakeAssignmentStore) CountsByStatus(_ context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, a := range s.assignments {
		counts[a.Status]++
	}
	return counts, nil
}

func (s *fakeAssignmentStore) ListByApplicant(_ context.Context, tutorID int64, offset, limit int) ([]*model.Assignment, error) {
	var out []*model.Assignment
	for _, a := range s.assignments {
		if a.HasApplicant(tutorID) {
			out = append(out, a)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (s *fakeAssignmentStore) CountByApplicant(_ context.Context, tutorID int64) (int, error) {
	n := 0
	for _, a := range s.assignments {
		if a.HasApplicant(tutorID) {
			n++
		}
	}
	return n, nil
}

// fakeNotifier records notifications; sends to tutors in failFor are dropped
// to simulate unreachable recipients.
type fakeNotifier struct {
	notified    map[int64][]string
	failFor     map[int64]bool
	channelText string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{notified: map[int64][]string{}, failFor: map[int64]bool{}}
}

func (n *fakeNotifier) NotifyTutor(_ context.Context, tutorID int64, text string) {
	if n.failFor[tutorID] {
		return
	}
	n.notified[tutorID] = append(n.notified[tutorID], text)
}

func (n *fakeNotifier) UpdateChannelPost(_ context.Context, _ *model.Assignment, text string) {
	n.channelText = text
}

func newTestAssignmentService(store *fakeAssignmentStore, notifier *fakeNotifier) *AssignmentService {
	return NewAssignmentService(store, notifier, zap.NewNop())
}

func openAssignment(id string, applicants ...int64) *model.Assignment {
	a := &model.Assignment{
		ID:           id,
		Title:        "P5 Math, Bishan",
		Status:       model.StatusOpen,
		Applications: []model.Application{},
		CreatedAt:    time.Now(),
	}
	for _, tutorID := range applicants {
		a.Applications = append(a.Applications, model.Application{
			TutorID:   tutorID,
			Status:    model.ApplicationPending,
			AppliedAt: time.Now(),
		})
	}
	return a
}

func TestApplyAtMostOnce(t *testing.T) {
	ctx := context.Background()
	store := newFakeAssignmentStore(openAssignment("a1"))
	svc := newTestAssignmentService(store, newFakeNotifier())

	result, a, err := svc.Apply(ctx, "a1", 42)
	require.NoError(t, err)
	assert.Equal(t, ApplyOK, result)
	assert.Len(t, a.Applications, 1)

	updatesAfterFirst := store.updates

	result, _, err = svc.Apply(ctx, "a1", 42)
	require.NoError(t, err)
	assert.Equal(t, ApplyAlreadyApplied, result)

	// The second attempt must not mutate the store.
	assert.Equal(t, updatesAfterFirst, store.updates)
	assert.Len(t, store.assignments["a1"].Applications, 1)
}

func TestApplyMissingAssignment(t *testing.T) {
	svc := newTestAssignmentService(newFakeAssignmentStore(), newFakeNotifier())

	result, _, err := svc.Apply(context.Background(), "nope", 42)
	require.NoError(t, err)
	assert.Equal(t, ApplyNotFound, result)
}

func TestApplyClosedAssignment(t *testing.T) {
	a := openAssignment("a1")
	a.Status = model.StatusClosed
	svc := newTestAssignmentService(newFakeAssignmentStore(a), newFakeNotifier())

	result, _, err := svc.Apply(context.Background(), "a1", 42)
	require.NoError(t, err)
	assert.Equal(t, ApplyClosed, result)
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	store := newFakeAssignmentStore(openAssignment("a1", 42, 43))
	svc := newTestAssignmentService(store, newFakeNotifier())

	removed, err := svc.Withdraw(ctx, "a1", 42)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, store.assignments["a1"].Applications, 1)
	assert.Equal(t, int64(43), store.assignments["a1"].Applications[0].TutorID)

	removed, err = svc.Withdraw(ctx, "a1", 42)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAcceptCascade(t *testing.T) {
	ctx := context.Background()
	store := newFakeAssignmentStore(openAssignment("a1", 1, 2, 3))
	notifier := newFakeNotifier()
	svc := newTestAssignmentService(store, notifier)

	require.NoError(t, svc.Accept(ctx, "a1", 2))

	stored := store.assignments["a1"]
	assert.Equal(t, model.StatusClosed, stored.Status)
	assert.Equal(t, model.ApplicationAccepted, stored.ApplicationOf(2).Status)
	assert.Equal(t, model.ApplicationPending, stored.ApplicationOf(1).Status)
	assert.Equal(t, model.ApplicationPending, stored.ApplicationOf(3).Status)

	// Accepted tutor gets exactly one acceptance message; the other two get
	// exactly one "filled" message each.
	require.Len(t, notifier.notified[2], 1)
	assert.Contains(t, notifier.notified[2][0], "accepted")
	require.Len(t, notifier.notified[1], 1)
	assert.Contains(t, notifier.notified[1][0], "filled")
	require.Len(t, notifier.notified[3], 1)
	assert.Contains(t, notifier.notified[3][0], "filled")

	// Channel announcement reflects the closed status.
	assert.Contains(t, notifier.channelText, "closed")
}

func TestAcceptCascadeSurvivesSendFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeAssignmentStore(openAssignment("a1", 1, 2, 3))
	notifier := newFakeNotifier()
	notifier.failFor[1] = true
	svc := newTestAssignmentService(store, notifier)

	require.NoError(t, svc.Accept(ctx, "a1", 2))

	// The failed recipient does not block the other deliveries, and the
	// status mutation already happened regardless.
	assert.Equal(t, model.StatusClosed, store.assignments["a1"].Status)
	assert.Empty(t, notifier.notified[1])
	assert.Len(t, notifier.notified[2], 1)
	assert.Len(t, notifier.notified[3], 1)
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	store := newFakeAssignmentStore(openAssignment("a1", 1, 2))
	notifier := newFakeNotifier()
	svc := newTestAssignmentService(store, notifier)

	require.NoError(t, svc.Reject(ctx, "a1", 1))

	stored := store.assignments["a1"]
	assert.Equal(t, model.ApplicationRejected, stored.ApplicationOf(1).Status)
	assert.Equal(t, model.StatusOpen, stored.Status)
	require.Len(t, notifier.notified[1], 1)
	assert.Empty(t, notifier.notified[2])
}

func TestCreateDefaults(t *testing.T) {
	store := newFakeAssignmentStore()
	svc := newTestAssignmentService(store, newFakeNotifier())

	a := &model.Assignment{Title: "Sec 3 Physics"}
	require.NoError(t, svc.Create(context.Background(), a))

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, model.StatusOpen, a.Status)
	assert.NotNil(t, a.Applications)
}

func TestListStatusPage(t *testing.T) {
	closed := openAssignment("a2")
	closed.Status = model.StatusClosed
	store := newFakeAssignmentStore(openAssignment("a1"), closed, openAssignment("a3"))
	svc := newTestAssignmentService(store, newFakeNotifier())

	items, page, totalPages, err := svc.ListStatusPage(context.Background(), model.StatusOpen, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, totalPages)
	assert.Len(t, items, 2)

	items, _, _, err = svc.ListStatusPage(context.Background(), model.StatusCompleted, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDelete(t *testing.T) {
	store := newFakeAssignmentStore(openAssignment("a1"))
	svc := newTestAssignmentService(store, newFakeNotifier())

	require.NoError(t, svc.Delete(context.Background(), "a1"))
	assert.Empty(t, store.assignments)
}
