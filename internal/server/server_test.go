package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/config"
	"github.com/sgtutorhub/assignment_bot/internal/model"
)

type fakeTutorAdmin struct {
	tutors   map[int64]*model.Tutor
	attached map[int64]int64
}

func (f *fakeTutorAdmin) GetByID(_ context.Context, id int64) (*model.Tutor, error) {
	return f.tutors[id], nil
}

func (f *fakeTutorAdmin) AttachChat(_ context.Context, tutorID, chatID int64) error {
	f.attached[tutorID] = chatID
	return nil
}

type fakeAssignmentAdmin struct {
	assignments map[string]*model.Assignment
	accepted    []string
	rejected    []string
	createErr   error
}

func (f *fakeAssignmentAdmin) Create(_ context.Context, a *model.Assignment) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = "created-id"
	a.Status = model.StatusOpen
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeAssignmentAdmin) Save(_ context.Context, a *model.Assignment) error {
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeAssignmentAdmin) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	return f.assignments[id], nil
}

func (f *fakeAssignmentAdmin) Delete(_ context.Context, id string) error {
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentAdmin) ListStatusPage(_ context.Context, status string, page int) ([]*model.Assignment, int, int, error) {
	var out []*model.Assignment
	for _, a := range f.assignments {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, 1, 1, nil
}

func (f *fakeAssignmentAdmin) SetStatus(_ context.Context, id, status string) (*model.Assignment, error) {
	a := f.assignments[id]
	if a == nil {
		return nil, nil
	}
	a.Status = status
	return a, nil
}

func (f *fakeAssignmentAdmin) Accept(_ context.Context, id string, _ int64) error {
	f.accepted = append(f.accepted, id)
	return nil
}

func (f *fakeAssignmentAdmin) Reject(_ context.Context, id string, _ int64) error {
	f.rejected = append(f.rejected, id)
	return nil
}

type fakePoster struct {
	posts []string
}

func (f *fakePoster) PostToChannel(_ context.Context, _, text string) int {
	f.posts = append(f.posts, text)
	return 42
}

func newTestServer(webhookCalls *int) (*Server, *fakeAssignmentAdmin, *fakeTutorAdmin, *fakePoster) {
	cfg := &config.Config{
		HTTPAddr:      ":0",
		AdminAPIToken: "secret-token",
		WebhookSecret: "hook-secret",
	}
	webhook := func(w http.ResponseWriter, _ *http.Request) {
		if webhookCalls != nil {
			*webhookCalls++
		}
		w.WriteHeader(http.StatusOK)
	}
	assignments := &fakeAssignmentAdmin{assignments: map[string]*model.Assignment{
		"a-1": {ID: "a-1", Title: "P5 Science", Status: model.StatusOpen},
	}}
	tutors := &fakeTutorAdmin{
		tutors:   map[int64]*model.Tutor{7: {ID: 7, Name: "Mei Lin"}},
		attached: map[int64]int64{},
	}
	poster := &fakePoster{}
	s := New(cfg, webhook, tutors, assignments, poster, zap.NewNop())
	return s, assignments, tutors, poster
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.httpSrv.Handler.ServeHTTP(rec, req)
	return rec
}

func adminReq(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Admin-Token", "secret-token")
	return req
}

func TestWebhookLiveness(t *testing.T) {
	s, _, _, _ := newTestServer(nil)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/webhook", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	calls := 0
	s, _, _, _ := newTestServer(&calls)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id":1}`))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wrong")

	rec := do(s, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, calls)
}

func TestWebhookRejectsNonObjectBody(t *testing.T) {
	calls := 0
	s, _, _, _ := newTestServer(&calls)

	for _, body := range []string{`[1,2,3]`, `"text"`, `not json`, ``} {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "hook-secret")
		rec := do(s, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%q", body)
	}
	assert.Zero(t, calls)
}

func TestWebhookPassesValidUpdate(t *testing.T) {
	calls := 0
	s, _, _, _ := newTestServer(&calls)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id":7}`))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "hook-secret")

	rec := do(s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestAdminAPIRequiresToken(t *testing.T) {
	s, _, _, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/assignments", strings.NewReader(`{}`))
	rec := do(s, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/assignments", strings.NewReader(`{}`))
	req.Header.Set("X-Admin-Token", "wrong")
	rec = do(s, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAssignment(t *testing.T) {
	s, assignments, _, poster := newTestServer(nil)

	body := `{"title":"Sec 2 Math","level":"Secondary 2","subject":"Math","location":"Bedok","rate":"$40/h","announce":true}`
	rec := do(s, adminReq(http.MethodPost, "/api/admin/assignments", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	created := assignments.assignments["created-id"]
	require.NotNil(t, created)
	assert.Equal(t, "Sec 2 Math", created.Title)
	assert.Equal(t, model.StatusOpen, created.Status)
	assert.Equal(t, 42, created.ChannelMessageID)
	require.Len(t, poster.posts, 1)
	assert.Contains(t, poster.posts[0], "Sec 2 Math")
}

func TestCreateAssignmentValidation(t *testing.T) {
	s, _, _, poster := newTestServer(nil)

	rec := do(s, adminReq(http.MethodPost, "/api/admin/assignments", `{"level":"P5"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, adminReq(http.MethodPost, "/api/admin/assignments", `not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, poster.posts)
}

func TestSetStatus(t *testing.T) {
	s, assignments, _, _ := newTestServer(nil)

	rec := do(s, adminReq(http.MethodPatch, "/api/admin/assignments/a-1/status", `{"status":"Completed"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Completed", assignments.assignments["a-1"].Status)

	rec = do(s, adminReq(http.MethodPatch, "/api/admin/assignments/missing/status", `{"status":"Closed"}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDecideApplication(t *testing.T) {
	s, assignments, _, _ := newTestServer(nil)

	rec := do(s, adminReq(http.MethodPatch, "/api/admin/assignments/a-1/applications/7", `{"decision":"accept"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a-1"}, assignments.accepted)

	rec = do(s, adminReq(http.MethodPatch, "/api/admin/assignments/a-1/applications/7", `{"decision":"reject"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a-1"}, assignments.rejected)

	rec = do(s, adminReq(http.MethodPatch, "/api/admin/assignments/a-1/applications/7", `{"decision":"maybe"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, adminReq(http.MethodPatch, "/api/admin/assignments/a-1/applications/notanumber", `{"decision":"accept"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAssignments(t *testing.T) {
	s, _, _, _ := newTestServer(nil)

	rec := do(s, adminReq(http.MethodGet, "/api/admin/assignments?status=Open", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "P5 Science")
	assert.Contains(t, rec.Body.String(), `"total_pages":1`)
}

func TestDeleteAssignment(t *testing.T) {
	s, assignments, _, _ := newTestServer(nil)

	rec := do(s, adminReq(http.MethodDelete, "/api/admin/assignments/a-1", ""))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, assignments.assignments, "a-1")

	rec = do(s, adminReq(http.MethodDelete, "/api/admin/assignments/a-1", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBindChat(t *testing.T) {
	s, _, tutors, _ := newTestServer(nil)

	rec := do(s, adminReq(http.MethodPatch, "/api/admin/tutors/7/chat", `{"chat_id":100}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(100), tutors.attached[7])

	rec = do(s, adminReq(http.MethodPatch, "/api/admin/tutors/404/chat", `{"chat_id":100}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
