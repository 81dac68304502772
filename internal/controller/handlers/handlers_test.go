package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/model"
	"github.com/sgtutorhub/assignment_bot/internal/service"
)

type fakeMessenger struct {
	sent []*bot.SendMessageParams
}

func (m *fakeMessenger) SendMessage(_ context.Context, p *bot.SendMessageParams) (*models.Message, error) {
	m.sent = append(m.sent, p)
	return &models.Message{ID: len(m.sent)}, nil
}

func (m *fakeMessenger) EditMessageText(_ context.Context, _ *bot.EditMessageTextParams) (*models.Message, error) {
	return &models.Message{}, nil
}

func (m *fakeMessenger) AnswerCallbackQuery(_ context.Context, _ *bot.AnswerCallbackQueryParams) (bool, error) {
	return true, nil
}

func (m *fakeMessenger) allText() string {
	var sb strings.Builder
	for _, p := range m.sent {
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

type fakeTutors struct {
	byPhone  map[string]*model.Tutor
	byID     map[int64]*model.Tutor
	attached map[int64]int64
}

func (f *fakeTutors) Authenticate(_ context.Context, rawPhone string) (*model.Tutor, error) {
	return f.byPhone[rawPhone], nil
}

func (f *fakeTutors) GetByID(_ context.Context, id int64) (*model.Tutor, error) {
	return f.byID[id], nil
}

func (f *fakeTutors) Save(_ context.Context, t *model.Tutor) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTutors) AttachChat(_ context.Context, tutorID, chatID int64) error {
	f.attached[tutorID] = chatID
	return nil
}

type fakeAssignments struct {
	byID map[string]*model.Assignment
}

func (f *fakeAssignments) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	return f.byID[id], nil
}

func (f *fakeAssignments) ListOpenPage(_ context.Context, _, _ string, _ int) ([]*model.Assignment, int, int, error) {
	return nil, 1, 1, nil
}

func (f *fakeAssignments) ListAppliedPage(_ context.Context, _ int64, _ int) ([]*model.Assignment, int, int, error) {
	return nil, 1, 1, nil
}

func (f *fakeAssignments) Apply(_ context.Context, id string, _ int64) (service.ApplyResult, *model.Assignment, error) {
	return service.ApplyOK, f.byID[id], nil
}

func (f *fakeAssignments) Withdraw(_ context.Context, _ string, _ int64) (bool, error) {
	return true, nil
}

func (f *fakeAssignments) Accept(_ context.Context, _ string, _ int64) error { return nil }
func (f *fakeAssignments) Reject(_ context.Context, _ string, _ int64) error { return nil }

func (f *fakeAssignments) CountsByStatus(_ context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

type fakeNotifier struct {
	admins []string
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, text string, _ *models.InlineKeyboardMarkup) {
	f.admins = append(f.admins, text)
}

type fakeWriter struct {
	created []*model.Assignment
	saved   []*model.Assignment
}

func (f *fakeWriter) Create(_ context.Context, a *model.Assignment) error {
	a.ID = "new-id"
	a.Status = model.StatusOpen
	f.created = append(f.created, a)
	return nil
}

func (f *fakeWriter) Save(_ context.Context, a *model.Assignment) error {
	f.saved = append(f.saved, a)
	return nil
}

type fakeBroadcaster struct {
	texts        []string
	channelPosts []string
	channelMsgID int
}

func (f *fakeBroadcaster) Broadcast(_ context.Context, text string) (int, int) {
	f.texts = append(f.texts, text)
	return 3, 1
}

func (f *fakeBroadcaster) PostToChannel(_ context.Context, assignmentID, text string) int {
	f.channelPosts = append(f.channelPosts, text)
	return f.channelMsgID
}

func newTestHandlers(adminID int64) (*Handlers, *fakeMessenger, *fakeWriter, *fakeBroadcaster) {
	m := &fakeMessenger{}
	tutors := &fakeTutors{
		byPhone: map[string]*model.Tutor{
			"+6598765432": {ID: 7, Name: "Mei Lin", ContactNumber: "+65 9876 5432"},
		},
		byID:     map[int64]*model.Tutor{7: {ID: 7, Name: "Mei Lin"}},
		attached: map[int64]int64{},
	}
	cb := &callbacktypes.Handler{
		Messenger:   m,
		Tutors:      tutors,
		Assignments: &fakeAssignments{byID: map[string]*model.Assignment{}},
		Notifier:    &fakeNotifier{},
		Sessions:    session.NewMemoryStore(),
		Posting:     session.NewPostingStore(),
		IsAdmin:     func(chatID int64) bool { return chatID == adminID },
		Logger:      zap.NewNop(),
	}
	writer := &fakeWriter{}
	caster := &fakeBroadcaster{channelMsgID: 555}
	h := NewHandlers(cb, writer, caster, zap.NewNop())
	cb.StartPosting = h.StartPosting
	cb.StartBroadcast = h.StartBroadcast
	return h, m, writer, caster
}

func textUpdate(chatID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: chatID},
			From: &models.User{ID: chatID},
			Text: text,
		},
	}
}

func contactUpdate(chatID int64, phone string) *models.Update {
	u := textUpdate(chatID, "")
	u.Message.Contact = &models.Contact{PhoneNumber: phone, UserID: chatID}
	return u
}

func TestStartCreatesAwaitingSession(t *testing.T) {
	h, m, _, _ := newTestHandlers(999)

	h.HandleStart(context.Background(), nil, textUpdate(100, "/start"))

	sess, ok := h.cb.Sessions.Get(100)
	require.True(t, ok)
	assert.Equal(t, session.StateAwaitingContact, sess.State)
	assert.Empty(t, sess.PendingAssignmentID)
	require.Len(t, m.sent, 2)
}

func TestStartDeepLinkStoresPending(t *testing.T) {
	h, _, _, _ := newTestHandlers(999)

	h.HandleStart(context.Background(), nil, textUpdate(100, "/start assign_abc-123"))

	sess, ok := h.cb.Sessions.Get(100)
	require.True(t, ok)
	assert.Equal(t, "abc-123", sess.PendingAssignmentID)
}

func TestContactMatchBindsTutor(t *testing.T) {
	h, m, _, _ := newTestHandlers(999)
	h.HandleStart(context.Background(), nil, textUpdate(100, "/start"))

	h.HandleMessage(context.Background(), nil, contactUpdate(100, "+6598765432"))

	sess, _ := h.cb.Sessions.Get(100)
	assert.Equal(t, int64(7), sess.TutorID)
	tutors := h.cb.Tutors.(*fakeTutors)
	assert.Equal(t, int64(100), tutors.attached[7])
	assert.Contains(t, m.allText(), "Mei Lin")
}

func TestContactNoMatchStaysAwaiting(t *testing.T) {
	h, m, _, _ := newTestHandlers(999)
	h.HandleStart(context.Background(), nil, textUpdate(100, "/start"))

	h.HandleMessage(context.Background(), nil, contactUpdate(100, "+6500000000"))

	sess, _ := h.cb.Sessions.Get(100)
	assert.False(t, sess.Authenticated())
	assert.Equal(t, session.StateAwaitingContact, sess.State)
	assert.Contains(t, m.allText(), "couldn't find")
}

func TestForeignContactRejected(t *testing.T) {
	h, m, _, _ := newTestHandlers(999)
	h.HandleStart(context.Background(), nil, textUpdate(100, "/start"))

	u := contactUpdate(100, "+6598765432")
	u.Message.Contact.UserID = 42

	h.HandleMessage(context.Background(), nil, u)

	sess, _ := h.cb.Sessions.Get(100)
	assert.False(t, sess.Authenticated())
	assert.Contains(t, m.allText(), "your own contact")
}

func TestFieldCaptureSavesAndResets(t *testing.T) {
	h, m, _, _ := newTestHandlers(999)
	sess := &session.Session{ChatID: 100, TutorID: 7, State: session.AwaitingField("age")}
	h.cb.Sessions.Put(sess)

	h.HandleMessage(context.Background(), nil, textUpdate(100, "27"))

	tutors := h.cb.Tutors.(*fakeTutors)
	assert.Equal(t, 27, tutors.byID[7].Age)
	sess, _ = h.cb.Sessions.Get(100)
	assert.Equal(t, session.StateMainMenu, sess.State)
	assert.Contains(t, m.allText(), "Saved")
}

func TestFieldCaptureRejectsBadAge(t *testing.T) {
	h, m, _, _ := newTestHandlers(999)
	h.cb.Sessions.Put(&session.Session{ChatID: 100, TutorID: 7, State: session.AwaitingField("age")})

	h.HandleMessage(context.Background(), nil, textUpdate(100, "twenty"))

	tutors := h.cb.Tutors.(*fakeTutors)
	assert.Zero(t, tutors.byID[7].Age)
	assert.Contains(t, m.allText(), "doesn't look like an age")
}

func TestRateCapture(t *testing.T) {
	h, _, _, _ := newTestHandlers(999)
	h.cb.Sessions.Put(&session.Session{ChatID: 100, TutorID: 7, State: session.AwaitingField("rate_jc")})

	h.HandleMessage(context.Background(), nil, textUpdate(100, "60"))

	tutors := h.cb.Tutors.(*fakeTutors)
	require.NotNil(t, tutors.byID[7].HourlyRates)
	assert.Equal(t, "60", tutors.byID[7].HourlyRates.RateFor("jc"))
}

func TestPostingFlowEndToEnd(t *testing.T) {
	h, m, writer, caster := newTestHandlers(999)

	h.HandlePost(context.Background(), nil, textUpdate(999, "/post"))
	require.NotNil(t, h.cb.Posting.Get(999))

	answers := []string{
		"Sec 3 A-Math, Tampines",
		"Secondary 3",
		"A-Math",
		"Tampines",
		"$45/h",
		"twice a week",
		"next month",
		"Needs help with trigonometry.",
		"none",
	}
	for _, a := range answers {
		h.HandleMessage(context.Background(), nil, textUpdate(999, a))
	}
	assert.Contains(t, m.allText(), "Post it?")

	h.HandleMessage(context.Background(), nil, textUpdate(999, "yes"))

	require.Len(t, writer.created, 1)
	a := writer.created[0]
	assert.Equal(t, "Sec 3 A-Math, Tampines", a.Title)
	assert.Empty(t, a.Requirements)
	require.Len(t, caster.channelPosts, 1)
	require.Len(t, writer.saved, 1)
	assert.Equal(t, 555, writer.saved[0].ChannelMessageID)
	assert.Nil(t, h.cb.Posting.Get(999))
	assert.Contains(t, m.allText(), "Posted")
}

func TestPostingDeclineDiscards(t *testing.T) {
	h, _, writer, _ := newTestHandlers(999)
	h.StartPosting(context.Background(), 999)

	for i := 0; i < 9; i++ {
		h.HandleMessage(context.Background(), nil, textUpdate(999, "answer"))
	}
	h.HandleMessage(context.Background(), nil, textUpdate(999, "no"))

	assert.Empty(t, writer.created)
	assert.Nil(t, h.cb.Posting.Get(999))
}

func TestBroadcastFlow(t *testing.T) {
	h, m, _, caster := newTestHandlers(999)

	h.HandleBroadcast(context.Background(), nil, textUpdate(999, "/broadcast"))
	h.HandleMessage(context.Background(), nil, textUpdate(999, "New assignments coming Friday!"))

	assert.Equal(t, []string{"New assignments coming Friday!"}, caster.texts)
	assert.Contains(t, m.allText(), "3 delivered, 1 failed")
	assert.Nil(t, h.cb.Posting.Get(999))
}

func TestAdminCommandsGated(t *testing.T) {
	h, m, _, caster := newTestHandlers(999)

	h.HandleBroadcast(context.Background(), nil, textUpdate(100, "/broadcast"))

	assert.Empty(t, caster.texts)
	assert.Nil(t, h.cb.Posting.Get(100))
	assert.Contains(t, m.allText(), "admins only")
}

func TestCancelAbortsPosting(t *testing.T) {
	h, _, writer, _ := newTestHandlers(999)
	h.StartPosting(context.Background(), 999)

	h.HandleCancel(context.Background(), nil, textUpdate(999, "/cancel"))

	assert.Nil(t, h.cb.Posting.Get(999))
	assert.Empty(t, writer.created)
}
