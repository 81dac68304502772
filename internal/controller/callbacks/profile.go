package callbacks

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common/keyboard"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/formatting"
	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// freeTextFields are the profile fields captured through a one-shot text
// message, keyed by the edit_<field> token with their prompts.
var freeTextFields = map[string]string{
	"name":           "What's your full name?",
	"age":            "How old are you? (just the number)",
	"nationality":    "What's your nationality?",
	"experience":     "How many years of tutoring experience do you have?",
	"intro":          "Write a short introduction about yourself.",
	"track_record":   "Describe your track record (results, grades improved, school placements).",
	"selling_points": "What makes you stand out as a tutor?",
}

func SendProfileEditMenu(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) {
	tutor := loadTutor(ctx, h, sess)
	if tutor == nil {
		return
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📛 Name", DataEditField("name")),
			keyboard.Button("🎂 Age", DataEditField("age")),
		).
		Row(
			keyboard.Button("🚻 Gender", DataEditField("gender")),
			keyboard.Button("🌏 Race", DataEditField("race")),
		).
		Row(
			keyboard.Button("🛂 Nationality", DataEditField("nationality")),
			keyboard.Button("🎓 Education", DataEditField("education")),
		).
		Row(keyboard.Button("📅 Years of experience", DataEditField("experience"))).
		Row(
			keyboard.Button("📚 Levels & subjects", DataMenuLevels),
			keyboard.Button("📍 Locations", DataMenuLocations),
		).
		Row(
			keyboard.Button("🕐 Availability", DataMenuTimeSlots),
			keyboard.Button("💰 Rates", DataMenuRates),
		).
		Row(keyboard.Button("📝 Introduction", DataEditField("intro"))).
		Row(keyboard.Button("🏆 Track record", DataEditField("track_record"))).
		Row(keyboard.Button("✨ Selling points", DataEditField("selling_points"))).
		AddMainMenuButton().
		Build()

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        formatting.FormatProfile(tutor) + "\nPick a field to edit:",
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: kb,
	})
}

// handleEditField arms a one-shot free-text capture, or renders the
// enumerated-choice menu for fields that have one.
func handleEditField(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, field string) {
	switch field {
	case "gender":
		sendChoiceMenu(ctx, h, sess.ChatID, "Select your gender:", DataSetGender,
			[]string{"male", "female"})
		return
	case "race":
		sendChoiceMenu(ctx, h, sess.ChatID, "Select your race:", DataSetRace,
			[]string{"chinese", "malay", "indian", "eurasian", "others"})
		return
	case "education":
		sendChoiceMenu(ctx, h, sess.ChatID, "Select your highest qualification:", DataSetEducation,
			[]string{"alevel", "diploma", "undergrad", "degree", "masters", "phd", "moe"})
		return
	}

	// Custom per-level rate entry arrives as edit_rate_<level>.
	if level, ok := cut(field, "rate_"); ok && model.IsLevel(level) {
		sess.State = session.AwaitingField(field)
		h.Sessions.Put(sess)
		h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: sess.ChatID,
			Text:   fmt.Sprintf("Enter your hourly rate for %s (numbers only, in S$):", formatting.Label(level)),
		})
		return
	}

	prompt, ok := freeTextFields[field]
	if !ok {
		sendFallback(ctx, h, sess.ChatID, DataEditField(field))
		return
	}

	sess.State = session.AwaitingField(field)
	h.Sessions.Put(sess)

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: sess.ChatID,
		Text:   "✏️ " + prompt,
	})
}

func sendChoiceMenu(ctx context.Context, h *callbacktypes.Handler, chatID int64, title string, toData func(string) string, values []string) {
	kb := keyboard.NewBuilder()
	for _, v := range values {
		kb.Row(keyboard.Button(formatting.Label(v), toData(v)))
	}
	kb.Row(keyboard.BackButton(DataProfileEdit))

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        title,
		ReplyMarkup: kb.Build(),
	})
}

// handleSetEnum writes one enumerated profile field and returns to the edit
// menu.
func handleSetEnum(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, field, value string) {
	tutor := loadTutor(ctx, h, sess)
	if tutor == nil {
		return
	}

	switch field {
	case "gender":
		tutor.Gender = value
	case "race":
		tutor.Race = value
	case "education":
		tutor.Education = value
	}

	if err := h.Tutors.Save(ctx, tutor); err != nil {
		h.Logger.Error("Failed to save profile field",
			zap.String("field", field),
			zap.Error(err))
		sendTryAgain(ctx, h, sess.ChatID)
		return
	}

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: sess.ChatID,
		Text:   fmt.Sprintf("✅ %s updated to %s.", formatting.Label(field), formatting.Label(value)),
	})
	SendProfileEditMenu(ctx, h, sess)
}

// handleSetRate writes one preset per-level hourly rate.
func handleSetRate(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, level, amount string) {
	tutor := loadTutor(ctx, h, sess)
	if tutor == nil {
		return
	}

	tutor.EnsureNested()
	if !tutor.HourlyRates.SetRate(level, amount) {
		sendFallback(ctx, h, sess.ChatID, DataSetRate(level, amount))
		return
	}

	if err := h.Tutors.Save(ctx, tutor); err != nil {
		h.Logger.Error("Failed to save rate", zap.Error(err))
		sendTryAgain(ctx, h, sess.ChatID)
		return
	}

	sendRatesMenu(ctx, h, sess, tutor)
}
