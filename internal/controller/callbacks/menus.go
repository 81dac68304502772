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

func mark(enabled bool) string {
	if enabled {
		return "✅"
	}
	return "◻️"
}

func sendLevelsMenu(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) {
	kb := keyboard.NewBuilder()
	for _, level := range model.Levels {
		kb.Row(keyboard.Button("📚 "+formatting.Label(level), DataMenuLevel(level)))
	}
	kb.Row(keyboard.BackButton(DataProfileEdit))

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        "Pick a level to set the subjects you teach:",
		ReplyMarkup: kb.Build(),
	})
}

func sendLevelMenu(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, tutor *model.Tutor, level string) {
	tutor.EnsureNested()

	kb := keyboard.NewBuilder()
	subjects := model.SubjectsForLevel(level)
	for i := 0; i+1 < len(subjects); i += 2 {
		kb.Row(
			subjectButton(tutor, level, subjects[i]),
			subjectButton(tutor, level, subjects[i+1]),
		)
	}
	if len(subjects)%2 == 1 {
		kb.Row(subjectButton(tutor, level, subjects[len(subjects)-1]))
	}
	kb.Row(keyboard.BackButton(DataMenuLevels))

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        fmt.Sprintf("Subjects for %s — tap to toggle:", formatting.Label(level)),
		ReplyMarkup: kb.Build(),
	})
}

func subjectButton(tutor *model.Tutor, level, subject string) models.InlineKeyboardButton {
	label := fmt.Sprintf("%s %s", mark(tutor.TeachingLevels.SubjectEnabled(level, subject)), formatting.Label(subject))
	return keyboard.Button(label, DataToggleSubject(level, subject))
}

func sendLocationsMenu(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, tutor *model.Tutor) {
	tutor.EnsureNested()

	kb := keyboard.NewBuilder()
	for _, region := range model.Regions {
		label := fmt.Sprintf("%s %s", mark(tutor.Locations.Enabled(region)), formatting.Label(region))
		kb.Row(keyboard.Button(label, DataToggleLocation(region)))
	}
	kb.Row(keyboard.BackButton(DataProfileEdit))

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        "Regions you can travel to — tap to toggle:",
		ReplyMarkup: kb.Build(),
	})
}

func sendTimeSlotsMenu(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, tutor *model.Tutor) {
	tutor.EnsureNested()

	kb := keyboard.NewBuilder()
	for _, slot := range model.SlotNames {
		label := fmt.Sprintf("%s %s", mark(tutor.TimeSlots.Enabled(slot)), formatting.Label(slot))
		kb.Row(keyboard.Button(label, DataToggleSlot(slot)))
	}
	kb.Row(keyboard.BackButton(DataProfileEdit))

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        "When are you available? Tap to toggle:",
		ReplyMarkup: kb.Build(),
	})
}

// presetRates are the per-hour amounts offered as one-tap choices; the
// "custom" button falls through to free-text capture.
var presetRates = []string{"25", "30", "40", "50", "60", "80"}

func sendRatesMenu(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, tutor *model.Tutor) {
	tutor.EnsureNested()

	kb := keyboard.NewBuilder()
	for _, level := range model.Levels {
		var row []models.InlineKeyboardButton
		for _, amount := range presetRates {
			row = append(row, keyboard.Button("$"+amount, DataSetRate(level, amount)))
		}
		kb.Row(keyboard.Button(rateHeading(tutor, level), DataNoop))
		kb.Row(row...)
		kb.Row(keyboard.Button("✏️ Custom rate for "+formatting.Label(level), DataEditField("rate_"+level)))
	}
	kb.Row(keyboard.BackButton(DataProfileEdit))

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        "Set your hourly rate per level:",
		ReplyMarkup: kb.Build(),
	})
}

func rateHeading(tutor *model.Tutor, level string) string {
	rate := tutor.HourlyRates.RateFor(level)
	if rate == "" {
		return "— " + formatting.Label(level) + " —"
	}
	return fmt.Sprintf("— %s ($%s/h) —", formatting.Label(level), rate)
}

func sendFiltersMenu(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) {
	kb := keyboard.NewBuilder()

	var levelRow []models.InlineKeyboardButton
	for _, level := range model.Levels {
		label := formatting.Label(level)
		if sess.Filters.Level == level {
			label = "✅ " + label
		}
		levelRow = append(levelRow, keyboard.Button(label, DataFilterLevel(level)))
	}
	kb.Row(levelRow...)

	for i := 0; i+1 < len(model.Regions); i += 2 {
		kb.Row(
			filterRegionButton(sess, model.Regions[i]),
			filterRegionButton(sess, model.Regions[i+1]),
		)
	}
	if len(model.Regions)%2 == 1 {
		kb.Row(filterRegionButton(sess, model.Regions[len(model.Regions)-1]))
	}

	kb.Row(keyboard.Button("🧹 Clear filters", DataFilterClear))
	kb.AddMainMenuButton()

	text := "🔎 *Browse filters*\n\nCurrent: " + describeFilters(sess.Filters)
	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: kb.Build(),
	})
}

func filterRegionButton(sess *session.Session, region string) models.InlineKeyboardButton {
	label := formatting.Label(region)
	if sess.Filters.Location == region {
		label = "✅ " + label
	}
	return keyboard.Button(label, DataFilterLocation(region))
}

func describeFilters(f session.Filters) string {
	if f.Empty() {
		return "none"
	}
	out := ""
	if f.Level != "" {
		out += formatting.Label(f.Level)
	}
	if f.Location != "" {
		if out != "" {
			out += ", "
		}
		out += formatting.Label(f.Location)
	}
	return out
}

// handleToggle flips exactly one boolean leaf, persists, and re-renders the
// same menu screen with the new state. Repeating a toggle restores the
// original value.
func handleToggle(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, action Action) {
	tutor := loadTutor(ctx, h, sess)
	if tutor == nil {
		return
	}
	tutor.EnsureNested()

	var ok bool
	switch action.Kind {
	case KindToggleSubject:
		ok = tutor.TeachingLevels.ToggleSubject(action.Level, action.Subject)
	case KindToggleSlot:
		ok = tutor.TimeSlots.Toggle(action.Slot)
	case KindToggleLocation:
		ok = tutor.Locations.Toggle(action.Region)
	}
	if !ok {
		sendFallback(ctx, h, sess.ChatID, "")
		return
	}

	if err := h.Tutors.Save(ctx, tutor); err != nil {
		h.Logger.Error("Failed to persist toggle", zap.Error(err))
		sendTryAgain(ctx, h, sess.ChatID)
		return
	}

	switch action.Kind {
	case KindToggleSubject:
		sendLevelMenu(ctx, h, sess, tutor, action.Level)
	case KindToggleSlot:
		sendTimeSlotsMenu(ctx, h, sess, tutor)
	case KindToggleLocation:
		sendLocationsMenu(ctx, h, sess, tutor)
	}
}

// handleFilter updates the session-held browse filters and re-renders the
// filter menu. Selecting the active value clears it.
func handleFilter(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, action Action) {
	switch action.Kind {
	case KindFilterLevel:
		if sess.Filters.Level == action.Value {
			sess.Filters.Level = ""
		} else {
			sess.Filters.Level = action.Value
		}
	case KindFilterLocation:
		if sess.Filters.Location == action.Value {
			sess.Filters.Location = ""
		} else {
			sess.Filters.Location = action.Value
		}
	case KindFilterClear:
		sess.Filters = session.Filters{}
	}
	h.Sessions.Put(sess)
	sendFiltersMenu(ctx, h, sess)
}
