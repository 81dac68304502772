package formatting

import (
	"fmt"
	"strings"

	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// FormatProfile renders a tutor record as the profile screen text.
func FormatProfile(t *model.Tutor) string {
	var b strings.Builder

	b.WriteString("👤 *Your Profile*\n\n")
	writeField(&b, "Name", t.Name)
	if t.Age > 0 {
		writeField(&b, "Age", fmt.Sprintf("%d", t.Age))
	} else {
		writeField(&b, "Age", "")
	}
	writeField(&b, "Gender", Label(t.Gender))
	writeField(&b, "Race", Label(t.Race))
	writeField(&b, "Nationality", t.Nationality)
	writeField(&b, "Education", Label(t.Education))
	writeField(&b, "Experience", t.YearsExperience)
	writeField(&b, "Contact", t.ContactNumber)

	b.WriteString("\n📚 *Teaching levels*\n")
	b.WriteString(formatLevels(t.TeachingLevels))

	b.WriteString("\n📍 *Locations*: ")
	b.WriteString(formatFlagList(locationList(t.Locations)))
	b.WriteString("\n🕐 *Availability*: ")
	b.WriteString(formatFlagList(slotList(t.TimeSlots)))

	b.WriteString("\n💰 *Hourly rates*\n")
	b.WriteString(formatRates(t.HourlyRates))

	writeSection(&b, "📝 Introduction", t.Introduction)
	writeSection(&b, "🏆 Track record", t.TrackRecord)
	writeSection(&b, "✨ Selling points", t.SellingPoints)

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = "—"
	}
	fmt.Fprintf(b, "*%s*: %s\n", label, value)
}

func writeSection(b *strings.Builder, title, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "\n*%s*\n%s\n", title, text)
}

func formatLevels(levels *model.TeachingLevels) string {
	if levels == nil {
		return "—\n"
	}

	var b strings.Builder
	any := false
	for _, level := range model.Levels {
		var subjects []string
		for _, subject := range model.SubjectsForLevel(level) {
			if levels.SubjectEnabled(level, subject) {
				subjects = append(subjects, Label(subject))
			}
		}
		if len(subjects) > 0 {
			fmt.Fprintf(&b, "• %s: %s\n", Label(level), strings.Join(subjects, ", "))
			any = true
		}
	}
	if !any {
		return "—\n"
	}
	return b.String()
}

func locationList(locations *model.Locations) []string {
	if locations == nil {
		return nil
	}
	var out []string
	for _, region := range model.Regions {
		if locations.Enabled(region) {
			out = append(out, Label(region))
		}
	}
	return out
}

func slotList(slots *model.TimeSlots) []string {
	if slots == nil {
		return nil
	}
	var out []string
	for _, slot := range model.SlotNames {
		if slots.Enabled(slot) {
			out = append(out, Label(slot))
		}
	}
	return out
}

func formatFlagList(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, ", ")
}

func formatRates(rates *model.HourlyRates) string {
	if rates == nil {
		return "—\n"
	}

	var b strings.Builder
	any := false
	for _, level := range model.Levels {
		if rate := rates.RateFor(level); rate != "" {
			fmt.Fprintf(&b, "• %s: $%s/h\n", Label(level), rate)
			any = true
		}
	}
	if !any {
		return "—\n"
	}
	return b.String()
}
