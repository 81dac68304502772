package keyboard

import "github.com/go-telegram/bot/models"

// MainMenuButton returns to the main menu screen.
func MainMenuButton() models.InlineKeyboardButton {
	return Button("🏠 Main menu", "main_menu")
}

// MainMenuRow is a single-button row returning to the main menu.
func MainMenuRow() []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{MainMenuButton()}
}

// AddMainMenuButton appends the main-menu row to the builder.
func (b *Builder) AddMainMenuButton() *Builder {
	return b.Row(MainMenuButton())
}

// BackButton creates a "back" button targeting the given token.
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Back", callbackData)
}

// YesNoButtons creates one row with a confirm/decline pair.
func YesNoButtons(yesCallback, noCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			Button("✅ Yes", yesCallback),
			Button("❌ No", noCallback),
		},
	}
}
