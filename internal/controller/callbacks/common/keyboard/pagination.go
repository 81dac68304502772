package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons builds the navigation row for a paginated list.
// prefix is the page-token prefix (e.g. "assign_page_"); pages are 1-based.
// Previous appears only past the first page, Next only before the last.
func PaginationButtons(prefix string, page, totalPages int) []models.InlineKeyboardButton {
	var buttons []models.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, Button("⬅️ Previous", fmt.Sprintf("%s%d", prefix, page-1)))
	}
	if totalPages > 1 {
		buttons = append(buttons, Button(fmt.Sprintf("📄 %d/%d", page, totalPages), "noop"))
	}
	if page < totalPages {
		buttons = append(buttons, Button("Next ➡️", fmt.Sprintf("%s%d", prefix, page+1)))
	}

	return buttons
}

// AddPagination appends the navigation row (plus a main-menu row) for a list
// screen.
func (b *Builder) AddPagination(prefix string, page, totalPages int) *Builder {
	if row := PaginationButtons(prefix, page, totalPages); len(row) > 0 {
		b.Row(row...)
	}
	return b.AddMainMenuButton()
}
