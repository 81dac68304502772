package service

// PageSize is the fixed number of list items per page.
const PageSize = 5

// ClampPage clamps a requested 1-based page against the current total item
// count. The store can shrink between requests, so every list action must
// re-clamp; a stale page token can never index out of bounds.
func ClampPage(page, totalItems int) (clamped, totalPages int) {
	totalPages = (totalItems + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}
