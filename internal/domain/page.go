package domain

// Page is a read-only window over an ordered result set. CurrentPage is
// 0-based and always within [0, NumberOfPages) for a non-empty page; a
// request outside that range produces no Page at all rather than a clamped
// or empty one.
type Page[T any] struct {
	Target        string `json:"target"`          // Path the page was built for, e.g. /items
	Items         []T    `json:"items"`           // The window contents, in result order
	CurrentPage   int    `json:"current_page"`    // 0-based index of this window
	NumberOfPages int    `json:"number_of_pages"` // ceil(total / page size)
	Query         string `json:"query,omitempty"` // Search term the window was filtered by, if any
}
