package dto

// PageResponse is the shared shape for every paginated listing.
type PageResponse[T any] struct {
	List     []T   `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps raw pagination params to sane values: pages are
// 1-indexed, zero or negative input falls back to defaults, page size is
// capped.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset converts a 1-indexed page into the row offset for the query layer.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
