// Package pagination implements the two result-window strategies used by the
// listing endpoints: classic page-number/offset windows for management
// listings, and opaque keyset cursors for the activity log.
package pagination

// OffsetPage describes one window of an offset-paginated result set.  Pages
// are 1-indexed.  A page number past the end yields an empty window rather
// than an error, so clients can blindly follow stale links.
type OffsetPage struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewOffsetPage normalizes the requested page number and computes the page
// count from a total.  page < 1 is clamped to 1; TotalPages is
// ceil(total/size) and 0 for an empty set.
func NewOffsetPage(page, pageSize int, total int64) OffsetPage {
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return OffsetPage{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
}

// Offset returns the number of rows to skip for this page.
func (p OffsetPage) Offset() int {
	return (p.Page - 1) * p.PageSize
}
