package pagination

// DefaultPageSize is used when the caller does not supply a limit.
const DefaultPageSize = 10

// MaxPageSize caps the per-page item count regardless of what the caller asks for.
const MaxPageSize = 100

// Params holds normalized offset pagination parameters.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps raw page/limit values into a usable Params: page defaults
// to 1, limit defaults to DefaultPageSize and never exceeds MaxPageSize.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes the page count for a total item count.
func (p Params) TotalPages(totalItems int64) int {
	if totalItems <= 0 {
		return 0
	}
	pages := totalItems / int64(p.Limit)
	if totalItems%int64(p.Limit) != 0 {
		pages++
	}
	return int(pages)
}
