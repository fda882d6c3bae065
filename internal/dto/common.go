package dto

// PageParams carries raw pagination values from query strings. Normalization
// (defaults, clamping) happens in the pagination package, not here.
type PageParams struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}
