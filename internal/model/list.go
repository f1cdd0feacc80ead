package model

// ListParams describes a paginated, optionally filtered listing.
type ListParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// Offset returns the number of rows to skip for the requested page.
func (p ListParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Page is one page of a listing together with the unpaginated total.
type Page[T any] struct {
	Items      []T
	TotalCount int
	PageNumber int
	PageSize   int
}
