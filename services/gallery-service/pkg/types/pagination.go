package types

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest selects a page of a listing. All disables paging.
type PageRequest struct {
	Page  uint64
	Limit uint64
	All   bool
}

// Normalize applies defaults and caps the limit.
func (p PageRequest) Normalize() PageRequest {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the number of items to skip.
func (p PageRequest) Offset() uint64 {
	if p.All || p.Page == 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// QueryLimit returns the storage limit, zero meaning unlimited.
func (p PageRequest) QueryLimit() uint64 {
	if p.All {
		return 0
	}
	return p.Limit
}

// Pagination describes the position of a page within a listing.
type Pagination struct {
	TotalCount  int64  `json:"total_count"`
	TotalPages  int64  `json:"total_pages"`
	CurrentPage uint64 `json:"current_page"`
}

// NewPagination returns nil for unpaged requests.
func NewPagination(total int64, p PageRequest) *Pagination {
	if p.All {
		return nil
	}

	pages := int64(0)
	if p.Limit > 0 {
		limit := int64(p.Limit)
		pages = (total + limit - 1) / limit
	}

	return &Pagination{
		TotalCount:  total,
		TotalPages:  pages,
		CurrentPage: p.Page,
	}
}
