package dto

import "github.com/surgishop/backend/internal/domain/shared"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListRequest holds the paging and ordering query parameters of list endpoints
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// DefaultListRequest is the first page, newest first. Bind query parameters
// over it.
func DefaultListRequest() ListRequest {
	return ListRequest{
		Page:     1,
		PageSize: defaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Filter converts the request into a repository filter. Out of range paging
// falls back to the defaults.
func (r ListRequest) Filter() shared.Filter {
	f := shared.Filter{
		Page:     r.Page,
		PageSize: r.PageSize,
		OrderBy:  r.OrderBy,
		OrderDir: r.OrderDir,
		Search:   r.Search,
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > maxPageSize {
		f.PageSize = defaultPageSize
	}
	return f
}
