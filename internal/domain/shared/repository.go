package shared

// DefaultPageSize is the fixed page size of every listing endpoint
const DefaultPageSize = 20

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the page size, falling back to the default
func (f Filter) Limit() int {
	if f.PageSize <= 0 {
		return DefaultPageSize
	}
	return f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if items == nil {
		items = []T{}
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Count:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// MapPaginated converts the items of a page while keeping its counters
func MapPaginated[T, U any](p Paginated[T], fn func(T) U) Paginated[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Paginated[U]{
		Items:      out,
		Count:      p.Count,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

// PageFilter returns the default filter positioned on page
func PageFilter(page int) Filter {
	f := DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	return f
}

// PageOf builds the page for a filter. A page past the end is empty but
// still reports the total count.
func PageOf[T any](items []T, total int64, f Filter) *Paginated[T] {
	p := NewPaginated(items, total, f.Page, f.Limit())
	return &p
}
