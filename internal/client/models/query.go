package models

import "slices"

// StatusFilter narrows the list by record status. FilterAll disables the filter.
type StatusFilter string

const (
	FilterActive   StatusFilter = "active"
	FilterInactive StatusFilter = "inactive"
	FilterAll      StatusFilter = "all"
)

// ParseStatusFilter accepts the three literal values; anything else is rejected.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch f := StatusFilter(s); f {
	case FilterActive, FilterInactive, FilterAll:
		return f, true
	}
	return "", false
}

// SortDirection is the direction of the single active sort column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortableFields lists the columns the server can order by.
var SortableFields = []string{"id", "username", "status", "createdAt"}

// IsSortable reports whether field can be used in a Sort.
func IsSortable(field string) bool {
	return slices.Contains(SortableFields, field)
}

// Sort is at most one field and direction. The zero value means
// "no sort active" and leaves ordering to the server.
type Sort struct {
	Field     string
	Direction SortDirection
}

// Active reports whether a sort column is selected.
func (s Sort) Active() bool {
	return s.Field != ""
}

// PageSizes are the page sizes the table offers.
var PageSizes = []int{5, 10, 20}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// IsPageSize reports whether n is one of PageSizes.
func IsPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// Pagination is a 1-based page number plus page size.
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination is the first page at the default size.
func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, PageSize: DefaultPageSize}
}

// ListQuery is the full list state the controller fetches against. Any change
// to it invalidates the cached page.
type ListQuery struct {
	Pagination Pagination
	Sort       Sort
	Search     string
	Status     StatusFilter
}

// DefaultListQuery is the state the console starts with.
func DefaultListQuery() ListQuery {
	return ListQuery{Pagination: DefaultPagination(), Status: FilterAll}
}

// PageCount returns the number of pages needed for total rows; at least 1.
func (p Pagination) PageCount(total int) int {
	if p.PageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + p.PageSize - 1) / p.PageSize
}
