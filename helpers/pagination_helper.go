package helpers

import "strconv"

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// Page is the pagination envelope used by every list endpoint.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	CurrentPage   int `json:"currentPage"`
	PageSize      int `json:"pageSize"`
}

// ParsePageParams parses the page and size query values, falling back to the
// defaults on absent or unparseable input.
func ParsePageParams(pageStr, sizeStr string) (page, size int) {
	page = defaultPage
	size = defaultPageSize
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 {
		size = s
	}
	return page, size
}

// Paginate slices items into the requested page. An out-of-range page yields
// an empty content slice, never an error.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = defaultPage
	}
	if size < 1 {
		size = defaultPageSize
	}

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	totalPages := (len(items) + size - 1) / size

	return Page[T]{
		Content:       items[start:end],
		TotalElements: len(items),
		TotalPages:    totalPages,
		CurrentPage:   page,
		PageSize:      size,
	}
}
