package paginate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPageSize is returned when a page size option is not recognized.
var ErrInvalidPageSize = errors.New("page size must be a positive integer or \"all\"")

// PageSize is the number of items per page. All shows every item on a single page.
type PageSize int

const (
	// All puts every item on one page.
	All PageSize = 0

	// Default is the initial page size of a catalog view.
	Default PageSize = 10
)

// Options lists the page sizes offered to readers.
var Options = []PageSize{5, 10, 20, 30, 50, 100, All}

// String returns the option label of s.
func (s PageSize) String() string {
	if s == All {
		return "все"
	}
	return strconv.Itoa(int(s))
}

// ParsePageSize converts an option label into a PageSize. It accepts positive
// integers, "all" and "все".
func ParsePageSize(s string) (PageSize, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "all", "все":
		return All, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return Default, fmt.Errorf("%w: %q", ErrInvalidPageSize, s)
	}
	return PageSize(n), nil
}

// Slice returns page pageIndex of items and the total number of pages.
//
// With All the page is items itself and the count is 1. Otherwise the count
// is ceil(len(items)/size) and the page is the half-open range
// [pageIndex*size, pageIndex*size+size) clamped to the bounds of items.
// A negative index is treated as 0.
func Slice[T any](items []T, pageIndex int, size PageSize) (page []T, pageCount int) {
	if size <= All {
		return items, 1
	}

	n := int(size)
	pageCount = (len(items) + n - 1) / n
	if pageIndex < 0 {
		pageIndex = 0
	}

	start := pageIndex * n
	if start >= len(items) {
		return items[len(items):], pageCount
	}
	end := min(start+n, len(items))
	return items[start:end], pageCount
}
