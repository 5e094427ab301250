// Package pagination parses page/limit query parameters and computes page counts.
package pagination

import (
	"net/url"

	"github.com/oapi-codegen/runtime"
)

const (
	DefaultSize      = 10
	DefaultAdminSize = 9
)

// Page is a 1-based page number and a page size, both positive.
type Page struct {
	Number int
	Size   int
}

// New returns a Page, substituting defaults for non-positive values.
func New(number, size, defaultSize int) Page {
	if defaultSize <= 0 {
		defaultSize = DefaultSize
	}
	if number <= 0 {
		number = 1
	}
	if size <= 0 {
		size = defaultSize
	}
	return Page{Number: number, Size: size}
}

// FromValues reads "page" and "limit". Values that are missing or do not
// parse as positive integers fall back to page 1 and defaultSize.
func FromValues(values url.Values, defaultSize int) Page {
	return New(intParam(values, "page"), intParam(values, "limit"), defaultSize)
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages is ceil(total / size).
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

func intParam(values url.Values, name string) int {
	var n int
	if err := runtime.BindQueryParameter("form", true, false, name, values, &n); err != nil {
		return 0
	}
	return n
}
