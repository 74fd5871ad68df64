package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the standard page size when none is provided.
	DefaultPageSize = 10
	// MaxPageSize caps how many rows any list query can request.
	MaxPageSize = 100
)

// Params holds page-based pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Normalize applies defaults and caps. fallbackSize is used when PageSize is unset.
func (p Params) Normalize(fallbackSize int) Params {
	if fallbackSize <= 0 {
		fallbackSize = DefaultPageSize
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = fallbackSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset is the number of rows to skip for the current page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// FromQuery reads ?page= and ?pageSize= ignoring malformed values.
func FromQuery(values url.Values) Params {
	return Params{
		Page:     atoi(values.Get("page")),
		PageSize: atoi(values.Get("pageSize")),
	}
}

func atoi(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
