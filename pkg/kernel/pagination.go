package kernel

import (
	"strconv"
	"strings"
)

// Page describes where a window sits in the full result set
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated is a window of items plus its page description
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPage computes the page description for a 1-based page number.
// Non-positive numbers are treated as page 1.
func NewPage(number, size, total int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	if total < 0 {
		total = 0
	}

	return Page{
		Number: number,
		Size:   size,
		Total:  total,
		Pages:  (total + size - 1) / size,
	}
}

// Skip is the number of records before this page
func (p Page) Skip() int {
	return (p.Number - 1) * p.Size
}

// HasPrevious is false on the first page
func (p Page) HasPrevious() bool {
	return p.Number > 1
}

// HasNext is false on the last page and beyond it
func (p Page) HasNext() bool {
	return p.Number < p.Pages
}

// ParsePageNumber reads a page query parameter. Missing, non-numeric and
// non-positive values all mean page 1.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
