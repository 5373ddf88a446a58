package utils

import (
	"net/http"
	"strconv"
)

// SizePerPage is the fixed page size for every list endpoint.
const SizePerPage = 50

// ParsePage reads the page query parameter, defaulting to the first page.
func ParsePage(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// PageWindow converts a 1-based page into an offset/limit pair.
func PageWindow(page, size int) (offset, limit int) {
	return (page - 1) * size, size
}

// PageCount is ceil(total/size). An empty table has zero pages, not one.
func PageCount(total int64, size int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(size) - 1) / int64(size)
}
