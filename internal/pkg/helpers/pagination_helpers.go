package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
	DefaultPage     = 1
)

// Page is a 1-based page request translated to skip/limit.
type Page struct {
	Page  int
	Limit int
	Skip  int64
}

// NewPage normalizes page and limit; a non-positive or oversized limit falls back to defaultLimit.
func NewPage(page, limit, defaultLimit int) Page {
	if defaultLimit <= 0 || defaultLimit > MaxPageSize {
		defaultLimit = DefaultPageSize
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = defaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	// Past this page the skip no longer fits in an int64.
	if maxPage := math.MaxInt64/int64(limit) + 1; int64(page) > maxPage {
		page = int(maxPage)
	}
	return Page{Page: page, Limit: limit, Skip: int64(page-1) * int64(limit)}
}

// ParsePageParams reads ?page= and ?limit= from the request.
func ParsePageParams(c *gin.Context, defaultLimit int) Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}
	return NewPage(page, limit, defaultLimit)
}

// HasMore reports whether items remain after this page.
func HasMore(skip int64, returned int, total int64) bool {
	return skip+int64(returned) < total
}
