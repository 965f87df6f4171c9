package apihelpers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const MAX_PAGE_SIZE = 100

type PaginatedQuery struct {
	Page  int
	Limit int
}

// Offset of the first item on the page.
func (q PaginatedQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func ParsePaginatedQueryFromCtx(c *gin.Context) (*PaginatedQuery, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return nil, err
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		return nil, err
	}
	if page < 1 || limit < 1 {
		return nil, errors.New("page and limit must be positive")
	}
	if limit > MAX_PAGE_SIZE {
		limit = MAX_PAGE_SIZE
	}
	return &PaginatedQuery{Page: page, Limit: limit}, nil
}

// Paginate returns the slice of items on the requested page.
func Paginate[T any](items []T, q PaginatedQuery) []T {
	start := q.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
