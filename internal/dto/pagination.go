package dto

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

type PagedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func ParsePagination(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

func NewPagination(page, pageSize, totalItems int) Pagination {
	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}

	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Paginate slices an in-memory result set. Reference lists are small and
// cached whole, so paging happens after the cache.
func Paginate[T any](items []T, p PaginationParams) PagedResponse[T] {
	total := len(items)
	start := p.Offset
	end := start + p.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := items[start:end]
	if page == nil {
		page = []T{}
	}
	return PagedResponse[T]{
		Data:       page,
		Pagination: NewPagination(p.Page, p.PageSize, total),
	}
}
