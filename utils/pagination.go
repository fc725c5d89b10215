package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination is parsed from ?page and ?limit. Enabled is false when neither is
// present, in which case lists are returned as plain arrays.
type Pagination struct {
	Enabled bool
	Page    int
	Limit   int
}

type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func ParsePagination(c *gin.Context) Pagination {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	p := Pagination{
		Enabled: hasPage || hasLimit,
		Page:    ParseIntDefault(pageStr, 1),
		Limit:   ParseIntDefault(limitStr, DefaultPageLimit),
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	// keeps (Page-1)*Limit inside int
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func (p Pagination) Skip() int64 { return int64(p.Page-1) * int64(p.Limit) }

func NewPage[T any](items []T, p Pagination, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Page[T]{Items: items, CurrentPage: p.Page, TotalPages: pages, TotalItems: total}
}
