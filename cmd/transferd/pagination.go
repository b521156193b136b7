package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PaginatedResponse wraps list results with page-based pagination metadata.
type PaginatedResponse struct {
	Data       []any  `json:"data"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	Next       string `json:"next,omitempty"`
}

// paginate slices items according to the page and page_size query parameters
// and replies with the wrapped page. Pages are one-based.
func paginate(c *fiber.Ctx, items []any) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", defaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	resp := PaginatedResponse{
		Data:       items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
	if page < totalPages {
		resp.Next = fmt.Sprintf("%s?page=%d&page_size=%d", c.Path(), page+1, pageSize)
	}
	return c.JSON(resp)
}
