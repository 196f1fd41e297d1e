package services

import (
	"aihub-backend/models"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// normalizeListQuery applies the list defaults: page 1, 20 items, newest first by createdAt
func normalizeListQuery(q models.ListQuery) models.ListQuery {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	q.SortOrder = strings.ToLower(q.SortOrder)
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

func paginate[T any](items []T, page, limit int) ([]T, *models.Pagination) {
	total := len(items)
	p := &models.Pagination{
		CurrentPage:  page,
		TotalPages:   (total + limit - 1) / limit,
		TotalItems:   total,
		ItemsPerPage: limit,
	}

	// compare in pages so a huge page number cannot overflow the offset
	if total == 0 || page-1 > (total-1)/limit {
		return []T{}, p
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], p
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
