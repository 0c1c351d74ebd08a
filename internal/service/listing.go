package service

import (
	"fmt"
	"math"
	"strings"

	"project-manager/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "id,desc"
)

// ListParams is a list request as received from callers: 1-based page,
// page size, free text search and sort tokens.
type ListParams struct {
	Search string
	Page   int
	Limit  int
	Sort   []string
}

// ParseSort turns sort tokens into sort keys. Tokens are either a list of
// "field,direction" entries or, when the first token has no comma, a single
// field followed by an optional direction. A direction containing "desc"
// sorts descending; anything else sorts ascending.
func ParseSort(tokens []string) []domain.SortKey {
	cleaned := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		cleaned = []string{DefaultSort}
	}

	if !strings.Contains(cleaned[0], ",") {
		key := domain.SortKey{Field: cleaned[0]}
		if len(cleaned) > 1 {
			key.Desc = isDescending(cleaned[1])
		}
		return []domain.SortKey{key}
	}

	keys := make([]domain.SortKey, 0, len(cleaned))
	for _, token := range cleaned {
		field, dir, _ := strings.Cut(token, ",")
		keys = append(keys, domain.SortKey{
			Field: strings.TrimSpace(field),
			Desc:  isDescending(dir),
		})
	}
	return keys
}

func isDescending(direction string) bool {
	return strings.Contains(strings.ToLower(direction), "desc")
}

func buildListQuery(p ListParams, maxLimit int) (domain.ListQuery, error) {
	if p.Page < 1 {
		return domain.ListQuery{}, fmt.Errorf("%w: page must be 1 or greater, got %d", domain.ErrInvalid, p.Page)
	}
	if p.Limit < 1 {
		return domain.ListQuery{}, fmt.Errorf("%w: limit must be 1 or greater, got %d", domain.ErrInvalid, p.Limit)
	}
	limit := p.Limit
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if p.Page-1 > math.MaxInt/limit {
		return domain.ListQuery{}, fmt.Errorf("%w: page %d is out of range", domain.ErrInvalid, p.Page)
	}
	return domain.ListQuery{
		Search: p.Search,
		Offset: (p.Page - 1) * limit,
		Limit:  limit,
		Sort:   ParseSort(p.Sort),
	}, nil
}

func newPage[T any](data []T, q domain.ListQuery, total int) domain.Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if q.Limit > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}
	return domain.Page[T]{
		Data: data,
		Paging: domain.Paging{
			CurrentPage:   q.Offset/q.Limit + 1,
			TotalElements: len(data),
			TotalPages:    totalPages,
		},
	}
}

// present reports whether an optional field carries a usable value.
// Blank strings count as absent.
func present(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}
