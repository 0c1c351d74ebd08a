package sqlstore

import (
	"fmt"
	"strings"

	"project-manager/internal/domain"
)

// listing describes how one table is searched and ordered.
type listing struct {
	table   string
	columns string
	// searchExpr is lower-cased and matched with LIKE against the search text
	searchExpr  string
	sortColumns map[string]string
}

var userListing = listing{
	table:      "users",
	columns:    "id, name, email, created_at, updated_at",
	searchExpr: "name || email",
	sortColumns: map[string]string{
		"id":         "id",
		"name":       "name",
		"email":      "email",
		"createdAt":  "created_at",
		"created_at": "created_at",
		"updatedAt":  "updated_at",
		"updated_at": "updated_at",
	},
}

var projectListing = listing{
	table:      "projects",
	columns:    "id, name, description, created_at, updated_at",
	searchExpr: "name",
	sortColumns: map[string]string{
		"id":          "id",
		"name":        "name",
		"description": "description",
		"createdAt":   "created_at",
		"created_at":  "created_at",
		"updatedAt":   "updated_at",
		"updated_at":  "updated_at",
	},
}

// build returns the count and page queries for q together with their arguments.
func (l listing) build(d Dialect, q domain.ListQuery) (countSQL string, countArgs []any, pageSQL string, pageArgs []any, err error) {
	orderBy, err := l.orderBy(q.Sort)
	if err != nil {
		return "", nil, "", nil, err
	}

	where := ""
	if q.Search != "" {
		where = fmt.Sprintf(` WHERE %s(%s) LIKE ? ESCAPE '\'`, d.lowerFunc(), l.searchExpr)
		countArgs = append(countArgs, likePattern(q.Search))
	}

	countSQL = fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, l.table, where)
	pageSQL = fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s LIMIT ? OFFSET ?`, l.columns, l.table, where, orderBy)
	pageArgs = append(append(pageArgs, countArgs...), q.Limit, q.Offset)
	return countSQL, countArgs, pageSQL, pageArgs, nil
}

func (l listing) orderBy(keys []domain.SortKey) (string, error) {
	parts := make([]string, 0, len(keys)+1)
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		column, ok := l.sortColumns[strings.TrimSpace(key.Field)]
		if !ok {
			return "", fmt.Errorf("%w: unsupported sort field %q", domain.ErrInvalid, key.Field)
		}
		if _, dup := seen[column]; dup {
			continue
		}
		seen[column] = struct{}{}
		dir := "ASC"
		if key.Desc {
			dir = "DESC"
		}
		parts = append(parts, column+" "+dir)
	}
	// stable pages need a unique tie breaker
	if _, ok := seen["id"]; !ok {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", "), nil
}

func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(search))
	return "%" + escaped + "%"
}
