// Package listing shapes list queries: optional filters as GORM scopes and
// page resolution that never fails on bad input.
package listing

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Page sizes per list view.
const (
	FeaturedJobsSize = 6
	JobsPageSize     = 10
	ApplicationsSize = 10
	AdminPageSize    = 20
)

type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Exact filters column = value. Blank values leave the query untouched.
func Exact(column, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		v := strings.TrimSpace(value)
		if v == "" {
			return db
		}
		return db.Where(column+" = ?", v)
	}
}

// Contains matches value as a case-insensitive substring of any of columns.
func Contains(value string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		v := strings.TrimSpace(value)
		if v == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(v)) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col)
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// BoolEq filters on a boolean column from a raw "true"/"false" value.
// Blank or unparseable values leave the query untouched.
func BoolEq(column, raw string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return db
		}
		return db.Where(column+" = ?", b)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// TotalPages is never less than one, so an empty list still has page 1.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// ResolvePage turns a raw page parameter into a valid page number: missing
// or non-integer input gives 1, anything past the end gives the last page.
func ResolvePage(raw string, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > totalPages {
		return totalPages
	}
	return n
}

// Paginate counts query, resolves rawPage and loads that page into a
// Page. Ordering is set by the caller on query; load scopes (preloads,
// selects) apply to the page fetch only, never to the count.
func Paginate[T any](query *gorm.DB, size int, rawPage string, load ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	q := query.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[T]{}, fmt.Errorf("count: %w", err)
	}

	pages := TotalPages(total, size)
	number := ResolvePage(rawPage, pages)

	items := make([]T, 0, size)
	if total > 0 {
		if err := q.Scopes(load...).Offset((number - 1) * size).Limit(size).Find(&items).Error; err != nil {
			return Page[T]{}, fmt.Errorf("find page: %w", err)
		}
	}

	return Page[T]{
		Items:       items,
		Number:      number,
		PageSize:    size,
		TotalPages:  pages,
		TotalCount:  total,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}, nil
}

// Map converts the items of p, keeping its page metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Items:       items,
		Number:      p.Number,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}
