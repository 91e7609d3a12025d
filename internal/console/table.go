package console

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"bookconsole/internal/column"
)

const DefaultRows = 10

// RowOptions are the page sizes offered under the tables.
var RowOptions = []int{5, 10, 25, 50}

// Row is anything a table can show.
type Row interface {
	Value(field string) any
	Cell(field string) string
}

// Query describes what part of a collection a table shows.
type Query struct {
	Filter string
	Sort   string
	Desc   bool
	Page   int
	Rows   int
}

// Page is one rendered page of a table.
type Page[T Row] struct {
	Items []T
	Total int
	First int
	Last  int
	Page  int
	Pages int
	Rows  int
}

// Summary is the "Showing x to y of n" line under a table.
func (p Page[T]) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d", p.First, p.Last, p.Total)
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.Pages }

func normalizeRows(rows int) int {
	if slices.Contains(RowOptions, rows) {
		return rows
	}
	return DefaultRows
}

// Paginate filters items on the visible columns, sorts them and cuts out
// the requested page. Out of range pages are clamped.
func Paginate[T Row](items []T, cols []column.Meta, q Query) Page[T] {
	filtered := Filter(items, cols, q.Filter)
	if q.Sort != "" {
		SortRows(filtered, q.Sort, q.Desc)
	}

	rows := normalizeRows(q.Rows)
	total := len(filtered)
	pages := (total + rows - 1) / rows
	if pages == 0 {
		pages = 1
	}
	page := min(max(q.Page, 1), pages)

	start := (page - 1) * rows
	end := min(start+rows, total)
	p := Page[T]{
		Items: filtered[start:end],
		Total: total,
		Page:  page,
		Pages: pages,
		Rows:  rows,
	}
	if total > 0 {
		p.First = start + 1
		p.Last = end
	}
	return p
}

// Filter keeps the items whose visible cells contain q, ignoring case.
func Filter[T Row](items []T, cols []column.Meta, q string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if q == "" || matches(item, cols, q) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item Row, cols []column.Meta, q string) bool {
	for _, c := range cols {
		if strings.Contains(strings.ToLower(item.Cell(c.Field)), q) {
			return true
		}
	}
	return false
}

// SortRows sorts items in place by field. Equal rows keep their order.
func SortRows[T Row](items []T, field string, desc bool) {
	slices.SortStableFunc(items, func(a, b T) int {
		c := compareValues(a.Value(field), b.Value(field))
		if desc {
			return -c
		}
		return c
	})
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case int64:
		y, _ := b.(int64)
		return cmp.Compare(x, y)
	case int:
		y, _ := b.(int)
		return cmp.Compare(x, y)
	case float64:
		y, _ := b.(float64)
		return cmp.Compare(x, y)
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case string:
		y, _ := b.(string)
		return strings.Compare(strings.ToLower(x), strings.ToLower(y))
	}
	return 0
}
