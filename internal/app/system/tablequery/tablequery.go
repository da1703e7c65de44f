// Package tablequery is the list-view query engine. It applies, in a fixed
// order, field filters, free-text search, a stable sort and offset
// pagination to an insertion-ordered slice of rows.
//
// Run never mutates its input and never reorders rows that compare equal,
// so the same query over the same rows always returns the same page.
package tablequery

import (
	"slices"
	"sort"
	"strings"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/paging"
	"github.com/dalemusser/academyhub/internal/app/system/search"
)

// FilterAll is the status filter value that disables the status filter (the
// "all" tab). Other fields match it literally.
const FilterAll = "all"

// statusField is the only field FilterAll bypasses.
const statusField = "status"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

type Page struct {
	Index int `json:"index"`
	Size  int `json:"size"`
}

// Query is the declarative list request. A nil Sort keeps insertion order.
type Query struct {
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    *Sort             `json:"sort,omitempty"`
	Page    Page              `json:"page"`
}

// Result is one page of rows. TotalCount counts rows after filtering and
// search, before pagination.
type Result[T any] struct {
	Rows       []T          `json:"rows"`
	TotalCount int          `json:"total_count"`
	PageCount  int          `json:"page_count"`
	Range      paging.Range `json:"range"`
}

// Schema names the queryable fields of one collection.
type Schema[T any] struct {
	entity string
	fields map[string]Field[T]
	search []Field[T]
}

// NewSchema builds a schema. Field names must be unique.
func NewSchema[T any](entity string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{entity: entity, fields: make(map[string]Field[T], len(fields))}
	for _, f := range fields {
		if _, dup := s.fields[f.Name]; dup {
			panic("tablequery: duplicate field " + f.Name + " in " + entity + " schema")
		}
		s.fields[f.Name] = f
		if f.Searchable {
			s.search = append(s.search, f)
		}
	}
	return s
}

func (s *Schema[T]) Entity() string { return s.entity }

// SearchFields lists the searchable field names in declaration order.
func (s *Schema[T]) SearchFields() []string {
	out := make([]string, len(s.search))
	for i, f := range s.search {
		out[i] = f.Name
	}
	return out
}

// Validate checks q against the schema without running it.
func (s *Schema[T]) Validate(q Query) error {
	var fields []storeerr.FieldError
	if q.Page.Size <= 0 {
		fields = append(fields, storeerr.FieldError{Field: "page.size", Message: "page size must be positive"})
	}
	if q.Page.Index < 0 {
		fields = append(fields, storeerr.FieldError{Field: "page.index", Message: "page index must not be negative"})
	}

	names := make([]string, 0, len(q.Filters))
	for name := range q.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := s.fields[name]; !ok {
			fields = append(fields, storeerr.FieldError{Field: "filters." + name, Message: "unknown filter field"})
		}
	}

	if q.Sort != nil && q.Sort.Field != "" {
		if _, ok := s.fields[q.Sort.Field]; !ok {
			fields = append(fields, storeerr.FieldError{Field: "sort.field", Message: "unknown sort field " + q.Sort.Field})
		}
		switch q.Sort.Direction {
		case "", Asc, Desc:
		default:
			fields = append(fields, storeerr.FieldError{Field: "sort.direction", Message: "direction must be asc or desc"})
		}
	}

	if len(fields) > 0 {
		return storeerr.Invalid(s.entity, "query", fields...)
	}
	return nil
}

// Run applies q to rows. rows must be in insertion order.
func Run[T any](s *Schema[T], rows []T, q Query) (Result[T], error) {
	if err := s.Validate(q); err != nil {
		return Result[T]{Rows: []T{}}, err
	}

	matched := filter(s, rows, q)

	if q.Sort != nil && q.Sort.Field != "" {
		f := s.fields[q.Sort.Field]
		desc := q.Sort.Direction == Desc
		slices.SortStableFunc(matched, func(a, b T) int {
			if desc {
				return f.compare(b, a)
			}
			return f.compare(a, b)
		})
	}

	total := len(matched)
	lo, hi := paging.Bounds(q.Page.Index, q.Page.Size, total)
	page := make([]T, 0, hi-lo)
	page = append(page, matched[lo:hi]...)

	return Result[T]{
		Rows:       page,
		TotalCount: total,
		PageCount:  paging.PageCount(total, q.Page.Size),
		Range:      paging.ComputeRange(q.Page.Index, q.Page.Size, len(page), total),
	}, nil
}

// filter runs the field-filter stage and then the search stage. It always
// returns a fresh slice.
func filter[T any](s *Schema[T], rows []T, q Query) []T {
	type check struct {
		f    Field[T]
		want string
	}
	var checks []check
	for name, want := range q.Filters {
		if name == statusField && strings.EqualFold(want, FilterAll) {
			continue
		}
		checks = append(checks, check{f: s.fields[name], want: want})
	}
	term := search.NewTerm(q.Search)

	out := make([]T, 0, len(rows))
	vals := make([]string, len(s.search))
rows:
	for _, r := range rows {
		for _, c := range checks {
			if c.f.str(r) != c.want {
				continue rows
			}
		}
		if !term.Empty() {
			for i, f := range s.search {
				vals[i] = f.str(r)
			}
			if !term.Match(vals...) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
