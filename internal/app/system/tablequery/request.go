package tablequery

import (
	"net/http"
	"strings"

	"github.com/dalemusser/academyhub/internal/app/system/normalize"
	"github.com/dalemusser/academyhub/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
)

// FromRequest builds a Query from list-endpoint parameters:
//
//	q      free-text search
//	sort   field name, dir asc|desc
//	page   0-based index, size rows per page
//
// plus one exact-match filter per name in filters. Absent filters are left
// out; a "status" filter of "all" is dropped.
func FromRequest(r *http.Request, defaultSize int, filters ...string) Query {
	q := Query{Search: normalize.QueryParam(query.Get(r, "q"))}

	for _, name := range filters {
		v := normalize.QueryParam(query.Get(r, name))
		if name == "status" {
			v = normalize.Tab(v)
		}
		if v == "" {
			continue
		}
		if q.Filters == nil {
			q.Filters = make(map[string]string)
		}
		q.Filters[name] = v
	}

	if field := normalize.QueryParam(query.Get(r, "sort")); field != "" {
		q.Sort = &Sort{
			Field:     field,
			Direction: Direction(strings.ToLower(normalize.QueryParam(query.Get(r, "dir")))),
		}
	}

	q.Page.Index, q.Page.Size = paging.ParsePage(r, defaultSize)
	return q
}
