// Package paging holds the offset-pagination arithmetic shared by the query
// engine and the list endpoints. Page indexes are 0-based; display ranges are
// 1-based.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is used when a list request does not name a size.
const DefaultPageSize = 10

// MaxPageSize caps the size a request may ask for.
const MaxPageSize = 100

// PageCount returns ceil(total/size). size must be positive.
func PageCount(total, size int) int {
	if total <= 0 {
		return 0
	}
	return 1 + (total-1)/size
}

// Bounds returns the half-open slice window [lo, hi) for page index of the
// given size over total rows. Out-of-range pages yield lo == hi.
func Bounds(index, size, total int) (lo, hi int) {
	if index < 0 || size <= 0 || total <= 0 {
		return max(total, 0), max(total, 0)
	}
	// index*size would overflow or land past the end.
	if index > 0 && size > (total-1)/index {
		return total, total
	}
	lo = index * size
	hi = lo + min(size, total-lo)
	return lo, hi
}

// Range holds display values for a page: "showing Start–End of Total".
type Range struct {
	Start     int `json:"start"` // 1-based, 0 when the page is empty
	End       int `json:"end"`
	Total     int `json:"total"`
	PrevIndex int `json:"prev_index"` // -1 when there is no previous page
	NextIndex int `json:"next_index"` // -1 when there is no next page
}

// ComputeRange derives the display range for a page that showed `shown`
// rows out of `total`.
func ComputeRange(index, size, shown, total int) Range {
	r := Range{Total: total, PrevIndex: -1, NextIndex: -1}
	if index > 0 {
		r.PrevIndex = index - 1
		if pc := PageCount(total, size); r.PrevIndex >= pc {
			r.PrevIndex = pc - 1
		}
	}
	if shown == 0 {
		return r
	}
	lo, _ := Bounds(index, size, total)
	if lo >= total {
		return r
	}
	r.Start = lo + 1
	r.End = r.Start + shown - 1
	if r.End < total {
		r.NextIndex = index + 1
	}
	return r
}

// ParsePage reads "page" (0-based) and "size" from the request query. Missing
// or malformed values fall back to 0 and def; size is clamped to MaxPageSize.
// Negative values are passed through so the query engine can reject them.
func ParsePage(r *http.Request, def int) (index, size int) {
	index = atoiOr(query.Get(r, "page"), 0)
	size = atoiOr(query.Get(r, "size"), def)
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return index, size
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
