package tablequery

import (
	"cmp"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field describes one queryable column of T. The string form is what field
// filters compare against exactly and what text search folds; compare
// orders two rows for sorting.
type Field[T any] struct {
	Name       string
	Searchable bool

	str     func(T) string
	compare func(a, b T) int
}

// Search marks the field as one of the free-text search targets.
func (f Field[T]) Search() Field[T] {
	f.Searchable = true
	return f
}

// Text is a string column. Sorting is case and diacritic insensitive.
func Text[T any, S ~string](name string, get func(T) S) Field[T] {
	return Field[T]{
		Name: name,
		str:  func(r T) string { return string(get(r)) },
		compare: func(a, b T) int {
			return strings.Compare(text.Fold(string(get(a))), text.Fold(string(get(b))))
		},
	}
}

// Int is a numeric column.
func Int[T any](name string, get func(T) int) Field[T] {
	return Field[T]{
		Name:    name,
		str:     func(r T) string { return strconv.Itoa(get(r)) },
		compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
	}
}

// Bool is a true/false column; false sorts first.
func Bool[T any](name string, get func(T) bool) Field[T] {
	return Field[T]{
		Name: name,
		str:  func(r T) string { return strconv.FormatBool(get(r)) },
		compare: func(a, b T) int {
			x, y := get(a), get(b)
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		},
	}
}

// Time is a timestamp column. Its filter form is RFC 3339 in UTC.
func Time[T any](name string, get func(T) time.Time) Field[T] {
	return Field[T]{
		Name:    name,
		str:     func(r T) string { return get(r).UTC().Format(time.RFC3339) },
		compare: func(a, b T) int { return get(a).Compare(get(b)) },
	}
}

// ID is a required foreign identity column, filtered by hex string.
func ID[T any](name string, get func(T) primitive.ObjectID) Field[T] {
	return Field[T]{
		Name:    name,
		str:     func(r T) string { return get(r).Hex() },
		compare: func(a, b T) int { return strings.Compare(get(a).Hex(), get(b).Hex()) },
	}
}

// OptionalID is a nullable foreign identity. An unset reference has the
// filter form "" and sorts first.
func OptionalID[T any](name string, get func(T) *primitive.ObjectID) Field[T] {
	hex := func(r T) string {
		if id := get(r); id != nil {
			return id.Hex()
		}
		return ""
	}
	return Field[T]{
		Name:    name,
		str:     hex,
		compare: func(a, b T) int { return strings.Compare(hex(a), hex(b)) },
	}
}
