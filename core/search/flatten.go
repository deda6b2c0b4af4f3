package search

import "reflect"

// Flatten recursively unpacks nested slices and arrays into a flat []any,
// depth-first and order-preserving. Non-slice input yields a single-element
// result; nil yields an empty slice.
func Flatten(v any) []any {
	out := make([]any, 0)
	return appendFlat(out, v)
}

func appendFlat(out []any, v any) []any {
	if v == nil {
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			out = appendFlat(out, rv.Index(i).Interface())
		}
		return out
	default:
		return append(out, v)
	}
}

// Chunk splits items into pages of up to n elements. The last page may be
// shorter. n <= 0 yields a single page with all items.
func Chunk[T any](items []T, n int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if n <= 0 {
		return [][]T{items}
	}
	pages := make([][]T, 0, (len(items)+n-1)/n)
	for i := 0; i < len(items); i += n {
		end := i + n
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[i:end])
	}
	return pages
}
