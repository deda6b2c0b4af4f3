package search

import "sort"

// Match pairs a field extractor with the filter applied to it.
type Match[T any] struct {
	Field  func(T) string
	Filter Filter
}

// Opts controls how multiple matches combine and whether results are ranked.
type Opts struct {
	// Any accepts an item when any match passes; by default all must pass.
	Any bool
	// Sort orders results by descending combined score. Earlier matches
	// weigh more than later ones.
	Sort bool
}

type scored[T any] struct {
	item  T
	score float64
}

// Search returns the items whose fields pass the provided matches. The
// result is always a non-nil slice.
func Search[T any](items []T, opts Opts, matches ...Match[T]) []T {
	out := make([]T, 0)
	if len(matches) == 0 {
		return append(out, items...)
	}

	var ranked []scored[T]
	for _, item := range items {
		total, pass := scoreItem(item, opts.Any, matches)
		if !pass {
			continue
		}
		if opts.Sort {
			ranked = append(ranked, scored[T]{item: item, score: total})
		} else {
			out = append(out, item)
		}
	}

	if !opts.Sort {
		return out
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for _, r := range ranked {
		out = append(out, r.item)
	}
	return out
}

func scoreItem[T any](item T, any bool, matches []Match[T]) (float64, bool) {
	var total float64
	passed := false
	// Earlier matches dominate the combined score.
	weight := float64(len(matches))
	for _, m := range matches {
		if m.Field == nil || m.Filter == nil {
			weight--
			continue
		}
		score := m.Filter.Score(m.Field(item))
		if score > 0 {
			passed = true
			total += score * weight
		} else if !any {
			return 0, false
		}
		weight--
	}
	return total, passed
}
