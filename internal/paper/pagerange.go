package paper

import (
	"sort"
	"strconv"
	"strings"
)

// ParsePageRange expands a page-range expression like "1-3,7,10-12" into a
// sorted, deduplicated list of page numbers clamped to [1, maxPage].
// Non-numeric or out-of-range tokens are silently skipped; an empty result
// means nothing in the expression could be parsed. Parsing never fails.
func ParsePageRange(rangeExpr string, maxPage int) []int {
	seen := make(map[int]bool)

	for _, item := range strings.Split(rangeExpr, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if lo, hi, ok := splitRangeItem(item); ok {
			if lo < 1 {
				lo = 1
			}
			if hi > maxPage {
				hi = maxPage
			}
			for n := lo; n <= hi; n++ {
				seen[n] = true
			}
			continue
		}

		if n, err := strconv.Atoi(item); err == nil && n >= 1 && n <= maxPage {
			seen[n] = true
		}
	}

	pages := make([]int, 0, len(seen))
	for n := range seen {
		pages = append(pages, n)
	}
	sort.Ints(pages)
	return pages
}

// splitRangeItem parses an "A-B" item into its bounds.
func splitRangeItem(item string) (lo, hi int, ok bool) {
	dash := strings.IndexByte(item, '-')
	if dash <= 0 || dash == len(item)-1 {
		return 0, 0, false
	}

	lo, err := strconv.Atoi(strings.TrimSpace(item[:dash]))
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(strings.TrimSpace(item[dash+1:]))
	if err != nil {
		return 0, 0, false
	}
	if hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
