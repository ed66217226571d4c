package align

import (
	"sort"
	"strings"
)

// TokenSortRatio scores how similar two strings are on a 0..100 scale,
// ignoring word order: both sides are tokenized, sorted and rejoined, and
// the rejoined strings are compared by normalized indel distance over
// runes. 100 means the sorted token streams are identical. The score is
// symmetric, and two empty strings score 100.
func TokenSortRatio(a, b string) float64 {
	sa := sortedJoin(a)
	sb := sortedJoin(b)
	ra, rb := []rune(sa), []rune(sb)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	return 100 * float64(total-indelDistance(ra, rb)) / float64(total)
}

func sortedJoin(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// indelDistance is the edit distance where substitution is not allowed
// (equivalently, costs 2). Two rolling rows, same shape as Distance.
func indelDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else if prev[j] < curr[j-1] {
				curr[j] = prev[j] + 1
			} else {
				curr[j] = curr[j-1] + 1
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
