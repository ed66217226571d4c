// Package align holds the two pure sequence-comparison primitives the
// scoring packages build on: a word-level minimum-edit-distance aligner
// with backtracking and a token-sort string similarity ratio.
package align

// Counts partitions the optimal alignment path between a reference and a
// hypothesis word stream.
type Counts struct {
	Hits          int
	Substitutions int
	Deletions     int
	Insertions    int
}

// Errors is the number of erroneous word slots on the alignment path.
func (c Counts) Errors() int { return c.Substitutions + c.Deletions + c.Insertions }

// Outcome is the alignment counts plus the derived error rates.
//
//	wer = (S+D+I)/max(1, len(ref))
//	mer = (S+D+I)/(H+S+D+I)
//	wip = H/(H+S+D) * H/(H+S+I), wil = 1-wip
//
// Degenerate denominators score zero across the board, so callers never see
// NaN.
type Outcome struct {
	Counts
	WER float64
	MER float64
	WIL float64
	WIP float64
}

// Score aligns two word sequences by dynamic programming with unit costs
// and backtracks the optimal path into hit/substitution/deletion/insertion
// counts. The backtrace resolves cost ties in a fixed order, diagonal
// first, then deletion, then insertion, so equal inputs always produce the
// same outcome.
func Score(ref, hyp []string) Outcome {
	n, m := len(ref), len(hyp)
	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
		d[i][0] = i
	}
	for j := 0; j <= m; j++ {
		d[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}
			d[i][j] = min3(d[i-1][j-1]+cost, d[i-1][j]+1, d[i][j-1]+1)
		}
	}

	var c Counts
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1] && d[i][j] == d[i-1][j-1]:
			c.Hits++
			i--
			j--
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+1:
			c.Substitutions++
			i--
			j--
		case i > 0 && d[i][j] == d[i-1][j]+1:
			c.Deletions++
			i--
		default:
			c.Insertions++
			j--
		}
	}
	return rates(c, n)
}

func rates(c Counts, refLen int) Outcome {
	o := Outcome{Counts: c}
	errs := float64(c.Errors())

	den := refLen
	if den == 0 {
		den = 1
	}
	o.WER = errs / float64(den)

	if total := c.Hits + c.Errors(); total > 0 {
		o.MER = errs / float64(total)
	}

	hsd := c.Hits + c.Substitutions + c.Deletions
	hsi := c.Hits + c.Substitutions + c.Insertions
	if hsd > 0 && hsi > 0 {
		o.WIP = float64(c.Hits) / float64(hsd) * float64(c.Hits) / float64(hsi)
		o.WIL = 1 - o.WIP
	}
	return o
}

// Distance is the plain word-level Levenshtein distance, computed with two
// rolling rows. Used where only the distance matters, not the path.
func Distance(a, b []string) int {
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
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
