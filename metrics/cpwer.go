package metrics

import (
	"strings"

	"github.com/voxlab/transcript-eval/align"
	"github.com/voxlab/transcript-eval/transcript"
)

// Speaker counts up to this bound are scored by exhaustive permutation
// search; beyond it the Hungarian assignment takes over.
const exhaustiveLimit = 8

// CPWERReport holds the concatenated minimum-permutation word error rate.
type CPWERReport struct {
	CPWER               float64 `json:"cp_wer"`
	TotalErrors         int     `json:"total_errors"`
	TotalReferenceWords int     `json:"total_reference_words"`
}

// CPWER computes the minimum, over all injective correspondences between
// the hypothesis and reference speaker sets, of the summed per-speaker word
// edit errors. Unmatched reference speakers count as full deletions,
// unmatched hypothesis speakers as full insertions. The result does not
// depend on how either side labels its speakers.
func CPWER(ref, hyp transcript.Transcript) CPWERReport {
	refIDs := ref.Speakers()
	hypIDs := hyp.Speakers()

	refWords := make([][]string, len(refIDs))
	totalRef := 0
	for i, id := range refIDs {
		refWords[i] = words(ref, id)
		totalRef += len(refWords[i])
	}
	hypWords := make([][]string, len(hypIDs))
	for j, id := range hypIDs {
		hypWords[j] = words(hyp, id)
	}

	// Square cost matrix padded with dummy partners: pairing a real
	// speaker with a dummy costs their full word count (all deletions on
	// the reference side, all insertions on the hypothesis side), so a
	// minimum-cost perfect matching is exactly the metric.
	n := len(refIDs)
	if len(hypIDs) > n {
		n = len(hypIDs)
	}
	if n == 0 {
		return CPWERReport{}
	}
	cost := make([][]int, n)
	for i := range cost {
		cost[i] = make([]int, n)
		for j := range cost[i] {
			switch {
			case i < len(refIDs) && j < len(hypIDs):
				cost[i][j] = align.Distance(refWords[i], hypWords[j])
			case i < len(refIDs):
				cost[i][j] = len(refWords[i])
			case j < len(hypIDs):
				cost[i][j] = len(hypWords[j])
			}
		}
	}

	var total int
	if n <= exhaustiveLimit {
		total = permutationMin(cost)
	} else {
		total = assignmentMin(cost)
	}

	r := CPWERReport{TotalErrors: total, TotalReferenceWords: totalRef}
	if totalRef > 0 {
		r.CPWER = float64(total) / float64(totalRef)
	}
	return r
}

func words(t transcript.Transcript, speaker string) []string {
	return strings.Fields(t.TextBySpeaker(speaker))
}

// permutationMin enumerates all row-to-column assignments. Guaranteed
// optimal; factorial, so only used for small matrices.
func permutationMin(cost [][]int) int {
	used := make([]bool, len(cost))
	best := -1
	var rec func(row, acc int)
	rec = func(row, acc int) {
		if best >= 0 && acc >= best {
			return
		}
		if row == len(cost) {
			best = acc
			return
		}
		for col := range cost {
			if used[col] {
				continue
			}
			used[col] = true
			rec(row+1, acc+cost[row][col])
			used[col] = false
		}
	}
	rec(0, 0)
	return best
}
