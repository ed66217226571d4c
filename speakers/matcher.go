// Package speakers maps hypothesis speaker labels onto reference speaker
// labels by textual similarity. ASR vendors label speakers arbitrarily
// (spk_0, SPEAKER A, ...), so the mapping is recovered from what each
// speaker actually said.
package speakers

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/voxlab/transcript-eval/align"
	"github.com/voxlab/transcript-eval/transcript"
)

// Mapping is an injective partial map from hypothesis speaker id to
// reference speaker id. Hypothesis speakers below the similarity threshold
// are absent and score as fully wrong in speaker-sensitive metrics.
type Mapping map[string]string

// Identity maps every hypothesis speaker whose label also occurs in the
// reference to itself. Used when similarity matching is disabled.
func Identity(ref, hyp transcript.Transcript) Mapping {
	inRef := map[string]bool{}
	for _, s := range ref.Speakers() {
		inRef[s] = true
	}
	m := Mapping{}
	for _, s := range hyp.Speakers() {
		if inRef[s] {
			m[s] = s
		}
	}
	return m
}

type cell struct {
	hyp, ref string
	score    float64
}

// Match builds the similarity-based mapping. Each speaker's signature is
// the concatenated normalized text of all their utterances; signatures are
// scored pairwise with align.TokenSortRatio and pairs are picked greedily,
// highest score first, skipping already-used rows and columns and
// rejecting scores below threshold (0..100). Ties break on the
// lexicographically smallest hypothesis id, then reference id, so the
// mapping is reproducible. A single-speaker side maps to its best match
// regardless of threshold.
func Match(ref, hyp transcript.Transcript, threshold float64) Mapping {
	refIDs := ref.Speakers()
	hypIDs := hyp.Speakers()
	m := Mapping{}
	if len(refIDs) == 0 || len(hypIDs) == 0 {
		return m
	}

	refText := make(map[string]string, len(refIDs))
	for _, r := range refIDs {
		refText[r] = ref.TextBySpeaker(r)
	}

	cells := make([]cell, 0, len(refIDs)*len(hypIDs))
	for _, h := range hypIDs {
		hypText := hyp.TextBySpeaker(h)
		for _, r := range refIDs {
			cells = append(cells, cell{
				hyp:   h,
				ref:   r,
				score: align.TokenSortRatio(hypText, refText[r]),
			})
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].score != cells[j].score {
			return cells[i].score > cells[j].score
		}
		if cells[i].hyp != cells[j].hyp {
			return cells[i].hyp < cells[j].hyp
		}
		return cells[i].ref < cells[j].ref
	})

	// With a single speaker on either side only one pairing is possible
	// anyway, so the threshold does not apply.
	if len(refIDs) == 1 || len(hypIDs) == 1 {
		best := cells[0]
		m[best.hyp] = best.ref
		logrus.WithFields(logrus.Fields{
			"hyp": best.hyp, "ref": best.ref, "score": best.score,
		}).Debug("speaker matched")
		return m
	}

	usedRef := map[string]bool{}
	for _, c := range cells {
		if c.score < threshold {
			break
		}
		if _, ok := m[c.hyp]; ok || usedRef[c.ref] {
			continue
		}
		m[c.hyp] = c.ref
		usedRef[c.ref] = true
		logrus.WithFields(logrus.Fields{
			"hyp": c.hyp, "ref": c.ref, "score": c.score,
		}).Debug("speaker matched")
	}
	return m
}
