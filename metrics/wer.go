// Package metrics computes the numeric accuracy measures for a
// reference/hypothesis transcript pair: word error rates, the
// permutation-invariant CP-WER, and time- or word-based diarization error.
// Everything here is pure computation over already-normalized transcripts.
package metrics

import (
	"github.com/voxlab/transcript-eval/align"
	"github.com/voxlab/transcript-eval/transcript"
)

// WERReport holds word-level error metrics over the whole transcript pair,
// both sides treated as a single concatenated word stream.
type WERReport struct {
	WER           float64 `json:"wer"`
	MER           float64 `json:"mer"`
	WIL           float64 `json:"wil"`
	WIP           float64 `json:"wip"`
	Hits          int     `json:"hits"`
	Substitutions int     `json:"substitutions"`
	Deletions     int     `json:"deletions"`
	Insertions    int     `json:"insertions"`
}

// WER scores the hypothesis word stream against the reference word stream.
func WER(ref, hyp transcript.Transcript) WERReport {
	o := align.Score(ref.Words(), hyp.Words())
	return WERReport{
		WER:           o.WER,
		MER:           o.MER,
		WIL:           o.WIL,
		WIP:           o.WIP,
		Hits:          o.Hits,
		Substitutions: o.Substitutions,
		Deletions:     o.Deletions,
		Insertions:    o.Insertions,
	}
}
