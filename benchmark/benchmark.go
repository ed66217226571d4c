// Package benchmark composes the normalizer, speaker matcher and metric
// scorers into a single evaluation of one reference/hypothesis pair. It
// contains no scoring logic of its own.
package benchmark

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/voxlab/transcript-eval/metrics"
	"github.com/voxlab/transcript-eval/normalize"
	"github.com/voxlab/transcript-eval/speakers"
	"github.com/voxlab/transcript-eval/transcript"
)

// Options selects which processing steps and scorers run. The zero value
// runs nothing; use DefaultOptions for the usual full evaluation.
type Options struct {
	Normalize        bool
	MatchSpeakers    bool
	SpeakerThreshold float64 // similarity 0..100
	WER              bool
	CPWER            bool
	DER              bool
}

// DefaultOptions enables every step with the conventional 80.0 speaker
// matching threshold.
func DefaultOptions() Options {
	return Options{
		Normalize:        true,
		MatchSpeakers:    true,
		SpeakerThreshold: 80.0,
		WER:              true,
		CPWER:            true,
		DER:              true,
	}
}

// Result holds whichever metric groups the options requested. Nil groups
// were not requested (or, for DER/SpeakerError, the other timing variant
// ran) and are absent from Record().
type Result struct {
	WER          *metrics.WERReport
	CPWER        *metrics.CPWERReport
	DER          *metrics.DERReport
	SpeakerError *metrics.SpeakerErrorReport

	RefNumSpeakers      int
	HypNumSpeakers      int
	SpeakerCountCorrect int

	// Mapping is the hypothesis-to-reference speaker mapping the scorers
	// ran under. Informational; not part of Record().
	Mapping speakers.Mapping
}

// Record flattens the result into the exported key set. Keys for metric
// groups that did not run are absent, never null-filled.
func (r *Result) Record() map[string]any {
	rec := map[string]any{
		"ref_num_speakers":      r.RefNumSpeakers,
		"hyp_num_speakers":      r.HypNumSpeakers,
		"speaker_count_correct": r.SpeakerCountCorrect,
	}
	if w := r.WER; w != nil {
		rec["wer"] = w.WER
		rec["mer"] = w.MER
		rec["wil"] = w.WIL
		rec["wip"] = w.WIP
		rec["hits"] = w.Hits
		rec["substitutions"] = w.Substitutions
		rec["deletions"] = w.Deletions
		rec["insertions"] = w.Insertions
	}
	if c := r.CPWER; c != nil {
		rec["cp_wer"] = c.CPWER
		rec["total_errors"] = c.TotalErrors
		rec["total_reference_words"] = c.TotalReferenceWords
	}
	if d := r.DER; d != nil {
		rec["der"] = d.DER
		rec["false_alarm"] = d.FalseAlarm
		rec["missed_detection"] = d.MissedDetection
		rec["confusion"] = d.Confusion
		rec["total"] = d.Total
	}
	if s := r.SpeakerError; s != nil {
		rec["speaker_error_rate"] = s.SpeakerErrorRate
		rec["speaker_errors"] = s.SpeakerErrors
		rec["total_words"] = s.TotalWords
	}
	return rec
}

// Evaluator runs evaluations under a fixed set of options. Stateless
// beyond the options; safe for concurrent use.
type Evaluator struct {
	opts Options
}

func New(opts Options) *Evaluator { return &Evaluator{opts: opts} }

// Evaluate validates and scores one pair. Both sides are normalized (if
// enabled) before any scorer runs; the speaker mapping is shared by every
// speaker-sensitive scorer. DER silently degrades to the word-level
// speaker error fallback when either side lacks timing.
func (e *Evaluator) Evaluate(ref, hyp transcript.Transcript) (*Result, error) {
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	if err := hyp.Validate(); err != nil {
		return nil, fmt.Errorf("hypothesis: %w", err)
	}

	if e.opts.Normalize {
		ref = normalize.Transcript(ref)
		hyp = normalize.Transcript(hyp)
	}

	var mapping speakers.Mapping
	if e.opts.MatchSpeakers {
		mapping = speakers.Match(ref, hyp, e.opts.SpeakerThreshold)
	} else {
		mapping = speakers.Identity(ref, hyp)
	}

	res := &Result{
		RefNumSpeakers: len(ref.Speakers()),
		HypNumSpeakers: len(hyp.Speakers()),
		Mapping:        mapping,
	}
	if res.RefNumSpeakers == res.HypNumSpeakers {
		res.SpeakerCountCorrect = 1
	}

	if e.opts.WER {
		w := metrics.WER(ref, hyp)
		res.WER = &w
	}
	if e.opts.CPWER {
		c := metrics.CPWER(ref, hyp)
		res.CPWER = &c
	}
	if e.opts.DER {
		d, err := metrics.DER(ref, hyp, mapping)
		switch {
		case err == nil:
			res.DER = &d
		case errors.Is(err, metrics.ErrNoTimestamps):
			logrus.Debug("timestamps missing, using word-level speaker error fallback")
			s := metrics.SpeakerErrors(ref, hyp, mapping)
			res.SpeakerError = &s
		default:
			return nil, err
		}
	}
	return res, nil
}

// SpeakerMapping exposes the similarity mapping on its own, without
// running any scorer.
func (e *Evaluator) SpeakerMapping(ref, hyp transcript.Transcript) speakers.Mapping {
	if e.opts.Normalize {
		ref = normalize.Transcript(ref)
		hyp = normalize.Transcript(hyp)
	}
	return speakers.Match(ref, hyp, e.opts.SpeakerThreshold)
}
