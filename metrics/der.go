package metrics

import (
	"errors"
	"sort"
	"strings"

	"github.com/voxlab/transcript-eval/speakers"
	"github.com/voxlab/transcript-eval/transcript"
)

// ErrNoTimestamps is returned by DER when either side has utterances
// without timing. Callers fall back to SpeakerErrors.
var ErrNoTimestamps = errors.New("transcript has utterances without timestamps")

// DERReport holds the diarization error rate and its components, each a
// fraction of the total scored reference duration.
type DERReport struct {
	DER             float64 `json:"der"`
	FalseAlarm      float64 `json:"false_alarm"`
	MissedDetection float64 `json:"missed_detection"`
	Confusion       float64 `json:"confusion"`
	Total           float64 `json:"total"`
}

// SpeakerErrorReport is the untimed fallback: word-level speaker
// attribution error under positional alignment. Coarser than DER; the
// field names differ so callers always know which variant ran.
type SpeakerErrorReport struct {
	SpeakerErrorRate float64 `json:"speaker_error_rate"`
	SpeakerErrors    int     `json:"speaker_errors"`
	TotalWords       int     `json:"total_words"`
}

// DER computes the time-based diarization error. The timeline is cut at
// every interval boundary of either side; within each elementary segment
// the active reference speakers are compared against the active hypothesis
// speakers translated through the mapping. Reference speech with no
// hypothesis speaker is missed detection, hypothesis speech with no
// reference speaker is false alarm, and overlapping-but-mislabeled speech
// is confusion. Durations are normalized by the union of the reference
// intervals; a reference with zero scored duration yields all zeros.
func DER(ref, hyp transcript.Transcript, mapping speakers.Mapping) (DERReport, error) {
	if !ref.Timed() || !hyp.Timed() {
		return DERReport{}, ErrNoTimestamps
	}

	bounds := boundaries(ref, hyp)
	var r DERReport
	var refDur float64
	for i := 0; i+1 < len(bounds); i++ {
		t0, t1 := bounds[i], bounds[i+1]
		dur := t1 - t0
		if dur <= 0 {
			continue
		}
		mid := t0 + dur/2
		refActive := activeAt(ref, mid, nil)
		hypActive := activeAt(hyp, mid, mapping)

		nr, nh := len(refActive), len(hypActive)
		if nr > 0 {
			refDur += dur
		}
		matched := 0
		for s := range refActive {
			if hypActive[s] {
				matched++
			}
		}
		if nr > nh {
			r.MissedDetection += float64(nr-nh) * dur
		}
		if nh > nr {
			r.FalseAlarm += float64(nh-nr) * dur
		}
		if m := min2(nr, nh); m > matched {
			r.Confusion += float64(m-matched) * dur
		}
	}

	if refDur == 0 {
		return DERReport{}, nil
	}
	r.FalseAlarm /= refDur
	r.MissedDetection /= refDur
	r.Confusion /= refDur
	r.Total = r.FalseAlarm + r.MissedDetection + r.Confusion
	r.DER = r.Total
	return r, nil
}

// boundaries collects every interval endpoint of both sides, sorted and
// deduplicated.
func boundaries(ref, hyp transcript.Transcript) []float64 {
	var out []float64
	for _, t := range []transcript.Transcript{ref, hyp} {
		for _, u := range t {
			out = append(out, *u.Start, *u.End)
		}
	}
	sort.Float64s(out)
	dedup := out[:0]
	for i, v := range out {
		if i == 0 || v != out[i-1] {
			dedup = append(dedup, v)
		}
	}
	return dedup
}

// activeAt returns the set of speakers talking at instant t. When a
// mapping is given, speaker ids are translated into the reference label
// space; unmapped speakers get a private label so they can never count as
// correctly attributed.
func activeAt(tr transcript.Transcript, t float64, mapping speakers.Mapping) map[string]bool {
	active := map[string]bool{}
	for _, u := range tr {
		if *u.Start > t || *u.End < t {
			continue
		}
		id := u.Speaker
		if mapping != nil {
			if ref, ok := mapping[id]; ok {
				id = ref
			} else {
				id = "\x00unmapped:" + id
			}
		}
		active[id] = true
	}
	return active
}

// SpeakerErrors is the untimed fallback. Reference and hypothesis word
// streams are paired positionally; a position counts as a speaker error
// when the words agree but the mapped hypothesis speaker does not. The
// rate is errors over total reference words.
func SpeakerErrors(ref, hyp transcript.Transcript, mapping speakers.Mapping) SpeakerErrorReport {
	type attributed struct {
		word    string
		speaker string
	}
	var refWords, hypWords []attributed
	for _, u := range ref {
		for _, w := range strings.Fields(u.Text) {
			refWords = append(refWords, attributed{w, u.Speaker})
		}
	}
	for _, u := range hyp {
		spk := u.Speaker
		if mapped, ok := mapping[spk]; ok {
			spk = mapped
		} else {
			spk = "\x00unmapped:" + spk
		}
		for _, w := range strings.Fields(u.Text) {
			hypWords = append(hypWords, attributed{w, spk})
		}
	}

	n := min2(len(refWords), len(hypWords))
	errs := 0
	for i := 0; i < n; i++ {
		if strings.EqualFold(refWords[i].word, hypWords[i].word) && refWords[i].speaker != hypWords[i].speaker {
			errs++
		}
	}

	r := SpeakerErrorReport{SpeakerErrors: errs, TotalWords: len(refWords)}
	if len(refWords) > 0 {
		r.SpeakerErrorRate = float64(errs) / float64(len(refWords))
	}
	return r
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}
