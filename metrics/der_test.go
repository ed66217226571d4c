package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/voxlab/transcript-eval/speakers"
	"github.com/voxlab/transcript-eval/transcript"
)

func timed(speaker, text string, start, end float64) transcript.Utterance {
	return transcript.Utterance{Speaker: speaker, Text: text, Start: &start, End: &end}
}

func TestDERPerfect(t *testing.T) {
	ref := transcript.Transcript{timed("A", "hi", 0, 1)}
	hyp := transcript.Transcript{timed("X", "hi", 0, 1)}

	r, err := DER(ref, hyp, speakers.Mapping{"X": "A"})
	if err != nil {
		t.Fatal(err)
	}
	if r.DER != 0 || r.Total != 0 {
		t.Errorf("der = %v total = %v, want 0", r.DER, r.Total)
	}
}

func TestDERComponents(t *testing.T) {
	// Reference: A speaks 0-10. Hypothesis: mapped speaker covers 0-6,
	// a different mapped speaker covers 6-8, nothing covers 8-10, and a
	// false alarm runs 10-12 (outside reference speech).
	ref := transcript.Transcript{timed("A", "ref speech", 0, 10)}
	hyp := transcript.Transcript{
		timed("x", "good", 0, 6),
		timed("y", "confused", 6, 8),
		timed("x", "extra", 10, 12),
	}
	mapping := speakers.Mapping{"x": "A", "y": "B"}

	r, err := DER(ref, hyp, mapping)
	if err != nil {
		t.Fatal(err)
	}

	approx := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }
	if !approx(r.Confusion, 0.2) {
		t.Errorf("confusion = %v, want 0.2", r.Confusion)
	}
	if !approx(r.MissedDetection, 0.2) {
		t.Errorf("missed_detection = %v, want 0.2", r.MissedDetection)
	}
	if !approx(r.FalseAlarm, 0.2) {
		t.Errorf("false_alarm = %v, want 0.2", r.FalseAlarm)
	}
	if !approx(r.Total, r.FalseAlarm+r.MissedDetection+r.Confusion) {
		t.Errorf("total = %v, want sum of components", r.Total)
	}
	if r.DER != r.Total {
		t.Errorf("der = %v, want %v", r.DER, r.Total)
	}
}

func TestDERUnmappedHypSpeakerIsConfusion(t *testing.T) {
	ref := transcript.Transcript{timed("A", "speech", 0, 10)}
	hyp := transcript.Transcript{timed("x", "speech", 0, 10)}

	// No mapping entry for x: its time can never count as correct.
	r, err := DER(ref, hyp, speakers.Mapping{})
	if err != nil {
		t.Fatal(err)
	}
	if r.Confusion != 1.0 {
		t.Errorf("confusion = %v, want 1.0 for unmapped speaker", r.Confusion)
	}
}

func TestDERNoTimestamps(t *testing.T) {
	ref := transcript.Transcript{{Speaker: "A", Text: "hi"}}
	hyp := transcript.Transcript{timed("x", "hi", 0, 1)}

	_, err := DER(ref, hyp, speakers.Mapping{"x": "A"})
	if !errors.Is(err, ErrNoTimestamps) {
		t.Fatalf("err = %v, want ErrNoTimestamps", err)
	}
}

func TestDERZeroDuration(t *testing.T) {
	r, err := DER(transcript.Transcript{}, transcript.Transcript{}, speakers.Mapping{})
	if err != nil {
		t.Fatal(err)
	}
	if r != (DERReport{}) {
		t.Errorf("empty pair: %+v, want all zeros", r)
	}
}

func TestSpeakerErrors(t *testing.T) {
	ref := transcript.Transcript{
		{Speaker: "A", Text: "hello world"},
		{Speaker: "B", Text: "goodbye now"},
	}
	hyp := transcript.Transcript{
		{Speaker: "x", Text: "hello world"},
		{Speaker: "y", Text: "goodbye now"},
	}

	// x correctly mapped, y mapped to the wrong reference speaker.
	r := SpeakerErrors(ref, hyp, speakers.Mapping{"x": "A", "y": "A"})
	if r.TotalWords != 4 {
		t.Fatalf("total_words = %d, want 4", r.TotalWords)
	}
	if r.SpeakerErrors != 2 || r.SpeakerErrorRate != 0.5 {
		t.Errorf("errors = %d rate = %v, want 2 and 0.5", r.SpeakerErrors, r.SpeakerErrorRate)
	}

	// Fully correct mapping.
	r = SpeakerErrors(ref, hyp, speakers.Mapping{"x": "A", "y": "B"})
	if r.SpeakerErrors != 0 || r.SpeakerErrorRate != 0 {
		t.Errorf("errors = %d rate = %v, want 0", r.SpeakerErrors, r.SpeakerErrorRate)
	}
}

func TestSpeakerErrorsMismatchedWordsDontCount(t *testing.T) {
	ref := transcript.Transcript{{Speaker: "A", Text: "alpha beta"}}
	hyp := transcript.Transcript{{Speaker: "x", Text: "gamma delta"}}

	r := SpeakerErrors(ref, hyp, speakers.Mapping{})
	if r.SpeakerErrors != 0 {
		t.Errorf("errors = %d, want 0 when words disagree", r.SpeakerErrors)
	}
}

func TestSpeakerErrorsEmpty(t *testing.T) {
	r := SpeakerErrors(nil, nil, speakers.Mapping{})
	if r.SpeakerErrorRate != 0 || r.TotalWords != 0 {
		t.Errorf("empty pair: %+v", r)
	}
}
