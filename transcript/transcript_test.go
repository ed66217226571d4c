package transcript

import (
	"strings"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tr      Transcript
		wantErr string
	}{
		{"valid", Transcript{{Speaker: "A", Text: "hi"}}, ""},
		{"valid empty transcript", Transcript{}, ""},
		{"valid empty text", Transcript{{Speaker: "A", Text: ""}}, ""},
		{"valid timed", Transcript{{Speaker: "A", Text: "hi", Start: ptr(0), End: ptr(1)}}, ""},
		{"empty speaker", Transcript{{Speaker: "", Text: "hi"}}, "empty speaker"},
		{"negative start", Transcript{{Speaker: "A", Text: "hi", Start: ptr(-1), End: ptr(1)}}, "negative start_time"},
		{"negative end", Transcript{{Speaker: "A", Text: "hi", End: ptr(-2)}}, "negative end_time"},
		{"end before start", Transcript{{Speaker: "A", Text: "hi", Start: ptr(5), End: ptr(3)}}, "before start_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tr.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSpeakersSortedUnique(t *testing.T) {
	tr := Transcript{
		{Speaker: "B", Text: "x"},
		{Speaker: "A", Text: "y"},
		{Speaker: "B", Text: "z"},
	}
	got := tr.Speakers()
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Speakers() = %v, want [A B]", got)
	}
}

func TestTextBySpeaker(t *testing.T) {
	tr := Transcript{
		{Speaker: "A", Text: "one"},
		{Speaker: "B", Text: "skip"},
		{Speaker: "A", Text: "two"},
	}
	if got := tr.TextBySpeaker("A"); got != "one two" {
		t.Errorf("TextBySpeaker(A) = %q, want %q", got, "one two")
	}
	if got := tr.TextBySpeaker("missing"); got != "" {
		t.Errorf("TextBySpeaker(missing) = %q, want empty", got)
	}
}

func TestWordsAndAllText(t *testing.T) {
	tr := Transcript{
		{Speaker: "A", Text: "hello world"},
		{Speaker: "B", Text: "again"},
	}
	if got := tr.AllText(); got != "hello world again" {
		t.Errorf("AllText() = %q", got)
	}
	if got := tr.Words(); len(got) != 3 {
		t.Errorf("Words() = %v, want 3 words", got)
	}
}

func TestTimed(t *testing.T) {
	full := Transcript{{Speaker: "A", Text: "x", Start: ptr(0), End: ptr(1)}}
	partial := Transcript{
		{Speaker: "A", Text: "x", Start: ptr(0), End: ptr(1)},
		{Speaker: "B", Text: "y"},
	}
	if !full.Timed() {
		t.Error("fully timestamped transcript reported untimed")
	}
	if partial.Timed() {
		t.Error("partially timestamped transcript reported timed")
	}
}

func TestRelabel(t *testing.T) {
	tr := Transcript{
		{Speaker: "x", Text: "a"},
		{Speaker: "y", Text: "b"},
	}
	out := tr.Relabel(map[string]string{"x": "A"})
	if out[0].Speaker != "A" || out[1].Speaker != "y" {
		t.Errorf("Relabel = %v", out)
	}
	if tr[0].Speaker != "x" {
		t.Error("Relabel mutated its receiver")
	}
}
