package normalize

import (
	"testing"

	"github.com/voxlab/transcript-eval/transcript"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Hello World", "hello world"},
		{"punctuation stripped", "Well, hello there!", "well hello there"},
		{"whitespace collapsed", "hello \t  world\n", "hello world"},
		{"contraction nt", "I don't know", "i do not know"},
		{"contraction wont", "He won't come", "he will not come"},
		{"contraction cant", "We can't stop", "we cannot stop"},
		{"contraction lets", "Let's go", "let us go"},
		{"pronoun s", "It's fine, that's all", "it is fine that is all"},
		{"possessive s", "John's car", "johns car"},
		{"numerals", "I have three dogs and twenty cats", "i have 3 dogs and 20 cats"},
		{"curly apostrophe", "don’t stop", "do not stop"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.in)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	samples := []string{
		"Hello, World!",
		"I don't think it's John's fault.",
		"We won't have twenty-one o'clock meetings, y'all.",
		"She'd've... wait, she'll call at three.",
		"   spaced    out\ttext   ",
	}
	for _, s := range samples {
		once := Text(s)
		twice := Text(once)
		if once != twice {
			t.Errorf("not idempotent: Text(%q) = %q, Text again = %q", s, once, twice)
		}
	}
}

func TestTranscriptKeepsSpeakersAndTimes(t *testing.T) {
	start, end := 1.0, 2.5
	in := transcript.Transcript{{Speaker: "A", Text: "Don't stop", Start: &start, End: &end}}
	out := Transcript(in)
	if out[0].Text != "do not stop" {
		t.Errorf("text = %q, want %q", out[0].Text, "do not stop")
	}
	if out[0].Speaker != "A" || out[0].Start != &start || out[0].End != &end {
		t.Error("speaker or timestamps changed during normalization")
	}
	if in[0].Text != "Don't stop" {
		t.Error("input transcript was mutated")
	}
}
