package speakers

import (
	"testing"

	"github.com/voxlab/transcript-eval/transcript"
)

func tr(utts ...[2]string) transcript.Transcript {
	var t transcript.Transcript
	for _, u := range utts {
		t = append(t, transcript.Utterance{Speaker: u[0], Text: u[1]})
	}
	return t
}

func TestMatchRelabeledSpeakers(t *testing.T) {
	ref := tr(
		[2]string{"Alice", "hello how are you doing today"},
		[2]string{"Bob", "i am doing great thanks for asking"},
	)
	hyp := tr(
		[2]string{"spk_0", "hello how are you doing today"},
		[2]string{"spk_1", "i am doing great thanks for asking"},
	)

	m := Match(ref, hyp, 80)
	if m["spk_0"] != "Alice" || m["spk_1"] != "Bob" {
		t.Fatalf("mapping = %v, want spk_0->Alice spk_1->Bob", m)
	}
}

func TestMatchInjective(t *testing.T) {
	// Three hypothesis speakers all saying nearly the same thing as one
	// reference speaker: only one of them may win the column.
	ref := tr(
		[2]string{"A", "the weather is lovely today is it not"},
		[2]string{"B", "rockets launch on tuesday from the coast"},
	)
	hyp := tr(
		[2]string{"x", "the weather is lovely today is it not"},
		[2]string{"y", "the weather is lovely today"},
		[2]string{"z", "rockets launch on tuesday from the coast"},
	)

	m := Match(ref, hyp, 50)
	seen := map[string]string{}
	for h, r := range m {
		if prev, ok := seen[r]; ok {
			t.Fatalf("reference %q claimed by both %q and %q", r, prev, h)
		}
		seen[r] = h
	}
	if m["x"] != "A" || m["z"] != "B" {
		t.Errorf("mapping = %v, want x->A z->B", m)
	}
}

func TestMatchThreshold(t *testing.T) {
	ref := tr(
		[2]string{"A", "completely different content here"},
		[2]string{"B", "nothing in common at all with anyone"},
	)
	hyp := tr(
		[2]string{"x", "unrelated words spoken by machine"},
		[2]string{"y", "gibberish tokens from a bad decode"},
	)

	m := Match(ref, hyp, 90)
	if len(m) != 0 {
		t.Errorf("mapping = %v, want empty below threshold", m)
	}
}

func TestMatchSingleSpeakerIgnoresThreshold(t *testing.T) {
	ref := tr([2]string{"A", "hello world"})
	hyp := tr([2]string{"x", "totally different decode"})

	m := Match(ref, hyp, 99)
	if m["x"] != "A" {
		t.Errorf("mapping = %v, want x->A regardless of threshold", m)
	}
}

func TestMatchEmptySides(t *testing.T) {
	if m := Match(nil, tr([2]string{"x", "hi"}), 80); len(m) != 0 {
		t.Errorf("empty reference: mapping = %v", m)
	}
	if m := Match(tr([2]string{"A", "hi"}), nil, 80); len(m) != 0 {
		t.Errorf("empty hypothesis: mapping = %v", m)
	}
}

func TestMatchDeterministicTies(t *testing.T) {
	// Two identical hypothesis speakers competing for two identical
	// reference speakers: lexicographically smallest ids pair up first.
	ref := tr(
		[2]string{"A", "same words"},
		[2]string{"B", "same words"},
	)
	hyp := tr(
		[2]string{"x", "same words"},
		[2]string{"y", "same words"},
	)

	want := Mapping{"x": "A", "y": "B"}
	for i := 0; i < 20; i++ {
		m := Match(ref, hyp, 80)
		if len(m) != 2 || m["x"] != want["x"] || m["y"] != want["y"] {
			t.Fatalf("run %d: mapping = %v, want %v", i, m, want)
		}
	}
}

func TestIdentity(t *testing.T) {
	ref := tr([2]string{"A", "hi"}, [2]string{"B", "yo"})
	hyp := tr([2]string{"A", "hi"}, [2]string{"C", "yo"})

	m := Identity(ref, hyp)
	if len(m) != 1 || m["A"] != "A" {
		t.Errorf("mapping = %v, want only A->A", m)
	}
}
