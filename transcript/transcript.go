package transcript

import (
	"fmt"
	"sort"
	"strings"
)

// Utterance is a single attributed span of speech. Start and End are in
// seconds and nil when the source carries no timing information.
type Utterance struct {
	Speaker string   `json:"speaker"`
	Text    string   `json:"text"`
	Start   *float64 `json:"start_time,omitempty"`
	End     *float64 `json:"end_time,omitempty"`
}

// Timed reports whether the utterance carries both timestamps.
func (u Utterance) Timed() bool { return u.Start != nil && u.End != nil }

func (u Utterance) validate(i int) error {
	if u.Speaker == "" {
		return fmt.Errorf("utterance %d: empty speaker", i)
	}
	if u.Start != nil && *u.Start < 0 {
		return fmt.Errorf("utterance %d: negative start_time %v", i, *u.Start)
	}
	if u.End != nil && *u.End < 0 {
		return fmt.Errorf("utterance %d: negative end_time %v", i, *u.End)
	}
	if u.Timed() && *u.End < *u.Start {
		return fmt.Errorf("utterance %d: end_time %v before start_time %v", i, *u.End, *u.Start)
	}
	return nil
}

// Transcript is an ordered utterance sequence. Order is significant: word
// level scoring treats each side as one concatenated word stream. An empty
// transcript is valid and scores trivially.
type Transcript []Utterance

// Validate rejects malformed utterances before any scoring runs.
func (t Transcript) Validate() error {
	for i, u := range t {
		if err := u.validate(i); err != nil {
			return err
		}
	}
	return nil
}

// Speakers returns the distinct speaker ids in lexicographic order.
func (t Transcript) Speakers() []string {
	seen := map[string]bool{}
	var out []string
	for _, u := range t {
		if !seen[u.Speaker] {
			seen[u.Speaker] = true
			out = append(out, u.Speaker)
		}
	}
	sort.Strings(out)
	return out
}

// TextBySpeaker concatenates, in transcript order, the text of every
// utterance attributed to the given speaker.
func (t Transcript) TextBySpeaker(speaker string) string {
	var parts []string
	for _, u := range t {
		if u.Speaker == speaker {
			parts = append(parts, u.Text)
		}
	}
	return strings.Join(parts, " ")
}

// AllText concatenates every utterance's text in order.
func (t Transcript) AllText() string {
	parts := make([]string, len(t))
	for i, u := range t {
		parts[i] = u.Text
	}
	return strings.Join(parts, " ")
}

// Words returns the whole transcript as one word stream.
func (t Transcript) Words() []string {
	return strings.Fields(t.AllText())
}

// Timed reports whether every utterance on this side carries timestamps.
// Interval-based diarization scoring needs this on both sides.
func (t Transcript) Timed() bool {
	for _, u := range t {
		if !u.Timed() {
			return false
		}
	}
	return true
}

// Relabel returns a copy with speaker ids rewritten through m. Ids absent
// from m are kept as-is.
func (t Transcript) Relabel(m map[string]string) Transcript {
	out := make(Transcript, len(t))
	for i, u := range t {
		if ref, ok := m[u.Speaker]; ok {
			u.Speaker = ref
		}
		out[i] = u
	}
	return out
}
