// Package normalize canonicalizes transcript text so that word error
// metrics compare lexical content instead of formatting. Text runs through
// lowercasing, contraction expansion, punctuation stripping, numeral
// standardization and whitespace collapsing, in that order. The whole
// pipeline is idempotent: Text(Text(s)) == Text(s).
package normalize

import (
	"regexp"
	"strings"

	"github.com/voxlab/transcript-eval/transcript"
)

// Irregular contractions that suffix rules cannot reach.
var irregular = map[string]string{
	"won't":   "will not",
	"can't":   "cannot",
	"shan't":  "shall not",
	"ain't":   "is not",
	"let's":   "let us",
	"y'all":   "you all",
	"o'clock": "oclock",
	"gonna":   "going to",
	"wanna":   "want to",
	"gotta":   "got to",
}

// Words whose 's reads as "is". Possessive 's on anything else just loses
// its apostrophe.
var isWords = map[string]bool{
	"it": true, "that": true, "this": true, "what": true, "who": true,
	"there": true, "here": true, "where": true, "how": true,
	"he": true, "she": true, "one": true,
}

var numerals = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"ten": "10", "eleven": "11", "twelve": "12", "thirteen": "13",
	"fourteen": "14", "fifteen": "15", "sixteen": "16", "seventeen": "17",
	"eighteen": "18", "nineteen": "19", "twenty": "20", "thirty": "30",
	"forty": "40", "fifty": "50", "sixty": "60", "seventy": "70",
	"eighty": "80", "ninety": "90", "hundred": "100", "thousand": "1000",
}

var suffixes = []struct{ from, to string }{
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'m", " am"},
	{"'d", " would"},
}

var (
	punct  = regexp.MustCompile(`[.,!?;:"“”()\[\]{}«»…/\\@#$%^&*+=<>|~` + "`" + `_-]`)
	spaces = regexp.MustCompile(`\s+`)
)

// Text returns the canonical form of s.
func Text(s string) string {
	s = strings.ToLower(s)
	// Unify apostrophe variants before contraction handling.
	s = strings.NewReplacer("’", "'", "‘", "'").Replace(s)
	s = punct.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	var out []string
	for _, w := range words {
		for _, tok := range expandWord(w) {
			// Expansion never needs apostrophes in its output, so any
			// survivor carries no lexical content ('cause, o'brien).
			tok = strings.ReplaceAll(tok, "'", "")
			if tok == "" {
				continue
			}
			if d, ok := numerals[tok]; ok {
				tok = d
			}
			out = append(out, tok)
		}
	}
	return strings.TrimSpace(spaces.ReplaceAllString(strings.Join(out, " "), " "))
}

func expandWord(w string) []string {
	if r, ok := irregular[w]; ok {
		return strings.Fields(r)
	}
	for _, sfx := range suffixes {
		// Recurse into the base so stacked forms (she'd've) fully expand.
		if base, ok := strings.CutSuffix(w, sfx.from); ok && base != "" {
			return append(expandWord(base), strings.Fields(strings.TrimSpace(sfx.to))...)
		}
	}
	if base, ok := strings.CutSuffix(w, "'s"); ok && base != "" {
		if isWords[base] {
			return []string{base, "is"}
		}
		return []string{base + "s"}
	}
	return []string{w}
}

// Transcript returns a copy of t with every utterance's text normalized.
// Speakers and timestamps are untouched.
func Transcript(t transcript.Transcript) transcript.Transcript {
	out := make(transcript.Transcript, len(t))
	for i, u := range t {
		u.Text = Text(u.Text)
		out[i] = u
	}
	return out
}
