// Package llm is the qualitative-evaluation collaborator. The scoring
// core never calls it; it only shares the transcript types. An Evaluator
// turns a prompt into free-form text, and the helpers here build
// transcript-comparison prompts for it.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voxlab/transcript-eval/transcript"
)

// Evaluator is the capability the qualitative layer needs from a language
// model.
type Evaluator interface {
	Evaluate(ctx context.Context, prompt string) (string, error)
}

// FormatTranscript renders a transcript for inclusion in a prompt, one
// "[MM:SS] Speaker: text" line per utterance (timestamp omitted when
// absent or disabled).
func FormatTranscript(t transcript.Transcript, label string, withTimes bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", label)
	for _, u := range t {
		if withTimes && u.Start != nil {
			sec := int(*u.Start)
			fmt.Fprintf(&b, "\n[%02d:%02d] %s: %s", sec/60, sec%60, u.Speaker, u.Text)
		} else {
			fmt.Fprintf(&b, "\n%s: %s", u.Speaker, u.Text)
		}
	}
	return b.String()
}

// ComparisonPrompt builds the prompt asking a model to judge a vendor
// transcript against the ground truth.
func ComparisonPrompt(ref, hyp transcript.Transcript, vendor string) string {
	var b strings.Builder
	b.WriteString("You are evaluating the quality of an automatic speech transcription.\n")
	b.WriteString("Compare the vendor transcript against the ground truth and assess ")
	b.WriteString("accuracy, speaker attribution, and readability. Be specific about errors.\n\n")
	b.WriteString(FormatTranscript(ref, "Ground Truth", true))
	b.WriteString("\n\n")
	b.WriteString(FormatTranscript(hyp, vendor, true))
	return b.String()
}

// Gateway calls an OpenAI-compatible chat completions endpoint.
type Gateway struct {
	url    string
	apiKey string
	model  string
	c      *http.Client
}

func NewGateway(url, apiKey, model string) *Gateway {
	return &Gateway{url: url, apiKey: apiKey, model: model, c: &http.Client{Timeout: 120 * time.Second}}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *Gateway) Evaluate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     g.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 4000,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm %s: %s", resp.Status, string(msg))
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("llm decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return out.Choices[0].Message.Content, nil
}
