package benchmark

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/voxlab/transcript-eval/transcript"
)

// Pair is one named reference/hypothesis evaluation unit in a batch.
type Pair struct {
	Name       string
	Reference  transcript.Transcript
	Hypothesis transcript.Transcript
}

// PairResult is the outcome of one batch entry. Err is set when that pair
// failed; the rest of the batch still runs.
type PairResult struct {
	Name   string
	Result *Result
	Err    error
}

// EvaluateAll scores every pair on a bounded worker pool. Pairs are
// independent pure computations, so they run concurrently without
// coordination; results come back in input order. A failing pair is
// reported in its slot and never aborts the batch.
func (e *Evaluator) EvaluateAll(ctx context.Context, pairs []Pair, workers int) []PairResult {
	if workers < 1 {
		workers = 1
	}
	out := make([]PairResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i] = PairResult{Name: p.Name, Err: err}
				return nil
			}
			res, err := e.Evaluate(p.Reference, p.Hypothesis)
			out[i] = PairResult{Name: p.Name, Result: res, Err: err}
			if err != nil {
				logrus.WithField("file", p.Name).WithError(err).Error("evaluation failed")
			} else {
				logrus.WithField("file", p.Name).Info("evaluated")
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Stats is the per-metric aggregate over a batch.
type Stats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summarize aggregates mean/min/max for every numeric metric across the
// successful results of a batch.
func Summarize(results []PairResult) map[string]Stats {
	sums := map[string]float64{}
	counts := map[string]int{}
	mins := map[string]float64{}
	maxs := map[string]float64{}

	for _, r := range results {
		if r.Err != nil || r.Result == nil {
			continue
		}
		for k, v := range r.Result.Record() {
			f, ok := asFloat(v)
			if !ok {
				continue
			}
			if counts[k] == 0 {
				mins[k] = math.Inf(1)
				maxs[k] = math.Inf(-1)
			}
			sums[k] += f
			counts[k]++
			if f < mins[k] {
				mins[k] = f
			}
			if f > maxs[k] {
				maxs[k] = f
			}
		}
	}

	out := make(map[string]Stats, len(sums))
	for k, n := range counts {
		out[k] = Stats{Mean: sums[k] / float64(n), Min: mins[k], Max: maxs[k]}
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}
