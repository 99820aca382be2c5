// Package aggregate fans a claim out to the configured fact-checking
// sources in parallel and reconciles their answers by weighted voting.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ppiankov/verity/internal/model"
	"github.com/ppiankov/verity/internal/sources"
)

// Aggregator queries every configured source and merges the responses
// into a single verdict.
type Aggregator struct {
	sources []sources.Source
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an Aggregator over the given sources. Unconfigured
// sources are kept in the list but never queried.
func New(srcs []sources.Source, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Aggregator{
		sources: srcs,
		timeout: timeout,
		logger:  slog.Default().With("component", "aggregate"),
	}
}

// ConfiguredCount returns how many sources have credentials and can be
// queried.
func (a *Aggregator) ConfiguredCount() int {
	n := 0
	for _, s := range a.sources {
		if s.Configured() {
			n++
		}
	}
	return n
}

// SourceNames returns the names of all configured sources.
func (a *Aggregator) SourceNames() []string {
	var names []string
	for _, s := range a.sources {
		if s.Configured() {
			names = append(names, s.Name())
		}
	}
	return names
}

// Verify queries all configured sources concurrently and aggregates
// whatever responses arrive. A source that errors, times out, or has no
// fact-checks simply does not vote.
func (a *Aggregator) Verify(ctx context.Context, claim string) *model.VerificationResult {
	var (
		mu        sync.Mutex
		responses []model.SourceResponse
		wg        sync.WaitGroup
	)

	for _, src := range a.sources {
		if !src.Configured() {
			continue
		}
		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()

			queryCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			resp, err := src.Query(queryCtx, claim)
			if err != nil {
				a.logger.Warn("source query failed", "source", src.Name(), "error", err)
				return
			}
			if resp == nil {
				a.logger.Debug("source had no fact-checks", "source", src.Name())
				return
			}
			mu.Lock()
			responses = append(responses, *resp)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	return Aggregate(responses)
}

// verdictGroup accumulates the votes for one verdict.
type verdictGroup struct {
	verdict   model.Verdict
	weight    float64
	responses []model.SourceResponse
}

// Aggregate reconciles source responses by weighted voting: each
// response votes for its verdict with its confidence as the weight, and
// the heaviest verdict wins. Overall confidence is the winning weight
// divided by the number of responders, so disagreement lowers it.
func Aggregate(responses []model.SourceResponse) *model.VerificationResult {
	if len(responses) == 0 {
		return &model.VerificationResult{
			Verdict:      model.VerdictUncertain,
			Confidence:   40,
			Explanation:  "No fact-checking sources returned a verdict for this claim.",
			StrategyUsed: model.TierCloudAggregate,
			Timestamp:    time.Now().UTC(),
		}
	}

	groups := make(map[model.Verdict]*verdictGroup)
	for _, resp := range responses {
		g, ok := groups[resp.Verdict]
		if !ok {
			g = &verdictGroup{verdict: resp.Verdict}
			groups[resp.Verdict] = g
		}
		g.weight += resp.Confidence
		g.responses = append(g.responses, resp)
	}

	ordered := make([]*verdictGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].weight != ordered[j].weight {
			return ordered[i].weight > ordered[j].weight
		}
		return ordered[i].verdict < ordered[j].verdict
	})

	winner := ordered[0]
	confidence := winner.weight / float64(len(responses))
	if confidence > 100 {
		confidence = 100
	}

	var evidence []string
	var srcNames []string
	seen := make(map[string]bool)
	for _, g := range ordered {
		for _, resp := range g.responses {
			if !seen[resp.SourceName] {
				seen[resp.SourceName] = true
				srcNames = append(srcNames, resp.SourceName)
			}
			for _, c := range resp.Citations {
				key := "cite:" + c
				if !seen[key] {
					seen[key] = true
					evidence = append(evidence, c)
				}
			}
			if resp.CitationURL != "" && !seen["url:"+resp.CitationURL] {
				seen["url:"+resp.CitationURL] = true
				evidence = append(evidence, resp.CitationURL)
			}
		}
	}

	return &model.VerificationResult{
		Verdict:      winner.verdict,
		Confidence:   confidence,
		Explanation:  aggregateExplanation(winner, len(responses)),
		Evidence:     evidence,
		Sources:      srcNames,
		StrategyUsed: model.TierCloudAggregate,
		Timestamp:    time.Now().UTC(),
	}
}

func aggregateExplanation(winner *verdictGroup, responders int) string {
	if len(winner.responses) == responders {
		if responders == 1 {
			return fmt.Sprintf("%s rated this claim %s.",
				winner.responses[0].SourceName, winner.verdict)
		}
		return fmt.Sprintf("All %d sources agree this claim is %s.",
			responders, winner.verdict)
	}
	return fmt.Sprintf("%d of %d sources rated this claim %s.",
		len(winner.responses), responders, winner.verdict)
}
