// Package engine orchestrates the verification tiers: cache lookup,
// corpus matching, and cloud aggregation, under the caller's strategy.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ppiankov/verity/internal/aggregate"
	"github.com/ppiankov/verity/internal/cache"
	"github.com/ppiankov/verity/internal/corpus"
	"github.com/ppiankov/verity/internal/match"
	"github.com/ppiankov/verity/internal/model"
)

// ErrEmptyText rejects requests with no verifiable content.
// It is the only error Verify returns once construction succeeded.
var ErrEmptyText = errors.New("claim text is empty")

// Engine is the single entry point for claim verification. It owns the
// corpus for the life of the process; the cache is shared by all
// in-flight requests and synchronizes internally.
type Engine struct {
	cfg        *model.Config
	corpus     *corpus.Corpus
	lexical    *match.LexicalMatcher
	semantic   *match.SemanticMatcher
	aggregator *aggregate.Aggregator
	cache      *cache.ResultCache // nil disables caching
	logger     *slog.Logger
}

// New wires an Engine from its parts. A nil resultCache disables
// caching entirely; a nil aggregator is only valid for LOCAL-strategy
// callers and is treated as zero configured sources otherwise.
func New(cfg *model.Config, corp *corpus.Corpus, sem *match.SemanticMatcher, agg *aggregate.Aggregator, resultCache *cache.ResultCache) *Engine {
	return &Engine{
		cfg:        cfg,
		corpus:     corp,
		lexical:    match.NewLexicalMatcher(cfg.Match.FuzzyThreshold),
		semantic:   sem,
		aggregator: agg,
		cache:      resultCache,
		logger:     slog.Default().With("component", "engine"),
	}
}

// Verify runs one claim through the tier pipeline and returns a
// verdict. Apart from empty input it never fails: every degraded
// condition resolves to a lower-confidence or UNCERTAIN result.
func (e *Engine) Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationResult, error) {
	start := time.Now()

	normalized := match.Normalize(req.Text)
	if normalized == "" {
		return nil, ErrEmptyText
	}
	strategy := model.ParseStrategy(string(req.Strategy))

	if e.cache != nil {
		if result, ok := e.cache.Get(normalized, strategy); ok {
			e.logger.Debug("cache hit", "strategy", strategy)
			result.ProcessingTime = time.Since(start).Seconds()
			return result, nil
		}
	}

	var result *model.VerificationResult
	switch {
	case match.IsOpinion(req.Text):
		result = opinionResult()
	case strategy == model.StrategyLocal:
		result = e.verifyLocal(ctx, normalized)
	case strategy == model.StrategyCloud:
		result = e.verifyCloud(ctx, req.Text)
	default:
		result = e.verifyHybrid(ctx, req.Text, normalized)
	}

	result.Cached = false
	result.ProcessingTime = time.Since(start).Seconds()
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}

	if e.cache != nil {
		e.cache.Set(normalized, strategy, result)
	}
	return result, nil
}

// verifyLocal runs the exact, fuzzy, and semantic tiers against the
// corpus. A miss is an UNCERTAIN result, never an escalation.
func (e *Engine) verifyLocal(ctx context.Context, normalized string) *model.VerificationResult {
	if m := e.matchCorpus(ctx, normalized); m != nil {
		return resultFromMatch(m)
	}
	return &model.VerificationResult{
		Verdict:      model.VerdictUncertain,
		Confidence:   40,
		Explanation:  "This claim is not in the local knowledge base. Consider verifying with external fact-checking sources.",
		StrategyUsed: model.TierNone,
	}
}

// verifyCloud skips the corpus entirely and asks the external sources.
// No aggregator behaves like an aggregator with zero responders.
func (e *Engine) verifyCloud(ctx context.Context, text string) *model.VerificationResult {
	if e.aggregator == nil {
		return aggregate.Aggregate(nil)
	}
	return e.aggregator.Verify(ctx, text)
}

// verifyHybrid tries the corpus first and escalates to the sources when
// the local answer is missing or below the escalation threshold. With
// no sources configured the local answer stands, whatever its
// confidence.
func (e *Engine) verifyHybrid(ctx context.Context, text, normalized string) *model.VerificationResult {
	local := e.matchCorpus(ctx, normalized)
	if local != nil && local.Confidence >= e.cfg.Match.EscalationThreshold {
		return resultFromMatch(local)
	}

	if e.aggregator == nil || e.aggregator.ConfiguredCount() == 0 {
		if local != nil {
			return resultFromMatch(local)
		}
		return noSourcesResult()
	}

	e.logger.Debug("escalating to external sources",
		"local_match", local != nil)
	return e.aggregator.Verify(ctx, text)
}

// matchCorpus runs the local tiers in order: exact, fuzzy, semantic.
func (e *Engine) matchCorpus(ctx context.Context, normalized string) *match.Result {
	claims := e.corpus.Claims()
	if m := e.lexical.Match(normalized, claims); m != nil {
		return m
	}
	if e.semantic != nil {
		return e.semantic.Match(ctx, normalized, claims)
	}
	return nil
}

// resultFromMatch converts a corpus match into a terminal result
func resultFromMatch(m *match.Result) *model.VerificationResult {
	return &model.VerificationResult{
		Verdict:      m.Claim.Verdict,
		Confidence:   m.Confidence,
		Explanation:  m.Claim.Explanation,
		Evidence:     append([]string(nil), m.Claim.Evidence...),
		Sources:      append([]string(nil), m.Claim.Sources...),
		StrategyUsed: m.Tier,
	}
}

func opinionResult() *model.VerificationResult {
	return &model.VerificationResult{
		Verdict:      model.VerdictUnverifiable,
		Confidence:   50,
		Explanation:  "This looks like an opinion or a question rather than a factual claim, so it cannot be fact-checked.",
		StrategyUsed: model.TierNone,
	}
}

func noSourcesResult() *model.VerificationResult {
	return &model.VerificationResult{
		Verdict:      model.VerdictUncertain,
		Confidence:   40,
		Explanation:  "No external verification sources are configured and the claim is not in the local knowledge base.",
		StrategyUsed: model.TierNone,
	}
}

// ClearCache drops every cached result
func (e *Engine) ClearCache() error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Clear()
}

// CacheStats reports the cache's item count and size
func (e *Engine) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// CorpusStats reports per-verdict claim counts
func (e *Engine) CorpusStats() map[model.Verdict]int {
	return e.corpus.Stats()
}

// SourceNames lists the configured external sources
func (e *Engine) SourceNames() []string {
	if e.aggregator == nil {
		return nil
	}
	return e.aggregator.SourceNames()
}
