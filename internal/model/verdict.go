package model

import "strings"

// Verdict classifies the outcome of verifying a claim
type Verdict string

const (
	VerdictTrue         Verdict = "TRUE"         // Claim is supported by the evidence
	VerdictFalse        Verdict = "FALSE"        // Claim is contradicted by the evidence
	VerdictMisleading   Verdict = "MISLEADING"   // Claim contains truth but lacks context
	VerdictUnverifiable Verdict = "UNVERIFIABLE" // Opinion or otherwise not checkable
	VerdictUncertain    Verdict = "UNCERTAIN"    // No conclusive assessment available
)

// ParseVerdict normalizes a verdict string to a Verdict.
// Unknown values map to UNCERTAIN.
func ParseVerdict(s string) Verdict {
	switch Verdict(strings.ToUpper(strings.TrimSpace(s))) {
	case VerdictTrue:
		return VerdictTrue
	case VerdictFalse:
		return VerdictFalse
	case VerdictMisleading:
		return VerdictMisleading
	case VerdictUnverifiable:
		return VerdictUnverifiable
	default:
		return VerdictUncertain
	}
}

// Strategy selects which verification tiers may run for a request
type Strategy string

const (
	StrategyLocal  Strategy = "local"  // Corpus matching only, never calls external sources
	StrategyCloud  Strategy = "cloud"  // External sources only, skips corpus matching
	StrategyHybrid Strategy = "hybrid" // Corpus first, escalate to sources when inconclusive
)

// ParseStrategy normalizes a strategy string. Unknown values map to hybrid,
// matching the default behavior callers expect.
func ParseStrategy(s string) Strategy {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyLocal:
		return StrategyLocal
	case StrategyCloud:
		return StrategyCloud
	default:
		return StrategyHybrid
	}
}

// Tier identifies which stage of the pipeline produced a result
type Tier string

const (
	TierExact          Tier = "exact"
	TierFuzzy          Tier = "fuzzy"
	TierSemantic       Tier = "semantic"
	TierCloudAggregate Tier = "cloud_aggregate"
	TierNone           Tier = "none"
)
