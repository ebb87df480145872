// Package score turns a detected (country, disease) pair into a 0-100 risk
// score and a discrete severity tier.
package score

import "github.com/damiri/vetwatch/internal/lexicon"

// Severity is the discretized risk tier derived from the numeric score.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Fixed severity thresholds. The alert threshold used for immediate
// notification is a separate, configurable cutoff owned by the reporter.
const (
	highThreshold   = 75
	mediumThreshold = 50
)

// Score bonuses. The home bonus deliberately exceeds every single disease
// weight so that any priority disease inside the primary country lands at
// least in the medium tier.
const (
	homeBonus      = 45
	watchBonus     = 15
	baselineWeight = 15
)

// DefaultWeights are the per-disease base weights, keyed by canonical
// disease label. Diseases outside the table score the baseline.
func DefaultWeights() map[string]int {
	return map[string]int{
		lexicon.DiseaseRVF: 40,
		lexicon.DiseaseAI:  40,
		lexicon.DiseaseFMD: 35,
		lexicon.DiseasePPR: 30,
		lexicon.DiseaseLSD: 25,
	}
}

// Scorer computes risk scores for detected events. It is immutable after
// construction.
type Scorer struct {
	weights   map[string]int
	primary   string
	watchlist map[string]bool
}

// New builds a scorer. primary is the single country the system protects;
// watchlist lists the other countries under watch. weights may be nil, in
// which case DefaultWeights applies; explicit entries override defaults
// per disease.
func New(primary string, watchlist []string, weights map[string]int) *Scorer {
	w := DefaultWeights()
	for k, v := range weights {
		w[k] = v
	}
	wl := make(map[string]bool, len(watchlist))
	for _, c := range watchlist {
		wl[c] = true
	}
	return &Scorer{weights: w, primary: primary, watchlist: wl}
}

// Score returns the risk score for a (country, disease) pair, clamped to
// [0,100]. Same inputs always produce the same score.
func (s *Scorer) Score(country, disease string) int {
	score, ok := s.weights[disease]
	if !ok {
		score = baselineWeight
	}

	switch {
	case country == s.primary:
		score += homeBonus
	case s.watchlist[country]:
		score += watchBonus
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// SeverityFor maps a score to its severity tier using the fixed thresholds.
func SeverityFor(score int) Severity {
	switch {
	case score >= highThreshold:
		return SeverityHigh
	case score >= mediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
