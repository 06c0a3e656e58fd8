// Package score computes the priority score and tier for a ranked job:
// a weighted sum of fit, preference match, freshness and urgency, a flat
// category bonus, and itemized post-hoc penalties. The final score is
// always clamped to zero or above.
package score

import (
	"time"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

// Penalty names as they appear in the itemized breakdown.
const (
	PenaltyLocationMismatch = "location_mismatch"
	PenaltySalaryBelowMin   = "salary_below_minimum"
	PenaltyScamRisk         = "scam_risk"
	PenaltyExpired          = "deadline_expired"
)

// Scorer computes priority scores from read-only configuration.
type Scorer struct {
	cfg *config.PriorityConfig
}

// New creates a Scorer.
func New(cfg *config.PriorityConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Input bundles everything the priority layer consumes.
type Input struct {
	Job         *posting.ParsedJob
	FitScore    float64
	Category    posting.Category
	Prefs       *posting.Preferences
	ScamLevel   posting.RiskLevel
	Flags       posting.Flags
	ShouldApply bool
	Now         time.Time
}

// Score produces the itemized breakdown and the priority tier.
func (s *Scorer) Score(in Input) (posting.ScoreBreakdown, posting.PriorityTier) {
	cfg := s.cfg

	b := posting.ScoreBreakdown{
		Fit:             in.FitScore,
		PreferenceMatch: preferenceMatch(in.Job, in.Prefs),
		Freshness:       freshnessScore(in.Job.PostedDaysAgo(in.Now)),
		Urgency:         s.urgencyScore(in.Job, in.Now),
		CategoryBonus:   cfg.CategoryBonus[string(in.Category)],
	}

	b.Raw = cfg.FitWeight*b.Fit +
		cfg.PreferenceWeight*b.PreferenceMatch +
		cfg.FreshnessWeight*b.Freshness +
		cfg.UrgencyWeight*b.Urgency +
		b.CategoryBonus

	b.Penalties = s.penalties(in)

	b.Final = b.Raw
	for _, p := range b.Penalties {
		b.Final += p.Amount
	}
	if b.Final < 0 {
		b.Final = 0
	}

	return b, s.tier(in, b)
}

// penalties itemizes the post-hoc deductions. Amounts are negative and come
// from configuration.
func (s *Scorer) penalties(in Input) []posting.Penalty {
	cfg := s.cfg
	var penalties []posting.Penalty

	if in.Prefs != nil && len(in.Prefs.Locations) > 0 &&
		!in.Prefs.MatchesLocation(in.Job.Location) && in.Job.Arrangement != posting.Remote {
		penalties = append(penalties, posting.Penalty{
			Name: PenaltyLocationMismatch, Amount: cfg.PenaltyLocationMismatch,
		})
	}

	if in.Prefs != nil && in.Prefs.SalaryMinimum != nil &&
		in.Job.Salary != nil && in.Job.Salary.Max != nil &&
		*in.Job.Salary.Max < *in.Prefs.SalaryMinimum {
		penalties = append(penalties, posting.Penalty{
			Name: PenaltySalaryBelowMin, Amount: cfg.PenaltySalaryBelowMin,
		})
	}

	switch in.ScamLevel {
	case posting.RiskMedium:
		penalties = append(penalties, posting.Penalty{
			Name: PenaltyScamRisk, Amount: cfg.PenaltyScamMedium,
		})
	case posting.RiskHigh:
		penalties = append(penalties, posting.Penalty{
			Name: PenaltyScamRisk, Amount: cfg.PenaltyScamHigh,
		})
	}

	if in.Job.IsExpired(in.Now) {
		penalties = append(penalties, posting.Penalty{
			Name: PenaltyExpired, Amount: cfg.PenaltyExpired,
		})
	}

	return penalties
}

// tier blends fit, category, freshness and urgency with flat bonuses and
// the scam penalty against the two configured thresholds. A job the user
// should not apply to is always low priority regardless of its score.
func (s *Scorer) tier(in Input, b posting.ScoreBreakdown) posting.PriorityTier {
	if !in.ShouldApply {
		return posting.TierLow
	}

	cfg := s.cfg
	blend := cfg.TierFitWeight*b.Fit +
		cfg.TierCategoryWeight*s.categoryTierScore(in.Category) +
		cfg.TierFreshnessWeight*b.Freshness +
		cfg.TierUrgencyWeight*b.Urgency

	if in.Flags.DreamJob {
		blend += cfg.TierDreamBonus
	}
	if in.Flags.New {
		blend += cfg.TierNewBonus
	}
	if in.ScamLevel == posting.RiskMedium || in.ScamLevel == posting.RiskHigh {
		blend -= cfg.TierScamPenalty
	}

	switch {
	case blend >= cfg.TierHighMin:
		return posting.TierHigh
	case blend >= cfg.TierMediumMin:
		return posting.TierMedium
	default:
		return posting.TierLow
	}
}

// categoryTierScore projects the configured category bonus onto a 0-100
// scale so it can carry its blend weight.
func (s *Scorer) categoryTierScore(cat posting.Category) float64 {
	bonus := s.cfg.CategoryBonus[string(cat)]
	max := 0.0
	for _, v := range s.cfg.CategoryBonus {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return 0
	}
	return bonus / max * 100
}

// preferenceMatch is the fraction of applicable preference checks that
// pass: work arrangement, non-strict location, soft salary floor. With no
// applicable checks it defaults to 100.
func preferenceMatch(job *posting.ParsedJob, prefs *posting.Preferences) float64 {
	if prefs.IsZero() {
		return 100
	}

	applicable, passed := 0, 0

	if len(prefs.WorkArrangement) > 0 {
		applicable++
		if prefs.AllowsArrangement(job.Arrangement) {
			passed++
		}
	}

	if len(prefs.Locations) > 0 {
		applicable++
		if prefs.MatchesLocation(job.Location) || job.Arrangement == posting.Remote {
			passed++
		}
	}

	if prefs.SalaryMinimum != nil && job.Salary != nil {
		applicable++
		max := job.Salary.Max
		if max == nil {
			max = job.Salary.Min
		}
		if max != nil && *max >= *prefs.SalaryMinimum {
			passed++
		}
	}

	if applicable == 0 {
		return 100
	}
	return float64(passed) / float64(applicable) * 100
}
