// Package category maps a fit score and gap analysis to one of the four
// decision categories via an ordered rule cascade, and decides whether the
// user should apply at all. Both functions are pure and total; every band
// edge comes from configuration.
package category

import (
	"fmt"
	"strings"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

// Categorizer evaluates the decision cascade.
type Categorizer struct {
	cfg *config.CategoryConfig
}

// New creates a Categorizer bound to the configured bands.
func New(cfg *config.CategoryConfig) *Categorizer {
	return &Categorizer{cfg: cfg}
}

// Categorize runs the ordered rule cascade; the first matching rule wins.
// A target-band score with an underqualified alignment and a seniority gap
// beyond the target ceiling re-routes into the reach rule, which applies
// its own ceilings and can reject into avoid. The trailing fallback bands
// keep the function total.
func (c *Categorizer) Categorize(fit float64, gaps posting.GapAnalysis) (posting.Category, string) {
	cfg := c.cfg
	critical := gaps.CriticalMissing
	alignment := gaps.SeniorityAlignment

	// Rule 1: fit below the avoid ceiling.
	if fit < cfg.AvoidBelow {
		return posting.CategoryAvoid, fmt.Sprintf("fit score %.0f is below the viable floor of %.0f", fit, cfg.AvoidBelow)
	}

	// Rule 2: too many critical gaps regardless of score.
	if critical > cfg.AvoidCriticalMax {
		return posting.CategoryAvoid, fmt.Sprintf("%d critical requirements are missing (limit %d)", critical, cfg.AvoidCriticalMax)
	}

	// Rule 3: safety band.
	if fit >= cfg.SafetyMinFit &&
		(alignment == posting.Aligned || alignment == posting.Overqualified) &&
		critical <= cfg.SafetyCriticalMax {
		return posting.CategorySafety, fmt.Sprintf("fit %.0f with %s seniority and at most %d critical gaps", fit, alignment, cfg.SafetyCriticalMax)
	}

	// Rule 4: target band, unless underqualified with a gap beyond the
	// target ceiling, which re-routes into the reach rule.
	rerouted := false
	if fit >= cfg.TargetMinFit && fit < cfg.SafetyMinFit && critical <= cfg.TargetCriticalMax {
		if alignment == posting.Underqualified && gaps.GapYears > cfg.TargetMaxGapYears {
			rerouted = true
		} else {
			return posting.CategoryTarget, fmt.Sprintf("fit %.0f inside the target band with %d critical gaps", fit, critical)
		}
	}

	// Rule 5: reach band for underqualified candidates with a bridgeable gap.
	inReachBand := fit >= cfg.ReachMinFit && fit < cfg.TargetMinFit
	if (rerouted || inReachBand) && alignment == posting.Underqualified {
		if gaps.GapYears <= cfg.ReachMaxGapYears && critical <= cfg.ReachCriticalMax {
			return posting.CategoryReach, fmt.Sprintf("fit %.0f with a %d-year seniority gap worth stretching for", fit, gaps.GapYears)
		}
		return posting.CategoryAvoid, fmt.Sprintf("seniority gap of %d years is too large to be viable", gaps.GapYears)
	}

	// Fallback bands: catch whatever the primary cascade didn't resolve.
	if fit >= cfg.FallbackReachMinFit && alignment == posting.Underqualified {
		return posting.CategoryReach, fmt.Sprintf("fit %.0f is strong despite the seniority gap", fit)
	}
	if fit >= cfg.FallbackTargetMinFit && fit < cfg.FallbackReachMinFit && alignment == posting.Aligned {
		return posting.CategoryTarget, fmt.Sprintf("fit %.0f with aligned seniority", fit)
	}

	switch {
	case fit >= cfg.ScoreOnlySafety:
		return posting.CategorySafety, fmt.Sprintf("fit %.0f clears the score-only safety band", fit)
	case fit >= cfg.ScoreOnlyTarget:
		return posting.CategoryTarget, fmt.Sprintf("fit %.0f clears the score-only target band", fit)
	case fit >= cfg.ScoreOnlyReach:
		return posting.CategoryReach, fmt.Sprintf("fit %.0f clears the score-only reach band", fit)
	default:
		return posting.CategoryAvoid, fmt.Sprintf("fit %.0f does not clear any band", fit)
	}
}

// ShouldApply is a second, independent cascade. It is non-decreasing in fit
// for a fixed category and constraint set.
func (c *Categorizer) ShouldApply(fit float64, cat posting.Category, job *posting.ParsedJob, prefs *posting.Preferences) bool {
	if fit < c.cfg.ApplyAbsoluteFloor {
		return false
	}
	if cat == posting.CategoryAvoid {
		return false
	}
	if !HardConstraintsOK(job, prefs) {
		return false
	}

	switch cat {
	case posting.CategoryReach:
		return fit >= c.cfg.ApplyReachMinFit
	case posting.CategoryTarget:
		return fit >= c.cfg.ApplyTargetMinFit
	case posting.CategorySafety:
		return fit >= c.cfg.ApplySafetyMinFit
	default:
		return false
	}
}

// HardConstraintsOK checks the user's hard constraints: work-arrangement
// membership, salary minimum against the job's max, excluded industries,
// and (only under strict location) a location match.
func HardConstraintsOK(job *posting.ParsedJob, prefs *posting.Preferences) bool {
	if prefs.IsZero() {
		return true
	}

	if !prefs.AllowsArrangement(job.Arrangement) {
		return false
	}

	if prefs.SalaryMinimum != nil && job.Salary != nil && job.Salary.Max != nil &&
		*job.Salary.Max < *prefs.SalaryMinimum {
		return false
	}

	if industryExcluded(job, prefs.ExcludedIndustries) {
		return false
	}

	if prefs.StrictLocation && !prefs.MatchesLocation(job.Location) {
		return false
	}

	return true
}

func industryExcluded(job *posting.ParsedJob, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	haystacks := []string{job.Meta.Industry, job.Company, job.Title}
	haystacks = append(haystacks, job.Requirements.DomainKeywords...)
	for _, industry := range excluded {
		if containsFold(haystacks, industry) {
			return true
		}
	}
	return false
}

func containsFold(haystacks []string, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return false
	}
	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
