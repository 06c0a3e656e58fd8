package engine

import (
	"fmt"
	"time"

	"github.com/spigell/jobsift/internal/posting"
	"github.com/spigell/jobsift/internal/score"
)

// buildInsights fills the human-readable summary fields of a ranked job.
// Everything here restates machine verdicts computed elsewhere; nothing in
// this file influences scores or categories.
func buildInsights(job *posting.RankedJob, now time.Time) {
	parsed := job.Job

	if job.CategoryReason != "" {
		job.Insights = append(job.Insights, job.CategoryReason)
	}

	missing := len(job.Gaps.Skills.Missing)
	switch {
	case job.Gaps.CriticalMissing > 0:
		job.Insights = append(job.Insights,
			fmt.Sprintf("missing %d critical requirement(s)", job.Gaps.CriticalMissing))
	case missing > 0:
		job.Insights = append(job.Insights,
			fmt.Sprintf("missing %d nice-to-have skill(s)", missing))
	}

	if job.Capital != nil && job.Capital.SkillGrowth.Interpretation != "" {
		job.Insights = append(job.Insights, job.Capital.SkillGrowth.Interpretation)
	}

	// Green flags.
	if parsed.Salary != nil {
		job.GreenFlags = append(job.GreenFlags, "salary disclosed")
	}
	if parsed.Arrangement == posting.Remote {
		job.GreenFlags = append(job.GreenFlags, "remote position")
	}
	if days := parsed.PostedDaysAgo(now); days >= 0 && days <= 3 {
		job.GreenFlags = append(job.GreenFlags, "posted within the last 3 days")
	}
	if job.Gaps.CriticalMissing == 0 && job.Gaps.Skills.MatchPercent >= 80 {
		job.GreenFlags = append(job.GreenFlags, "strong skill match")
	}
	if job.Capital != nil && job.Capital.Brand.Score >= 85 {
		job.GreenFlags = append(job.GreenFlags, "well-known company")
	}

	// Red flags.
	if job.Scam != nil {
		for _, f := range job.Scam.Flags {
			if f.Detail != "" {
				job.RedFlags = append(job.RedFlags, f.Detail)
				continue
			}
			job.RedFlags = append(job.RedFlags, f.Name)
		}
	}
	if job.Flags.Expired {
		job.RedFlags = append(job.RedFlags, "application deadline has passed")
	}
	if parsed.Meta.ParseQuality == posting.QualityLow {
		job.RedFlags = append(job.RedFlags, "posting was hard to parse; details may be incomplete")
	}
	for _, p := range job.Breakdown.Penalties {
		if p.Name == score.PenaltySalaryBelowMin {
			job.RedFlags = append(job.RedFlags, "salary is below your minimum")
		}
	}
}
