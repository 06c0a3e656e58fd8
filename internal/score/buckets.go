package score

import (
	"time"

	"github.com/spigell/jobsift/internal/posting"
)

// freshnessScore buckets posting recency: today scores 100, decaying to 20
// beyond thirty days. Unknown posting dates are neutral.
func freshnessScore(daysAgo int) float64 {
	switch {
	case daysAgo < 0:
		return 50
	case daysAgo == 0:
		return 100
	case daysAgo <= 3:
		return 90
	case daysAgo <= 7:
		return 75
	case daysAgo <= 14:
		return 50
	case daysAgo <= 30:
		return 30
	default:
		return 20
	}
}

// urgencyScore blends deadline proximity with posting recency, each with
// its configured weight.
func (s *Scorer) urgencyScore(job *posting.ParsedJob, now time.Time) float64 {
	deadline := deadlineScore(job, now)
	recency := freshnessScore(job.PostedDaysAgo(now))

	total := s.cfg.DeadlineWeight + s.cfg.RecencyWeight
	if total == 0 {
		return 0
	}
	return (s.cfg.DeadlineWeight*deadline + s.cfg.RecencyWeight*recency) / total
}

// deadlineScore buckets deadline proximity: closer deadlines are more
// urgent, expired ones score zero. No deadline is neutral.
func deadlineScore(job *posting.ParsedJob, now time.Time) float64 {
	if job.Meta.Deadline == nil {
		return 50
	}

	until := job.Meta.Deadline.Sub(now)
	switch {
	case until < 0:
		return 0
	case until <= 3*24*time.Hour:
		return 100
	case until <= 7*24*time.Hour:
		return 80
	case until <= 14*24*time.Hour:
		return 60
	case until <= 30*24*time.Hour:
		return 40
	default:
		return 20
	}
}
