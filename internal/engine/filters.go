package engine

import (
	"github.com/spigell/jobsift/internal/posting"
	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to a ranked job list.
type Filter interface {
	Name() string
	Apply(jobs []*posting.RankedJob) ([]*posting.RankedJob, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// ListQuery narrows a ranked list. Zero values mean "no constraint";
// user-rejected and expired jobs are excluded unless explicitly included.
type ListQuery struct {
	Category        posting.Category
	MinFit          *int
	MaxFit          *int
	OnlyShouldApply bool
	IncludeExpired  bool
	IncludeRejected bool
}

// filters builds the filter chain for a query. Order matters only for
// step accounting in logs, not for the final result.
func (q ListQuery) filters() []Filter {
	steps := []Filter{}
	if q.Category != "" {
		steps = append(steps, categoryFilter{category: q.Category})
	}
	if q.MinFit != nil || q.MaxFit != nil {
		steps = append(steps, fitRangeFilter{min: q.MinFit, max: q.MaxFit})
	}
	if q.OnlyShouldApply {
		steps = append(steps, shouldApplyFilter{})
	}
	if !q.IncludeExpired {
		steps = append(steps, expiredFilter{})
	}
	if !q.IncludeRejected {
		steps = append(steps, rejectedFilter{})
	}

	return steps
}

// runFilters executes the supplied filters sequentially.
func runFilters(logger *zap.Logger, steps []Filter, jobs []*posting.RankedJob) []*posting.RankedJob {
	for _, step := range steps {
		next, info := step.Apply(jobs)

		if logger != nil {
			logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		jobs = next
	}

	return jobs
}

func keep(jobs []*posting.RankedJob, pred func(*posting.RankedJob) bool) ([]*posting.RankedJob, Step) {
	initial := len(jobs)
	kept := make([]*posting.RankedJob, 0, initial)
	for _, job := range jobs {
		if pred(job) {
			kept = append(kept, job)
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

type categoryFilter struct {
	category posting.Category
}

func (f categoryFilter) Name() string { return "category" }

func (f categoryFilter) Apply(jobs []*posting.RankedJob) ([]*posting.RankedJob, Step) {
	return keep(jobs, func(j *posting.RankedJob) bool {
		return j.Category == f.category
	})
}

type fitRangeFilter struct {
	min *int
	max *int
}

func (f fitRangeFilter) Name() string { return "fit_range" }

func (f fitRangeFilter) Apply(jobs []*posting.RankedJob) ([]*posting.RankedJob, Step) {
	return keep(jobs, func(j *posting.RankedJob) bool {
		if f.min != nil && j.FitScore < float64(*f.min) {
			return false
		}
		if f.max != nil && j.FitScore > float64(*f.max) {
			return false
		}

		return true
	})
}

type shouldApplyFilter struct{}

func (shouldApplyFilter) Name() string { return "should_apply" }

func (shouldApplyFilter) Apply(jobs []*posting.RankedJob) ([]*posting.RankedJob, Step) {
	return keep(jobs, func(j *posting.RankedJob) bool {
		return j.ShouldApply
	})
}

type expiredFilter struct{}

func (expiredFilter) Name() string { return "expired" }

func (expiredFilter) Apply(jobs []*posting.RankedJob) ([]*posting.RankedJob, Step) {
	return keep(jobs, func(j *posting.RankedJob) bool {
		return !j.Flags.Expired
	})
}

type rejectedFilter struct{}

func (rejectedFilter) Name() string { return "rejected" }

func (rejectedFilter) Apply(jobs []*posting.RankedJob) ([]*posting.RankedJob, Step) {
	return keep(jobs, func(j *posting.RankedJob) bool {
		return !j.Flags.Rejected
	})
}
