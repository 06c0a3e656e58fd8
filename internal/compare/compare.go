// Package compare puts 2-5 already-ranked jobs side by side: requirement
// overlap, candidate coverage, and the best pick along each axis.
package compare

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/jobsift/internal/posting"
)

// MaxJobs bounds a comparison; longer lists are truncated to the first five.
const MaxJobs = 5

// ErrNotEnoughJobs rejects comparisons of fewer than two jobs.
var ErrNotEnoughJobs = errors.New("comparison requires at least 2 jobs")

// Pick identifies the winning job along one axis.
type Pick struct {
	JobID  string  `json:"job_id"`
	Title  string  `json:"title"`
	Reason string  `json:"reason"`
	Value  float64 `json:"value"`
}

// Result is the full comparison output.
type Result struct {
	CommonRequirements []string            `json:"common_requirements"`
	UniqueRequirements map[string][]string `json:"unique_requirements"`
	CoveragePercent    float64             `json:"coverage_percent"`

	BestFit          Pick  `json:"best_fit"`
	Easiest          Pick  `json:"easiest"`
	BestGrowth       Pick  `json:"best_growth"`
	BestBrand        Pick  `json:"best_brand"`
	BestCompensation *Pick `json:"best_compensation,omitempty"`

	Insights []string `json:"insights,omitempty"`
}

// Compare analyzes the given ranked jobs. Lists beyond MaxJobs are
// truncated to the first MaxJobs entries.
func Compare(jobs []*posting.RankedJob) (*Result, error) {
	if len(jobs) < 2 {
		return nil, ErrNotEnoughJobs
	}
	if len(jobs) > MaxJobs {
		jobs = jobs[:MaxJobs]
	}

	res := &Result{
		UniqueRequirements: make(map[string][]string, len(jobs)),
	}

	tokens := make([]map[string]bool, len(jobs))
	for i, job := range jobs {
		tokens[i] = requirementTokens(job.Job)
	}

	res.CommonRequirements = intersection(tokens)
	for i, job := range jobs {
		res.UniqueRequirements[job.Job.ID] = unique(tokens, i)
	}
	res.CoveragePercent = coverage(jobs, tokens)

	res.BestFit = bestFit(jobs)
	res.Easiest = easiest(jobs, res.BestFit)
	res.BestGrowth = bestGrowth(jobs)
	res.BestBrand = bestBrand(jobs)
	res.BestCompensation = bestCompensation(jobs)

	res.Insights = buildInsights(jobs, res)
	return res, nil
}

// requirementTokens lowers every extracted skill and tool name into a
// comparable token set.
func requirementTokens(job *posting.ParsedJob) map[string]bool {
	set := make(map[string]bool)
	for _, name := range job.Requirements.AllSkillNames() {
		set[strings.ToLower(name)] = true
	}
	return set
}

func intersection(tokens []map[string]bool) []string {
	var common []string
	for token := range tokens[0] {
		inAll := true
		for _, set := range tokens[1:] {
			if !set[token] {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, token)
		}
	}
	sort.Strings(common)
	return common
}

func unique(tokens []map[string]bool, idx int) []string {
	var only []string
	for token := range tokens[idx] {
		elsewhere := false
		for j, set := range tokens {
			if j != idx && set[token] {
				elsewhere = true
				break
			}
		}
		if !elsewhere {
			only = append(only, token)
		}
	}
	sort.Strings(only)
	return only
}

// coverage is the candidate's matched share of the union of every job's
// requirement tokens, taken from the per-job gap analyses.
func coverage(jobs []*posting.RankedJob, tokens []map[string]bool) float64 {
	union := make(map[string]bool)
	for _, set := range tokens {
		for token := range set {
			union[token] = true
		}
	}
	if len(union) == 0 {
		return 0
	}

	known := make(map[string]bool)
	for _, job := range jobs {
		for _, name := range job.Gaps.Skills.Matched {
			known[strings.ToLower(name)] = true
		}
		for _, name := range job.Gaps.Tools.Matched {
			known[strings.ToLower(name)] = true
		}
	}

	covered := 0
	for token := range union {
		if known[token] {
			covered++
		}
	}
	return float64(covered) / float64(len(union)) * 100
}

func bestFit(jobs []*posting.RankedJob) Pick {
	best := jobs[0]
	for _, job := range jobs[1:] {
		if job.FitScore > best.FitScore {
			best = job
		}
	}
	return Pick{
		JobID:  best.Job.ID,
		Title:  best.Job.Title,
		Reason: fmt.Sprintf("highest fit score at %.0f", best.FitScore),
		Value:  best.FitScore,
	}
}

// easiest prefers the highest fit among safety-category jobs, falling back
// to the overall best fit when none is a safety pick.
func easiest(jobs []*posting.RankedJob, fallback Pick) Pick {
	var best *posting.RankedJob
	for _, job := range jobs {
		if job.Category != posting.CategorySafety {
			continue
		}
		if best == nil || job.FitScore > best.FitScore {
			best = job
		}
	}
	if best == nil {
		return fallback
	}
	return Pick{
		JobID:  best.Job.ID,
		Title:  best.Job.Title,
		Reason: fmt.Sprintf("safety pick with fit %.0f", best.FitScore),
		Value:  best.FitScore,
	}
}

func bestGrowth(jobs []*posting.RankedJob) Pick {
	best := jobs[0]
	for _, job := range jobs[1:] {
		if capitalScore(job) > capitalScore(best) {
			best = job
		}
	}
	return Pick{
		JobID:  best.Job.ID,
		Title:  best.Job.Title,
		Reason: fmt.Sprintf("highest career capital at %.0f", capitalScore(best)),
		Value:  capitalScore(best),
	}
}

func bestBrand(jobs []*posting.RankedJob) Pick {
	best := jobs[0]
	for _, job := range jobs[1:] {
		if brandScore(job) > brandScore(best) {
			best = job
		}
	}
	return Pick{
		JobID:  best.Job.ID,
		Title:  best.Job.Title,
		Reason: fmt.Sprintf("strongest employer brand at %.0f", brandScore(best)),
		Value:  brandScore(best),
	}
}

// bestCompensation considers only jobs that disclose a salary; nil when
// none does.
func bestCompensation(jobs []*posting.RankedJob) *Pick {
	var best *posting.RankedJob
	for _, job := range jobs {
		if topSalary(job) == 0 {
			continue
		}
		if best == nil || topSalary(job) > topSalary(best) {
			best = job
		}
	}
	if best == nil {
		return nil
	}
	return &Pick{
		JobID:  best.Job.ID,
		Title:  best.Job.Title,
		Reason: fmt.Sprintf("highest advertised salary at %d", topSalary(best)),
		Value:  float64(topSalary(best)),
	}
}

func buildInsights(jobs []*posting.RankedJob, res *Result) []string {
	var insights []string

	if n := len(res.CommonRequirements); n > 0 {
		insights = append(insights, fmt.Sprintf(
			"all %d jobs share %d core requirements, led by %s",
			len(jobs), n, res.CommonRequirements[0]))
	} else {
		insights = append(insights, "these jobs have no overlapping requirements, they target different profiles")
	}

	if res.CoveragePercent >= 70 {
		insights = append(insights, fmt.Sprintf("you already cover %.0f%% of everything these jobs ask for", res.CoveragePercent))
	} else if res.CoveragePercent > 0 {
		insights = append(insights, fmt.Sprintf("you cover %.0f%% of the combined requirements, check the unique gaps per job", res.CoveragePercent))
	}

	if res.BestFit.JobID == res.BestGrowth.JobID {
		insights = append(insights, fmt.Sprintf("%q is both the best fit and the best growth move", res.BestFit.Title))
	}

	scamFlagged := 0
	for _, job := range jobs {
		if job.Flags.ScamRisk {
			scamFlagged++
		}
	}
	if scamFlagged > 0 {
		insights = append(insights, fmt.Sprintf("%d of the compared jobs carry scam-risk flags, verify before applying", scamFlagged))
	}

	return insights
}

func capitalScore(job *posting.RankedJob) float64 {
	if job.Capital == nil {
		return 0
	}
	return job.Capital.Score
}

func brandScore(job *posting.RankedJob) float64 {
	if job.Capital == nil {
		return 0
	}
	return job.Capital.Brand.Score
}

func topSalary(job *posting.RankedJob) int {
	s := job.Job.Salary
	if s == nil {
		return 0
	}
	if s.Max != nil {
		return *s.Max
	}
	if s.Min != nil {
		return *s.Min
	}
	return 0
}
