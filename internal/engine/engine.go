package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spigell/jobsift/internal/capital"
	"github.com/spigell/jobsift/internal/category"
	"github.com/spigell/jobsift/internal/compare"
	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/dedup"
	"github.com/spigell/jobsift/internal/fit"
	"github.com/spigell/jobsift/internal/parser"
	"github.com/spigell/jobsift/internal/posting"
	"github.com/spigell/jobsift/internal/scam"
	"github.com/spigell/jobsift/internal/score"
	"go.uber.org/zap"
)

// Engine is the facade over the whole pipeline: parse, fit, categorize,
// score, career capital, scam detection. Every public operation returns a
// *Response envelope and never panics.
type Engine struct {
	cfg    *config.Config
	logger *zap.Logger

	parser      *parser.Parser
	fit         *fit.Adapter
	categorizer *category.Categorizer
	scorer      *score.Scorer
	capital     *capital.Scorer
	scam        *scam.Detector
	registry    dedup.Registry

	now func() time.Time
}

// Options configures an Engine. Zero-value fields get working defaults:
// embedded config, nop logger, in-memory duplicate registry, no oracle.
type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Oracle   fit.Oracle
	Registry dedup.Registry
	Now      func() time.Time
}

// New wires the pipeline layers together.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Default()
		if err != nil {
			return nil, NewError(CodeConfigError, "could not load the embedded configuration defaults", err.Error())
		}
	} else if err := cfg.Validate(); err != nil {
		// A caller-built config may never have passed through config.Load.
		return nil, NewError(CodeConfigError, "invalid engine configuration", err.Error())
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := opts.Registry
	if registry == nil {
		registry = dedup.NewMemory()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		cfg:         cfg,
		logger:      logger,
		parser:      parser.New(cfg, logger),
		fit:         fit.NewAdapter(opts.Oracle, logger),
		categorizer: category.New(&cfg.Category),
		scorer:      score.New(&cfg.Priority),
		capital:     capital.New(&cfg.Capital),
		scam:        scam.New(&cfg.Scam),
		registry:    registry,
		now:         now,
	}, nil
}

// RankRequest carries one posting through the full pipeline.
type RankRequest struct {
	Posting        *posting.RawPosting
	ResumeText     string
	Prefs          *posting.Preferences
	DreamCompanies []string
}

// RankJob runs the full pipeline for a single posting.
func (e *Engine) RankJob(ctx context.Context, req *RankRequest) (resp *Response) {
	started := time.Now()
	defer e.recoverTo(&resp, started)

	ranked, eerr := e.rankOne(ctx, req)
	if eerr != nil {
		return errResponse(eerr, started)
	}

	e.remember(ctx, ranked.Job.CanonicalID)

	return okResponse(ranked, started)
}

// BatchFailure records a request that could not be ranked, by its index in
// the submitted batch.
type BatchFailure struct {
	Index int    `json:"index"`
	Error *Error `json:"error"`
}

// BatchResult is the payload of a batch ranking call. Ranked is sorted by
// final priority score descending with sequential 1-based ranks.
type BatchResult struct {
	Ranked   []*posting.RankedJob `json:"ranked"`
	Failures []BatchFailure       `json:"failures,omitempty"`
}

// RankBatch ranks a batch of postings concurrently, then sorts the
// survivors and assigns ranks. A failed posting never fails the batch.
// When several postings in one batch share a canonical id, the first
// submitted one is ranked and the rest fail with a duplicate error.
func (e *Engine) RankBatch(ctx context.Context, reqs []*RankRequest) (resp *Response) {
	started := time.Now()
	defer e.recoverTo(&resp, started)

	type slot struct {
		job *posting.RankedJob
		err *Error
	}

	slots := make([]slot, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req *RankRequest) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slots[i].err = NewError(CodeRankingFailed, "unexpected failure while ranking this posting", fmt.Sprint(r))
				}
			}()
			slots[i].job, slots[i].err = e.rankOne(ctx, req)
		}(i, req)
	}
	wg.Wait()

	result := &BatchResult{}
	// The registry check in rankOne ran before anything from this batch was
	// remembered, so duplicates inside the batch are collapsed here.
	inBatch := make(map[string]bool, len(slots))
	for i, s := range slots {
		if s.err != nil {
			result.Failures = append(result.Failures, BatchFailure{Index: i, Error: s.err})
			continue
		}
		if id := s.job.Job.CanonicalID; id != "" {
			if inBatch[id] {
				result.Failures = append(result.Failures, BatchFailure{Index: i, Error: NewError(CodeDuplicateJob,
					fmt.Sprintf("posting %q appears earlier in this batch", id), "")})
				continue
			}
			inBatch[id] = true
		}
		result.Ranked = append(result.Ranked, s.job)
	}

	SortAndRank(result.Ranked)

	for _, job := range result.Ranked {
		e.remember(ctx, job.Job.CanonicalID)
	}

	return okResponse(result, started)
}

// SortAndRank orders jobs by final priority score descending and assigns
// sequential 1-based ranks. Ties break on fit score, then canonical id so
// the order is stable across runs.
func SortAndRank(jobs []*posting.RankedJob) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].Breakdown.Final != jobs[j].Breakdown.Final {
			return jobs[i].Breakdown.Final > jobs[j].Breakdown.Final
		}
		if jobs[i].FitScore != jobs[j].FitScore {
			return jobs[i].FitScore > jobs[j].FitScore
		}
		return jobs[i].Job.CanonicalID < jobs[j].Job.CanonicalID
	})

	for i, job := range jobs {
		job.Rank = i + 1
	}
}

// List applies a filter query to an already ranked list and returns the
// surviving jobs in the standard envelope. The input slice is not modified.
func (e *Engine) List(jobs []*posting.RankedJob, query ListQuery) (resp *Response) {
	started := time.Now()
	defer e.recoverTo(&resp, started)

	return okResponse(runFilters(e.logger, query.filters(), jobs), started)
}

// Compare runs the comparison layer over ranked jobs.
func (e *Engine) Compare(jobs []*posting.RankedJob) (resp *Response) {
	started := time.Now()
	defer e.recoverTo(&resp, started)

	result, err := compare.Compare(jobs)
	if err != nil {
		if errors.Is(err, compare.ErrNotEnoughJobs) {
			return errResponse(NewError(CodeComparisonFailed, err.Error(), ""), started)
		}
		return errResponse(NewError(CodeInternalError, "comparison failed", err.Error()), started)
	}

	return okResponse(result, started)
}

// DuplicateCheck is the payload of CheckDuplicate.
type DuplicateCheck struct {
	CanonicalID string `json:"canonical_id"`
	Duplicate   bool   `json:"duplicate"`
}

// CheckDuplicate reports whether a canonical id was seen before.
func (e *Engine) CheckDuplicate(ctx context.Context, canonicalID string) (resp *Response) {
	started := time.Now()
	defer e.recoverTo(&resp, started)

	seen, err := e.registry.Seen(ctx, canonicalID)
	if err != nil {
		return errResponse(NewError(CodeInternalError, "duplicate registry lookup failed", err.Error()), started)
	}

	return okResponse(&DuplicateCheck{CanonicalID: canonicalID, Duplicate: seen}, started)
}

// Parse runs only the parsing layer, returning the parse outcome.
func (e *Engine) Parse(raw *posting.RawPosting) (resp *Response) {
	started := time.Now()
	defer e.recoverTo(&resp, started)

	outcome, err := e.parser.Parse(raw)
	if err != nil {
		return errResponse(validationError(err), started)
	}

	return okResponse(outcome, started)
}

// rankOne runs the per-job pipeline. Layer order is fixed: parse, duplicate
// check, fit, categorize, scam, capital, score.
func (e *Engine) rankOne(ctx context.Context, req *RankRequest) (*posting.RankedJob, *Error) {
	if req == nil || req.Posting == nil {
		return nil, NewError(CodeValidationError, "no posting supplied", "")
	}

	outcome, err := e.parser.Parse(req.Posting)
	if err != nil {
		return nil, validationError(err)
	}
	job := outcome.Job

	seen, err := e.registry.Seen(ctx, job.CanonicalID)
	if err != nil {
		// Registry trouble must not block analysis.
		e.logger.Warn("duplicate registry lookup failed", zap.Error(err))
	} else if seen {
		return nil, NewError(CodeDuplicateJob,
			fmt.Sprintf("posting %q was analyzed before", job.CanonicalID), "")
	}

	fitRes := e.fit.Analyze(ctx, req.ResumeText, job)
	cat, reason := e.categorizer.Categorize(fitRes.Score, fitRes.Gaps)
	scamReport := e.scam.Detect(job)
	careerCapital := e.capital.Assess(job, &fitRes.Gaps)

	now := e.now()
	flags := posting.Flags{
		Expired:  job.IsExpired(now),
		ScamRisk: scamReport.Level == posting.RiskMedium || scamReport.Level == posting.RiskHigh,
		DreamJob: isDreamCompany(job.Company, req.DreamCompanies),
	}
	if days := job.PostedDaysAgo(now); days >= 0 && days <= 3 {
		flags.New = true
	}

	shouldApply := e.categorizer.ShouldApply(fitRes.Score, cat, job, req.Prefs)

	breakdown, tier := e.scorer.Score(score.Input{
		Job:         job,
		FitScore:    fitRes.Score,
		Category:    cat,
		Prefs:       req.Prefs,
		ScamLevel:   scamReport.Level,
		Flags:       flags,
		ShouldApply: shouldApply,
		Now:         now,
	})

	ranked := &posting.RankedJob{
		Job:            job,
		FitScore:       fitRes.Score,
		Gaps:           fitRes.Gaps,
		Category:       cat,
		CategoryReason: reason,
		PriorityScore:  breakdown.Final,
		Breakdown:      breakdown,
		Flags:          flags,
		ShouldApply:    shouldApply,
		Tier:           tier,
		Capital:        careerCapital,
		Scam:           scamReport,
	}

	if outcome.Status == parser.StatusFallback {
		ranked.RedFlags = append(ranked.RedFlags, "analysis ran in fallback mode: "+outcome.FallbackReason)
	}
	buildInsights(ranked, now)

	return ranked, nil
}

// remember records a canonical id; registry failures are logged, not fatal.
func (e *Engine) remember(ctx context.Context, canonicalID string) {
	if err := e.registry.Add(ctx, canonicalID); err != nil {
		e.logger.Warn("duplicate registry add failed",
			zap.String("canonical_id", canonicalID),
			zap.Error(err),
		)
	}
}

// recoverTo converts a panic in a facade operation into an INTERNAL_ERROR
// envelope.
func (e *Engine) recoverTo(resp **Response, started time.Time) {
	if r := recover(); r != nil {
		e.logger.Error("engine operation panicked", zap.Any("panic", r))
		*resp = errResponse(NewError(CodeInternalError, "unexpected failure", fmt.Sprint(r)), started)
	}
}

// validationError converts parser errors into the engine taxonomy. The
// parser's validation codes are already the public ones.
func validationError(err error) *Error {
	var verr *parser.ValidationError
	if errors.As(err, &verr) {
		return NewError(verr.Code, verr.Message, "")
	}

	return NewError(CodeParsingFailed, "could not parse the posting", err.Error())
}

func isDreamCompany(company string, dream []string) bool {
	for _, d := range dream {
		if d != "" && strings.EqualFold(strings.TrimSpace(d), strings.TrimSpace(company)) {
			return true
		}
	}

	return false
}
