// Package parser turns raw postings into canonical ParsedJob records. It
// owns input validation, parse-quality assessment, canonical identity and
// the low-confidence fallback path.
package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/extract"
	"github.com/spigell/jobsift/internal/posting"
)

// Validation codes surfaced for input-shape violations. These always
// propagate as errors and are never swallowed by the fallback path.
const (
	CodeMissingDescription = "MISSING_JOB_DESCRIPTION"
	CodeTooShort           = "JD_TOO_SHORT"
	CodeTooLong            = "JD_TOO_LONG"
)

// ValidationError rejects an input before any extraction runs.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Status tags a parse outcome.
type Status string

const (
	StatusOK       Status = "ok"
	StatusFallback Status = "fallback"
)

// Outcome is the tagged result of a parse call: a full ParsedJob, or a
// minimal fallback job with the reason extraction degraded. Rejected inputs
// are returned as a *ValidationError instead.
type Outcome struct {
	Job            *posting.ParsedJob
	Status         Status
	FallbackReason string
}

// Parser builds ParsedJob records. Safe for concurrent use.
type Parser struct {
	cfg       *config.Config
	extractor *extract.Extractor
	logger    *zap.Logger
}

// New creates a Parser with its own extraction layer.
func New(cfg *config.Config, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		cfg:       cfg,
		extractor: extract.New(&cfg.Extraction, logger),
		logger:    logger,
	}
}

// Parse validates, extracts and assembles a ParsedJob. Extraction-quality
// problems never fail the call: they degrade parse_quality and, in the
// worst case, produce the fallback outcome.
func (p *Parser) Parse(raw *posting.RawPosting) (*Outcome, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	res, extractErr := p.safeExtract(raw)
	if extractErr != nil {
		p.logger.Warn("extraction failed, using fallback parse",
			zap.Error(extractErr),
		)
		return p.fallback(raw, extractErr.Error()), nil
	}

	quality, confidence := assessQuality(res, &p.cfg.Quality)
	now := time.Now().UTC()

	job := &posting.ParsedJob{
		ID:               uuid.NewString(),
		Title:            res.Title,
		Company:          res.Company,
		Location:         res.Location,
		RawText:          raw.Text,
		Requirements:     res.Requirements,
		Responsibilities: res.Responsibilities,
		Benefits:         res.Benefits,
		Arrangement:      res.Arrangement,
		Salary:           res.Salary,
		Meta: posting.Metadata{
			ParseQuality: quality,
			Confidence:   confidence,
			PostedDate:   res.PostedDate,
			Deadline:     res.Deadline,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if raw.Overrides != nil {
		job.Meta.Source = raw.Overrides.Source
	}

	jobURL := ""
	if raw.Overrides != nil {
		jobURL = raw.Overrides.URL
	}
	job.CanonicalID = CanonicalID(jobURL, job.Company, job.Title, job.Location, res.PostedDate)

	p.logger.Debug("parsed job",
		zap.String("id", job.ID),
		zap.String("canonical_id", job.CanonicalID),
		zap.String("quality", string(quality)),
	)

	return &Outcome{Job: job, Status: StatusOK}, nil
}

// safeExtract shields the pipeline from extraction panics so they can take
// the fallback path instead of breaking the envelope contract.
func (p *Parser) safeExtract(raw *posting.RawPosting) (res *extract.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("extraction panicked: %v", r)
		}
	}()
	return p.extractor.Extract(raw), nil
}

// fallback builds the minimal low-confidence ParsedJob used when extraction
// fails for a non-validation reason.
func (p *Parser) fallback(raw *posting.RawPosting, reason string) *Outcome {
	now := time.Now().UTC()
	q := p.cfg.Quality

	job := &posting.ParsedJob{
		ID:          uuid.NewString(),
		CanonicalID: FallbackID(raw.Text, q.FallbackHashPrefixLen),
		Title:       posting.UnknownTitle,
		Company:     posting.UnknownCompany,
		Location:    posting.UnknownLocation,
		RawText:     raw.Text,
		Arrangement: posting.ArrangementUnknown,
		Meta: posting.Metadata{
			ParseQuality: posting.QualityLow,
			Confidence:   q.FallbackConfidence,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return &Outcome{Job: job, Status: StatusFallback, FallbackReason: reason}
}

func validate(raw *posting.RawPosting) *ValidationError {
	if raw == nil || strings.TrimSpace(raw.Text) == "" {
		return &ValidationError{
			Code:    CodeMissingDescription,
			Message: "job description is required",
		}
	}
	if n := len(raw.Text); n < posting.MinTextLength {
		return &ValidationError{
			Code:    CodeTooShort,
			Message: fmt.Sprintf("job description is %d characters, minimum is %d", n, posting.MinTextLength),
		}
	} else if n > posting.MaxTextLength {
		return &ValidationError{
			Code:    CodeTooLong,
			Message: fmt.Sprintf("job description is %d characters, maximum is %d", n, posting.MaxTextLength),
		}
	}
	return nil
}
