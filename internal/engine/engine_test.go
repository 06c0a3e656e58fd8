package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

// scoringOracle returns a fixed fit score per job title so batch ordering
// is deterministic.
type scoringOracle struct {
	scores map[string]float64
}

func (s *scoringOracle) Evaluate(_ context.Context, _ string, job *posting.ParsedJob) (*posting.FitResult, error) {
	score, ok := s.scores[job.Title]
	if !ok {
		return nil, fmt.Errorf("no score for %q", job.Title)
	}
	return &posting.FitResult{
		Score: score,
		Gaps:  posting.GapAnalysis{SeniorityAlignment: posting.Aligned},
	}, nil
}

func samplePosting(title, company string) *posting.RawPosting {
	text := title + "\n" +
		"Company: " + company + "\n" +
		"Location: Berlin, Germany\n" +
		"This is a fully remote position.\n\n" +
		"Requirements:\n" +
		"- 5+ years of experience with Go\n" +
		"- Solid PostgreSQL and SQL knowledge\n" +
		"- Docker and Kubernetes in production\n\n" +
		"Responsibilities:\n" +
		"- Design and build backend services\n" +
		"- Operate the deployment pipeline\n" +
		"- Review code and mentor engineers\n"
	return &posting.RawPosting{Text: text}
}

func testEngine(t *testing.T, opts Options) *Engine {
	t.Helper()

	eng, err := New(opts)
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	return eng
}

func TestRankJobEnvelope(t *testing.T) {
	eng := testEngine(t, Options{})

	resp := eng.RankJob(context.Background(), &RankRequest{
		Posting: samplePosting("Senior Backend Engineer", "Acme Corp"),
	})

	if !resp.Success {
		t.Fatalf("expected success, got error %+v", resp.Error)
	}
	ranked, ok := resp.Data.(*posting.RankedJob)
	if !ok {
		t.Fatalf("data is %T, want *posting.RankedJob", resp.Data)
	}
	if ranked.Job.Company != "Acme Corp" {
		t.Fatalf("company = %q, want Acme Corp", ranked.Job.Company)
	}
	if ranked.Scam == nil || ranked.Capital == nil {
		t.Fatalf("scam and capital verdicts must be attached")
	}

	if resp.Metadata.LayerID != "job-discovery" {
		t.Fatalf("layer id = %q", resp.Metadata.LayerID)
	}
	if resp.Metadata.LayerName != "Job Discovery & Ranking" {
		t.Fatalf("layer name = %q", resp.Metadata.LayerName)
	}
	if resp.Metadata.Timestamp.IsZero() {
		t.Fatalf("metadata timestamp is zero")
	}
}

func TestRankJobRejectsNilRequest(t *testing.T) {
	eng := testEngine(t, Options{})

	resp := eng.RankJob(context.Background(), nil)
	if resp.Success {
		t.Fatalf("expected a failure for a nil request")
	}
	if resp.Error.Code != CodeValidationError {
		t.Fatalf("code = %q, want %q", resp.Error.Code, CodeValidationError)
	}
}

func TestRankJobDetectsDuplicate(t *testing.T) {
	eng := testEngine(t, Options{})
	req := &RankRequest{Posting: samplePosting("Senior Backend Engineer", "Acme Corp")}

	if resp := eng.RankJob(context.Background(), req); !resp.Success {
		t.Fatalf("first ranking failed: %+v", resp.Error)
	}

	resp := eng.RankJob(context.Background(), req)
	if resp.Success {
		t.Fatalf("second ranking of the same posting should fail")
	}
	if resp.Error.Code != CodeDuplicateJob {
		t.Fatalf("code = %q, want %q", resp.Error.Code, CodeDuplicateJob)
	}
	if resp.Error.Title == "" || resp.Error.Suggestion == "" {
		t.Fatalf("duplicate error should carry presentation fields, got %+v", resp.Error)
	}
}

func TestParseEnvelopeValidation(t *testing.T) {
	eng := testEngine(t, Options{})

	resp := eng.Parse(&posting.RawPosting{Text: "tiny"})
	if resp.Success {
		t.Fatalf("expected a validation failure")
	}
	if resp.Error.Code != CodeTooShort {
		t.Fatalf("code = %q, want %q", resp.Error.Code, CodeTooShort)
	}
}

func TestRankBatchOrderingAndFailureIsolation(t *testing.T) {
	oracle := &scoringOracle{scores: map[string]float64{
		"Backend Engineer":  70,
		"Platform Engineer": 90,
		"Data Engineer":     50,
	}}
	eng := testEngine(t, Options{Oracle: oracle})

	reqs := []*RankRequest{
		{Posting: samplePosting("Backend Engineer", "Acme Corp"), ResumeText: "resume"},
		{Posting: &posting.RawPosting{Text: "tiny"}},
		{Posting: samplePosting("Platform Engineer", "Initech"), ResumeText: "resume"},
		{Posting: samplePosting("Data Engineer", "Globex"), ResumeText: "resume"},
	}

	resp := eng.RankBatch(context.Background(), reqs)
	if !resp.Success {
		t.Fatalf("batch failed: %+v", resp.Error)
	}
	result, ok := resp.Data.(*BatchResult)
	if !ok {
		t.Fatalf("data is %T, want *BatchResult", resp.Data)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("failures = %+v, want exactly one", result.Failures)
	}
	if result.Failures[0].Index != 1 || result.Failures[0].Error.Code != CodeTooShort {
		t.Fatalf("failure = %+v, want index 1 with %s", result.Failures[0], CodeTooShort)
	}

	if len(result.Ranked) != 3 {
		t.Fatalf("ranked %d jobs, want 3", len(result.Ranked))
	}
	wantOrder := []string{"Platform Engineer", "Backend Engineer", "Data Engineer"}
	for i, job := range result.Ranked {
		if job.Job.Title != wantOrder[i] {
			t.Fatalf("position %d is %q, want %q", i, job.Job.Title, wantOrder[i])
		}
		if job.Rank != i+1 {
			t.Fatalf("rank at position %d = %d, want %d", i, job.Rank, i+1)
		}
		if i > 0 && job.Breakdown.Final > result.Ranked[i-1].Breakdown.Final {
			t.Fatalf("final scores are not descending at position %d", i)
		}
	}
}

func TestRankBatchCollapsesDuplicateSubmissions(t *testing.T) {
	eng := testEngine(t, Options{})

	reqs := []*RankRequest{
		{Posting: samplePosting("Senior Backend Engineer", "Acme Corp")},
		{Posting: samplePosting("Senior Backend Engineer", "Acme Corp")},
	}

	resp := eng.RankBatch(context.Background(), reqs)
	if !resp.Success {
		t.Fatalf("batch failed: %+v", resp.Error)
	}
	result := resp.Data.(*BatchResult)

	if len(result.Ranked) != 1 {
		t.Fatalf("ranked %d jobs, want 1", len(result.Ranked))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("failures = %+v, want exactly one", result.Failures)
	}
	if result.Failures[0].Index != 1 || result.Failures[0].Error.Code != CodeDuplicateJob {
		t.Fatalf("failure = %+v, want index 1 with %s", result.Failures[0], CodeDuplicateJob)
	}
}

// panickyOracle simulates a misbehaving fit backend.
type panickyOracle struct{}

func (panickyOracle) Evaluate(context.Context, string, *posting.ParsedJob) (*posting.FitResult, error) {
	panic("oracle exploded")
}

func TestRankBatchRecoversPanickingOracle(t *testing.T) {
	eng := testEngine(t, Options{Oracle: panickyOracle{}})

	reqs := []*RankRequest{
		{Posting: samplePosting("Senior Backend Engineer", "Acme Corp"), ResumeText: "resume"},
	}

	resp := eng.RankBatch(context.Background(), reqs)
	if !resp.Success {
		t.Fatalf("batch failed: %+v", resp.Error)
	}
	result := resp.Data.(*BatchResult)

	if len(result.Failures) != 1 {
		t.Fatalf("failures = %+v, want exactly one", result.Failures)
	}
	if result.Failures[0].Error.Code != CodeRankingFailed {
		t.Fatalf("failure code = %s, want %s", result.Failures[0].Error.Code, CodeRankingFailed)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Category.SafetyMinFit = 10

	_, err = New(Options{Config: cfg})
	if err == nil {
		t.Fatalf("expected an error for an invalid config")
	}

	var engErr *Error
	if !errors.As(err, &engErr) || engErr.Code != CodeConfigError {
		t.Fatalf("error = %v, want %s", err, CodeConfigError)
	}
}

func TestCheckDuplicate(t *testing.T) {
	eng := testEngine(t, Options{})
	ctx := context.Background()

	resp := eng.CheckDuplicate(ctx, "hash:abc")
	check := resp.Data.(*DuplicateCheck)
	if check.Duplicate {
		t.Fatalf("fresh id reported as duplicate")
	}

	if r := eng.RankJob(ctx, &RankRequest{Posting: samplePosting("Senior Backend Engineer", "Acme Corp")}); !r.Success {
		t.Fatalf("ranking failed: %+v", r.Error)
	}
	ranked := eng.RankJob(ctx, &RankRequest{Posting: samplePosting("Senior Backend Engineer", "Acme Corp")})
	if ranked.Success || ranked.Error.Code != CodeDuplicateJob {
		t.Fatalf("expected the canonical id to be remembered")
	}
}

func TestCompareRequiresTwoJobs(t *testing.T) {
	eng := testEngine(t, Options{})

	resp := eng.Compare([]*posting.RankedJob{{Job: &posting.ParsedJob{ID: "a"}}})
	if resp.Success {
		t.Fatalf("expected a failure")
	}
	if resp.Error.Code != CodeComparisonFailed {
		t.Fatalf("code = %q, want %q", resp.Error.Code, CodeComparisonFailed)
	}
}

func listFixture() []*posting.RankedJob {
	job := func(id string, cat posting.Category, fit float64, apply bool, flags posting.Flags) *posting.RankedJob {
		return &posting.RankedJob{
			Job:         &posting.ParsedJob{ID: id, CanonicalID: "hash:" + id},
			Category:    cat,
			FitScore:    fit,
			ShouldApply: apply,
			Flags:       flags,
		}
	}
	return []*posting.RankedJob{
		job("target-high", posting.CategoryTarget, 80, true, posting.Flags{}),
		job("target-low", posting.CategoryTarget, 45, false, posting.Flags{}),
		job("safety", posting.CategorySafety, 90, true, posting.Flags{}),
		job("avoid", posting.CategoryAvoid, 30, false, posting.Flags{}),
		job("rejected", posting.CategoryTarget, 85, true, posting.Flags{Rejected: true}),
		job("expired", posting.CategoryTarget, 75, true, posting.Flags{Expired: true}),
	}
}

func ids(jobs []*posting.RankedJob) string {
	parts := make([]string, 0, len(jobs))
	for _, j := range jobs {
		parts = append(parts, j.Job.ID)
	}
	return strings.Join(parts, ",")
}

func TestListFilters(t *testing.T) {
	eng := testEngine(t, Options{})
	minFit := 70

	tests := []struct {
		name  string
		query ListQuery
		want  string
	}{
		{
			name:  "default drops expired and rejected",
			query: ListQuery{},
			want:  "target-high,target-low,safety,avoid",
		},
		{
			name:  "category",
			query: ListQuery{Category: posting.CategoryTarget},
			want:  "target-high,target-low",
		},
		{
			name:  "min fit",
			query: ListQuery{MinFit: &minFit},
			want:  "target-high,safety",
		},
		{
			name:  "only should apply",
			query: ListQuery{OnlyShouldApply: true},
			want:  "target-high,safety",
		},
		{
			name:  "include expired",
			query: ListQuery{IncludeExpired: true},
			want:  "target-high,target-low,safety,avoid,expired",
		},
		{
			name:  "include rejected",
			query: ListQuery{IncludeRejected: true},
			want:  "target-high,target-low,safety,avoid,rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := eng.List(listFixture(), tt.query)
			if !resp.Success {
				t.Fatalf("List failed: %+v", resp.Error)
			}
			got, ok := resp.Data.([]*posting.RankedJob)
			if !ok {
				t.Fatalf("List data type = %T, want []*posting.RankedJob", resp.Data)
			}
			if ids(got) != tt.want {
				t.Fatalf("filtered ids = %q, want %q", ids(got), tt.want)
			}
		})
	}
}

func TestSortAndRankTieBreaks(t *testing.T) {
	job := func(id string, final, fit float64) *posting.RankedJob {
		return &posting.RankedJob{
			Job:       &posting.ParsedJob{ID: id, CanonicalID: "hash:" + id},
			FitScore:  fit,
			Breakdown: posting.ScoreBreakdown{Final: final},
		}
	}
	jobs := []*posting.RankedJob{
		job("b", 70, 60),
		job("a", 70, 60),
		job("c", 70, 80),
		job("d", 90, 10),
	}

	SortAndRank(jobs)

	if got := ids(jobs); got != "d,c,a,b" {
		t.Fatalf("order = %q, want d,c,a,b", got)
	}
	for i, j := range jobs {
		if j.Rank != i+1 {
			t.Fatalf("rank of %s = %d, want %d", j.Job.ID, j.Rank, i+1)
		}
	}
}

func TestReportByCompany(t *testing.T) {
	job := func(company, title string, fit, final float64, apply bool) *posting.RankedJob {
		return &posting.RankedJob{
			Job:         &posting.ParsedJob{Company: company, Title: title},
			FitScore:    fit,
			Breakdown:   posting.ScoreBreakdown{Final: final},
			ShouldApply: apply,
		}
	}

	groups := ReportByCompany([]*posting.RankedJob{
		job("Acme Corp", "Backend Engineer", 80, 70, true),
		job("Acme Corp", "Platform Engineer", 60, 50, false),
		job("Initech", "Data Engineer", 90, 85, true),
	})

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Company != "Initech" {
		t.Fatalf("first group = %q, want the best-fit company Initech", groups[0].Company)
	}
	acme := groups[1]
	if acme.Count != 2 || acme.BestFit != 80 || acme.ShouldApply != 1 {
		t.Fatalf("acme group = %+v", acme)
	}
	if acme.AvgPriority != 60 {
		t.Fatalf("acme avg priority = %v, want 60", acme.AvgPriority)
	}
}

func TestRankJobNeverPanicsOnDegradedOracle(t *testing.T) {
	// No oracle, no resume: the pipeline runs on the neutral fit estimate.
	eng := testEngine(t, Options{Now: func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}})

	resp := eng.RankJob(context.Background(), &RankRequest{
		Posting: samplePosting("Senior Backend Engineer", "Acme Corp"),
	})
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp.Error)
	}
	ranked := resp.Data.(*posting.RankedJob)
	if ranked.FitScore != posting.NeutralFit {
		t.Fatalf("fit = %v, want the neutral %v", ranked.FitScore, posting.NeutralFit)
	}
}
