package fit

import (
	"context"
	"errors"
	"testing"

	"github.com/spigell/jobsift/internal/posting"
)

type stubOracle struct {
	result *posting.FitResult
	err    error
	calls  int
}

func (s *stubOracle) Evaluate(_ context.Context, _ string, _ *posting.ParsedJob) (*posting.FitResult, error) {
	s.calls++
	return s.result, s.err
}

func sampleJob() *posting.ParsedJob {
	minYears := 5
	return &posting.ParsedJob{
		ID:    "job-1",
		Title: "Senior Backend Engineer",
		Requirements: posting.JobRequirements{
			RequiredSkills: []posting.ExtractedSkill{
				{Name: "Go", Importance: posting.Critical},
				{Name: "Kafka", Importance: posting.Critical},
			},
			RequiredTools:     []posting.ExtractedSkill{{Name: "PostgreSQL"}},
			MinYears:          &minYears,
			SeniorityExpected: posting.SenioritySenior,
		},
	}
}

func TestAnalyzeUsesOracleResult(t *testing.T) {
	want := &posting.FitResult{Score: 82}
	oracle := &stubOracle{result: want}
	a := NewAdapter(oracle, nil)

	got := a.Analyze(context.Background(), "resume", sampleJob())
	if got != want {
		t.Fatalf("expected the oracle result to pass through, got %+v", got)
	}
	if oracle.calls != 1 {
		t.Fatalf("oracle called %d times, want 1", oracle.calls)
	}
}

func TestAnalyzeDegradesToEstimateOnOracleError(t *testing.T) {
	oracle := &stubOracle{err: errors.New("quota exceeded")}
	a := NewAdapter(oracle, nil)

	resume := "7 years of experience building Go services on PostgreSQL."
	got := a.Analyze(context.Background(), resume, sampleJob())

	if !got.Degraded {
		t.Fatalf("expected a degraded result")
	}
	// An estimate reflects the resume, so it is not the neutral stand-in.
	if len(got.Gaps.Skills.Matched) == 0 {
		t.Fatalf("expected the estimate to match resume skills, got %+v", got.Gaps)
	}
}

func TestAnalyzeNeutralWithoutOracleAndResume(t *testing.T) {
	a := NewAdapter(nil, nil)

	got := a.Analyze(context.Background(), "", sampleJob())

	if got.Score != posting.NeutralFit {
		t.Fatalf("score = %v, want %v", got.Score, posting.NeutralFit)
	}
	if !got.Degraded {
		t.Fatalf("neutral result must be marked degraded")
	}
	if got.Gaps.SeniorityAlignment != posting.Aligned {
		t.Fatalf("neutral alignment = %s, want aligned", got.Gaps.SeniorityAlignment)
	}
}

func TestEstimateMatchesAndGaps(t *testing.T) {
	resume := "Backend developer with 7 years of experience. Strong Go and PostgreSQL background."
	got := Estimate(resume, sampleJob())

	if !got.Degraded {
		t.Fatalf("estimate must be marked degraded")
	}
	if len(got.Gaps.Skills.Matched) != 1 || got.Gaps.Skills.Matched[0] != "Go" {
		t.Fatalf("matched skills = %v, want [Go]", got.Gaps.Skills.Matched)
	}
	if len(got.Gaps.Skills.Missing) != 1 || got.Gaps.Skills.Missing[0] != "Kafka" {
		t.Fatalf("missing skills = %v, want [Kafka]", got.Gaps.Skills.Missing)
	}
	if got.Gaps.CriticalMissing != 1 {
		t.Fatalf("critical missing = %d, want 1 (Kafka)", got.Gaps.CriticalMissing)
	}
	if got.Gaps.Tools.MatchPercent != 100 {
		t.Fatalf("tools match = %v, want 100", got.Gaps.Tools.MatchPercent)
	}
	if len(got.Gaps.Experience.Matched) != 1 {
		t.Fatalf("7 stated years should satisfy 5+ required, got %+v", got.Gaps.Experience)
	}
	if got.Gaps.SeniorityAlignment != posting.Aligned {
		t.Fatalf("alignment = %s, want aligned", got.Gaps.SeniorityAlignment)
	}
}

func TestEstimateUnderqualified(t *testing.T) {
	resume := "Junior developer with 2 years of experience in Go."
	got := Estimate(resume, sampleJob())

	if got.Gaps.SeniorityAlignment != posting.Underqualified {
		t.Fatalf("alignment = %s, want underqualified", got.Gaps.SeniorityAlignment)
	}
	// 2 stated years against a 6-year senior band floor.
	if got.Gaps.GapYears != 4 {
		t.Fatalf("gap years = %d, want 4", got.Gaps.GapYears)
	}
}

func TestEstimateScoreRewardsOverlap(t *testing.T) {
	job := sampleJob()
	weak := Estimate("Warehouse logistics coordinator.", job)
	strong := Estimate("8 years of experience with Go, Kafka and PostgreSQL.", job)

	if strong.Score <= weak.Score {
		t.Fatalf("strong resume scored %v, weak %v", strong.Score, weak.Score)
	}
}
