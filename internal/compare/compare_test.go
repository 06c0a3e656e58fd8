package compare

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spigell/jobsift/internal/posting"
)

func rankedJob(id, title string, fit float64, skills ...string) *posting.RankedJob {
	var required []posting.ExtractedSkill
	for _, s := range skills {
		required = append(required, posting.ExtractedSkill{Name: s})
	}
	return &posting.RankedJob{
		Job: &posting.ParsedJob{
			ID:    id,
			Title: title,
			Requirements: posting.JobRequirements{
				RequiredSkills: required,
			},
		},
		FitScore: fit,
		Category: posting.CategoryTarget,
	}
}

func TestCompareRejectsSingleJob(t *testing.T) {
	_, err := Compare([]*posting.RankedJob{rankedJob("a", "Engineer", 70, "go")})
	if !errors.Is(err, ErrNotEnoughJobs) {
		t.Fatalf("expected ErrNotEnoughJobs, got %v", err)
	}
}

func TestCompareTruncatesToMaxJobs(t *testing.T) {
	var jobs []*posting.RankedJob
	for i := 0; i < 6; i++ {
		jobs = append(jobs, rankedJob(fmt.Sprintf("job-%d", i), "Engineer", float64(50+i), "go"))
	}

	res, err := Compare(jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.UniqueRequirements) != MaxJobs {
		t.Fatalf("expected %d jobs compared, got %d", MaxJobs, len(res.UniqueRequirements))
	}
	if _, ok := res.UniqueRequirements["job-5"]; ok {
		t.Fatalf("sixth job should have been dropped before comparison")
	}
	// job-5 has the top fit but must not win after truncation.
	if res.BestFit.JobID != "job-4" {
		t.Fatalf("expected job-4 as best fit, got %s", res.BestFit.JobID)
	}
}

func TestCompareRequirementOverlap(t *testing.T) {
	a := rankedJob("a", "Backend Engineer", 80, "Go", "PostgreSQL", "Docker")
	b := rankedJob("b", "Platform Engineer", 60, "Go", "Kubernetes", "Docker")

	res, err := Compare([]*posting.RankedJob{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCommon := []string{"docker", "go"}
	if len(res.CommonRequirements) != len(wantCommon) {
		t.Fatalf("common requirements = %v, want %v", res.CommonRequirements, wantCommon)
	}
	for i, token := range wantCommon {
		if res.CommonRequirements[i] != token {
			t.Fatalf("common requirements = %v, want %v", res.CommonRequirements, wantCommon)
		}
	}

	if got := res.UniqueRequirements["a"]; len(got) != 1 || got[0] != "postgresql" {
		t.Fatalf("unique for a = %v, want [postgresql]", got)
	}
	if got := res.UniqueRequirements["b"]; len(got) != 1 || got[0] != "kubernetes" {
		t.Fatalf("unique for b = %v, want [kubernetes]", got)
	}
}

func TestCompareCoverage(t *testing.T) {
	a := rankedJob("a", "Backend Engineer", 80, "Go", "PostgreSQL")
	a.Gaps.Skills.Matched = []string{"Go"}
	b := rankedJob("b", "Platform Engineer", 60, "Go", "Kubernetes", "Terraform")
	b.Gaps.Skills.Matched = []string{"Go"}
	b.Gaps.Tools.Matched = []string{"Kubernetes"}

	res, err := Compare([]*posting.RankedJob{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Union is go/postgresql/kubernetes/terraform; go and kubernetes match.
	if res.CoveragePercent != 50 {
		t.Fatalf("coverage = %v, want 50", res.CoveragePercent)
	}
}

func TestCompareEasiestPrefersSafety(t *testing.T) {
	a := rankedJob("a", "Staff Engineer", 90, "go")
	b := rankedJob("b", "Backend Engineer", 70, "go")
	b.Category = posting.CategorySafety
	c := rankedJob("c", "Junior Engineer", 60, "go")
	c.Category = posting.CategorySafety

	res, err := Compare([]*posting.RankedJob{a, b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.BestFit.JobID != "a" {
		t.Fatalf("best fit = %s, want a", res.BestFit.JobID)
	}
	if res.Easiest.JobID != "b" {
		t.Fatalf("easiest = %s, want the highest-fit safety job b", res.Easiest.JobID)
	}
}

func TestCompareEasiestFallsBackToBestFit(t *testing.T) {
	a := rankedJob("a", "Staff Engineer", 90, "go")
	b := rankedJob("b", "Backend Engineer", 70, "go")

	res, err := Compare([]*posting.RankedJob{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Easiest.JobID != res.BestFit.JobID {
		t.Fatalf("without safety jobs easiest should equal best fit, got %s", res.Easiest.JobID)
	}
}

func TestCompareCapitalAndCompensation(t *testing.T) {
	a := rankedJob("a", "Backend Engineer", 80, "go")
	a.Capital = &posting.CareerCapital{Score: 70, Brand: posting.SubScore{Score: 95}}
	aMax := 140000
	a.Job.Salary = &posting.SalaryRange{Max: &aMax}

	b := rankedJob("b", "Platform Engineer", 60, "go")
	b.Capital = &posting.CareerCapital{Score: 85, Brand: posting.SubScore{Score: 60}}
	bMin := 150000
	b.Job.Salary = &posting.SalaryRange{Min: &bMin}

	res, err := Compare([]*posting.RankedJob{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.BestGrowth.JobID != "b" {
		t.Fatalf("best growth = %s, want b", res.BestGrowth.JobID)
	}
	if res.BestBrand.JobID != "a" {
		t.Fatalf("best brand = %s, want a", res.BestBrand.JobID)
	}
	if res.BestCompensation == nil || res.BestCompensation.JobID != "b" {
		t.Fatalf("best compensation = %+v, want b", res.BestCompensation)
	}
}

func TestCompareNoSalariesNoCompensationPick(t *testing.T) {
	res, err := Compare([]*posting.RankedJob{
		rankedJob("a", "Backend Engineer", 80, "go"),
		rankedJob("b", "Platform Engineer", 60, "go"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BestCompensation != nil {
		t.Fatalf("expected nil compensation pick, got %+v", res.BestCompensation)
	}
}

func TestCompareScamInsight(t *testing.T) {
	a := rankedJob("a", "Backend Engineer", 80, "go")
	b := rankedJob("b", "Platform Engineer", 60, "go")
	b.Flags.ScamRisk = true

	res, err := Compare([]*posting.RankedJob{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, insight := range res.Insights {
		if insight == "1 of the compared jobs carry scam-risk flags, verify before applying" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected scam insight, got %v", res.Insights)
	}
}
