package score

import (
	"testing"
	"time"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

func testScorer(t *testing.T) *Scorer {
	t.Helper()

	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return New(&cfg.Priority)
}

func TestScoreBreakdown(t *testing.T) {
	s := testScorer(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	posted := now.AddDate(0, 0, -2)

	job := &posting.ParsedJob{
		Arrangement: posting.Remote,
		Meta:        posting.Metadata{PostedDate: &posted},
	}

	b, tier := s.Score(Input{
		Job:         job,
		FitScore:    80,
		Category:    posting.CategoryTarget,
		ShouldApply: true,
		Now:         now,
	})

	if b.Fit != 80 {
		t.Fatalf("unexpected fit component: %v", b.Fit)
	}
	if b.PreferenceMatch != 100 {
		t.Fatalf("no preferences should score 100, got %v", b.PreferenceMatch)
	}
	if b.Freshness != 90 {
		t.Fatalf("posted 2 days ago should score 90, got %v", b.Freshness)
	}
	if b.CategoryBonus != 15 {
		t.Fatalf("target bonus should be 15, got %v", b.CategoryBonus)
	}
	if len(b.Penalties) != 0 {
		t.Fatalf("unexpected penalties: %+v", b.Penalties)
	}
	if b.Final != b.Raw {
		t.Fatalf("final should equal raw without penalties: %v vs %v", b.Final, b.Raw)
	}

	// fit .45*80 + prefs .25*100 + freshness .15*90 + urgency .15*x + 15:
	// every component is at least 36+25+13.5+15 = 89.5.
	if b.Final < 89 {
		t.Fatalf("final unexpectedly low: %v", b.Final)
	}
	if tier != posting.TierHigh {
		t.Fatalf("expected high tier, got %s", tier)
	}
}

func TestScorePenalties(t *testing.T) {
	s := testScorer(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	expired := now.AddDate(0, 0, -1)
	lowMax := 80000
	wantMin := 120000

	job := &posting.ParsedJob{
		Arrangement: posting.Onsite,
		Location:    "Munich, Germany",
		Salary:      &posting.SalaryRange{Min: &lowMax, Max: &lowMax},
		Meta:        posting.Metadata{Deadline: &expired},
	}

	b, _ := s.Score(Input{
		Job:      job,
		FitScore: 70,
		Category: posting.CategoryTarget,
		Prefs: &posting.Preferences{
			Locations:     []string{"Berlin"},
			SalaryMinimum: &wantMin,
		},
		ScamLevel:   posting.RiskHigh,
		ShouldApply: true,
		Now:         now,
	})

	wantPenalties := map[string]float64{
		PenaltyLocationMismatch: -10,
		PenaltySalaryBelowMin:   -15,
		PenaltyScamRisk:         -30,
		PenaltyExpired:          -50,
	}
	for _, p := range b.Penalties {
		want, ok := wantPenalties[p.Name]
		if !ok {
			t.Fatalf("unexpected penalty %q", p.Name)
		}
		if p.Amount != want {
			t.Fatalf("penalty %q: got %v, want %v", p.Name, p.Amount, want)
		}
		delete(wantPenalties, p.Name)
	}
	if len(wantPenalties) != 0 {
		t.Fatalf("penalties not itemized: %v", wantPenalties)
	}

	sum := b.Raw
	for _, p := range b.Penalties {
		sum += p.Amount
	}
	if sum < 0 {
		sum = 0
	}
	if b.Final != sum {
		t.Fatalf("final %v does not match raw plus penalties %v", b.Final, sum)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	s := testScorer(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	expired := now.AddDate(0, 0, -30)

	job := &posting.ParsedJob{
		Arrangement: posting.Onsite,
		Meta:        posting.Metadata{Deadline: &expired},
	}

	b, _ := s.Score(Input{
		Job:       job,
		FitScore:  0,
		Category:  posting.CategoryAvoid,
		ScamLevel: posting.RiskHigh,
		Now:       now,
	})

	if b.Final < 0 {
		t.Fatalf("final score must be clamped at zero, got %v", b.Final)
	}
}

func TestTierLowWhenShouldNotApply(t *testing.T) {
	s := testScorer(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	posted := now

	job := &posting.ParsedJob{Meta: posting.Metadata{PostedDate: &posted}}

	_, tier := s.Score(Input{
		Job:         job,
		FitScore:    95,
		Category:    posting.CategorySafety,
		Flags:       posting.Flags{DreamJob: true, New: true},
		ShouldApply: false,
		Now:         now,
	})

	if tier != posting.TierLow {
		t.Fatalf("should-apply=false must force low tier, got %s", tier)
	}
}

func TestTierScamPenalty(t *testing.T) {
	s := testScorer(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	job := &posting.ParsedJob{}

	_, clean := s.Score(Input{
		Job: job, FitScore: 72, Category: posting.CategoryTarget,
		ShouldApply: true, Now: now,
	})
	_, risky := s.Score(Input{
		Job: job, FitScore: 72, Category: posting.CategoryTarget,
		ScamLevel: posting.RiskMedium, ShouldApply: true, Now: now,
	})

	if clean == posting.TierLow {
		t.Fatalf("clean job unexpectedly low tier")
	}
	if risky == clean {
		t.Fatalf("scam risk should drop the tier, both got %s", risky)
	}
}
