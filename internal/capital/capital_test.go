package capital

import (
	"testing"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

func testScorer(t *testing.T) *Scorer {
	t.Helper()

	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return New(&cfg.Capital)
}

func TestAssessAggregatesSubScores(t *testing.T) {
	s := testScorer(t)

	min, max := 150000, 180000
	job := &posting.ParsedJob{
		Company:  "BigCo",
		Location: "San Francisco, CA",
		RawText:  "We run everything on Kubernetes and Terraform.",
		Salary:   &posting.SalaryRange{Min: &min, Max: &max},
		Requirements: posting.JobRequirements{
			SeniorityExpected: posting.SenioritySenior,
		},
		Meta: posting.Metadata{
			CompanyTier: "faang",
			CompanySize: "large",
		},
	}

	capital := s.Assess(job, &posting.GapAnalysis{
		Skills: posting.DimensionGap{Missing: []string{"Rust", "Kafka"}},
		Tools:  posting.DimensionGap{Missing: []string{"Terraform"}},
	})

	if capital.Brand.Score != 100 {
		t.Fatalf("faang brand should score 100, got %v", capital.Brand.Score)
	}
	// 3 new skills plus a cutting-edge stack: 40 + 24 + 15.
	if capital.SkillGrowth.Score != 79 {
		t.Fatalf("unexpected growth score: %v", capital.SkillGrowth.Score)
	}
	// Tech hub (80) blended with large company (80), no remote penalty.
	if capital.Network.Score != 80 {
		t.Fatalf("unexpected network score: %v", capital.Network.Score)
	}
	if capital.Compensation.Score == 50 {
		t.Fatalf("disclosed salary should not score the no-data neutral")
	}

	if capital.Score <= 0 || capital.Score > 100 {
		t.Fatalf("aggregate out of range: %v", capital.Score)
	}
	for _, sub := range []posting.SubScore{capital.Brand, capital.SkillGrowth, capital.Network, capital.Compensation} {
		if sub.Interpretation == "" {
			t.Fatalf("every sub-score needs an interpretation")
		}
	}
}

func TestAssessDefaults(t *testing.T) {
	s := testScorer(t)

	job := &posting.ParsedJob{
		Company:  "Tiny Startup",
		Location: posting.UnknownLocation,
		RawText:  "A quiet CRUD shop.",
	}

	capital := s.Assess(job, nil)

	if capital.Brand.Score != 40 {
		t.Fatalf("unknown tier should use the unknown brand score, got %v", capital.Brand.Score)
	}
	if capital.Compensation.Score != 50 {
		t.Fatalf("no salary should be neutral, got %v", capital.Compensation.Score)
	}
	// No requirements and no gaps: growth floor without bonuses.
	if capital.SkillGrowth.Score != 40 {
		t.Fatalf("unexpected growth score: %v", capital.SkillGrowth.Score)
	}
}

func TestNetworkRemotePenalty(t *testing.T) {
	s := testScorer(t)

	office := &posting.ParsedJob{Location: "Berlin", Arrangement: posting.Onsite}
	remote := &posting.ParsedJob{Location: "Berlin", Arrangement: posting.Remote}

	officeScore := s.Assess(office, nil).Network.Score
	remoteScore := s.Assess(remote, nil).Network.Score

	if remoteScore != officeScore-15 {
		t.Fatalf("remote should cost the configured penalty: %v vs %v", remoteScore, officeScore)
	}
}
