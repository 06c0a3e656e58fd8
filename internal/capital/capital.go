// Package capital estimates the long-term career value of a job from four
// independent 0-100 sub-scores: employer brand, skill growth, network
// potential and compensation competitiveness, combined by configured
// weights. It is deliberately independent of the fit pipeline.
package capital

import (
	"fmt"
	"strings"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

// Scorer computes career-capital scores.
type Scorer struct {
	cfg *config.CapitalConfig
}

// New creates a Scorer.
func New(cfg *config.CapitalConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Assess computes the aggregate career capital for a job. The gap analysis
// is optional: when present, skill growth counts skills the candidate does
// not yet have; otherwise the posting's own requirements stand in.
func (s *Scorer) Assess(job *posting.ParsedJob, gaps *posting.GapAnalysis) *posting.CareerCapital {
	brand := s.brandScore(job)
	growth := s.growthScore(job, gaps)
	network := s.networkScore(job)
	compensation := s.compensationScore(job)

	total := s.cfg.BrandWeight + s.cfg.GrowthWeight + s.cfg.NetworkWeight + s.cfg.CompensationWeight
	aggregate := (s.cfg.BrandWeight*brand.Score +
		s.cfg.GrowthWeight*growth.Score +
		s.cfg.NetworkWeight*network.Score +
		s.cfg.CompensationWeight*compensation.Score) / total

	return &posting.CareerCapital{
		Score:        aggregate,
		Brand:        brand,
		SkillGrowth:  growth,
		Network:      network,
		Compensation: compensation,
	}
}

// brandScore looks the company tier up in the configured table.
func (s *Scorer) brandScore(job *posting.ParsedJob) posting.SubScore {
	tier := strings.ToLower(strings.TrimSpace(job.Meta.CompanyTier))
	if tier == "" {
		tier = "unknown"
	}
	score, ok := s.cfg.BrandTiers[tier]
	if !ok {
		score = s.cfg.BrandTiers["unknown"]
	}

	var interp string
	switch {
	case score >= 85:
		interp = "top-tier employer brand that opens doors on its own"
	case score >= 65:
		interp = "recognizable employer with solid resume value"
	case score >= 50:
		interp = "growing company, brand value depends on trajectory"
	default:
		interp = "unknown employer, expect to explain it in interviews"
	}
	return posting.SubScore{Score: score, Interpretation: interp}
}

// growthScore rewards requirements the candidate has not learned yet, with
// a bonus for cutting-edge tech in the stack.
func (s *Scorer) growthScore(job *posting.ParsedJob, gaps *posting.GapAnalysis) posting.SubScore {
	var newSkills int
	if gaps != nil {
		newSkills = len(gaps.Skills.Missing) + len(gaps.Tools.Missing)
	} else {
		newSkills = len(job.Requirements.RequiredSkills) + len(job.Requirements.RequiredTools)
	}

	score := 40.0 + float64(newSkills)*8
	if score > 85 {
		score = 85
	}

	lower := strings.ToLower(job.RawText)
	cuttingEdge := false
	for _, tech := range s.cfg.CuttingEdge {
		if tech != "" && strings.Contains(lower, strings.ToLower(tech)) {
			cuttingEdge = true
			break
		}
	}
	if cuttingEdge {
		score += 15
	}
	score = clamp(score)

	var interp string
	switch {
	case score >= 75:
		interp = fmt.Sprintf("strong learning curve: %d new skills, modern stack", newSkills)
	case score >= 55:
		interp = "moderate skill growth on a familiar stack"
	default:
		interp = "little new to learn here, growth would come from scope, not tech"
	}
	return posting.SubScore{Score: score, Interpretation: interp}
}

// networkScore blends tech-hub location with company size, minus a penalty
// for fully remote roles where hallway networks don't form.
func (s *Scorer) networkScore(job *posting.ParsedJob) posting.SubScore {
	location := strings.ToLower(job.Location)

	hubScore := 50.0
	for _, hub := range s.cfg.TechHubs {
		if hub != "" && strings.Contains(location, strings.ToLower(hub)) {
			hubScore = 80
			break
		}
	}

	size := strings.ToLower(strings.TrimSpace(job.Meta.CompanySize))
	if size == "" {
		size = "unknown"
	}
	sizeScore, ok := s.cfg.CompanySizeScore[size]
	if !ok {
		sizeScore = s.cfg.CompanySizeScore["unknown"]
	}

	score := (hubScore + sizeScore) / 2
	if job.Arrangement == posting.Remote {
		score -= s.cfg.RemotePenalty
	}
	score = clamp(score)

	var interp string
	switch {
	case score >= 70:
		interp = "well positioned for professional network growth"
	case score >= 50:
		interp = "average networking potential"
	default:
		interp = "limited in-person network building, invest in communities instead"
	}
	return posting.SubScore{Score: score, Interpretation: interp}
}

// compensationScore compares the offered salary against the seniority
// benchmark adjusted by the location multiplier.
func (s *Scorer) compensationScore(job *posting.ParsedJob) posting.SubScore {
	if job.Salary == nil || (job.Salary.Min == nil && job.Salary.Max == nil) {
		return posting.SubScore{Score: 50, Interpretation: "no salary disclosed, assume market rate until told otherwise"}
	}

	offered := salaryMidpoint(job.Salary)

	seniority := string(job.Requirements.SeniorityExpected)
	benchmark, ok := s.cfg.SalaryBenchmarks[seniority]
	if !ok || benchmark == 0 {
		benchmark = s.cfg.SalaryBenchmarks["mid"]
	}

	multiplier := 1.0
	location := strings.ToLower(job.Location)
	for loc, m := range s.cfg.LocationMultipliers {
		if strings.Contains(location, strings.ToLower(loc)) {
			multiplier = m
			break
		}
	}

	expected := benchmark * multiplier
	if expected == 0 {
		return posting.SubScore{Score: 50, Interpretation: "no benchmark for this seniority"}
	}

	ratio := offered / expected
	score := clamp(ratio * 70)

	var interp string
	switch {
	case ratio >= 1.2:
		interp = "compensation well above the local benchmark"
	case ratio >= 0.9:
		interp = "compensation in line with the local benchmark"
	default:
		interp = "compensation below the local benchmark, negotiate or trade for equity"
	}
	return posting.SubScore{Score: score, Interpretation: interp}
}

func salaryMidpoint(s *posting.SalaryRange) float64 {
	switch {
	case s.Min != nil && s.Max != nil:
		return float64(*s.Min+*s.Max) / 2
	case s.Min != nil:
		return float64(*s.Min)
	default:
		return float64(*s.Max)
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
