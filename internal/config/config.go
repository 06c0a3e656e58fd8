// Package config holds the engine's externalized tuning: scoring weights,
// category bands, keyword tables. It is loaded and validated once and is
// read-only afterwards, so the pipeline shares it without synchronization.
package config

import (
	"fmt"
	"strings"
)

// Config is the full engine configuration.
type Config struct {
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Quality    QualityConfig    `mapstructure:"quality"`
	Category   CategoryConfig   `mapstructure:"category"`
	Priority   PriorityConfig   `mapstructure:"priority"`
	Capital    CapitalConfig    `mapstructure:"capital"`
	Scam       ScamConfig       `mapstructure:"scam"`
}

// ExtractionConfig drives the text extraction layer.
type ExtractionConfig struct {
	// KnownSkills and KnownTools map lowercase aliases to display names,
	// e.g. "nodejs" -> "Node.js".
	KnownSkills map[string]string `mapstructure:"known_skills"`
	KnownTools  map[string]string `mapstructure:"known_tools"`

	SeniorityKeywords SeniorityKeywords `mapstructure:"seniority_keywords"`
	Sections          SectionHeaders    `mapstructure:"sections"`
	DomainKeywords    []string          `mapstructure:"domain_keywords"`

	MinAnnualSalary int `mapstructure:"min_annual_salary"`
	MaxAnnualSalary int `mapstructure:"max_annual_salary"`
}

// SeniorityKeywords lists detection keywords per tier. Tiers are checked
// lead > senior > mid > entry so co-occurring lower-tier words don't mask
// the stronger signal.
type SeniorityKeywords struct {
	Lead   []string `mapstructure:"lead"`
	Senior []string `mapstructure:"senior"`
	Mid    []string `mapstructure:"mid"`
	Entry  []string `mapstructure:"entry"`
}

// SectionHeaders lists the labels that open each labeled section.
type SectionHeaders struct {
	Requirements     []string `mapstructure:"requirements"`
	Preferred        []string `mapstructure:"preferred"`
	Responsibilities []string `mapstructure:"responsibilities"`
	Benefits         []string `mapstructure:"benefits"`
}

// QualityConfig drives the parse-quality tiers and derived confidence.
type QualityConfig struct {
	HighWordFloor         int `mapstructure:"high_word_floor"`
	MediumWordFloor       int `mapstructure:"medium_word_floor"`
	MinSkills             int `mapstructure:"min_skills"`
	MinResponsibilities   int `mapstructure:"min_responsibilities"`
	HighConfidence        int `mapstructure:"high_confidence"`
	MediumConfidence      int `mapstructure:"medium_confidence"`
	LowConfidence         int `mapstructure:"low_confidence"`
	FallbackConfidence    int `mapstructure:"fallback_confidence"`
	FallbackHashPrefixLen int `mapstructure:"fallback_hash_prefix_len"`
}

// CategoryConfig holds the band edges and ceilings of the categorization
// cascade plus the should-apply floors.
type CategoryConfig struct {
	AvoidBelow       float64 `mapstructure:"avoid_below"`
	AvoidCriticalMax int     `mapstructure:"avoid_critical_max"`

	SafetyMinFit      float64 `mapstructure:"safety_min_fit"`
	SafetyCriticalMax int     `mapstructure:"safety_critical_max"`

	TargetMinFit      float64 `mapstructure:"target_min_fit"`
	TargetCriticalMax int     `mapstructure:"target_critical_max"`
	TargetMaxGapYears int     `mapstructure:"target_max_gap_years"`

	ReachMinFit      float64 `mapstructure:"reach_min_fit"`
	ReachMaxGapYears int     `mapstructure:"reach_max_gap_years"`
	ReachCriticalMax int     `mapstructure:"reach_critical_max"`

	// Fallback bands keep the cascade total.
	FallbackReachMinFit  float64 `mapstructure:"fallback_reach_min_fit"`
	FallbackTargetMinFit float64 `mapstructure:"fallback_target_min_fit"`
	ScoreOnlySafety      float64 `mapstructure:"score_only_safety"`
	ScoreOnlyTarget      float64 `mapstructure:"score_only_target"`
	ScoreOnlyReach       float64 `mapstructure:"score_only_reach"`

	// Should-apply floors.
	ApplyAbsoluteFloor float64 `mapstructure:"apply_absolute_floor"`
	ApplyReachMinFit   float64 `mapstructure:"apply_reach_min_fit"`
	ApplyTargetMinFit  float64 `mapstructure:"apply_target_min_fit"`
	ApplySafetyMinFit  float64 `mapstructure:"apply_safety_min_fit"`
}

// PriorityConfig holds the scoring weights, bucket tables and penalties of
// the priority layer.
type PriorityConfig struct {
	FitWeight        float64 `mapstructure:"fit_weight"`
	PreferenceWeight float64 `mapstructure:"preference_weight"`
	FreshnessWeight  float64 `mapstructure:"freshness_weight"`
	UrgencyWeight    float64 `mapstructure:"urgency_weight"`

	CategoryBonus map[string]float64 `mapstructure:"category_bonus"`

	DeadlineWeight float64 `mapstructure:"deadline_weight"`
	RecencyWeight  float64 `mapstructure:"recency_weight"`

	PenaltyLocationMismatch float64 `mapstructure:"penalty_location_mismatch"`
	PenaltySalaryBelowMin   float64 `mapstructure:"penalty_salary_below_min"`
	PenaltyScamMedium       float64 `mapstructure:"penalty_scam_medium"`
	PenaltyScamHigh         float64 `mapstructure:"penalty_scam_high"`
	PenaltyExpired          float64 `mapstructure:"penalty_expired"`

	// Tier blend.
	TierFitWeight       float64 `mapstructure:"tier_fit_weight"`
	TierCategoryWeight  float64 `mapstructure:"tier_category_weight"`
	TierFreshnessWeight float64 `mapstructure:"tier_freshness_weight"`
	TierUrgencyWeight   float64 `mapstructure:"tier_urgency_weight"`
	TierDreamBonus      float64 `mapstructure:"tier_dream_bonus"`
	TierNewBonus        float64 `mapstructure:"tier_new_bonus"`
	TierScamPenalty     float64 `mapstructure:"tier_scam_penalty"`
	TierHighMin         float64 `mapstructure:"tier_high_min"`
	TierMediumMin       float64 `mapstructure:"tier_medium_min"`
}

// CapitalConfig holds the career-capital weights and lookup tables.
type CapitalConfig struct {
	BrandWeight        float64 `mapstructure:"brand_weight"`
	GrowthWeight       float64 `mapstructure:"growth_weight"`
	NetworkWeight      float64 `mapstructure:"network_weight"`
	CompensationWeight float64 `mapstructure:"compensation_weight"`

	BrandTiers       map[string]float64 `mapstructure:"brand_tiers"`
	CuttingEdge      []string           `mapstructure:"cutting_edge"`
	TechHubs         []string           `mapstructure:"tech_hubs"`
	CompanySizeScore map[string]float64 `mapstructure:"company_size_score"`
	RemotePenalty    float64            `mapstructure:"remote_penalty"`

	SalaryBenchmarks    map[string]float64 `mapstructure:"salary_benchmarks"`
	LocationMultipliers map[string]float64 `mapstructure:"location_multipliers"`
}

// ScamConfig holds the red-flag weights and keyword tables of the scam
// detector.
type ScamConfig struct {
	Threshold float64 `mapstructure:"threshold"`

	WeightUnknownCompany    float64 `mapstructure:"weight_unknown_company"`
	WeightShortPosting      float64 `mapstructure:"weight_short_posting"`
	WeightUnrealisticSalary float64 `mapstructure:"weight_unrealistic_salary"`
	WeightSuspiciousKeyword float64 `mapstructure:"weight_suspicious_keyword"`
	WeightNoRequirements    float64 `mapstructure:"weight_no_requirements"`
	WeightVagueTitle        float64 `mapstructure:"weight_vague_title"`
	WeightPunctuation       float64 `mapstructure:"weight_punctuation"`
	WeightUrgencyPressure   float64 `mapstructure:"weight_urgency_pressure"`
	WeightSensitiveInfo     float64 `mapstructure:"weight_sensitive_info"`

	SuspiciousCompanies []string `mapstructure:"suspicious_companies"`
	SuspiciousKeywords  []string `mapstructure:"suspicious_keywords"`
	UrgencyPhrases      []string `mapstructure:"urgency_phrases"`
	SensitiveRequests   []string `mapstructure:"sensitive_requests"`
	VagueTitles         []string `mapstructure:"vague_titles"`

	MinPostingLength  int `mapstructure:"min_posting_length"`
	UnrealisticSalary int `mapstructure:"unrealistic_salary"`
	MaxExclamations   int `mapstructure:"max_exclamations"`
	KeywordMatchCap   int `mapstructure:"keyword_match_cap"`
	MinUrgencyPhrases int `mapstructure:"min_urgency_phrases"`
}

// Validate checks the configuration for internal consistency. It runs once
// in Load; scoring functions assume a valid config.
func (c *Config) Validate() error {
	var problems []string

	if len(c.Extraction.KnownSkills) == 0 {
		problems = append(problems, "extraction.known_skills is empty")
	}
	if len(c.Extraction.SeniorityKeywords.Senior) == 0 {
		problems = append(problems, "extraction.seniority_keywords.senior is empty")
	}
	if c.Extraction.MinAnnualSalary <= 0 || c.Extraction.MaxAnnualSalary <= c.Extraction.MinAnnualSalary {
		problems = append(problems, "extraction salary bounds are not an increasing positive range")
	}

	if c.Quality.MediumWordFloor > c.Quality.HighWordFloor {
		problems = append(problems, "quality.medium_word_floor exceeds high_word_floor")
	}

	cat := c.Category
	if !(cat.AvoidBelow <= cat.ReachMinFit && cat.ReachMinFit <= cat.TargetMinFit && cat.TargetMinFit <= cat.SafetyMinFit) {
		problems = append(problems, "category bands are not ordered avoid <= reach <= target <= safety")
	}
	if cat.ApplyReachMinFit < cat.ApplyTargetMinFit {
		problems = append(problems, "category.apply_reach_min_fit must not be below apply_target_min_fit")
	}

	p := c.Priority
	wsum := p.FitWeight + p.PreferenceWeight + p.FreshnessWeight + p.UrgencyWeight
	if wsum <= 0 {
		problems = append(problems, "priority component weights must sum to a positive value")
	}
	if p.DeadlineWeight+p.RecencyWeight <= 0 {
		problems = append(problems, "priority urgency weights must sum to a positive value")
	}
	if p.TierHighMin <= p.TierMediumMin {
		// Still usable, but almost certainly a config mistake.
		problems = append(problems, "priority.tier_high_min must exceed tier_medium_min")
	}

	cw := c.Capital.BrandWeight + c.Capital.GrowthWeight + c.Capital.NetworkWeight + c.Capital.CompensationWeight
	if cw <= 0 {
		problems = append(problems, "capital weights must sum to a positive value")
	}

	if c.Scam.Threshold <= 0 {
		problems = append(problems, "scam.threshold must be positive")
	}
	if len(c.Scam.SuspiciousKeywords) == 0 {
		problems = append(problems, "scam.suspicious_keywords is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
