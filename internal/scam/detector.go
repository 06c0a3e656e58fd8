// Package scam detects fraudulent job postings with nine independent
// weighted red-flag checks. The detector runs outside the fit pipeline on
// purpose: a high-fit posting can still be a scam.
package scam

import (
	"fmt"
	"strings"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

// Detector runs the red-flag checks against a parsed job.
type Detector struct {
	cfg *config.ScamConfig
}

// New creates a Detector.
func New(cfg *config.ScamConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect runs every check, sums the fired weights and maps the total to a
// risk level: high above threshold+2, medium above threshold, low when any
// flag fired below threshold, none otherwise.
func (d *Detector) Detect(job *posting.ParsedJob) *posting.ScamReport {
	cfg := d.cfg
	lower := strings.ToLower(job.RawText)

	report := &posting.ScamReport{Level: posting.RiskNone}
	add := func(name, detail string, weight float64) {
		report.Flags = append(report.Flags, posting.ScamFlag{Name: name, Detail: detail, Weight: weight})
		report.Total += weight
	}

	if company := strings.ToLower(job.Company); job.Company == posting.UnknownCompany ||
		matchesAny(company, cfg.SuspiciousCompanies) {
		add("suspicious_company", job.Company, cfg.WeightUnknownCompany)
	}

	if len(job.RawText) < cfg.MinPostingLength {
		add("short_posting", fmt.Sprintf("%d characters", len(job.RawText)), cfg.WeightShortPosting)
	}

	if salary := maxSalary(job.Salary); salary > cfg.UnrealisticSalary {
		add("unrealistic_salary", fmt.Sprintf("%d advertised", salary), cfg.WeightUnrealisticSalary)
	}

	// Keyword contribution is capped so one spammy paragraph doesn't
	// dominate the total.
	if hits := countMatches(lower, cfg.SuspiciousKeywords); hits > 0 {
		capped := hits
		if capped > cfg.KeywordMatchCap {
			capped = cfg.KeywordMatchCap
		}
		add("suspicious_keywords", fmt.Sprintf("%d keyword hits", hits),
			cfg.WeightSuspiciousKeyword*float64(capped))
	}

	if job.Requirements.SkillCount() == 0 && job.Requirements.MinYears == nil {
		add("no_requirements", "posting states no requirements at all", cfg.WeightNoRequirements)
	}

	if title := strings.ToLower(job.Title); job.Title == posting.UnknownTitle ||
		matchesAny(title, cfg.VagueTitles) {
		add("vague_title", job.Title, cfg.WeightVagueTitle)
	}

	if excl := strings.Count(job.RawText, "!"); excl > cfg.MaxExclamations || countEmoji(job.RawText) > 3 {
		add("excessive_punctuation", fmt.Sprintf("%d exclamation marks", excl), cfg.WeightPunctuation)
	}

	if hits := countMatches(lower, cfg.UrgencyPhrases); hits >= cfg.MinUrgencyPhrases {
		add("urgency_pressure", fmt.Sprintf("%d pressure phrases", hits), cfg.WeightUrgencyPressure)
	}

	if hits := countMatches(lower, cfg.SensitiveRequests); hits > 0 {
		add("sensitive_info_request", fmt.Sprintf("%d sensitive requests", hits), cfg.WeightSensitiveInfo)
	}

	switch {
	case report.Total > cfg.Threshold+2:
		report.Level = posting.RiskHigh
	case report.Total > cfg.Threshold:
		report.Level = posting.RiskMedium
	case len(report.Flags) > 0:
		report.Level = posting.RiskLow
	}

	return report
}

func matchesAny(lower string, terms []string) bool {
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func countMatches(lower string, terms []string) int {
	hits := 0
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(lower, term) {
			hits++
		}
	}
	return hits
}

func maxSalary(s *posting.SalaryRange) int {
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

func countEmoji(text string) int {
	count := 0
	for _, r := range text {
		if r >= 0x1F300 && r <= 0x1FAFF {
			count++
		}
	}
	return count
}
