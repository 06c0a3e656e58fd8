// Package extract pulls structured fields out of free-text job postings
// using layered heuristics: ordered pattern lists per field, labeled section
// detection, and known-skill dictionaries. It never fails on malformed
// input; fields that cannot be extracted get placeholder sentinels.
package extract

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

// Caps on list-valued extractions.
const (
	MaxResponsibilities = 15
	MaxBenefits         = 10
)

// Result is the best-effort structured view of one posting's text.
type Result struct {
	Title       string
	Company     string
	Location    string
	Arrangement posting.WorkArrangement
	Salary      *posting.SalaryRange
	PostedDate  *time.Time
	Deadline    *time.Time

	Requirements     posting.JobRequirements
	Responsibilities []string
	Benefits         []string

	HasRequirementsSection     bool
	HasResponsibilitiesSection bool
	WordCount                  int
}

// Extractor runs all field extractors against raw text. It is stateless and
// safe for concurrent use; configuration is read-only.
type Extractor struct {
	cfg    *config.ExtractionConfig
	logger *zap.Logger
}

// New creates an Extractor bound to the given extraction config.
func New(cfg *config.ExtractionConfig, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Extract produces a Result for the raw posting. User-supplied overrides
// always win over pattern matching.
func (e *Extractor) Extract(raw *posting.RawPosting) *Result {
	text := raw.Text
	res := &Result{
		Arrangement: posting.ArrangementUnknown,
		WordCount:   len(strings.Fields(text)),
	}

	ov := raw.Overrides
	if ov == nil {
		ov = &posting.Overrides{}
	}

	res.Title = firstNonEmpty(ov.Title, extractTitle(text), posting.UnknownTitle)
	res.Company = firstNonEmpty(ov.Company, extractCompany(text), posting.UnknownCompany)
	res.Location = firstNonEmpty(ov.Location, extractLocation(text), posting.UnknownLocation)
	res.Arrangement = extractArrangement(text)
	res.Salary = extractSalary(text, e.cfg.MinAnnualSalary, e.cfg.MaxAnnualSalary)
	res.PostedDate = parseDate(ov.PostedDate, text, postedDatePatterns)
	res.Deadline = parseDate(ov.Deadline, text, deadlinePatterns)

	sections := detectSections(text, &e.cfg.Sections)
	res.HasRequirementsSection = sections.requirements != nil
	res.HasResponsibilitiesSection = sections.responsibilities != nil

	res.Requirements = e.extractRequirements(text, sections)
	res.Responsibilities = extractBullets(sections.responsibilities, MaxResponsibilities)
	res.Benefits = extractBullets(sections.benefits, MaxBenefits)

	e.logger.Debug("extraction completed",
		zap.String("title", res.Title),
		zap.String("company", res.Company),
		zap.Int("skills", res.Requirements.SkillCount()),
		zap.Bool("requirements_section", res.HasRequirementsSection),
	)
	return res
}

var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*(?:job title|position|role|title)\s*[:\-]\s*(.+?)\s*$`),
	regexp.MustCompile(`(?i)\b(?:hiring|seeking|looking for)\s+(?:an?\s+)?([A-Z][A-Za-z0-9+#/&. ]{2,80}?(?:Engineer|Developer|Designer|Manager|Analyst|Scientist|Architect|Lead|Specialist|Consultant))\b`),
	regexp.MustCompile(`(?i)^([A-Za-z0-9+#/&,. ]{3,80}?(?:Engineer|Developer|Designer|Manager|Analyst|Scientist|Architect|Lead|Specialist|Consultant))\b`),
}

var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*(?:company|employer|organization|organisation)\s*[:\-]\s*(.+?)\s*$`),
	regexp.MustCompile(`(?m)\bat\s+([A-Z][A-Za-z0-9&.'\-]*(?:\s+[A-Z][A-Za-z0-9&.'\-]*){0,3})(?:[,.]|\s+(?:is|we|our|in)\b)`),
	regexp.MustCompile(`(?m)\b(?:Join|About)\s+([A-Z][A-Za-z0-9&.'\-]*(?:\s+[A-Z][A-Za-z0-9&.'\-]*){0,3})(?:[,.:]|\s+(?:is|we|our)\b)`),
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*location\s*[:\-]\s*(.+?)\s*$`),
	regexp.MustCompile(`(?i)\b(?:located in|based in|office in|position in)\s+([A-Za-z][A-Za-z .'\-]+(?:,\s*[A-Za-z .'\-]+)?)`),
}

// extractTitle tries the title patterns most specific first; the first
// structurally valid match wins.
func extractTitle(text string) string {
	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if title := cleanField(m[1], 120); title != "" {
				return title
			}
		}
	}
	return ""
}

func extractCompany(text string) string {
	for _, re := range companyPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if company := cleanField(m[1], 80); company != "" {
				return company
			}
		}
	}
	return ""
}

func extractLocation(text string) string {
	for _, re := range locationPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if loc := cleanField(m[1], 80); loc != "" {
				return loc
			}
		}
	}
	return ""
}

// extractArrangement detects the work arrangement from keywords. Hybrid
// wins over remote: postings that say "hybrid" usually also say "remote".
func extractArrangement(text string) posting.WorkArrangement {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hybrid"):
		return posting.Hybrid
	case strings.Contains(lower, "remote"):
		return posting.Remote
	case strings.Contains(lower, "on-site"), strings.Contains(lower, "onsite"),
		strings.Contains(lower, "in-office"), strings.Contains(lower, "in office"):
		return posting.Onsite
	default:
		return posting.ArrangementUnknown
	}
}

// cleanField trims a captured value and rejects structurally invalid ones.
func cleanField(s string, maxLen int) string {
	s = strings.Trim(strings.TrimSpace(s), `"'*#•-–— `)
	s = strings.TrimSuffix(s, ".")
	if len(s) < 2 || len(s) > maxLen {
		return ""
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
