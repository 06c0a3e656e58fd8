package fit

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/spigell/jobsift/internal/posting"
)

// Dimension weights for the local estimate. The oracle's own weighting is
// opaque to us; these only shape the degraded stand-in.
const (
	skillsWeight     = 0.45
	toolsWeight      = 0.20
	experienceWeight = 0.20
	seniorityWeight  = 0.10
	industryWeight   = 0.05
)

// stopWords filters common words that add noise to keyword matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "they": true, "work": true,
	"team": true, "role": true, "job": true, "about": true, "can": true,
	"not": true, "but": true, "all": true, "more": true, "than": true,
	"has": true, "was": true, "were": true, "been": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "good": true,
}

// Estimate synthesizes a degraded FitResult from keyword overlap between
// the resume text and the job's extracted requirements.
func Estimate(resumeText string, job *posting.ParsedJob) *posting.FitResult {
	resumeKW := tokenize(resumeText)
	resumeLower := strings.ToLower(resumeText)

	gaps := posting.GapAnalysis{}

	var criticalMissing int
	gaps.Skills = matchDimension(resumeKW, resumeLower,
		append(job.Requirements.RequiredSkills, job.Requirements.PreferredSkills...))
	gaps.Tools = matchDimension(resumeKW, resumeLower,
		append(job.Requirements.RequiredTools, job.Requirements.PreferredTools...))
	criticalMissing += countCriticalMissing(resumeKW, resumeLower, job.Requirements.RequiredSkills)
	criticalMissing += countCriticalMissing(resumeKW, resumeLower, job.Requirements.RequiredTools)
	gaps.CriticalMissing = criticalMissing

	resumeYears := detectResumeYears(resumeText)
	gaps.Experience, gaps.Seniority, gaps.SeniorityAlignment, gaps.GapYears =
		matchExperience(resumeYears, job)

	gaps.Industry = matchIndustry(resumeLower, job.Requirements.DomainKeywords)

	score := skillsWeight*dimensionScore(gaps.Skills) +
		toolsWeight*dimensionScore(gaps.Tools) +
		experienceWeight*dimensionScore(gaps.Experience) +
		seniorityWeight*dimensionScore(gaps.Seniority) +
		industryWeight*dimensionScore(gaps.Industry)

	return &posting.FitResult{Score: clamp(score), Gaps: gaps, Degraded: true}
}

// dimensionScore treats a dimension with no data as neutral.
func dimensionScore(d posting.DimensionGap) float64 {
	if len(d.Matched) == 0 && len(d.Missing) == 0 {
		return posting.NeutralFit
	}
	return d.MatchPercent
}

func matchDimension(resumeKW map[string]bool, resumeLower string, skills []posting.ExtractedSkill) posting.DimensionGap {
	d := posting.DimensionGap{}
	for _, s := range skills {
		if resumeHas(resumeKW, resumeLower, s.Name) {
			d.Matched = append(d.Matched, s.Name)
		} else {
			d.Missing = append(d.Missing, s.Name)
		}
	}
	if total := len(d.Matched) + len(d.Missing); total > 0 {
		d.MatchPercent = float64(len(d.Matched)) / float64(total) * 100
	}
	return d
}

func countCriticalMissing(resumeKW map[string]bool, resumeLower string, required []posting.ExtractedSkill) int {
	missing := 0
	for _, s := range required {
		if s.Importance == posting.Critical && !resumeHas(resumeKW, resumeLower, s.Name) {
			missing++
		}
	}
	return missing
}

func resumeHas(resumeKW map[string]bool, resumeLower, name string) bool {
	lower := strings.ToLower(name)
	if resumeKW[lower] {
		return true
	}
	return strings.Contains(resumeLower, lower)
}

// seniorityYears maps the expected tier to a plausible years band.
var seniorityYears = map[posting.Seniority][2]int{
	posting.SeniorityEntry:  {0, 2},
	posting.SeniorityMid:    {3, 5},
	posting.SenioritySenior: {6, 9},
	posting.SeniorityLead:   {10, 40},
}

func matchExperience(resumeYears int, job *posting.ParsedJob) (exp, sen posting.DimensionGap, alignment posting.SeniorityAlignment, gapYears int) {
	alignment = posting.Aligned

	if min := job.Requirements.MinYears; min != nil {
		need := strconv.Itoa(*min) + "+ years"
		if resumeYears >= *min {
			exp.Matched = append(exp.Matched, need)
			exp.MatchPercent = 100
		} else {
			exp.Missing = append(exp.Missing, need)
			gapYears = *min - resumeYears
		}
	}

	expected := job.Requirements.SeniorityExpected
	band, ok := seniorityYears[expected]
	if !ok || resumeYears < 0 {
		return exp, sen, alignment, gapYears
	}

	label := string(expected)
	switch {
	case resumeYears < band[0]:
		alignment = posting.Underqualified
		sen.Missing = append(sen.Missing, label)
		if g := band[0] - resumeYears; g > gapYears {
			gapYears = g
		}
	case resumeYears > band[1]:
		alignment = posting.Overqualified
		sen.Matched = append(sen.Matched, label)
		sen.MatchPercent = 100
	default:
		sen.Matched = append(sen.Matched, label)
		sen.MatchPercent = 100
	}
	return exp, sen, alignment, gapYears
}

func matchIndustry(resumeLower string, domains []string) posting.DimensionGap {
	d := posting.DimensionGap{}
	for _, domain := range domains {
		if strings.Contains(resumeLower, strings.ToLower(domain)) {
			d.Matched = append(d.Matched, domain)
		} else {
			d.Missing = append(d.Missing, domain)
		}
	}
	if total := len(d.Matched) + len(d.Missing); total > 0 {
		d.MatchPercent = float64(len(d.Matched)) / float64(total) * 100
	}
	return d
}

var resumeYearsPattern = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*years?(?:\s+of)?\s+(?:professional\s+)?experience`)

// detectResumeYears finds a stated years-of-experience in the resume, or -1.
func detectResumeYears(resumeText string) int {
	m := resumeYearsPattern.FindStringSubmatch(resumeText)
	if m == nil {
		return -1
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return years
}

// tokenize splits text into lowercase keywords, treating + # . as word
// characters so tech terms like "c++" and "node.js" survive.
func tokenize(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 2 && !stopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
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
