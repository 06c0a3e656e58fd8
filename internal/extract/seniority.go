package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/posting"
)

var (
	yearsRangePattern = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:-|–|—|to)\s*(\d{1,2})\s*\+?\s*years?`)
	yearsMinPattern   = regexp.MustCompile(`(?i)(?:at least|minimum(?: of)?|min\.?)?\s*(\d{1,2})\s*\+?\s*years?`)
)

// extractYears finds an explicit years-of-experience requirement. Range
// forms ("3-5 years") win over bare minimums ("5+ years").
func extractYears(text string) (min, max *int) {
	if m := yearsRangePattern.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if hi >= lo {
			return &lo, &hi
		}
		return &lo, nil
	}
	if m := yearsMinPattern.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		return &lo, nil
	}
	return nil, nil
}

// detectSeniority resolves the expected seniority tier. Keyword tiers are
// checked lead > senior > mid > entry so that co-occurring lower-tier words
// don't mask the stronger signal. An explicit years minimum of two or less
// overrides a senior/lead keyword result: years evidence is trusted over
// title inflation. Without any keyword hit the tier is derived from years.
func detectSeniority(text string, kw *config.SeniorityKeywords, minYears *int) posting.Seniority {
	lower := strings.ToLower(text)

	var detected posting.Seniority
	switch {
	case containsAnyKeyword(lower, kw.Lead):
		detected = posting.SeniorityLead
	case containsAnyKeyword(lower, kw.Senior):
		detected = posting.SenioritySenior
	case containsAnyKeyword(lower, kw.Mid):
		detected = posting.SeniorityMid
	case containsAnyKeyword(lower, kw.Entry):
		detected = posting.SeniorityEntry
	}

	if detected != "" {
		if minYears != nil && *minYears <= 2 &&
			(detected == posting.SenioritySenior || detected == posting.SeniorityLead) {
			return posting.SeniorityEntry
		}
		return detected
	}

	if minYears != nil {
		switch {
		case *minYears <= 2:
			return posting.SeniorityEntry
		case *minYears <= 5:
			return posting.SeniorityMid
		case *minYears <= 9:
			return posting.SenioritySenior
		default:
			return posting.SeniorityLead
		}
	}

	return posting.SeniorityMid
}

func containsAnyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var educationPattern = regexp.MustCompile(`(?i)\b(bachelor(?:'s)?(?: degree)?|master(?:'s)?(?: degree)?|phd|ph\.d\.?|doctorate|b\.?s\.?c?\.?|m\.?s\.?c?\.?|mba)\b(?:\s+(?:degree\s+)?in\s+([a-zA-Z ]{3,40}?))?(?:[,.\n]|$)`)

func extractEducation(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range educationPattern.FindAllStringSubmatch(text, 4) {
		entry := strings.TrimSpace(m[1])
		if m[2] != "" {
			entry += " in " + strings.TrimSpace(m[2])
		}
		key := strings.ToLower(entry)
		if !seen[key] {
			seen[key] = true
			out = append(out, entry)
		}
	}
	return out
}

var certificationPattern = regexp.MustCompile(`(?i)\b(aws certified [a-z ]{3,40}?|pmp|cissp|cisa|ccna|cka|ckad|comptia [a-z+]+|google cloud certified)\b`)

func extractCertifications(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range certificationPattern.FindAllStringSubmatch(text, 4) {
		entry := strings.TrimSpace(m[1])
		key := strings.ToLower(entry)
		if !seen[key] {
			seen[key] = true
			out = append(out, entry)
		}
	}
	return out
}
