package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var postedDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*(?:posted|date posted|published)\s*(?:on)?\s*[:\-]\s*(.+?)\s*$`),
	regexp.MustCompile(`(?i)\bposted\s+(?:on\s+)?(\w+ \d{1,2},? \d{4})`),
}

var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*(?:deadline|closing date|apply by|applications? close[s]?)\s*[:\-]?\s*(.+?)\s*$`),
	regexp.MustCompile(`(?i)\b(?:apply by|deadline is|closes on)\s+(\w+ \d{1,2},? \d{4})`),
}

// parseDate resolves a date from an override string first, then from the
// text patterns. Unparseable values are dropped rather than surfaced:
// extraction never fails on malformed input.
func parseDate(override, text string, patterns []*regexp.Regexp) *time.Time {
	if override = strings.TrimSpace(override); override != "" {
		if t, err := dateparse.ParseAny(override); err == nil {
			return &t
		}
	}

	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if len(candidate) > 40 {
			continue
		}
		if t, err := dateparse.ParseAny(candidate); err == nil {
			return &t
		}
	}
	return nil
}
