package extract

import (
	"strings"

	"github.com/spigell/jobsift/internal/config"
)

// section is a bounded slice of the posting text with its offset into the
// full text, so evidence spans can point at the original characters.
type section struct {
	text   string
	offset int
}

type sectionSet struct {
	requirements     *section
	preferred        *section
	responsibilities *section
	benefits         *section
}

// detectSections locates labeled sections by header keyword and bounds each
// one at the next header-like line or end of text.
func detectSections(text string, headers *config.SectionHeaders) *sectionSet {
	lines := strings.Split(text, "\n")

	// Offsets of each line start in the original text.
	offsets := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		offsets[i] = pos
		pos += len(line) + 1
	}

	set := &sectionSet{}
	for i, line := range lines {
		if !looksLikeHeader(line) {
			continue
		}
		lower := strings.ToLower(line)

		var target **section
		switch {
		case matchesAnyLabel(lower, headers.Preferred):
			target = &set.preferred
		case matchesAnyLabel(lower, headers.Requirements):
			target = &set.requirements
		case matchesAnyLabel(lower, headers.Responsibilities):
			target = &set.responsibilities
		case matchesAnyLabel(lower, headers.Benefits):
			target = &set.benefits
		default:
			continue
		}
		if *target != nil {
			continue // first occurrence wins
		}

		end := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if looksLikeHeader(lines[j]) && isAnyKnownHeader(strings.ToLower(lines[j]), headers) {
				end = j
				break
			}
		}

		body := strings.Join(lines[i+1:end], "\n")
		start := offsets[i] + len(lines[i]) + 1
		if start > len(text) {
			start = len(text)
		}
		*target = &section{text: body, offset: start}
	}

	return set
}

// looksLikeHeader reports whether a line is short and label-shaped enough to
// open or close a section.
func looksLikeHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 {
		return false
	}
	if len(strings.Fields(trimmed)) > 6 {
		return false
	}
	if strings.HasSuffix(trimmed, ":") {
		return true
	}
	// Bullet lines are content, not headers.
	if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "•") {
		return false
	}
	return true
}

func matchesAnyLabel(lower string, labels []string) bool {
	for _, label := range labels {
		if label != "" && strings.Contains(lower, label) {
			return true
		}
	}
	return false
}

func isAnyKnownHeader(lower string, headers *config.SectionHeaders) bool {
	return matchesAnyLabel(lower, headers.Requirements) ||
		matchesAnyLabel(lower, headers.Preferred) ||
		matchesAnyLabel(lower, headers.Responsibilities) ||
		matchesAnyLabel(lower, headers.Benefits)
}

// extractBullets pulls bullet or numbered lines out of a section, up to max
// items. Returns nil when the section is absent.
func extractBullets(sec *section, max int) []string {
	if sec == nil {
		return nil
	}

	var items []string
	for _, line := range strings.Split(sec.text, "\n") {
		item := strings.TrimSpace(line)
		item = strings.TrimLeft(item, "-*•–— \t")
		item = trimOrdinal(item)
		item = strings.TrimSpace(item)
		if len(item) < 5 {
			continue
		}
		items = append(items, item)
		if len(items) == max {
			break
		}
	}
	return items
}

// trimOrdinal strips a leading "1." / "2)" list marker.
func trimOrdinal(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return s[i+1:]
	}
	return s
}
