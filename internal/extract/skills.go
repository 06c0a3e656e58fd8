package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spigell/jobsift/internal/posting"
)

const (
	dictionaryConfidence = 0.9
	patternConfidence    = 0.7
)

// extractRequirements builds the JobRequirements block. Skills and tools are
// extracted inside the bounded requirements/preferred sections when present,
// falling back to the whole text; importance comes solely from which section
// a match was found in.
func (e *Extractor) extractRequirements(text string, sections *sectionSet) posting.JobRequirements {
	req := posting.JobRequirements{}

	requiredScope := &section{text: text, offset: 0}
	method := "full_text"
	if sections.requirements != nil {
		requiredScope = sections.requirements
		method = "sectioned"
	}

	req.RequiredSkills = mergeSkills(
		findKnown(e.cfg.KnownSkills, requiredScope, posting.Critical),
		e.findByPhrase(requiredScope, posting.Critical),
	)
	req.RequiredTools = findKnown(e.cfg.KnownTools, requiredScope, posting.Critical)

	if sections.preferred != nil {
		req.PreferredSkills = mergeSkills(
			findKnown(e.cfg.KnownSkills, sections.preferred, posting.NiceToHave),
			e.findByPhrase(sections.preferred, posting.NiceToHave),
		)
		req.PreferredTools = findKnown(e.cfg.KnownTools, sections.preferred, posting.NiceToHave)
	}

	// Required wins: a skill found in both sections is critical, and the
	// required lists must never duplicate a preferred entry.
	req.PreferredSkills = dropOverlap(req.PreferredSkills, req.RequiredSkills)
	req.PreferredTools = dropOverlap(req.PreferredTools, req.RequiredTools)

	yearsScope := text
	if sections.requirements != nil {
		yearsScope = sections.requirements.text
	}
	req.MinYears, req.MaxYears = extractYears(yearsScope)
	if req.MinYears == nil {
		req.MinYears, req.MaxYears = extractYears(text)
	}

	req.SeniorityExpected = detectSeniority(text, &e.cfg.SeniorityKeywords, req.MinYears)
	req.Education = extractEducation(text)
	req.Certifications = extractCertifications(text)
	req.DomainKeywords = matchKeywords(text, e.cfg.DomainKeywords)

	req.ExtractionMethod = method
	req.ExtractionConfidence = extractionConfidence(sections.requirements != nil, req.SkillCount())
	return req
}

// findKnown scans a bounded section for every dictionary alias and merges
// hits into deduplicated skills keyed by display name, each with an evidence
// span pointing into the original text.
func findKnown(dict map[string]string, scope *section, importance posting.Importance) []posting.ExtractedSkill {
	lower := strings.ToLower(scope.text)
	byName := make(map[string]*posting.ExtractedSkill)

	for alias, display := range dict {
		idx := findWithBoundary(lower, strings.ToLower(alias))
		if idx < 0 {
			continue
		}

		span := posting.EvidenceSpan{
			Quote:      snippet(scope.text, idx, len(alias)),
			Start:      scope.offset + idx,
			End:        scope.offset + idx + len(alias),
			Confidence: dictionaryConfidence,
		}

		if existing, ok := byName[display]; ok {
			existing.Evidence = append(existing.Evidence, span)
			continue
		}
		byName[display] = &posting.ExtractedSkill{
			Name:       display,
			Evidence:   []posting.EvidenceSpan{span},
			Importance: importance,
		}
	}

	return sortSkills(byName)
}

// skillPhrasePattern introduces a skill list in running text. The capture
// runs to the end of the phrase and is split into candidate names.
var skillPhrasePattern = regexp.MustCompile(`(?i)(?:experience (?:with|in|using)|proficien(?:t|cy) (?:with|in)|knowledge of|familiar(?:ity)? with|expertise (?:with|in)|background in|skilled in|hands-on with)\s+([A-Za-z0-9+#./,&\- ]{2,80})`)

// findByPhrase extracts skills named after introducing phrases like
// "experience with X" inside the bounded section. Names covered by the
// dictionaries are skipped there; this path only adds names the
// dictionaries don't know.
func (e *Extractor) findByPhrase(scope *section, importance posting.Importance) []posting.ExtractedSkill {
	known := e.knownNames()
	lower := strings.ToLower(scope.text)
	byName := make(map[string]*posting.ExtractedSkill)

	for _, m := range skillPhrasePattern.FindAllStringSubmatch(scope.text, -1) {
		for _, name := range splitSkillList(m[1]) {
			key := strings.ToLower(name)
			if known[key] {
				continue
			}

			idx := findWithBoundary(lower, key)
			if idx < 0 {
				continue
			}

			span := posting.EvidenceSpan{
				Quote:      snippet(scope.text, idx, len(name)),
				Start:      scope.offset + idx,
				End:        scope.offset + idx + len(name),
				Confidence: patternConfidence,
			}

			if existing, ok := byName[key]; ok {
				existing.Evidence = append(existing.Evidence, span)
				continue
			}
			byName[key] = &posting.ExtractedSkill{
				Name:       name,
				Evidence:   []posting.EvidenceSpan{span},
				Importance: importance,
			}
		}
	}

	return sortSkills(byName)
}

// knownNames collects every dictionary alias and display name, lowercased.
func (e *Extractor) knownNames() map[string]bool {
	known := make(map[string]bool, 2*(len(e.cfg.KnownSkills)+len(e.cfg.KnownTools)))
	for _, dict := range []map[string]string{e.cfg.KnownSkills, e.cfg.KnownTools} {
		for alias, display := range dict {
			known[strings.ToLower(alias)] = true
			known[strings.ToLower(display)] = true
		}
	}
	return known
}

// splitSkillList breaks a captured phrase tail into candidate skill names,
// dropping parts that don't look like one.
func splitSkillList(s string) []string {
	s = strings.ReplaceAll(s, " and ", ",")
	s = strings.ReplaceAll(s, " or ", ",")
	s = strings.ReplaceAll(s, "/", ",")

	var names []string
	for _, part := range strings.Split(s, ",") {
		name := strings.Trim(strings.TrimSpace(part), ".&-")
		if looksLikeSkillName(name) {
			names = append(names, name)
		}
	}
	return names
}

// looksLikeSkillName keeps short capitalized or tech-shaped tokens and
// rejects the prose that often trails an introducing phrase.
func looksLikeSkillName(name string) bool {
	if len(name) < 2 || len(name) > 40 || strings.Count(name, " ") > 2 {
		return false
	}
	if name[0] >= 'A' && name[0] <= 'Z' {
		return true
	}
	return strings.ContainsAny(name, "+#0123456789")
}

// mergeSkills combines dictionary and phrase hits into one deduplicated
// list; on a name collision the dictionary entry wins.
func mergeSkills(dictionary, phrased []posting.ExtractedSkill) []posting.ExtractedSkill {
	if len(phrased) == 0 {
		return dictionary
	}

	byName := make(map[string]*posting.ExtractedSkill, len(dictionary)+len(phrased))
	for i := range dictionary {
		byName[strings.ToLower(dictionary[i].Name)] = &dictionary[i]
	}
	for i := range phrased {
		key := strings.ToLower(phrased[i].Name)
		if _, ok := byName[key]; ok {
			continue
		}
		byName[key] = &phrased[i]
	}

	return sortSkills(byName)
}

func sortSkills(byName map[string]*posting.ExtractedSkill) []posting.ExtractedSkill {
	skills := make([]posting.ExtractedSkill, 0, len(byName))
	for _, s := range byName {
		skills = append(skills, *s)
	}
	sort.Slice(skills, func(i, j int) bool {
		si, sj := skills[i].Evidence[0].Start, skills[j].Evidence[0].Start
		if si != sj {
			return si < sj
		}
		return skills[i].Name < skills[j].Name
	})
	if len(skills) == 0 {
		return nil
	}
	return skills
}

// findWithBoundary returns the first index of needle in haystack where both
// neighbors are non-alphanumeric. Plain Index would match "go" inside
// "going" and cannot handle aliases like "c++" or "node.js" as regex words.
func findWithBoundary(haystack, needle string) int {
	if needle == "" {
		return -1
	}
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return -1
		}
		idx += from

		beforeOK := idx == 0 || !isAlnum(haystack[idx-1])
		afterIdx := idx + len(needle)
		afterOK := afterIdx >= len(haystack) || !isAlnum(haystack[afterIdx])
		if beforeOK && afterOK {
			return idx
		}
		from = idx + 1
		if from >= len(haystack) {
			return -1
		}
	}
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// snippet returns the verbatim quote around a match, padded to give a little
// context without spanning lines.
func snippet(text string, idx, length int) string {
	start := idx
	for start > 0 && idx-start < 40 && text[start-1] != '\n' {
		start--
	}
	end := idx + length
	for end < len(text) && end-(idx+length) < 40 && text[end] != '\n' {
		end++
	}
	return strings.TrimSpace(text[start:end])
}

func dropOverlap(preferred, required []posting.ExtractedSkill) []posting.ExtractedSkill {
	if len(preferred) == 0 || len(required) == 0 {
		return preferred
	}
	taken := make(map[string]bool, len(required))
	for _, s := range required {
		taken[s.Name] = true
	}
	kept := preferred[:0]
	for _, s := range preferred {
		if !taken[s.Name] {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func matchKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

func extractionConfidence(sectioned bool, skillCount int) float64 {
	conf := 0.4
	if sectioned {
		conf += 0.3
	}
	boost := float64(skillCount) * 0.05
	if boost > 0.3 {
		boost = 0.3
	}
	conf += boost
	if conf > 1 {
		conf = 1
	}
	return conf
}
