package posting

// Importance tags where an extracted skill was found: required sections make
// it critical, preferred sections make it nice to have. It is never guessed.
type Importance string

const (
	Critical   Importance = "critical"
	NiceToHave Importance = "nice_to_have"
)

// EvidenceSpan points at the verbatim text a value was extracted from.
type EvidenceSpan struct {
	Quote      string  `json:"quote"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// ExtractedSkill is a normalized skill or tool with the evidence it was
// extracted from.
type ExtractedSkill struct {
	Name       string         `json:"name"`
	Evidence   []EvidenceSpan `json:"evidence,omitempty"`
	Importance Importance     `json:"importance"`
}

// JobRequirements is the structured requirements block of a posting.
// Required lists never duplicate an item already present in the preferred
// lists for the same job.
type JobRequirements struct {
	RequiredSkills  []ExtractedSkill `json:"required_skills,omitempty"`
	PreferredSkills []ExtractedSkill `json:"preferred_skills,omitempty"`
	RequiredTools   []ExtractedSkill `json:"required_tools,omitempty"`
	PreferredTools  []ExtractedSkill `json:"preferred_tools,omitempty"`

	SeniorityExpected Seniority `json:"seniority_expected,omitempty"`
	MinYears          *int      `json:"min_years,omitempty"`
	MaxYears          *int      `json:"max_years,omitempty"`

	Education      []string `json:"education,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	DomainKeywords []string `json:"domain_keywords,omitempty"`

	ExtractionConfidence float64 `json:"extraction_confidence"`
	ExtractionMethod     string  `json:"extraction_method,omitempty"`
}

// SkillNames returns the names from a list of extracted skills.
func SkillNames(skills []ExtractedSkill) []string {
	if len(skills) == 0 {
		return nil
	}
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

// AllSkillNames returns required and preferred skill and tool names combined.
func (r *JobRequirements) AllSkillNames() []string {
	var names []string
	names = append(names, SkillNames(r.RequiredSkills)...)
	names = append(names, SkillNames(r.PreferredSkills)...)
	names = append(names, SkillNames(r.RequiredTools)...)
	names = append(names, SkillNames(r.PreferredTools)...)
	return names
}

// SkillCount returns the number of distinct extracted skills and tools.
func (r *JobRequirements) SkillCount() int {
	return len(r.RequiredSkills) + len(r.PreferredSkills) +
		len(r.RequiredTools) + len(r.PreferredTools)
}
