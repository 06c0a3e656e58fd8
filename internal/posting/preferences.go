package posting

import "strings"

// Preferences are user-supplied hard and soft constraints applied during
// categorization and priority scoring. A zero value means no preferences.
type Preferences struct {
	WorkArrangement    []string `json:"work_arrangement,omitempty"`
	Locations          []string `json:"locations,omitempty"`
	SalaryMinimum      *int     `json:"salary_minimum,omitempty"`
	ExcludedIndustries []string `json:"excluded_industries,omitempty"`
	StrictLocation     bool     `json:"strict_location,omitempty"`
}

// IsZero reports whether the user supplied no preferences at all.
func (p *Preferences) IsZero() bool {
	return p == nil || (len(p.WorkArrangement) == 0 && len(p.Locations) == 0 &&
		p.SalaryMinimum == nil && len(p.ExcludedIndustries) == 0 && !p.StrictLocation)
}

// AllowsArrangement reports whether the job's work arrangement is in the
// preferred set. An empty set allows everything.
func (p *Preferences) AllowsArrangement(arr WorkArrangement) bool {
	if p == nil || len(p.WorkArrangement) == 0 {
		return true
	}
	for _, want := range p.WorkArrangement {
		if strings.EqualFold(strings.TrimSpace(want), string(arr)) {
			return true
		}
	}
	return false
}

// MatchesLocation reports whether the job location contains any preferred
// location (case-insensitive substring). An empty list matches everything.
func (p *Preferences) MatchesLocation(location string) bool {
	if p == nil || len(p.Locations) == 0 {
		return true
	}
	lower := strings.ToLower(location)
	for _, want := range p.Locations {
		want = strings.ToLower(strings.TrimSpace(want))
		if want != "" && strings.Contains(lower, want) {
			return true
		}
	}
	return false
}
