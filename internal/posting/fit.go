package posting

// SeniorityAlignment compares a candidate's level against the role's.
type SeniorityAlignment string

const (
	Aligned        SeniorityAlignment = "aligned"
	Underqualified SeniorityAlignment = "underqualified"
	Overqualified  SeniorityAlignment = "overqualified"
)

// DimensionGap is the matched/missing breakdown for one fit dimension.
type DimensionGap struct {
	Matched      []string `json:"matched,omitempty"`
	Missing      []string `json:"missing,omitempty"`
	MatchPercent float64  `json:"match_percent"`
}

// GapAnalysis is the per-dimension breakdown behind a fit score.
type GapAnalysis struct {
	Skills     DimensionGap `json:"skills"`
	Tools      DimensionGap `json:"tools"`
	Experience DimensionGap `json:"experience"`
	Seniority  DimensionGap `json:"seniority"`
	Industry   DimensionGap `json:"industry"`

	// CriticalMissing counts missing skills and tools that the posting marks
	// as critical. Drives the avoid/safety/target/reach ceilings.
	CriticalMissing int `json:"critical_missing"`

	SeniorityAlignment SeniorityAlignment `json:"seniority_alignment"`
	GapYears           int                `json:"gap_years"`
}

// FitResult is the Fit Oracle's answer: a 0-100 score plus gap breakdown.
type FitResult struct {
	Score float64     `json:"score"`
	Gaps  GapAnalysis `json:"gap_analysis"`

	// Degraded marks results synthesized locally when no oracle was
	// available or the oracle call failed.
	Degraded bool `json:"degraded,omitempty"`
}

// NeutralFit is the fallback fit score used when the oracle is unavailable.
const NeutralFit = 50

// NeutralFitResult returns the degraded stand-in used when the Fit Oracle
// yields nothing. Alignment defaults to aligned so the categorizer's
// underqualified branches stay inert.
func NeutralFitResult() *FitResult {
	return &FitResult{
		Score:    NeutralFit,
		Gaps:     GapAnalysis{SeniorityAlignment: Aligned},
		Degraded: true,
	}
}
