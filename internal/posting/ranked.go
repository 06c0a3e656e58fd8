package posting

// RiskLevel is the scam detector's verdict.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ScamFlag is a single red flag raised by the scam detector.
type ScamFlag struct {
	Name   string  `json:"name"`
	Detail string  `json:"detail,omitempty"`
	Weight float64 `json:"weight"`
}

// ScamReport is the scam detector's full output. It is independent of the
// fit pipeline so a high-fit posting can still be flagged.
type ScamReport struct {
	Level RiskLevel  `json:"risk_level"`
	Total float64    `json:"total_weight"`
	Flags []ScamFlag `json:"flags,omitempty"`
}

// SubScore is one career-capital dimension with its interpretation.
type SubScore struct {
	Score          float64 `json:"score"`
	Interpretation string  `json:"interpretation,omitempty"`
}

// CareerCapital estimates the long-term career value of a job.
type CareerCapital struct {
	Score        float64  `json:"score"`
	Brand        SubScore `json:"brand"`
	SkillGrowth  SubScore `json:"skill_growth"`
	Network      SubScore `json:"network"`
	Compensation SubScore `json:"compensation"`
}

// Penalty is one itemized deduction applied after the weighted sum.
// Amount is negative.
type Penalty struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ScoreBreakdown itemizes how a final priority score was produced.
type ScoreBreakdown struct {
	Fit             float64   `json:"fit"`
	PreferenceMatch float64   `json:"preference_match"`
	Freshness       float64   `json:"freshness"`
	Urgency         float64   `json:"urgency"`
	CategoryBonus   float64   `json:"category_bonus"`
	Raw             float64   `json:"raw"`
	Penalties       []Penalty `json:"penalties,omitempty"`
	Final           float64   `json:"final"`
}

// Flags are boolean markers carried on a ranked job.
type Flags struct {
	DreamJob bool `json:"dream_job,omitempty"`
	Applied  bool `json:"applied,omitempty"`
	Rejected bool `json:"rejected,omitempty"`
	Expired  bool `json:"expired,omitempty"`
	New      bool `json:"new,omitempty"`
	ScamRisk bool `json:"scam_risk,omitempty"`
}

// RankedJob is a ParsedJob with every downstream layer's verdict attached.
// Rank is 1-based and assigned when a ranked batch is sorted; each batch
// returns a fresh list, so nothing mutates a shared instance.
type RankedJob struct {
	Job *ParsedJob `json:"job"`

	FitScore       float64     `json:"fit_score"`
	Gaps           GapAnalysis `json:"gap_analysis"`
	Category       Category    `json:"category"`
	CategoryReason string      `json:"category_reason,omitempty"`

	Rank          int            `json:"rank"`
	PriorityScore float64        `json:"priority_score"`
	Breakdown     ScoreBreakdown `json:"score_breakdown"`

	Flags       Flags        `json:"flags"`
	ShouldApply bool         `json:"should_apply"`
	Tier        PriorityTier `json:"priority_tier"`

	Insights   []string `json:"insights,omitempty"`
	RedFlags   []string `json:"red_flags,omitempty"`
	GreenFlags []string `json:"green_flags,omitempty"`

	Capital *CareerCapital `json:"career_capital,omitempty"`
	Scam    *ScamReport    `json:"scam_detection,omitempty"`
}
