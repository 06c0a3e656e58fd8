package posting

import "time"

// Input size bounds for a raw posting. Violations are rejected with typed
// errors before any extraction runs.
const (
	MinTextLength = 50
	MaxTextLength = 50000
)

// Placeholder sentinels returned when no extraction pattern matches.
const (
	UnknownTitle    = "Unknown Position"
	UnknownCompany  = "Unknown Company"
	UnknownLocation = "Location Not Specified"
)

// WorkArrangement describes where the work happens.
type WorkArrangement string

const (
	Remote             WorkArrangement = "remote"
	Hybrid             WorkArrangement = "hybrid"
	Onsite             WorkArrangement = "onsite"
	ArrangementUnknown WorkArrangement = "unknown"
)

// Seniority is the expected level for a role.
type Seniority string

const (
	SeniorityEntry  Seniority = "entry"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
	SeniorityLead   Seniority = "lead"
)

// ParseQuality is the confidence tier of a structural extraction.
type ParseQuality string

const (
	QualityHigh   ParseQuality = "high"
	QualityMedium ParseQuality = "medium"
	QualityLow    ParseQuality = "low"
)

// Category is the decision bucket a job is placed in.
type Category string

const (
	CategoryReach  Category = "reach"
	CategoryTarget Category = "target"
	CategorySafety Category = "safety"
	CategoryAvoid  Category = "avoid"
)

// PriorityTier buckets ranked jobs for attention ordering.
type PriorityTier string

const (
	TierHigh   PriorityTier = "high"
	TierMedium PriorityTier = "medium"
	TierLow    PriorityTier = "low"
)

// RawPosting is the immutable inbound payload: free text plus optional
// user-supplied overrides that short-circuit pattern extraction.
type RawPosting struct {
	Text      string     `json:"job_description"`
	Overrides *Overrides `json:"metadata,omitempty"`
	Language  string     `json:"language,omitempty"`
}

// Overrides carries user-supplied values that always win over extraction.
type Overrides struct {
	Title      string `json:"job_title,omitempty"`
	Company    string `json:"company,omitempty"`
	Location   string `json:"location,omitempty"`
	URL        string `json:"job_url,omitempty"`
	PostedDate string `json:"posted_date,omitempty"`
	Deadline   string `json:"application_deadline,omitempty"`
	Source     string `json:"source,omitempty"`
}

// SalaryRange is an annualized salary band. Min and Max are optional; when
// both are present Max is never below Min.
type SalaryRange struct {
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Metadata carries parse provenance and company context for a ParsedJob.
type Metadata struct {
	ParseQuality ParseQuality `json:"parse_quality"`
	Confidence   int          `json:"confidence"`
	Source       string       `json:"source,omitempty"`
	PostedDate   *time.Time   `json:"posted_date,omitempty"`
	Deadline     *time.Time   `json:"application_deadline,omitempty"`
	CompanyTier  string       `json:"company_tier,omitempty"`
	CompanySize  string       `json:"company_size,omitempty"`
	Industry     string       `json:"industry,omitempty"`
}

// ParsedJob is the canonical structured posting. It is created once per
// parse call and never mutated; re-parsing produces a new instance.
type ParsedJob struct {
	ID               string          `json:"id"`
	CanonicalID      string          `json:"canonical_id"`
	Title            string          `json:"title"`
	Company          string          `json:"company"`
	Location         string          `json:"location"`
	RawText          string          `json:"raw_text,omitempty"`
	Requirements     JobRequirements `json:"requirements"`
	Responsibilities []string        `json:"responsibilities,omitempty"`
	Benefits         []string        `json:"benefits,omitempty"`
	Arrangement      WorkArrangement `json:"work_arrangement"`
	Salary           *SalaryRange    `json:"salary,omitempty"`
	Meta             Metadata        `json:"metadata"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsExpired reports whether the application deadline has passed relative to now.
func (j *ParsedJob) IsExpired(now time.Time) bool {
	return j.Meta.Deadline != nil && j.Meta.Deadline.Before(now)
}

// PostedDaysAgo returns whole days since the posting date, or -1 when unknown.
func (j *ParsedJob) PostedDaysAgo(now time.Time) int {
	if j.Meta.PostedDate == nil {
		return -1
	}
	d := now.Sub(*j.Meta.PostedDate)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
