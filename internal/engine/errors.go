package engine

import "fmt"

// Machine-readable error codes surfaced in response envelopes.
const (
	// Validation.
	CodeTooShort        = "JD_TOO_SHORT"
	CodeTooLong         = "JD_TOO_LONG"
	CodeMissingJob      = "MISSING_JOB_DESCRIPTION"
	CodeValidationError = "VALIDATION_ERROR"

	// Parsing.
	CodeParsingFailed = "PARSING_FAILED"

	// Business.
	CodeDuplicateJob     = "DUPLICATE_JOB"
	CodeComparisonFailed = "COMPARISON_FAILED"

	// Integration.
	CodeRankingFailed = "RANKING_FAILED"

	// System.
	CodeInternalError = "INTERNAL_ERROR"
	CodeConfigError   = "CONFIG_ERROR"
)

// Error is the typed error carried in response envelopes. The user-facing
// Title/Message/Suggestion triple is decoupled from the machine-readable
// code so presentation and diagnosis can evolve independently.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`

	Title      string `json:"title,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// presentation maps codes to their user-facing title and suggestion.
var presentation = map[string][2]string{
	CodeTooShort:          {"Job description too short", "Paste the full posting text, at least 50 characters."},
	CodeTooLong:           {"Job description too long", "Trim the posting to under 50,000 characters."},
	CodeMissingJob:        {"No job description", "Provide the posting text to analyze."},
	CodeValidationError:   {"Invalid request", "Check the request fields and try again."},
	CodeParsingFailed:    {"Could not parse the posting", "Try pasting a cleaner version of the posting."},
	CodeDuplicateJob:     {"Already analyzed", "This posting was analyzed before; check your existing results."},
	CodeComparisonFailed: {"Comparison not possible", "Select between 2 and 5 jobs to compare."},
	CodeRankingFailed:    {"Ranking failed", "Retry the ranking; if it persists, rank jobs one at a time."},
	CodeInternalError:    {"Something went wrong", "Retry the operation; report it if the problem persists."},
	CodeConfigError:      {"Engine misconfigured", "Fix the configuration file and restart."},
}

// NewError builds a typed error with its presentation fields resolved.
func NewError(code, message, details string) *Error {
	p := presentation[code]
	return &Error{
		Code:       code,
		Message:    message,
		Details:    details,
		Title:      p[0],
		Suggestion: p[1],
	}
}
