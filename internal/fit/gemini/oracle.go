package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/jobsift/internal/logger"
	"github.com/spigell/jobsift/internal/posting"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Oracle evaluates candidate-to-job fit via Gemini.
type Oracle struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewOracle creates an Oracle on top of a content generator.
func NewOracle(generator contentGenerator, log *zap.Logger, maxLogLength int) *Oracle {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Oracle{generator: generator, logger: log, maxLogLen: maxLogLength}
}

// Evaluate sends the resume and parsed job to Gemini and parses the scored
// gap analysis out of the response.
func (o *Oracle) Evaluate(ctx context.Context, resumeText string, job *posting.ParsedJob) (*posting.FitResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("resume text is required")
	}
	if job == nil {
		return nil, fmt.Errorf("parsed job is required")
	}

	// The raw text is already distilled into the structured fields; sending
	// it again doubles the prompt for no gain.
	trimmed := *job
	trimmed.RawText = ""

	jobJSON, err := json.MarshalIndent(&trimmed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	prompt := buildPrompt(resumeText, string(jobJSON))

	o.logger.Debug("gemini fit request",
		zap.String("job_id", job.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, o.maxLogLen)),
	)

	raw, err := o.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("gemini fit response",
		zap.String("job_id", job.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, o.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(resume, jobJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME}}\n\nJob:\n{{JOB_JSON}}\n\nJSON response:"
	}
	prompt := strings.ReplaceAll(template, "{{RESUME}}", resume)
	return strings.ReplaceAll(prompt, "{{JOB_JSON}}", jobJSON)
}

func parseResponse(raw string) (*posting.FitResult, error) {
	cleaned := extractJSON(raw)

	var result posting.FitResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if result.Score < 0 {
		result.Score = 0
	} else if result.Score > 100 {
		result.Score = 100
	}

	switch result.Gaps.SeniorityAlignment {
	case posting.Aligned, posting.Underqualified, posting.Overqualified:
	default:
		result.Gaps.SeniorityAlignment = posting.Aligned
	}

	return &result, nil
}

// extractJSON strips markdown fences the model sometimes wraps around the
// payload.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}
