// Package fit is the boundary to the external Fit Oracle. It owns no
// scoring logic beyond graceful degradation: when the oracle is absent or
// fails, a locally synthesized estimate (or the neutral default) stands in
// so a single failed call never fails a whole ranking.
package fit

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/jobsift/internal/posting"
)

// Oracle computes a candidate-to-job fit score with a gap breakdown. The
// real implementation is external; see the gemini subpackage.
type Oracle interface {
	Evaluate(ctx context.Context, resumeText string, job *posting.ParsedJob) (*posting.FitResult, error)
}

// Adapter calls the oracle and degrades gracefully.
type Adapter struct {
	oracle Oracle
	logger *zap.Logger
}

// NewAdapter creates an Adapter. A nil oracle is allowed: every call then
// takes the degraded path.
func NewAdapter(oracle Oracle, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{oracle: oracle, logger: logger}
}

// Analyze returns the oracle's fit result, or a degraded local estimate
// when the oracle is missing or errors. It never returns nil.
func (a *Adapter) Analyze(ctx context.Context, resumeText string, job *posting.ParsedJob) *posting.FitResult {
	if a.oracle != nil {
		result, err := a.oracle.Evaluate(ctx, resumeText, job)
		if err == nil && result != nil {
			return result
		}
		if err != nil {
			a.logger.Warn("fit oracle evaluation failed, degrading",
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
		}
	}

	if resumeText != "" {
		return Estimate(resumeText, job)
	}
	return posting.NeutralFitResult()
}
