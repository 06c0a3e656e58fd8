package parser

import (
	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/extract"
	"github.com/spigell/jobsift/internal/posting"
)

// assessQuality is a three-tier decision. High requires the word-count floor
// AND both sections AND enough skills AND enough responsibilities; medium
// relaxes every AND to an OR against a lower word floor; everything else is
// low. Confidence is derived from the tier, never computed independently.
func assessQuality(res *extract.Result, q *config.QualityConfig) (posting.ParseQuality, int) {
	skills := res.Requirements.SkillCount()
	resps := len(res.Responsibilities)

	if res.WordCount >= q.HighWordFloor &&
		res.HasRequirementsSection &&
		res.HasResponsibilitiesSection &&
		skills >= q.MinSkills &&
		resps >= q.MinResponsibilities {
		return posting.QualityHigh, q.HighConfidence
	}

	if res.WordCount >= q.MediumWordFloor ||
		res.HasRequirementsSection ||
		res.HasResponsibilitiesSection ||
		skills >= q.MinSkills ||
		resps >= q.MinResponsibilities {
		return posting.QualityMedium, q.MediumConfidence
	}

	return posting.QualityLow, q.LowConfidence
}
