package engine

import (
	"sort"

	"github.com/spigell/jobsift/internal/posting"
)

// CompanyGroup aggregates ranked jobs for one company.
type CompanyGroup struct {
	Company     string   `json:"company"`
	Count       int      `json:"count"`
	BestFit     float64  `json:"best_fit"`
	AvgPriority float64  `json:"avg_priority"`
	ShouldApply int      `json:"should_apply"`
	Titles      []string `json:"titles"`
}

// ReportByCompany groups ranked jobs by company, ordered by best fit
// descending so the most promising companies come first.
func ReportByCompany(jobs []*posting.RankedJob) []CompanyGroup {
	byCompany := make(map[string][]*posting.RankedJob)
	for _, job := range jobs {
		byCompany[job.Job.Company] = append(byCompany[job.Job.Company], job)
	}

	groups := make([]CompanyGroup, 0, len(byCompany))
	for company, list := range byCompany {
		group := CompanyGroup{Company: company, Count: len(list)}

		var total float64
		for _, job := range list {
			if job.FitScore > group.BestFit {
				group.BestFit = job.FitScore
			}
			if job.ShouldApply {
				group.ShouldApply++
			}
			total += job.Breakdown.Final
			group.Titles = append(group.Titles, job.Job.Title)
		}
		group.AvgPriority = total / float64(len(list))

		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].BestFit != groups[j].BestFit {
			return groups[i].BestFit > groups[j].BestFit
		}
		return groups[i].Company < groups[j].Company
	})

	return groups
}
