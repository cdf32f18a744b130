package services

import (
	"github.com/maxaizer/sr-vacancies/internal/domain/models"
	"github.com/samber/lo"
	"slices"
)

// View is what a client renders for a given job list and criteria. It is
// recomputed from scratch on every change instead of being patched in place.
type View struct {
	Jobs     []models.Job         `json:"jobs"`
	Total    int                  `json:"total"`
	Levels   map[models.Level]int `json:"levels"`
	Criteria models.Criteria      `json:"criteria"`
}

func BuildView(all []models.Job, criteria models.Criteria) View {
	jobs := Filter(all, criteria)
	return View{
		Jobs:     jobs,
		Total:    len(jobs),
		Levels:   lo.CountValuesBy(all, func(job models.Job) models.Level { return job.Level }),
		Criteria: criteria,
	}
}

// Departments lists the distinct informed departments in collation order.
func Departments(jobs []models.Job) []string {
	return distinctSorted(lo.Map(jobs, func(job models.Job, _ int) string { return job.Department }),
		models.DefaultDepartment)
}

// Cities lists the distinct informed locations in collation order.
func Cities(jobs []models.Job) []string {
	return distinctSorted(lo.Map(jobs, func(job models.Job, _ int) string { return job.Location }),
		models.DefaultLocation)
}

func distinctSorted(values []string, placeholder string) []string {
	values = lo.Uniq(lo.Without(lo.Compact(values), placeholder))
	collator := newCollator()
	slices.SortFunc(values, collator.CompareString)
	return values
}
