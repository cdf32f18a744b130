package services

import (
	"github.com/maxaizer/sr-vacancies/internal/domain/models"
	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"slices"
	"strings"
)

// Filter returns the jobs matching every criteria axis, in input order unless a
// sort is requested. The input slice is never modified.
func Filter(jobs []models.Job, criteria models.Criteria) []models.Job {

	query := models.Fold(criteria.TextQuery)
	city := models.Fold(criteria.City)
	department := models.Fold(criteria.Department)
	include := foldKeywords(criteria.IncludeKeywords)
	exclude := foldKeywords(criteria.ExcludeKeywords)

	filtered := lo.Filter(jobs, func(job models.Job, _ int) bool {

		if query != "" && !containsAny([]string{job.Title, job.Department, job.Location}, query) {
			return false
		}

		if city != "" && !strings.Contains(models.Fold(job.Location), city) {
			return false
		}

		if department != "" && !strings.Contains(models.Fold(job.Department), department) {
			return false
		}

		if criteria.Level != "" && job.Level != criteria.Level && !criteria.Level.MatchesTitle(job.Title) {
			return false
		}

		text := job.SearchText()
		if len(include) > 0 && !lo.SomeBy(include, func(k string) bool { return strings.Contains(text, k) }) {
			return false
		}

		return !lo.SomeBy(exclude, func(k string) bool { return strings.Contains(text, k) })
	})

	if criteria.Sort != models.SortNone {
		return SortByTitle(filtered, criteria.Sort == models.SortDescending)
	}
	return filtered
}

// SortByTitle returns a stably sorted copy of jobs.
//
// Titles are compared with the Brazilian Portuguese collation: letters are
// compared first ignoring case and accents, then accents break ties, then case.
// "Abacate" < "São Bernardo" < "Sao Paulo" and "Sao Paulo" < "São Paulo".
func SortByTitle(jobs []models.Job, descending bool) []models.Job {
	sorted := slices.Clone(jobs)
	collator := newCollator()

	slices.SortStableFunc(sorted, func(a, b models.Job) int {
		cmp := collator.CompareString(a.Title, b.Title)
		if descending {
			return -cmp
		}
		return cmp
	})
	return sorted
}

// a Collator keeps internal buffers, so one is created per sort
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese)
}

func foldKeywords(keywords []string) []string {
	folded := lo.Map(keywords, func(k string, _ int) string { return models.Fold(k) })
	return lo.Uniq(lo.Compact(folded))
}

func containsAny(fields []string, needle string) bool {
	return lo.SomeBy(fields, func(field string) bool {
		return strings.Contains(models.Fold(field), needle)
	})
}
