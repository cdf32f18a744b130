package services

import (
	"github.com/maxaizer/sr-vacancies/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"slices"
	"testing"
)

func job(id, title, location, department string, level models.Level) models.Job {
	return NormalizeJob(models.Job{ID: id, Title: title, Location: location, Department: department, Level: level})
}

func sampleJobs() []models.Job {
	return []models.Job{
		job("1", "Analista SAP Júnior", "Campinas, br", "IT", models.LevelJunior),
		job("2", "Engenheiro Sênior SAP", "São Paulo, br", "IT", models.LevelSenior),
		job("3", "Estágio SAP Campinas", "Campinas, br", "Finance", models.LevelIntern),
		job("4", "Desenvolvedor Java", "Curitiba, br", "Engineering", models.LevelJunior),
		job("5", "Analista Pleno ERP", "Campinas, br", "Finance", models.LevelMid),
		job("6", "Técnico de Manutenção", "Brazil", "Not informed", models.LevelUnspecified),
	}
}

func ids(jobs []models.Job) []string {
	return lo.Map(jobs, func(j models.Job, _ int) string { return j.ID })
}

func Test_Filter_EmptyCriteria_ShouldReturnCopyInOrder(t *testing.T) {

	jobs := sampleJobs()
	filtered := Filter(jobs, models.Criteria{})

	assert.Equal(t, jobs, filtered)
	filtered[0].Title = "changed"
	assert.Equal(t, "Analista SAP Júnior", jobs[0].Title)
}

func Test_Filter_ShouldNotMutateInput(t *testing.T) {

	jobs := sampleJobs()
	snapshot := slices.Clone(jobs)

	_ = Filter(jobs, models.Criteria{City: "campinas", Sort: models.SortDescending})

	assert.Equal(t, snapshot, jobs)
}

func Test_Filter_TextQuery_ShouldMatchTitleDepartmentOrLocation(t *testing.T) {

	jobs := sampleJobs()

	assert.Equal(t, []string{"1", "2", "3"}, ids(Filter(jobs, models.Criteria{TextQuery: "sap"})))
	assert.Equal(t, []string{"3", "5"}, ids(Filter(jobs, models.Criteria{TextQuery: "FINANCE"})))
	assert.Equal(t, []string{"4"}, ids(Filter(jobs, models.Criteria{TextQuery: "curitiba"})))
}

func Test_Filter_CityAndDepartment(t *testing.T) {

	jobs := sampleJobs()

	assert.Equal(t, []string{"1", "3", "5"}, ids(Filter(jobs, models.Criteria{City: "Campinas"})))
	assert.Equal(t, []string{"2"}, ids(Filter(jobs, models.Criteria{City: "são paulo"})))
	assert.Equal(t, []string{"5"}, ids(Filter(jobs, models.Criteria{City: "campinas", Department: "fin",
		Level: models.LevelMid})))
}

func Test_Filter_Level_ShouldMatchTagOrTitleKeywords(t *testing.T) {

	jobs := append(sampleJobs(), job("7", "Trainee Backend Júnior", "Campinas, br", "IT", ""))

	assert.Equal(t, models.LevelIntern, jobs[6].Level)
	assert.Equal(t, []string{"1", "4", "7"}, ids(Filter(jobs, models.Criteria{Level: models.LevelJunior})))
	assert.Equal(t, []string{"3", "7"}, ids(Filter(jobs, models.Criteria{Level: models.LevelIntern})))
}

func Test_Filter_Keywords_ExcludeWins(t *testing.T) {

	jobs := sampleJobs()
	jobs[3].Description = "Integração com SAP via APIs"

	criteria := models.Criteria{IncludeKeywords: []string{"SAP", "erp"}}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(Filter(jobs, criteria)))

	criteria.ExcludeKeywords = []string{"sênior", "estágio", "sap"}
	assert.Empty(t, Filter(jobs, criteria))

	criteria.ExcludeKeywords = []string{"Sênior", "estágio"}
	assert.Equal(t, []string{"1", "4", "5"}, ids(Filter(jobs, criteria)))
}

func Test_Filter_Preset_JuniorSap(t *testing.T) {

	preset, _ := models.FindPreset("junior-sap")
	assert.Equal(t, []string{"1"}, ids(Filter(sampleJobs(), preset.Criteria)))

	intern, _ := models.FindPreset("estagio-sap")
	assert.Equal(t, []string{"3"}, ids(Filter(sampleJobs(), intern.Criteria)))
}

func Test_Filter_Preset_JuniorSapClt_ShouldDropInternationalTitles(t *testing.T) {

	jobs := append(sampleJobs(),
		job("7", "Analista SAP Júnior International", "Campinas, br", "IT", models.LevelJunior))

	preset, _ := models.FindPreset("junior-sap-clt")
	assert.Equal(t, []string{"1"}, ids(Filter(jobs, preset.Criteria)))
}

func Test_SortByTitle_ShouldUsePortugueseCollation(t *testing.T) {

	jobs := []models.Job{
		{ID: "1", Title: "Sao Paulo"},
		{ID: "2", Title: "São Bernardo"},
		{ID: "3", Title: "abacate"},
		{ID: "4", Title: "São Paulo"},
		{ID: "5", Title: "Ábaco"},
	}

	assert.Equal(t, []string{"3", "5", "2", "1", "4"}, ids(SortByTitle(jobs, false)))
	assert.Equal(t, []string{"4", "1", "2", "5", "3"}, ids(SortByTitle(jobs, true)))
	assert.Equal(t, "1", jobs[0].ID)
}

func Test_SortByTitle_ShouldBeStable(t *testing.T) {

	jobs := []models.Job{
		{ID: "1", Title: "Analista"},
		{ID: "2", Title: "Zelador"},
		{ID: "3", Title: "Analista"},
		{ID: "4", Title: "Analista"},
	}

	assert.Equal(t, []string{"1", "3", "4", "2"}, ids(SortByTitle(jobs, false)))
	assert.Equal(t, []string{"2", "1", "3", "4"}, ids(SortByTitle(jobs, true)))
}

func Test_Filter_WithSort(t *testing.T) {

	sorted := Filter(sampleJobs(), models.Criteria{City: "campinas", Sort: models.SortAscending})
	assert.Equal(t, []string{"5", "1", "3"}, ids(sorted))
}
