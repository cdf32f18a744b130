package services

import (
	"github.com/maxaizer/sr-vacancies/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_BuildView_ShouldCountLevelsOverAllJobs(t *testing.T) {

	criteria := models.Criteria{City: "campinas"}
	view := BuildView(sampleJobs(), criteria)

	assert.Equal(t, 3, view.Total)
	assert.Equal(t, []string{"1", "3", "5"}, ids(view.Jobs))
	assert.Equal(t, criteria, view.Criteria)
	assert.Equal(t, map[models.Level]int{
		models.LevelJunior:      2,
		models.LevelSenior:      1,
		models.LevelIntern:      1,
		models.LevelMid:         1,
		models.LevelUnspecified: 1,
	}, view.Levels)
}

func Test_BuildView_ShouldBeRecomputedFromScratch(t *testing.T) {

	jobs := sampleJobs()
	first := BuildView(jobs, models.Criteria{Level: models.LevelSenior})
	second := BuildView(jobs, models.Criteria{})

	assert.Equal(t, 1, first.Total)
	assert.Equal(t, len(jobs), second.Total)
	assert.Equal(t, first.Levels, second.Levels)
}

func Test_Departments_ShouldBeDistinctAndCollated(t *testing.T) {
	assert.Equal(t, []string{"Engineering", "Finance", "IT"}, Departments(sampleJobs()))
}

func Test_Cities_ShouldSkipPlaceholder(t *testing.T) {
	jobs := append(sampleJobs(), job("7", "Auxiliar", "Águas de Lindóia, br", "", ""))

	assert.Equal(t, []string{"Águas de Lindóia, br", "Campinas, br", "Curitiba, br", "São Paulo, br"},
		Cities(jobs))
}

func Test_Catalogs_EmptyInput(t *testing.T) {
	assert.Empty(t, Departments(nil))
	assert.Empty(t, Cities(nil))
}
