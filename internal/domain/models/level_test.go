package models

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_LevelFromTitle(t *testing.T) {
	cases := map[string]Level{
		"Estágio em SAP":                 LevelIntern,
		"Estagiário(a) de Finanças":      LevelIntern,
		"Trainee Backend Júnior":         LevelIntern,
		"Internship - Software":          LevelIntern,
		"Analista SAP Júnior":            LevelJunior,
		"Desenvolvedor Jr. Java":         LevelJunior,
		"Analista Pleno SAP":             LevelMid,
		"SAP Consultant Senior":          LevelSenior,
		"Engenheiro Sênior de Produção":  LevelSenior,
		"Sr. Data Engineer":              LevelSenior,
		"Internal Auditor":               LevelUnspecified,
		"Especialista em Srum e Jira":    LevelUnspecified,
		"Técnico de Manutenção":          LevelUnspecified,
		"":                               LevelUnspecified,
		"JUNIOR / PLENO Developer":       LevelJunior,
		"Coordenador Sênior / Sr Leader": LevelSenior,
	}

	for title, expected := range cases {
		assert.Equal(t, expected, LevelFromTitle(title), title)
	}
}

func Test_DeriveLevel_TitleWinsOverExperience(t *testing.T) {
	assert.Equal(t, LevelIntern, DeriveLevel("Estágio SAP Campinas", "mid_senior_level"))
	assert.Equal(t, LevelSenior, DeriveLevel("Engenheiro de Software", "mid_senior_level"))
	assert.Equal(t, LevelJunior, DeriveLevel("Analista Financeiro", "entry_level"))
	assert.Equal(t, LevelMid, DeriveLevel("Analista Financeiro", "Associate"))
	assert.Equal(t, LevelIntern, DeriveLevel("Assistente", "internship"))
	assert.Equal(t, LevelUnspecified, DeriveLevel("Assistente", "not_applicable"))
	assert.Equal(t, LevelUnspecified, DeriveLevel("Assistente", ""))
}

func Test_ParseLevel(t *testing.T) {
	for input, expected := range map[string]Level{
		"junior":  LevelJunior,
		" JR ":    LevelJunior,
		"Júnior":  LevelJunior,
		"estágio": LevelIntern,
		"pleno":   LevelMid,
		"Senior":  LevelSenior,
		"sr":      LevelSenior,
	} {
		level, err := ParseLevel(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, level, input)
	}

	_, err := ParseLevel("guru")
	assert.Error(t, err)
}

func Test_Level_MatchesTitle(t *testing.T) {
	assert.True(t, LevelJunior.MatchesTitle("Trainee Backend Júnior"))
	assert.True(t, LevelIntern.MatchesTitle("Trainee Backend Júnior"))
	assert.False(t, LevelSenior.MatchesTitle("Analista SAP Júnior"))
	assert.False(t, LevelIntern.MatchesTitle("International Sales"))
	assert.False(t, LevelUnspecified.MatchesTitle("Anything"))
}

func Test_Level_IsValid(t *testing.T) {
	assert.True(t, LevelUnspecified.IsValid())
	assert.True(t, LevelMid.IsValid())
	assert.False(t, Level("").IsValid())
	assert.False(t, Level("principal").IsValid())
}
