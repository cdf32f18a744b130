package models

import "github.com/samber/lo"

type Preset struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Criteria    Criteria `json:"criteria"`
}

var seniorExclusions = []string{
	"senior", "sênior", "sr", "pleno", "lead", "principal", "especialista", "expert",
	"gerente", "coordenador", "supervisor",
}

var Presets = []Preset{
	{
		Name:        "junior-sap",
		Description: "Junior SAP - Campinas (excluding senior/mid)",
		Criteria: Criteria{
			Level:           LevelJunior,
			IncludeKeywords: []string{"sap", "erp"},
			City:            "Campinas",
			ExcludeKeywords: seniorExclusions,
		},
	},
	{
		Name:        "junior-sap-clt",
		Description: "Junior SAP CLT - Campinas (excluding internships and senior/mid)",
		Criteria: Criteria{
			Level:           LevelJunior,
			IncludeKeywords: []string{"sap", "erp"},
			City:            "Campinas",
			// exclusions are substrings, so "intern" also drops "International" titles
			ExcludeKeywords: append(append([]string{}, seniorExclusions...),
				"estágio", "estagiário", "trainee", "intern"),
		},
	},
	{
		Name:        "estagio-sap",
		Description: "SAP internships - Campinas",
		Criteria: Criteria{
			Level:           LevelIntern,
			IncludeKeywords: []string{"sap", "erp"},
			City:            "Campinas",
			ExcludeKeywords: []string{"senior", "sênior", "sr", "pleno", "junior", "jr"},
		},
	},
}

func FindPreset(name string) (Preset, bool) {
	return lo.Find(Presets, func(p Preset) bool { return p.Name == name })
}
