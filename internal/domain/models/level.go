package models

import (
	"fmt"
	"golang.org/x/text/unicode/norm"
	"strings"
	"unicode"
)

type Level string

const (
	LevelIntern      Level = "intern"
	LevelJunior      Level = "junior"
	LevelMid         Level = "mid"
	LevelSenior      Level = "senior"
	LevelUnspecified Level = "unspecified"
)

// levelPrecedence is the order in which title keywords are tested, first match wins.
// "Trainee Júnior" is an intern position, not a junior one.
var levelPrecedence = []Level{LevelIntern, LevelJunior, LevelMid, LevelSenior}

var levelKeywords = map[Level][]string{
	LevelIntern: {"estágio", "estagio", "estagiário", "estagiario", "estagiária", "estagiaria",
		"trainee", "intern", "internship"},
	LevelJunior: {"junior", "júnior", "jr"},
	LevelMid:    {"pleno", "mid"},
	LevelSenior: {"senior", "sênior", "sr"},
}

// experience ids used by SmartRecruiters in experienceLevel.id
var levelByExperience = map[string]Level{
	"internship":       LevelIntern,
	"entry_level":      LevelJunior,
	"associate":        LevelMid,
	"mid_senior_level": LevelSenior,
	"senior":           LevelSenior,
	"director":         LevelSenior,
	"executive":        LevelSenior,
}

var levelAliases = map[string]Level{
	"intern":      LevelIntern,
	"internship":  LevelIntern,
	"estagio":     LevelIntern,
	"estágio":     LevelIntern,
	"trainee":     LevelIntern,
	"junior":      LevelJunior,
	"júnior":      LevelJunior,
	"jr":          LevelJunior,
	"mid":         LevelMid,
	"pleno":       LevelMid,
	"senior":      LevelSenior,
	"sênior":      LevelSenior,
	"sr":          LevelSenior,
	"unspecified": LevelUnspecified,
}

func ParseLevel(s string) (Level, error) {
	key := norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
	if level, ok := levelAliases[key]; ok {
		return level, nil
	}
	return "", fmt.Errorf("unknown level: %q", s)
}

func (l Level) IsValid() bool {
	switch l {
	case LevelIntern, LevelJunior, LevelMid, LevelSenior, LevelUnspecified:
		return true
	default:
		return false
	}
}

func (l Level) Keywords() []string {
	return levelKeywords[l]
}

// MatchesTitle reports whether any keyword of the level appears as a whole word in the title.
func (l Level) MatchesTitle(title string) bool {
	return containsAnyWord(titleWords(title), levelKeywords[l])
}

func LevelFromTitle(title string) Level {
	words := titleWords(title)
	for _, level := range levelPrecedence {
		if containsAnyWord(words, levelKeywords[level]) {
			return level
		}
	}
	return LevelUnspecified
}

func LevelFromExperience(experienceID string) Level {
	if level, ok := levelByExperience[strings.ToLower(strings.TrimSpace(experienceID))]; ok {
		return level
	}
	return LevelUnspecified
}

// DeriveLevel prefers the title wording over the upstream experience level,
// since the latter often disagrees with what the posting actually asks for.
func DeriveLevel(title, experienceID string) Level {
	if level := LevelFromTitle(title); level != LevelUnspecified {
		return level
	}
	return LevelFromExperience(experienceID)
}

func titleWords(title string) map[string]struct{} {
	text := norm.NFC.String(strings.ToLower(title))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})

	words := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		words[field] = struct{}{}
	}
	return words
}

func containsAnyWord(words map[string]struct{}, keywords []string) bool {
	for _, keyword := range keywords {
		if _, ok := words[keyword]; ok {
			return true
		}
	}
	return false
}
