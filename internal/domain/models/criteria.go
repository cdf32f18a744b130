package models

import (
	"golang.org/x/text/unicode/norm"
	"strings"
)

type SortOrder string

const (
	SortNone       SortOrder = ""
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "az", "true":
		return SortAscending
	case "desc", "za":
		return SortDescending
	default:
		return SortNone
	}
}

// Criteria is the set of user filters applied to a job list. Zero values mean "no filter".
type Criteria struct {
	TextQuery       string    `json:"q,omitempty"`
	City            string    `json:"city,omitempty"`
	Department      string    `json:"department,omitempty"`
	Level           Level     `json:"level,omitempty"`
	IncludeKeywords []string  `json:"technologies,omitempty"`
	ExcludeKeywords []string  `json:"exclude,omitempty"`
	Sort            SortOrder `json:"sort,omitempty"`
}

func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.TextQuery) == "" &&
		strings.TrimSpace(c.City) == "" &&
		strings.TrimSpace(c.Department) == "" &&
		c.Level == "" &&
		len(c.IncludeKeywords) == 0 &&
		len(c.ExcludeKeywords) == 0 &&
		c.Sort == SortNone
}

// ParseKeywords splits a comma separated list, dropping blanks.
func ParseKeywords(list string) []string {
	var keywords []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			keywords = append(keywords, item)
		}
	}
	return keywords
}

func lower(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

// Fold lowercases s in the same form job text is compared in.
func Fold(s string) string {
	return lower(strings.TrimSpace(s))
}
