package models

import "time"

const (
	DefaultDepartment = "Not informed"
	DefaultLocation   = "Brazil"
	FallbackURL       = "#"
)

// Job is the canonical posting served to clients. It is built fresh for every
// request and never mutated afterwards.
type Job struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Location        string     `json:"location"`
	Department      string     `json:"department"`
	Level           Level      `json:"level"`
	Description     string     `json:"description"`
	ViewURL         string     `json:"viewUrl"`
	ApplyURL        string     `json:"applyUrl"`
	ExpirationDate  *time.Time `json:"expirationDate,omitempty"`
	PostingDate     *time.Time `json:"postingDate,omitempty"`
	ReferenceNumber string     `json:"referenceNumber,omitempty"`
}

// SearchText is the lowercased text keyword filters look at.
func (j Job) SearchText() string {
	return lower(j.Title + " " + j.Description)
}
