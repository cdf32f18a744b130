package smartrecruiters

import (
	"encoding/json"
	"strings"
	"time"
)

// Posting is a raw record as returned by the postings endpoint. Every field may be missing.
type Posting struct {
	ID              FlexString       `json:"id"`
	Name            FlexString       `json:"name"`
	Location        *Location        `json:"location"`
	Department      *Department      `json:"department"`
	ExperienceLevel *ExperienceLevel `json:"experienceLevel"`
	JobAdURL        string           `json:"jobAdUrl"`
	ApplyURL        string           `json:"applyUrl"`
	ExpirationDate  Timestamp        `json:"expirationDate"`
	PostingDate     Timestamp        `json:"postingDate"`
	ReleasedDate    Timestamp        `json:"releasedDate"`
	RefNumber       FlexString       `json:"refNumber"`
	JobAd           *JobAd           `json:"jobAd"`
}

type Location struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

type Department struct {
	ID    FlexString `json:"id"`
	Label string     `json:"label"`
}

type ExperienceLevel struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type JobAd struct {
	Sections struct {
		JobDescription struct {
			Title string `json:"title"`
			Text  string `json:"text"`
		} `json:"jobDescription"`
	} `json:"sections"`
}

func (p Posting) Description() string {
	if p.JobAd == nil {
		return ""
	}
	return p.JobAd.Sections.JobDescription.Text
}

type postingsPage struct {
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
	TotalFound int       `json:"totalFound"`
	Content    []Posting `json:"content"`
	Jobs       []Posting `json:"jobs"`
}

func (p postingsPage) postings() []Posting {
	if p.Content != nil {
		return p.Content
	}
	return p.Jobs
}

// FlexString accepts a JSON string or number. Null and any other JSON type leave it invalid.
type FlexString struct {
	Value string
	Valid bool
}

func NewFlexString(value string) FlexString {
	return FlexString{Value: value, Valid: true}
}

// String returns the trimmed value, or "" when invalid.
func (s FlexString) String() string {
	if !s.Valid {
		return ""
	}
	return strings.TrimSpace(s.Value)
}

func (s *FlexString) UnmarshalJSON(b []byte) error {
	*s = FlexString{}

	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = NewFlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = NewFlexString(num.String())
	}
	return nil
}

func (s FlexString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp keeps the raw upstream value next to the parsed time. Values that
// can't be parsed stay zero and are reported by Invalid.
type Timestamp struct {
	Time time.Time
	Raw  string
}

func (t Timestamp) IsZero() bool {
	return t.Time.IsZero()
}

func (t Timestamp) Invalid() bool {
	return t.Raw != "" && t.Time.IsZero()
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}

	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return nil
	}

	t.Raw = strings.TrimSpace(str)
	if t.Raw == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, t.Raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(t.Raw)
}
