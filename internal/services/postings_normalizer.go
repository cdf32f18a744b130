package services

import (
	"fmt"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/maxaizer/sr-vacancies/internal/domain/models"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

// MalformedPostingError describes a raw posting that could not become a Job.
// It never fails the batch, the posting is just dropped.
type MalformedPostingError struct {
	Index  int
	ID     string
	Reason string
}

func (e *MalformedPostingError) Error() string {
	return fmt.Sprintf("malformed posting #%d (id %q): %s", e.Index, e.ID, e.Reason)
}

// Normalize maps raw postings into jobs, dropping postings without id or name.
func Normalize(postings []smartrecruiters.Posting) ([]models.Job, []*MalformedPostingError) {

	jobs := make([]models.Job, 0, len(postings))
	var rejected []*MalformedPostingError

	for i, posting := range postings {
		job, err := NormalizePosting(posting)
		if err != nil {
			err.Index = i
			log.Warn(err)
			rejected = append(rejected, err)
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, rejected
}

func NormalizePosting(posting smartrecruiters.Posting) (models.Job, *MalformedPostingError) {

	id, title := posting.ID.String(), posting.Name.String()
	switch {
	case id == "":
		return models.Job{}, &MalformedPostingError{Reason: "missing id"}
	case title == "":
		return models.Job{}, &MalformedPostingError{ID: id, Reason: "missing name"}
	}

	var experienceID string
	if posting.ExperienceLevel != nil {
		experienceID = posting.ExperienceLevel.ID
	}

	var department string
	if posting.Department != nil {
		department = posting.Department.Label
	}

	for name, date := range map[string]smartrecruiters.Timestamp{
		"expirationDate": posting.ExpirationDate,
		"postingDate":    posting.PostingDate,
		"releasedDate":   posting.ReleasedDate,
	} {
		if date.Invalid() {
			log.Debugf("posting %s has unparsable %s %q, ignoring it", id, name, date.Raw)
		}
	}

	postingDate := posting.PostingDate
	if postingDate.IsZero() {
		postingDate = posting.ReleasedDate
	}

	return NormalizeJob(models.Job{
		ID:              id,
		Title:           title,
		Location:        formatLocation(posting.Location),
		Department:      department,
		Level:           models.DeriveLevel(title, experienceID),
		Description:     posting.Description(),
		ViewURL:         posting.JobAdURL,
		ApplyURL:        posting.ApplyURL,
		ExpirationDate:  timePtr(posting.ExpirationDate),
		PostingDate:     timePtr(postingDate),
		ReferenceNumber: posting.RefNumber.String(),
	}), nil
}

// NormalizeJob applies the canonical defaults. Normalizing a canonical job returns it unchanged.
func NormalizeJob(job models.Job) models.Job {

	job.ID = strings.TrimSpace(job.ID)
	job.Title = strings.TrimSpace(job.Title)
	job.Location = coalesce(job.Location, models.DefaultLocation)
	job.Department = coalesce(job.Department, models.DefaultDepartment)
	job.Description = strings.TrimSpace(job.Description)
	job.ReferenceNumber = strings.TrimSpace(job.ReferenceNumber)

	if !job.Level.IsValid() {
		job.Level = models.LevelFromTitle(job.Title)
	}

	viewURL, applyURL := job.ViewURL, job.ApplyURL
	job.ViewURL = coalesce(viewURL, applyURL, models.FallbackURL)
	job.ApplyURL = coalesce(applyURL, viewURL, models.FallbackURL)

	job.ExpirationDate = utcPtr(job.ExpirationDate)
	job.PostingDate = utcPtr(job.PostingDate)
	return job
}

func formatLocation(location *smartrecruiters.Location) string {
	if location == nil {
		return models.DefaultLocation
	}

	city, country := strings.TrimSpace(location.City), strings.TrimSpace(location.Country)
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	case country != "":
		return country
	default:
		return models.DefaultLocation
	}
}

func coalesce(values ...string) string {
	value, _ := lo.Coalesce(lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })...)
	return value
}

func timePtr(timestamp smartrecruiters.Timestamp) *time.Time {
	if timestamp.IsZero() {
		return nil
	}
	t := timestamp.Time.UTC()
	return &t
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
