package smartrecruiters

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"net/url"
	"strconv"
	"strings"
)

const DefaultCountry = "br"

var validate = validator.New()

type SearchParameters struct {
	Country    string `validate:"omitempty,len=2,alpha"`
	Query      string `validate:"max=200"`
	Department string `validate:"max=200"`
	City       string `validate:"max=200"`
	// Limit caps the number of postings returned, 0 means up to the client's max records.
	Limit int `validate:"gte=0"`
}

func (s SearchParameters) Validate() error {
	return validate.Struct(s)
}

// WithoutInvalid clears every field that fails validation and returns the
// names of the cleared fields.
func (s SearchParameters) WithoutInvalid() (SearchParameters, []string) {
	var validationErrors validator.ValidationErrors
	if !errors.As(s.Validate(), &validationErrors) {
		return s, nil
	}

	dropped := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		switch fieldErr.StructField() {
		case "Country":
			s.Country = ""
		case "Query":
			s.Query = ""
		case "Department":
			s.Department = ""
		case "City":
			s.City = ""
		case "Limit":
			s.Limit = 0
		default:
			continue
		}
		dropped = append(dropped, fieldErr.StructField())
	}
	return s, dropped
}

func (s SearchParameters) country() string {
	if s.Country == "" {
		return DefaultCountry
	}
	return strings.ToLower(s.Country)
}

func (s SearchParameters) ToUrlParams(offset, limit int) url.Values {
	params := url.Values{}
	params.Add("country", s.country())
	params.Add("limit", strconv.Itoa(limit))
	params.Add("offset", strconv.Itoa(offset))

	if s.Query != "" {
		params.Add("q", s.Query)
	}

	if s.Department != "" {
		params.Add("department", s.Department)
	}

	if s.City != "" {
		params.Add("city", s.City)
	}

	return params
}

// CacheKey identifies the result set the parameters select.
func (s SearchParameters) CacheKey() string {
	params := url.Values{}
	params.Add("country", s.country())
	params.Add("q", strings.ToLower(s.Query))
	params.Add("department", strings.ToLower(s.Department))
	params.Add("city", strings.ToLower(s.City))
	params.Add("limit", strconv.Itoa(s.Limit))
	return "postings:" + params.Encode()
}
