package api

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/maxaizer/sr-vacancies/internal/domain/models"
	log "github.com/sirupsen/logrus"
	"strconv"
	"strings"
)

// criteriaFromQuery reads the filters of a request. Values that can't be
// parsed leave their axis unset instead of failing the request.
func criteriaFromQuery(c *gin.Context) models.Criteria {

	criteria := models.Criteria{
		TextQuery:       strings.TrimSpace(queryOr(c, "q", "busca")),
		City:            strings.TrimSpace(queryOr(c, "city", "cidade")),
		Department:      strings.TrimSpace(c.Query("department")),
		IncludeKeywords: models.ParseKeywords(c.Query("technologies")),
		ExcludeKeywords: models.ParseKeywords(c.Query("exclude")),
		Sort:            models.ParseSortOrder(c.Query("sort")),
	}

	// the first recognized entry of a list like "junior,jr" wins
	for _, raw := range models.ParseKeywords(queryOr(c, "level", "nivel")) {
		level, err := models.ParseLevel(raw)
		if err != nil {
			log.Debugf("ignoring level filter: %v", err)
			continue
		}
		criteria.Level = level
		break
	}

	return criteria
}

// queryOr reads key and falls back to its Portuguese alias.
func queryOr(c *gin.Context, key, alias string) string {
	if value, ok := c.GetQuery(key); ok {
		return value
	}
	return c.Query(alias)
}

func paramsFromQuery(c *gin.Context, criteria models.Criteria) smartrecruiters.SearchParameters {

	params := smartrecruiters.SearchParameters{
		Country:    strings.ToLower(strings.TrimSpace(c.Query("country"))),
		Query:      criteria.TextQuery,
		Department: criteria.Department,
		City:       criteria.City,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			log.Debugf("ignoring limit %q", raw)
		} else {
			params.Limit = limit
		}
	}

	params, dropped := params.WithoutInvalid()
	for _, field := range dropped {
		log.Debugf("not forwarding invalid %s upstream", strings.ToLower(field))
	}

	return params
}
