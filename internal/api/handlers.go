package api

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/maxaizer/sr-vacancies/internal/domain/models"
	"github.com/maxaizer/sr-vacancies/internal/services"
	"github.com/samber/lo"
	"net/http"
	"time"
)

type jobsService interface {
	Search(ctx context.Context, params smartrecruiters.SearchParameters, criteria models.Criteria) (services.View, error)
	Departments(ctx context.Context, country string) ([]string, error)
	Cities(ctx context.Context, country string) ([]string, error)
}

type JobsResponse struct {
	Success   bool                 `json:"success"`
	Total     int                  `json:"total"`
	Jobs      []models.Job         `json:"jobs"`
	Levels    map[models.Level]int `json:"levels"`
	Criteria  models.Criteria      `json:"criteria"`
	Preset    string               `json:"preset,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

type CatalogResponse struct {
	Success   bool      `json:"success"`
	Count     int       `json:"count"`
	Items     []string  `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

type handlers struct {
	jobs        jobsService
	defaultCity string
	service     string
	version     string
	development bool
	startedAt   time.Time
	now         func() time.Time
}

func (h *handlers) listJobs(c *gin.Context) {
	criteria := criteriaFromQuery(c)
	h.search(c, paramsFromQuery(c, criteria), criteria, "")
}

// searchJobs differs from listJobs only by filtering on the default city when none is given.
func (h *handlers) searchJobs(c *gin.Context) {
	criteria := criteriaFromQuery(c)
	if criteria.City == "" {
		criteria.City = h.defaultCity
	}
	h.search(c, paramsFromQuery(c, criteria), criteria, "")
}

func (h *handlers) presetJobs(c *gin.Context) {
	preset, found := models.FindPreset(c.Param("preset"))
	if !found {
		respondNotFound(c)
		return
	}

	criteria := preset.Criteria
	criteria.Sort = models.ParseSortOrder(c.Query("sort"))
	h.search(c, paramsFromQuery(c, criteria), criteria, preset.Name)
}

func (h *handlers) search(c *gin.Context, params smartrecruiters.SearchParameters,
	criteria models.Criteria, preset string) {

	view, err := h.jobs.Search(c.Request.Context(), params, criteria)
	if err != nil {
		h.respondFetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, JobsResponse{
		Success:   true,
		Total:     view.Total,
		Jobs:      lo.Ternary(view.Jobs == nil, []models.Job{}, view.Jobs),
		Levels:    view.Levels,
		Criteria:  view.Criteria,
		Preset:    preset,
		Timestamp: h.now().UTC(),
	})
}

func (h *handlers) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "presets": models.Presets})
}

func (h *handlers) listDepartments(c *gin.Context) {
	h.catalog(c, h.jobs.Departments)
}

func (h *handlers) listCities(c *gin.Context) {
	h.catalog(c, h.jobs.Cities)
}

func (h *handlers) catalog(c *gin.Context, load func(ctx context.Context, country string) ([]string, error)) {
	items, err := load(c.Request.Context(), c.Query("country"))
	if err != nil {
		h.respondFetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, CatalogResponse{
		Success:   true,
		Count:     len(items),
		Items:     lo.Ternary(items == nil, []string{}, items),
		Timestamp: h.now().UTC(),
	})
}

func (h *handlers) health(c *gin.Context) {
	now := h.now()
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Service:   h.service,
		Version:   h.version,
		Uptime:    now.Sub(h.startedAt).Round(time.Second).String(),
		Timestamp: now.UTC(),
	})
}
