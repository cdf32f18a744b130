package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/sr-vacancies/internal/metrics"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

type RouterConfig struct {
	Service     string
	Version     string
	StaticDir   string
	DefaultCity string
	Development bool
}

func NewRouter(cfg RouterConfig, jobs jobsService) *gin.Engine {

	h := &handlers{
		jobs:        jobs,
		defaultCity: cfg.DefaultCity,
		service:     cfg.Service,
		version:     cfg.Version,
		development: cfg.Development,
		startedAt:   time.Now(),
		now:         time.Now,
	}

	r := gin.New()
	r.Use(requestID(), accessLog(), recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	for _, group := range []*gin.RouterGroup{r.Group("/api"), r.Group("")} {
		group.GET("/jobs", h.listJobs)
		group.GET("/jobs/search", h.searchJobs)
		group.GET("/jobs/:preset", h.presetJobs)
		group.GET("/presets", h.listPresets)
		group.GET("/departments", h.listDepartments)
		group.GET("/cities", h.listCities)
		group.GET("/health", h.health)
	}
	r.GET("/api/vagas", h.listJobs)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.NoRoute(staticFallback(cfg.StaticDir))
	return r
}

// staticFallback serves files of the frontend and its index.html for any other
// path, API paths excluded.
func staticFallback(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if urlPath == "/api" || strings.HasPrefix(urlPath, "/api/") {
			respondNotFound(c)
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			respondNotFound(c)
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
		if isRegularFile(file) {
			c.File(file)
			return
		}

		if !isRegularFile(index) {
			respondNotFound(c)
			return
		}
		c.File(index)
	}
}

func isRegularFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}
