package api

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/pkg/errors"
	"net/http"
)

const (
	messageFetchFailed = "Erro ao buscar vagas"
	messageNotFound    = "Rota não encontrada"
	messageInternal    = "Erro interno do servidor"
	genericDetails     = "the job postings service is unavailable, try again later"
	invalidDetails     = "the search parameters are invalid"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Erro    string `json:"erro"`
	Details string `json:"details,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Path    string `json:"path,omitempty"`
}

func (h *handlers) respondFetchError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := ErrorResponse{Erro: messageFetchFailed, Details: genericDetails}

	if kind, ok := smartrecruiters.KindOf(err); ok {
		body.Kind = string(kind)
	} else if errors.Is(err, smartrecruiters.ErrInvalidParameters) {
		status = http.StatusBadRequest
		body.Kind = "invalid_parameters"
		body.Details = invalidDetails
	}

	if h.development {
		body.Details = err.Error()
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func respondNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Erro: messageNotFound, Path: c.Request.URL.Path})
}
