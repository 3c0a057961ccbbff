package handlers

import (
	"errors"
	"net/http"
	"strconv"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obrafin-api/internal/middleware"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/services"
	"github.com/sjperalta/obrafin-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Project     *ProjectHandler
	Transaction *TransactionHandler
	Contract    *ContractHandler
	Procurement *ProcurementHandler
	Report      *ReportHandler
	File        *FileHandler
	Job         *JobHandler
	Audit       *AuditHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, storage *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Project:     NewProjectHandler(svcs.Project),
		Transaction: NewTransactionHandler(svcs.Transaction, svcs.Project, svcs.Receipt),
		Contract:    NewContractHandler(svcs.Contract),
		Procurement: NewProcurementHandler(svcs.Procurement),
		Report:      NewReportHandler(svcs.Finance, svcs.Document, svcs.Overview, svcs.Export, svcs.Report),
		File:        NewFileHandler(storage),
		Job:         NewJobHandler(svcs.Job),
		Audit:       NewAuditHandler(svcs.Audit),
	}
}

// paramID reads a positive numeric path parameter. On failure it writes a 400.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		c.JSON(status, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// actorFrom describes the caller for audit records.
func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    middleware.GetUserID(c),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// listQuery reads pagination, search and sorting parameters.
func listQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20")); err == nil && perPage > 0 && perPage <= 200 {
		query.PerPage = perPage
	}
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_direction")
	return query
}

func pagination(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": query.TotalPages(total),
	}
}
