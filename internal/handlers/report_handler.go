package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obrafin-api/internal/services"
)

// ReportHandler serves the read-side views computed from a project's ledger.
type ReportHandler struct {
	financeService  *services.FinanceService
	documentService *services.DocumentService
	overviewService *services.OverviewService
	exportService   *services.ExportService
	reportService   *services.ReportService
}

func NewReportHandler(
	financeService *services.FinanceService,
	documentService *services.DocumentService,
	overviewService *services.OverviewService,
	exportService *services.ExportService,
	reportService *services.ReportService,
) *ReportHandler {
	return &ReportHandler{
		financeService:  financeService,
		documentService: documentService,
		overviewService: overviewService,
		exportService:   exportService,
		reportService:   reportService,
	}
}

// @Summary Project Financials
// @Description Realized income, expenses by category, margin, receivable and progress. Only paid transactions count. Sources that failed to load are listed in unavailable and counted as empty.
// @Tags Reports
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/financials [get]
func (h *ReportHandler) Financials(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	fin, unavailable, err := h.financeService.Financials(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"financials": fin, "unavailable": unavailable})
}

// @Summary Project Cost Control
// @Description Classifies material, labor and other expenses against the configured bands
// @Tags Reports
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} services.CostControlReport
// @Security BearerAuth
// @Router /projects/{project_id}/cost_control [get]
func (h *ReportHandler) CostControl(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	report, err := h.financeService.CostControl(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Project Documents
// @Description Unified feed of contract files, transaction attachments, BOQs and project files, newest first
// @Tags Reports
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/documents [get]
func (h *ReportHandler) Documents(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	docs, err := h.documentService.Feed(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// @Summary Project Overview
// @Description 360° view. Collections that could not be fetched are empty and named in "unavailable".
// @Tags Reports
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} services.Overview
// @Security BearerAuth
// @Router /projects/{project_id}/overview [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	ov, err := h.overviewService.Get(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// @Summary Export Project Ledger
// @Tags Reports
// @Produce application/octet-stream
// @Param project_id path int true "Project ID"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file "export"
// @Security BearerAuth
// @Router /projects/{project_id}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	file, err := h.exportService.Export(c.Request.Context(), projectID, c.DefaultQuery("format", services.ExportCSV))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// @Summary Generate Project Dossier
// @Description Renders the project dossier to PDF, archives it and attaches it to the project
// @Tags Reports
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/dossier [post]
func (h *ReportHandler) Dossier(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	project, doc, err := h.reportService.GenerateDossier(c.Request.Context(), actorFrom(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"document": doc,
		"project":  project.ToResponse(),
	})
}

// @Summary Preview Project Dossier
// @Tags Reports
// @Produce text/html
// @Param project_id path int true "Project ID"
// @Success 200 {string} string "html"
// @Security BearerAuth
// @Router /projects/{project_id}/dossier [get]
func (h *ReportHandler) DossierPreview(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	page, _, err := h.reportService.DossierHTML(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
