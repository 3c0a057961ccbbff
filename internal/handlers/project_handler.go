package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	Code               *string          `json:"code"`
	Name               *string          `json:"name"`
	Type               *string          `json:"type"`
	Status             string           `json:"status"`
	ContractTotalValue *decimal.Decimal `json:"contract_total_value"`
	Address            *string          `json:"address"`
	ManagerID          *uint            `json:"manager_id"`
	SalesIDs           *[]uint          `json:"sales_ids"`
	LaborIDs           *[]uint          `json:"labor_ids"`
}

// @Summary List Projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name, code or address"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) Index(c *gin.Context) {
	query := listQuery(c)
	for _, key := range []string{"status", "type", "manager_id"} {
		if v := c.Query(key); v != "" {
			query.Filters[key] = v
		}
	}

	projects, total, err := h.projectService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, projects[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":   responses,
		"pagination": pagination(query, total),
	})
}

// @Summary Get Project
// @Tags Projects
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.ProjectResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id} [get]
func (h *ProjectHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	project, err := h.projectService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Create Project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project"
// @Success 201 {object} models.ProjectResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := BindNestedOrFlat(c, "project", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de proyecto inválidos: " + err.Error()})
		return
	}

	project := &models.Project{
		Status:             req.Status,
		ContractTotalValue: req.ContractTotalValue,
		Address:            req.Address,
		ManagerID:          req.ManagerID,
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Code != nil {
		project.Code = *req.Code
	}
	if req.Type != nil {
		project.Type = *req.Type
	}
	if req.SalesIDs != nil {
		project.SalesIDs = *req.SalesIDs
	}
	if req.LaborIDs != nil {
		project.LaborIDs = *req.LaborIDs
	}

	if err := h.projectService.Create(c.Request.Context(), actorFrom(c), project); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project.ToResponse()})
}

// @Summary Update Project
// @Description Updates descriptive fields. Status, notes and documents have their own endpoints.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param project body projectRequest true "Fields to change"
// @Success 200 {object} models.ProjectResponse
// @Security BearerAuth
// @Router /projects/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	var req projectRequest
	if err := BindNestedOrFlat(c, "project", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de proyecto inválidos: " + err.Error()})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), actorFrom(c), id, services.ProjectChanges{
		Code:               req.Code,
		Name:               req.Name,
		Type:               req.Type,
		ContractTotalValue: req.ContractTotalValue,
		Address:            req.Address,
		ManagerID:          req.ManagerID,
		SalesIDs:           req.SalesIDs,
		LaborIDs:           req.LaborIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Change Project Status
// @Description Moves the project to any lifecycle status (active, suspended, completed, cancelled)
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param body body object true "{\"status\": \"suspended\"}"
// @Success 200 {object} models.ProjectResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/status [post]
func (h *ProjectHandler) ChangeStatus(c *gin.Context) {
	id, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El estado es requerido"})
		return
	}

	project, err := h.projectService.ChangeStatus(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Add Project Note
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param body body object true "{\"content\": \"...\"}"
// @Success 201 {object} models.ProjectResponse
// @Security BearerAuth
// @Router /projects/{project_id}/notes [post]
func (h *ProjectHandler) AddNote(c *gin.Context) {
	id, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nota inválida"})
		return
	}

	project, err := h.projectService.AddNote(c.Request.Context(), actorFrom(c), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project.ToResponse()})
}

// @Summary Attach Project Document
// @Description Attaches a file reference or an external link (type "link") to the project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param document body models.ProjectDocument true "Document"
// @Success 201 {object} models.ProjectResponse
// @Security BearerAuth
// @Router /projects/{project_id}/documents [post]
func (h *ProjectHandler) AttachDocument(c *gin.Context) {
	id, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	var doc models.ProjectDocument
	if err := BindNestedOrFlat(c, "document", &doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Documento inválido"})
		return
	}

	project, err := h.projectService.AttachDocument(c.Request.Context(), actorFrom(c), id, doc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project.ToResponse()})
}
