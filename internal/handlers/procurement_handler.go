package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obrafin-api/internal/services"
	"github.com/sjperalta/obrafin-api/internal/storage"
)

type ProcurementHandler struct {
	procurementService *services.ProcurementService
}

func NewProcurementHandler(procurementService *services.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{procurementService: procurementService}
}

// @Summary List Bills of Quantities
// @Tags Procurement
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/boqs [get]
func (h *ProcurementHandler) Index(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	boqs, err := h.procurementService.ListBOQs(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boqs": boqs})
}

// @Summary Create Bill of Quantities
// @Description Uploads a BOQ file (multipart field "file") or registers an already hosted one (JSON name + file_url)
// @Tags Procurement
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param file formData file false "BOQ file"
// @Param name formData string false "BOQ name"
// @Success 201 {object} models.BOQ
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/boqs [post]
func (h *ProcurementHandler) Create(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.upload(c, projectID)
		return
	}

	var req struct {
		Name    string `json:"name"`
		FileURL string `json:"file_url"`
	}
	if err := BindNestedOrFlat(c, "boq", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de BOQ inválidos"})
		return
	}
	boq, err := h.procurementService.CreateBOQ(c.Request.Context(), actorFrom(c), projectID, req.Name, req.FileURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"boq": boq})
}

func (h *ProcurementHandler) upload(c *gin.Context, projectID uint) {
	if c.Request.ContentLength > storage.MaxFileSize() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo demasiado grande"})
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo requerido"})
		return
	}
	defer file.Close()

	if header.Size > storage.MaxFileSize() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo demasiado grande"})
		return
	}
	if !storage.IsValidContentType(header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de archivo inválido"})
		return
	}

	boq, err := h.procurementService.UploadBOQ(c.Request.Context(), actorFrom(c), projectID, c.PostForm("name"), file, header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"boq": boq})
}
