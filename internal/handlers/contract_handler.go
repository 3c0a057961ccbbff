package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obrafin-api/internal/services"
)

type ContractHandler struct {
	contractService *services.ContractService
}

func NewContractHandler(contractService *services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

type contractRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	PartnerName string  `json:"partner_name"`
	Value       any     `json:"value"`
	SignedDate  string  `json:"signed_date"`
	FileLink    *string `json:"file_link"`
}

// @Summary List Project Contracts
// @Tags Contracts
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/contracts [get]
func (h *ContractHandler) Index(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	contracts, err := h.contractService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

// @Summary Create Contract
// @Description A signed revenue contract sets the project's expected revenue when the project has no contract total
// @Tags Contracts
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param contract body contractRequest true "Contract"
// @Success 201 {object} models.Contract
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	var req contractRequest
	if err := BindNestedOrFlat(c, "contract", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de contrato inválidos: " + err.Error()})
		return
	}

	in := services.ContractInput{
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Type,
		PartnerName: req.PartnerName,
		Value:       req.Value,
		FileLink:    req.FileLink,
	}
	if req.SignedDate != "" {
		signed, err := parseDate(req.SignedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha de firma inválida. Use YYYY-MM-DD"})
			return
		}
		in.SignedDate = &signed
	}

	contract, err := h.contractService.Create(c.Request.Context(), actorFrom(c), projectID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contract": contract})
}

// @Summary Change Contract Status
// @Description Applies a workflow event: sign, complete, terminate or reopen
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Param body body object true "{\"event\": \"sign\"}"
// @Success 200 {object} models.Contract
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{contract_id}/status [post]
func (h *ContractHandler) ChangeStatus(c *gin.Context) {
	id, ok := paramID(c, "contract_id")
	if !ok {
		return
	}
	var req struct {
		Event string `json:"event" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El evento es requerido"})
		return
	}

	contract, err := h.contractService.ChangeStatus(c.Request.Context(), actorFrom(c), id, req.Event)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}
