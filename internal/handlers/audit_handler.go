package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obrafin-api/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary Audit Trail
// @Description Status changes, notes and documents recorded for one entity, newest first
// @Tags Audit
// @Produce json
// @Param entity query string true "Entity name (Project, Transaction, Contract, BOQ)"
// @Param entity_id query int true "Entity ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audit_logs [get]
func (h *AuditHandler) Index(c *gin.Context) {
	entity := c.Query("entity")
	entityID, err := strconv.ParseUint(c.Query("entity_id"), 10, 32)
	if entity == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requieren entity y entity_id"})
		return
	}

	query := listQuery(c)
	logs, total, err := h.auditService.List(c.Request.Context(), entity, uint(entityID), query.PerPage, query.Offset())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"audit_logs": logs,
		"pagination": pagination(query, total),
	})
}
