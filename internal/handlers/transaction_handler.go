package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/services"
	"github.com/sjperalta/obrafin-api/internal/storage"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
	projectService     *services.ProjectService
	receiptService     *services.ReceiptService
}

func NewTransactionHandler(transactionService *services.TransactionService, projectService *services.ProjectService, receiptService *services.ReceiptService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		projectService:     projectService,
		receiptService:     receiptService,
	}
}

type transactionRequest struct {
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	Date           string              `json:"date"`
	Amount         any                 `json:"amount"`
	Type           string              `json:"type"`
	IsMaterialCost bool                `json:"is_material_cost"`
	IsLaborCost    bool                `json:"is_labor_cost"`
	Attachments    []models.Attachment `json:"attachments"`
}

// parseDate accepts YYYY-MM-DD or RFC3339. An empty value means today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// @Summary List Project Transactions
// @Tags Transactions
// @Produce json
// @Param project_id path int true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type (income, expense)"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/transactions [get]
func (h *TransactionHandler) Index(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	if _, err := h.projectService.FindByID(c.Request.Context(), projectID); err != nil {
		respondError(c, err)
		return
	}

	query := listQuery(c)
	query.Filters["project_id"] = strconv.FormatUint(uint64(projectID), 10)
	for _, key := range []string{"status", "type", "start_date", "end_date"} {
		if v := c.Query(key); v != "" {
			query.Filters[key] = v
		}
	}

	txs, total, err := h.transactionService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
		"pagination":   pagination(query, total),
	})
}

// @Summary Create Transaction
// @Description Books a draft ledger entry. Non-numeric amounts are stored as zero.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param transaction body transactionRequest true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	var req transactionRequest
	if err := BindNestedOrFlat(c, "transaction", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de transacción inválidos: " + err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida. Use YYYY-MM-DD"})
		return
	}

	tx, err := h.transactionService.Create(c.Request.Context(), actorFrom(c), projectID, services.TransactionInput{
		Description:    req.Description,
		Category:       req.Category,
		Date:           date,
		Amount:         req.Amount,
		Type:           req.Type,
		IsMaterialCost: req.IsMaterialCost,
		IsLaborCost:    req.IsLaborCost,
		Attachments:    req.Attachments,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// @Summary Submit Transaction
// @Tags Transactions
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id}/submit [post]
func (h *TransactionHandler) Submit(c *gin.Context) {
	h.workflow(c, h.transactionService.Submit)
}

// @Summary Approve Transaction
// @Description Marks a submitted transaction as paid. Only paid transactions count toward financials.
// @Tags Transactions
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id}/approve [post]
func (h *TransactionHandler) Approve(c *gin.Context) {
	h.workflow(c, h.transactionService.Approve)
}

// @Summary Undo Transaction
// @Description Returns a paid or rejected transaction to draft
// @Tags Transactions
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id}/undo [post]
func (h *TransactionHandler) Undo(c *gin.Context) {
	h.workflow(c, h.transactionService.Undo)
}

// @Summary Reject Transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Param body body object true "{\"reason\": \"...\"}"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id}/reject [post]
func (h *TransactionHandler) Reject(c *gin.Context) {
	id, ok := paramID(c, "transaction_id")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere un motivo de rechazo"})
		return
	}

	tx, err := h.transactionService.Reject(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// @Summary Upload Receipt
// @Description Attaches a receipt (image or PDF) to the transaction. Large photos are downsized.
// @Tags Transactions
// @Accept multipart/form-data
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Param file formData file true "Receipt File"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id}/attachments [post]
func (h *TransactionHandler) UploadReceipt(c *gin.Context) {
	id, ok := paramID(c, "transaction_id")
	if !ok {
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
	contentType := header.Header.Get("Content-Type")
	if !storage.IsValidContentType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de archivo inválido"})
		return
	}

	tx, err := h.receiptService.Attach(c.Request.Context(), actorFrom(c), id, file, header.Filename, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

type transactionAction func(ctx context.Context, actor services.Actor, id uint) (*models.Transaction, error)

func (h *TransactionHandler) workflow(c *gin.Context, action transactionAction) {
	id, ok := paramID(c, "transaction_id")
	if !ok {
		return
	}
	tx, err := action(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}
