package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obrafin-api/internal/storage"
)

type FileHandler struct {
	storage *storage.LocalStorage
}

func NewFileHandler(storage *storage.LocalStorage) *FileHandler {
	return &FileHandler{storage: storage}
}

// @Summary Download File
// @Description Serves a stored BOQ, dossier or attachment
// @Tags Files
// @Produce application/octet-stream
// @Param path path string true "Stored file path"
// @Success 200 {file} file "file"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /files/{path} [get]
func (h *FileHandler) Download(c *gin.Context) {
	rel := c.Param("path")
	fullPath, err := h.storage.Resolve(rel)
	if err != nil || !h.storage.Exists(rel) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archivo no encontrado"})
		return
	}
	c.Header("Content-Type", storage.ContentTypeFor(fullPath))
	c.File(fullPath)
}
