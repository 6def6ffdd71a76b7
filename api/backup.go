package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// ListBackups godoc
// @Summary List available database snapshots
// @Tags backup
// @Produce json
// @Success 200 {array} models.BackupFile
// @Security ApiKeyAuth
// @Router /api/backup/list [get]
func (h *Handler) ListBackups(c *gin.Context) {
	if h.backups == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "backups are not configured"})
		return
	}
	files, err := h.backups.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list backups"})
		return
	}
	c.JSON(http.StatusOK, files)
}

// DownloadBackup godoc
// @Summary Download the current database file
// @Tags backup
// @Produce octet-stream
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/backup/download [get]
func (h *Handler) DownloadBackup(c *gin.Context) {
	path := h.cfg.DatabasePath()
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "database file not available"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
