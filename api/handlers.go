package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fabiorvs/controleConta/config"
	"github.com/fabiorvs/controleConta/db"
	"github.com/fabiorvs/controleConta/models"
)

// BackupService is the slice of the backup manager the handlers need:
// a best-effort snapshot trigger and snapshot listing for the backup routes.
type BackupService interface {
	TriggerBackup()
	List() ([]models.BackupFile, error)
}

type Handler struct {
	storage *db.Storage
	cfg     *config.Config
	backups BackupService
}

func NewHandler(s *db.Storage, cfg *config.Config, backups BackupService) *Handler {
	return &Handler{storage: s, cfg: cfg, backups: backups}
}

// RegisterRoutes mounts all API routes on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/refresh", h.Refresh)

	protected := api.Group("/", h.AuthMiddleware())
	protected.POST("/logout", h.Logout)
	protected.GET("/user", h.GetUser)
	protected.PUT("/user/balance", h.UpdateBalance)
	protected.GET("/transactions", h.GetTransactions)
	protected.POST("/transactions", h.CreateTransaction)
	protected.DELETE("/transactions/:id", h.DeleteTransaction)
	protected.GET("/backup/list", h.ListBackups)
	protected.GET("/backup/download", h.DownloadBackup)
}

// userID returns the authenticated user's id set by AuthMiddleware.
func userID(c *gin.Context) int {
	return c.GetInt("userID")
}
