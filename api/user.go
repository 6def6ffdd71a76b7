package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabiorvs/controleConta/models"
)

// GetUser godoc
// @Summary Get the authenticated user's profile
// @Tags user
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/user [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.storage.GetUserByID(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateBalance godoc
// @Summary Update the authenticated user's initial balance
// @Tags user
// @Accept json
// @Produce json
// @Param request body models.UpdateBalanceRequest true "New initial balance"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/user/balance [put]
func (h *Handler) UpdateBalance(c *gin.Context) {
	var req models.UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.InitialBalance == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "initialBalance is required"})
		return
	}

	if err := h.storage.UpdateInitialBalance(userID(c), *req.InitialBalance); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update balance"})
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
