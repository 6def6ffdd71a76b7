package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fabiorvs/controleConta/models"
)

// GetTransactions godoc
// @Summary List the authenticated user's transactions, most recent first
// @Tags transactions
// @Produce json
// @Success 200 {array} models.Transaction
// @Security ApiKeyAuth
// @Router /api/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	transactions, err := h.storage.GetTransactions(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction godoc
// @Summary Record an income or expense transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body models.CreateTransaction true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !models.ValidType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be 'income' or 'expense'"})
		return
	}
	if req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}
	if *req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	transaction := models.Transaction{
		UserID:   userID(c),
		Type:     req.Type,
		Amount:   *req.Amount,
		Comment:  req.Comment,
		Category: req.Category,
	}
	if err := h.storage.CreateTransaction(&transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create transaction"})
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// DeleteTransaction godoc
// @Summary Delete one of the authenticated user's transactions
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	// Deletion is scoped to the owner. The response does not distinguish
	// "not found" from "not yours", so ids cannot be probed across users.
	if _, err := h.storage.DeleteTransaction(id, userID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete transaction"})
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
