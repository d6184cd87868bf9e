package handler

import (
	"net/http"
	"strconv"

	"slot-ledger/internal/model"

	"github.com/gin-gonic/gin"
)

// GetBalance
// @Summary Get user balance
// @Description Returns the wallet balance and its sub-balances
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.BalanceResponse
// @Failure 404 {object} model.ErrorResponse "User not found"
// @Router /users/{id}/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	resp, err := h.accountService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTransactionsByUser
// @Summary Get user transactions
// @Description Returns a paginated list of wallet transactions for a user, newest first
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} model.TransactionListResponse
// @Failure 404 {object} model.ErrorResponse "User not found"
// @Router /users/{id}/transactions [get]
func (h *Handler) GetTransactionsByUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transactions, err := h.accountService.GetTransactionsByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TransactionListResponse{
		Transactions: transactions,
		Total:        len(transactions),
		Limit:        limit,
		Offset:       offset,
	})
}

// GetContestsByUser
// @Summary Get user contests
// @Description Returns the tournaments a user has joined with their seats and entry fees, most recent first
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} model.ContestListResponse
// @Failure 404 {object} model.ErrorResponse "User not found"
// @Router /users/{id}/contests [get]
func (h *Handler) GetContestsByUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.accountService.GetContestsByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
