package handler

import (
	"net/http"

	"slot-ledger/internal/model"

	"github.com/gin-gonic/gin"
)

// GetSlotGrid
// @Summary Get slot grid
// @Description Returns every slot of a tournament with taken and free positions. Seats of user_id are marked as mine.
// @Tags bookings
// @Produce json
// @Param id path string true "Tournament ID"
// @Param user_id query int false "Viewer user ID"
// @Success 200 {object} model.SlotGridResponse
// @Failure 404 {object} model.ErrorResponse "Tournament not found"
// @Router /tournaments/{id}/slots [get]
func (h *Handler) GetSlotGrid(c *gin.Context) {
	userID, ok := userIDQuery(c, false)
	if !ok {
		return
	}

	grid, err := h.bookingService.GetSlotGrid(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}

// BookPositions
// @Summary Book positions
// @Description Books one or more (slot, position) pairs and debits the entry fee in one step. Retrying with the same intent_id returns the first outcome.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param user_id query int true "User ID"
// @Param booking body model.BookingRequest true "Picks and intent id"
// @Success 200 {object} model.BookingResponse "Already processed"
// @Success 201 {object} model.BookingResponse "Created"
// @Failure 400 {object} model.ErrorResponse "Bad request or insufficient balance"
// @Failure 404 {object} model.ErrorResponse "Tournament or user not found"
// @Failure 409 {object} model.ErrorResponse "Slot no longer available"
// @Failure 503 {object} model.ErrorResponse "Storage unavailable"
// @Router /tournaments/{id}/bookings [post]
func (h *Handler) BookPositions(c *gin.Context) {
	userID, ok := userIDQuery(c, true)
	if !ok {
		return
	}

	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.bookingService.BookPositions(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	statusCode := http.StatusCreated
	if resp.Status == "already_processed" {
		statusCode = http.StatusOK
	}
	c.JSON(statusCode, resp)
}
