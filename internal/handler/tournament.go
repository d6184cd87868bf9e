package handler

import (
	"net/http"

	"slot-ledger/internal/model"

	"github.com/gin-gonic/gin"
)

// ListTournaments
// @Summary List tournaments
// @Description Returns tournament summaries, optionally filtered by status
// @Tags tournaments
// @Produce json
// @Param status query string false "Status" Enums(upcoming, live, completed, cancelled)
// @Success 200 {object} model.TournamentListResponse
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Router /tournaments [get]
func (h *Handler) ListTournaments(c *gin.Context) {
	status := model.TournamentStatus(c.Query("status"))

	resp, err := h.tournamentService.ListTournaments(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTournament
// @Summary Get tournament
// @Description Returns a tournament with its participants
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} model.Tournament
// @Failure 404 {object} model.ErrorResponse "Tournament not found"
// @Router /tournaments/{id} [get]
func (h *Handler) GetTournament(c *gin.Context) {
	t, err := h.tournamentService.GetTournament(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}
