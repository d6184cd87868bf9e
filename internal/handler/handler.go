package handler

import (
	"errors"
	"net/http"
	"strconv"

	"slot-ledger/internal/metrics"
	"slot-ledger/internal/model"
	"slot-ledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	bookingService    service.BookingService
	tournamentService service.TournamentService
	accountService    service.AccountService
	logger            zerolog.Logger
}

func NewHandler(
	bookingService service.BookingService,
	tournamentService service.TournamentService,
	accountService service.AccountService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		bookingService:    bookingService,
		tournamentService: tournamentService,
		accountService:    accountService,
		logger:            logger,
	}
}

func (h *Handler) SetupRoutes() *gin.Engine {
	router := gin.New()

	// Middlewares
	router.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(h.logger),
		metrics.Middleware(),
		gin.Recovery(),
	)

	// Swagger, metrics and health checks
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	v1 := router.Group("/api/v1")

	tournaments := v1.Group("/tournaments")
	tournaments.GET("", h.ListTournaments)
	tournaments.GET("/:id", h.GetTournament)
	tournaments.GET("/:id/slots", h.GetSlotGrid)
	tournaments.POST("/:id/bookings", h.BookPositions)

	users := v1.Group("/users")
	users.GET("/:id/balance", h.GetBalance)
	users.GET("/:id/transactions", h.GetTransactionsByUser)
	users.GET("/:id/contests", h.GetContestsByUser)

	return router
}

type errorKind struct {
	err     error
	status  int
	message string
}

// errorKinds maps each booking failure to a status and the message shown to
// the player. Order matters where errors wrap one another.
var errorKinds = []errorKind{
	{model.ErrInsufficientFunds, http.StatusBadRequest, "insufficient balance, add funds"},
	{model.ErrConcurrentConflict, http.StatusConflict, "slot no longer available, pick again"},
	{model.ErrPositionAlreadyTaken, http.StatusConflict, "slot no longer available, pick again"},
	{model.ErrTournamentFull, http.StatusConflict, "tournament is full"},
	{model.ErrTournamentClosed, http.StatusConflict, "tournament is no longer open for booking"},
	{model.ErrDuplicateGameHandle, http.StatusConflict, "game handle already registered, choose another"},
	{model.ErrDuplicateIntent, http.StatusConflict, "request id already used"},
	{model.ErrIntentExpired, http.StatusConflict, "booking expired, please try again"},
	{model.ErrEmptySelection, http.StatusBadRequest, "select at least one position"},
	{model.ErrTooManyPositions, http.StatusBadRequest, "too many positions selected"},
	{model.ErrMissingGameHandle, http.StatusBadRequest, "enter a game handle for every position"},
	{model.ErrInvalidPosition, http.StatusBadRequest, "invalid position for this match type"},
	{model.ErrInvalidSlot, http.StatusBadRequest, "invalid slot number"},
	{model.ErrDuplicatePick, http.StatusBadRequest, "position selected more than once"},
	{model.ErrInvalidRequest, http.StatusBadRequest, "invalid request"},
	{model.ErrTournamentNotFound, http.StatusNotFound, "tournament not found"},
	{model.ErrAccountNotFound, http.StatusNotFound, "user not found"},
	{model.ErrTransactionNotFound, http.StatusNotFound, "transaction not found"},
	{model.ErrStorageUnavailable, http.StatusServiceUnavailable, "service temporarily unavailable, please retry"},
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	resp := model.ErrorResponse{Error: "internal server error", Code: "INTERNAL_SERVER_ERROR"}

	for _, kind := range errorKinds {
		if errors.Is(err, kind.err) {
			status = kind.status
			resp.Error = kind.message
			resp.Code = errorCode(kind.err)
			resp.Details = err.Error()
			break
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, resp)
}

func errorCode(err error) string {
	if code := model.FailureCode(err); code != "" {
		return code
	}
	switch {
	case errors.Is(err, model.ErrDuplicateIntent):
		return "DUPLICATE_INTENT"
	case errors.Is(err, model.ErrInvalidRequest):
		return "INVALID_REQUEST"
	case errors.Is(err, model.ErrTransactionNotFound):
		return "TRANSACTION_NOT_FOUND"
	case errors.Is(err, model.ErrStorageUnavailable):
		return "STORAGE_UNAVAILABLE"
	}
	return "INTERNAL_SERVER_ERROR"
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg, Code: "INVALID_REQUEST"})
}

// userIDQuery reads the user_id query parameter. It returns 0 when the
// parameter is absent and required is false.
func userIDQuery(c *gin.Context, required bool) (int64, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		if required {
			badRequest(c, "user_id query parameter is required")
			return 0, false
		}
		return 0, true
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		badRequest(c, "user_id must be a positive integer")
		return 0, false
	}
	return userID, true
}

func userIDParam(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		badRequest(c, "user id must be a positive integer")
		return 0, false
	}
	return userID, true
}
