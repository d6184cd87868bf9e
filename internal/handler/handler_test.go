package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"slot-ledger/internal/model"
	mocks "slot-ledger/mocks/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const intentID = "550e8400-e29b-41d4-a716-446655440000"

type testHandler struct {
	bookings    *mocks.BookingService
	tournaments *mocks.TournamentService
	accounts    *mocks.AccountService
	router      *gin.Engine
}

func newTestHandler(t *testing.T) *testHandler {
	gin.SetMode(gin.TestMode)
	th := &testHandler{
		bookings:    mocks.NewBookingService(t),
		tournaments: mocks.NewTournamentService(t),
		accounts:    mocks.NewAccountService(t),
	}
	th.router = NewHandler(th.bookings, th.tournaments, th.accounts, zerolog.Nop()).SetupRoutes()
	return th
}

func (th *testHandler) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	th.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_BookPositions_Created(t *testing.T) {
	th := newTestHandler(t)

	th.bookings.On("BookPositions", mock.Anything, "t-1", int64(1), mock.MatchedBy(func(req *model.BookingRequest) bool {
		return req.IntentID == intentID && len(req.Picks) == 1 && req.Picks[0].SlotNumber == 3
	})).Return(&model.BookingResponse{
		Status:        "success",
		TransactionID: intentID,
		TotalCost:     "50.00",
		Balance:       "50.00",
	}, nil)

	w := th.do(http.MethodPost, "/api/v1/tournaments/t-1/bookings?user_id=1", model.BookingRequest{
		IntentID: intentID,
		Picks:    []model.Pick{{SlotNumber: 3, Position: "A", GameHandle: "Ace"}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp model.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "50.00", resp.Balance)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandler_BookPositions_AlreadyProcessed(t *testing.T) {
	th := newTestHandler(t)

	th.bookings.On("BookPositions", mock.Anything, "t-1", int64(1), mock.Anything).
		Return(&model.BookingResponse{Status: "already_processed", TransactionID: intentID}, nil)

	w := th.do(http.MethodPost, "/api/v1/tournaments/t-1/bookings?user_id=1", model.BookingRequest{IntentID: intentID})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_BookPositions_BadInput(t *testing.T) {
	tests := []struct {
		name string
		path string
		body any
	}{
		{"missing user", "/api/v1/tournaments/t-1/bookings", model.BookingRequest{IntentID: intentID}},
		{"non numeric user", "/api/v1/tournaments/t-1/bookings?user_id=abc", model.BookingRequest{IntentID: intentID}},
		{"intent not uuid", "/api/v1/tournaments/t-1/bookings?user_id=1", model.BookingRequest{IntentID: "abc"}},
		{"intent missing", "/api/v1/tournaments/t-1/bookings?user_id=1", map[string]any{"picks": []any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler(t)
			w := th.do(http.MethodPost, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Code)
		})
	}
}

func TestHandler_BookPositions_ErrorMapping(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{model.ErrInsufficientFunds, http.StatusBadRequest, "INSUFFICIENT_FUNDS", "insufficient balance, add funds"},
		{fmt.Errorf("%w: seat 7A", model.ErrConcurrentConflict), http.StatusConflict, "CONCURRENT_CONFLICT", "slot no longer available, pick again"},
		{model.ErrPositionAlreadyTaken, http.StatusConflict, "POSITION_ALREADY_TAKEN", "slot no longer available, pick again"},
		{model.ErrDuplicateGameHandle, http.StatusConflict, "DUPLICATE_GAME_HANDLE", "game handle already registered, choose another"},
		{model.ErrTournamentFull, http.StatusConflict, "TOURNAMENT_FULL", "tournament is full"},
		{model.ErrDuplicateIntent, http.StatusConflict, "DUPLICATE_INTENT", "request id already used"},
		{model.ErrEmptySelection, http.StatusBadRequest, "EMPTY_SELECTION", "select at least one position"},
		{model.ErrTournamentNotFound, http.StatusNotFound, "TOURNAMENT_NOT_FOUND", "tournament not found"},
		{model.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "service temporarily unavailable, please retry"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			th := newTestHandler(t)
			th.bookings.On("BookPositions", mock.Anything, "t-1", int64(1), mock.Anything).Return(nil, tt.err)

			w := th.do(http.MethodPost, "/api/v1/tournaments/t-1/bookings?user_id=1", model.BookingRequest{IntentID: intentID})

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}

func TestHandler_GetSlotGrid(t *testing.T) {
	th := newTestHandler(t)

	th.bookings.On("GetSlotGrid", mock.Anything, "t-1", int64(0)).Return(&model.SlotGridResponse{TournamentID: "t-1", TotalSlots: 3}, nil).Once()
	th.bookings.On("GetSlotGrid", mock.Anything, "t-1", int64(7)).Return(&model.SlotGridResponse{TournamentID: "t-1", TotalSlots: 3}, nil).Once()

	assert.Equal(t, http.StatusOK, th.do(http.MethodGet, "/api/v1/tournaments/t-1/slots", nil).Code)
	assert.Equal(t, http.StatusOK, th.do(http.MethodGet, "/api/v1/tournaments/t-1/slots?user_id=7", nil).Code)
	assert.Equal(t, http.StatusBadRequest, th.do(http.MethodGet, "/api/v1/tournaments/t-1/slots?user_id=-1", nil).Code)
}

func TestHandler_ListTournaments(t *testing.T) {
	th := newTestHandler(t)

	th.tournaments.On("ListTournaments", mock.Anything, model.TournamentUpcoming).Return(&model.TournamentListResponse{
		Tournaments: []model.TournamentSummary{{ID: "t-1", Name: "Solo Cup"}},
		Total:       1,
	}, nil)

	w := th.do(http.MethodGet, "/api/v1/tournaments?status=upcoming", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.TournamentListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestHandler_GetTournament_NotFound(t *testing.T) {
	th := newTestHandler(t)
	th.tournaments.On("GetTournament", mock.Anything, "missing").Return(nil, model.ErrTournamentNotFound)

	w := th.do(http.MethodGet, "/api/v1/tournaments/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetBalance(t *testing.T) {
	th := newTestHandler(t)
	th.accounts.On("GetBalance", mock.Anything, int64(1)).Return(&model.BalanceResponse{UserID: 1, WalletBalance: "100.00"}, nil)

	w := th.do(http.MethodGet, "/api/v1/users/1/balance", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.BalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "100.00", resp.WalletBalance)

	assert.Equal(t, http.StatusBadRequest, th.do(http.MethodGet, "/api/v1/users/abc/balance", nil).Code)
}

func TestHandler_GetTransactionsByUser(t *testing.T) {
	th := newTestHandler(t)
	th.accounts.On("GetTransactionsByUser", mock.Anything, int64(1), 5, 10).Return([]*model.Transaction{
		{TransactionID: intentID, UserID: 1, Type: model.TypeEntryFee, Status: model.StatusCompleted},
	}, nil)

	w := th.do(http.MethodGet, "/api/v1/users/1/transactions?limit=5&offset=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.TransactionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 5, resp.Limit)
}

func TestHandler_GetContestsByUser(t *testing.T) {
	th := newTestHandler(t)
	th.accounts.On("GetContestsByUser", mock.Anything, int64(3), 10, 0).Return(&model.ContestListResponse{
		UserID: 3,
		Contests: []model.ContestView{
			{TournamentID: "t-duo", Name: "Duo Cup", EntryFee: "30.00", TotalPaid: "60.00"},
		},
		Total: 1,
		Limit: 10,
	}, nil)
	th.accounts.On("GetContestsByUser", mock.Anything, int64(4), 10, 0).Return(nil, model.ErrAccountNotFound)

	w := th.do(http.MethodGet, "/api/v1/users/3/contests", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.ContestListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Contests, 1)
	assert.Equal(t, "60.00", resp.Contests[0].TotalPaid)

	assert.Equal(t, http.StatusNotFound, th.do(http.MethodGet, "/api/v1/users/4/contests", nil).Code)
	assert.Equal(t, http.StatusBadRequest, th.do(http.MethodGet, "/api/v1/users/0/contests", nil).Code)
}

func TestHandler_HealthAndMetrics(t *testing.T) {
	th := newTestHandler(t)

	assert.Equal(t, http.StatusOK, th.do(http.MethodGet, "/health", nil).Code)

	w := th.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "slotledger_http_requests_total")
}
