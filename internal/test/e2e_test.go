package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"slot-ledger/internal/cache"
	"slot-ledger/internal/config"
	"slot-ledger/internal/database"
	"slot-ledger/internal/events"
	"slot-ledger/internal/handler"
	"slot-ledger/internal/model"
	"slot-ledger/internal/repository/postgres"
	"slot-ledger/internal/service"
	"slot-ledger/internal/slot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool *pgxpool.Pool

const (
	soloTournament = "e2e-solo"
	duoTournament  = "e2e-duo"
	firstUserID    = 9001
	numUsers       = 30
)

// Runs as first function
func TestMain(m *testing.M) {
	if os.Getenv("SKIP_E2E") != "" {
		fmt.Println("Skipping E2E tests")
		os.Exit(0)
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		fmt.Printf("failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(ctx, pool, "../../migrations"); err != nil {
		fmt.Printf("failed to apply migrations: %v\n", err)
		os.Exit(1)
	}

	testPool = pool
	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func setupE2E(t *testing.T) *handler.Handler {
	if testPool == nil {
		t.Skip("Database connection not available")
	}

	ctx := context.Background()
	lastUserID := firstUserID + numUsers - 1

	_, err := testPool.Exec(ctx, "DELETE FROM participants WHERE tournament_id IN ($1, $2)", soloTournament, duoTournament)
	require.NoError(t, err)
	_, err = testPool.Exec(ctx, "DELETE FROM transactions WHERE user_id BETWEEN $1 AND $2", firstUserID, lastUserID)
	require.NoError(t, err)

	// Seed tournaments, reset counters if they already exist
	_, err = testPool.Exec(ctx, `
		INSERT INTO tournaments (id, name, match_type, max_players, entry_fee, status, participant_count, version)
		VALUES ($1, 'E2E Solo', 'solo', 100, 50, 'upcoming', 0, 0),
		       ($2, 'E2E Duo', 'duo', 40, 30, 'upcoming', 0, 0)
		ON CONFLICT (id) DO UPDATE
		SET participant_count = 0,
			version = 0,
			status = 'upcoming',
			updated_at = NOW()
	`, soloTournament, duoTournament)
	require.NoError(t, err)

	// Seed users with 100 deposited each
	_, err = testPool.Exec(ctx, `
		INSERT INTO accounts (user_id, display_name, email, wallet_balance, deposited_balance, winning_balance, bonus_balance, version)
		SELECT id, 'e2e-' || id, 'e2e-' || id || '@example.com', 100, 100, 0, 0, 0
		FROM generate_series($1::bigint, $2::bigint) AS id
		ON CONFLICT (user_id) DO UPDATE
		SET wallet_balance = 100,
			deposited_balance = 100,
			winning_balance = 0,
			bonus_balance = 0,
			matches_played = 0,
			version = 0,
			updated_at = NOW()
	`, firstUserID, lastUserID)
	require.NoError(t, err)

	logger := zerolog.Nop()
	tournamentRepo := postgres.NewTournamentRepository(testPool)
	accountRepo := postgres.NewAccountRepository(testPool)
	transRepo := postgres.NewTransactionRepository(testPool)
	dbManager := postgres.NewTransactionManager(testPool).WithLockTimeout(2 * time.Second)

	bookingService := service.NewBookingService(tournamentRepo, accountRepo, transRepo, dbManager, events.Noop{}, cache.Noop{}, slot.DefaultGridSlots, logger)
	tournamentService := service.NewTournamentService(tournamentRepo, cache.Noop{}, logger)
	accountService := service.NewAccountService(accountRepo, transRepo, tournamentRepo, logger)

	return handler.NewHandler(bookingService, tournamentService, accountService, logger)
}

type bookingResult struct {
	statusCode int
	response   model.BookingResponse
	errResp    model.ErrorResponse
}

func book(router http.Handler, tournamentID string, userID int64, req model.BookingRequest) bookingResult {
	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/tournaments/%s/bookings?user_id=%d", tournamentID, userID), bytes.NewBuffer(body))
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	res := bookingResult{statusCode: w.Code}
	if w.Code < 300 {
		json.Unmarshal(w.Body.Bytes(), &res.response)
	} else {
		json.Unmarshal(w.Body.Bytes(), &res.errResp)
	}
	return res
}

func walletBalance(t *testing.T, userID int64) int64 {
	var balance int64
	err := testPool.QueryRow(context.Background(), "SELECT wallet_balance FROM accounts WHERE user_id = $1", userID).Scan(&balance)
	require.NoError(t, err)
	return balance
}

// Test_ConcurrentBookings_SameSeat verifies:
// - Many users race for slot 7 position A at once
// - Exactly one booking commits
// - Every other request gets 409 and keeps its balance
// - No 500 errors occur
func Test_ConcurrentBookings_SameSeat(t *testing.T) {
	h := setupE2E(t)
	router := h.SetupRoutes()

	const racers = 20

	barrier := make(chan struct{})
	results := make(chan bookingResult, racers)

	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		userID := int64(firstUserID + i)
		go func() {
			defer wg.Done()
			<-barrier
			results <- book(router, soloTournament, userID, model.BookingRequest{
				IntentID: uuid.New().String(),
				Picks:    []model.Pick{{SlotNumber: 7, Position: "A", GameHandle: fmt.Sprintf("racer-%d", userID)}},
			})
		}()
	}

	// All goroutines start simultaneously
	close(barrier)
	wg.Wait()
	close(results)

	var successCount, conflictCount int
	for res := range results {
		assert.NotEqual(t, http.StatusInternalServerError, res.statusCode, "No 500 errors")
		switch res.statusCode {
		case http.StatusCreated:
			successCount++
		case http.StatusConflict:
			conflictCount++
			assert.Equal(t, "slot no longer available, pick again", res.errResp.Error)
		default:
			t.Logf("Unexpected response: status=%d, body=%+v", res.statusCode, res.errResp)
		}
	}
	assert.Equal(t, 1, successCount)
	assert.Equal(t, racers-1, conflictCount)

	var seats int
	err := testPool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM participants WHERE tournament_id = $1 AND slot_number = 7 AND position = 'A'", soloTournament).Scan(&seats)
	require.NoError(t, err)
	assert.Equal(t, 1, seats)

	var total int64
	err = testPool.QueryRow(context.Background(),
		"SELECT SUM(wallet_balance) FROM accounts WHERE user_id BETWEEN $1 AND $2", firstUserID, firstUserID+racers-1).Scan(&total)
	require.NoError(t, err)
	assert.Equal(t, int64(racers*100-50), total, "Exactly one entry fee debited")
}

// Test_ConcurrentRetries_SameIntent verifies one set of effects for a retried intent
func Test_ConcurrentRetries_SameIntent(t *testing.T) {
	h := setupE2E(t)
	router := h.SetupRoutes()

	const numRequests = 15
	req := model.BookingRequest{
		IntentID: uuid.New().String(),
		Picks: []model.Pick{
			{SlotNumber: 4, Position: "A", GameHandle: "retry-left"},
			{SlotNumber: 4, Position: "B", GameHandle: "retry-right"},
		},
	}

	barrier := make(chan struct{})
	results := make(chan bookingResult, numRequests)

	var wg sync.WaitGroup
	wg.Add(numRequests)
	for i := 0; i < numRequests; i++ {
		go func() {
			defer wg.Done()
			<-barrier
			results <- book(router, duoTournament, firstUserID, req)
		}()
	}
	close(barrier)
	wg.Wait()
	close(results)

	var successCount, alreadyProcessedCount int
	for res := range results {
		switch {
		case res.statusCode == http.StatusCreated && res.response.Status == "success":
			successCount++
		case res.statusCode == http.StatusOK && res.response.Status == "already_processed":
			alreadyProcessedCount++
			assert.Len(t, res.response.Participants, 2)
		default:
			t.Logf("Unexpected response: status=%d, body=%+v", res.statusCode, res.errResp)
		}
	}
	assert.Equal(t, 1, successCount)
	assert.Equal(t, numRequests-1, alreadyProcessedCount)
	assert.Equal(t, int64(40), walletBalance(t, firstUserID), "Balance debited exactly once")

	var completed int
	err := testPool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM transactions WHERE transaction_id = $1 AND status = 'completed'", req.IntentID).Scan(&completed)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
}

// Test_BasicBookingFlow verifies the single-user scenarios
func Test_BasicBookingFlow(t *testing.T) {
	h := setupE2E(t)
	router := h.SetupRoutes()

	t.Run("Solo booking debits entry fee", func(t *testing.T) {
		res := book(router, soloTournament, firstUserID, model.BookingRequest{
			IntentID: uuid.New().String(),
			Picks:    []model.Pick{{SlotNumber: 3, Position: "A", GameHandle: "solo-ace"}},
		})
		assert.Equal(t, http.StatusCreated, res.statusCode)
		assert.Equal(t, "50.00", res.response.Balance)
	})

	t.Run("Same seat again is taken", func(t *testing.T) {
		res := book(router, soloTournament, firstUserID, model.BookingRequest{
			IntentID: uuid.New().String(),
			Picks:    []model.Pick{{SlotNumber: 3, Position: "A", GameHandle: "solo-ace-2"}},
		})
		assert.Equal(t, http.StatusConflict, res.statusCode)
		assert.Equal(t, "POSITION_ALREADY_TAKEN", res.errResp.Code)
		assert.Equal(t, int64(50), walletBalance(t, firstUserID))
	})

	t.Run("Duo with too little balance books nothing", func(t *testing.T) {
		// 50 left, two duo seats cost 60
		intent := uuid.New().String()
		res := book(router, duoTournament, firstUserID, model.BookingRequest{
			IntentID: intent,
			Picks: []model.Pick{
				{SlotNumber: 1, Position: "A", GameHandle: "duo-left"},
				{SlotNumber: 1, Position: "B", GameHandle: "duo-right"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, res.statusCode)
		assert.Equal(t, "INSUFFICIENT_FUNDS", res.errResp.Code)
		assert.Equal(t, "insufficient balance, add funds", res.errResp.Error)
		assert.Equal(t, int64(50), walletBalance(t, firstUserID))

		var participants int
		err := testPool.QueryRow(context.Background(), "SELECT COUNT(*) FROM participants WHERE tournament_id = $1", duoTournament).Scan(&participants)
		require.NoError(t, err)
		assert.Equal(t, 0, participants)

		var status string
		err = testPool.QueryRow(context.Background(), "SELECT status FROM transactions WHERE transaction_id = $1", intent).Scan(&status)
		require.NoError(t, err)
		assert.Equal(t, "rejected", status)
	})

	t.Run("Handle already used by another player", func(t *testing.T) {
		res := book(router, soloTournament, firstUserID+1, model.BookingRequest{
			IntentID: uuid.New().String(),
			Picks:    []model.Pick{{SlotNumber: 8, Position: "A", GameHandle: "SOLO-ACE"}},
		})
		assert.Equal(t, http.StatusConflict, res.statusCode)
		assert.Equal(t, "DUPLICATE_GAME_HANDLE", res.errResp.Code)
	})
}

// Test_TransactionPanicReleasesLocks verifies a panic inside WithTransaction
// rolls back and frees the row lock for the next transaction.
func Test_TransactionPanicReleasesLocks(t *testing.T) {
	setupE2E(t)
	ctx := context.Background()

	manager := postgres.NewTransactionManager(testPool).WithLockTimeout(time.Second)
	accounts := postgres.NewAccountRepository(testPool)

	assert.Panics(t, func() {
		_ = manager.WithTransaction(ctx, func(tx pgx.Tx) error {
			if _, err := accounts.GetAccountForUpdate(ctx, firstUserID, tx); err != nil {
				return err
			}
			panic("handler bug")
		})
	})

	err := manager.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := accounts.GetAccountForUpdate(ctx, firstUserID, tx)
		return err
	})
	assert.NoError(t, err)
}

// Test_StalePendingFiltersByType verifies older pending deposits do not use up
// the batch before entry-fee intents.
func Test_StalePendingFiltersByType(t *testing.T) {
	setupE2E(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := testPool.Exec(ctx, `
			INSERT INTO transactions (transaction_id, user_id, type, amount, status, created_at)
			VALUES ($1, $2, 'deposit', 10, 'pending', NOW() - INTERVAL '2 hours')`,
			uuid.New().String(), firstUserID)
		require.NoError(t, err)
	}
	intent := uuid.New().String()
	_, err := testPool.Exec(ctx, `
		INSERT INTO transactions (transaction_id, user_id, type, amount, status, reference_id, created_at)
		VALUES ($1, $2, 'entry_fee', 50, 'pending', $3, NOW() - INTERVAL '1 hour')`,
		intent, firstUserID, soloTournament)
	require.NoError(t, err)

	repo := postgres.NewTransactionRepository(testPool)
	stale, err := repo.GetStalePendingTransactions(ctx, model.TypeEntryFee, time.Now().Add(-time.Minute), 5)
	require.NoError(t, err)

	var found bool
	for _, trans := range stale {
		assert.Equal(t, model.TypeEntryFee, trans.Type)
		found = found || trans.TransactionID == intent
	}
	assert.True(t, found)
}

// Test_UserContests verifies booked seats are listed per tournament for the user.
func Test_UserContests(t *testing.T) {
	h := setupE2E(t)
	router := h.SetupRoutes()
	userID := int64(firstUserID + 7)

	res := book(router, duoTournament, userID, model.BookingRequest{
		IntentID: uuid.New().String(),
		Picks: []model.Pick{
			{SlotNumber: 4, Position: "A", GameHandle: "contest-left"},
			{SlotNumber: 4, Position: "B", GameHandle: "contest-right"},
		},
	})
	require.Equal(t, http.StatusCreated, res.statusCode)

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/contests", userID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ContestListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Contests, 1)
	assert.Equal(t, duoTournament, resp.Contests[0].TournamentID)
	assert.Equal(t, "60.00", resp.Contests[0].TotalPaid)
	assert.Len(t, resp.Contests[0].Positions, 2)
}
