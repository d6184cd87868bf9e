package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"slot-ledger/internal/events"
	"slot-ledger/internal/model"
	"slot-ledger/internal/repository/memory"
	mocks "slot-ledger/mocks/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRejectStaleIntents_RejectsPendingEntryFees(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	mockTransRepo := mocks.NewTransactionRepository(t)
	mockDBManager := mocks.NewDBManager(t)

	stale := []*model.Transaction{
		{ID: 1, TransactionID: "intent-1", UserID: 1, Type: model.TypeEntryFee, Status: model.StatusPending, ReferenceID: "t-1"},
		{ID: 2, TransactionID: "intent-2", UserID: 2, Type: model.TypeEntryFee, Status: model.StatusPending, ReferenceID: "t-1"},
	}

	mockTransRepo.On("GetStalePendingTransactions", ctx, model.TypeEntryFee, mock.AnythingOfType("time.Time"), reaperBatchSize).Return(stale, nil)
	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error { return fn(nil) })
	mockTransRepo.On("RejectTransactionIfPending", ctx, "intent-1", "INTENT_EXPIRED", mock.Anything).Return(true, nil).Once()
	// committed between the scan and the update
	mockTransRepo.On("RejectTransactionIfPending", ctx, "intent-2", "INTENT_EXPIRED", mock.Anything).Return(false, nil).Once()

	svc := NewReaperService(mockTransRepo, mockDBManager, 5*time.Minute, logger)
	require.NoError(t, svc.RejectStaleIntents(ctx))
}

func TestRejectStaleIntents_UsesCutoff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockTransRepo := mocks.NewTransactionRepository(t)
	mockDBManager := mocks.NewDBManager(t)

	mockTransRepo.On("GetStalePendingTransactions", ctx, model.TypeEntryFee, now.Add(-10*time.Minute), reaperBatchSize).Return(nil, nil)

	svc := NewReaperService(mockTransRepo, mockDBManager, 10*time.Minute, zerolog.Nop()).(*ReaperServiceImpl)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.RejectStaleIntents(ctx))
	mockDBManager.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
}

func TestRejectStaleIntents_ContinuesAfterFailure(t *testing.T) {
	ctx := context.Background()

	mockTransRepo := mocks.NewTransactionRepository(t)
	mockDBManager := mocks.NewDBManager(t)

	stale := []*model.Transaction{
		{ID: 1, TransactionID: "intent-1", Type: model.TypeEntryFee, Status: model.StatusPending},
		{ID: 2, TransactionID: "intent-2", Type: model.TypeEntryFee, Status: model.StatusPending},
	}
	mockTransRepo.On("GetStalePendingTransactions", ctx, model.TypeEntryFee, mock.Anything, reaperBatchSize).Return(stale, nil)
	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error { return fn(nil) })
	mockTransRepo.On("RejectTransactionIfPending", ctx, "intent-1", mock.Anything, mock.Anything).Return(false, model.ErrStorageUnavailable)
	mockTransRepo.On("RejectTransactionIfPending", ctx, "intent-2", mock.Anything, mock.Anything).Return(true, nil)

	svc := NewReaperService(mockTransRepo, mockDBManager, time.Minute, zerolog.Nop())
	assert.NoError(t, svc.RejectStaleIntents(ctx))
}

func TestRejectStaleIntents_ListError(t *testing.T) {
	ctx := context.Background()

	mockTransRepo := mocks.NewTransactionRepository(t)
	mockDBManager := mocks.NewDBManager(t)
	mockTransRepo.On("GetStalePendingTransactions", ctx, model.TypeEntryFee, mock.Anything, reaperBatchSize).Return(nil, errors.New("connection refused"))

	svc := NewReaperService(mockTransRepo, mockDBManager, time.Minute, zerolog.Nop())
	err := svc.RejectStaleIntents(ctx)
	assert.ErrorContains(t, err, "get stale intents")
}

func TestRejectStaleIntents_RetryAfterExpiryReportsExpired(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return created })
	seedTournament(store, "t-solo", model.MatchSolo, intPtr(10), 50)
	seedAccount(store, 1, 100, 0, 0)

	// an intent whose commit never ran
	req := bookingRequest(model.Pick{SlotNumber: 1, Position: "A", GameHandle: "Ace"})
	require.NoError(t, store.WithTransaction(ctx, func(tx pgx.Tx) error {
		return store.InsertTransaction(ctx, &model.Transaction{
			TransactionID: req.IntentID,
			UserID:        1,
			Type:          model.TypeEntryFee,
			Amount:        50,
			Status:        model.StatusPending,
			ReferenceID:   "t-solo",
			Positions:     req.Picks,
		}, tx)
	}))

	reaper := NewReaperService(store, store, 5*time.Minute, zerolog.Nop()).(*ReaperServiceImpl)
	reaper.now = func() time.Time { return created.Add(6 * time.Minute) }
	require.NoError(t, reaper.RejectStaleIntents(ctx))

	trans, err := store.GetTransaction(ctx, req.IntentID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, trans.Status)
	assert.Equal(t, "INTENT_EXPIRED", trans.FailureReason)

	svc := newMemoryBookingService(store, events.Noop{})
	_, err = svc.BookPositions(ctx, "t-solo", 1, req)
	assert.ErrorIs(t, err, model.ErrIntentExpired)

	account, _ := store.GetAccount(ctx, 1)
	assert.Equal(t, int64(100), account.WalletBalance)
}

func TestRejectStaleIntents_OlderDepositsDoNotFillBatch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return created })
	seedAccount(store, 1, 100, 0, 0)

	require.NoError(t, store.WithTransaction(ctx, func(tx pgx.Tx) error {
		for i := 0; i < reaperBatchSize+10; i++ {
			err := store.InsertTransaction(ctx, &model.Transaction{
				TransactionID: fmt.Sprintf("deposit-%d", i),
				UserID:        1,
				Type:          model.TypeDeposit,
				Amount:        10,
				Status:        model.StatusPending,
			}, tx)
			if err != nil {
				return err
			}
		}
		return store.InsertTransaction(ctx, &model.Transaction{
			TransactionID: "intent-late",
			UserID:        1,
			Type:          model.TypeEntryFee,
			Amount:        50,
			Status:        model.StatusPending,
			ReferenceID:   "t-solo",
		}, tx)
	}))

	reaper := NewReaperService(store, store, 5*time.Minute, zerolog.Nop()).(*ReaperServiceImpl)
	reaper.now = func() time.Time { return created.Add(6 * time.Minute) }
	require.NoError(t, reaper.RejectStaleIntents(ctx))

	intent, err := store.GetTransaction(ctx, "intent-late")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, intent.Status)

	deposit, err := store.GetTransaction(ctx, "deposit-0")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, deposit.Status)
}
