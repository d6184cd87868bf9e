package service

import (
	"context"
	"testing"
	"time"

	"slot-ledger/internal/cache"
	"slot-ledger/internal/events"
	"slot-ledger/internal/model"
	"slot-ledger/internal/repository/memory"
	mocks "slot-ledger/mocks/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetBalance_FormatsSubBalances(t *testing.T) {
	ctx := context.Background()

	mockAccountRepo := mocks.NewAccountRepository(t)
	mockTransRepo := mocks.NewTransactionRepository(t)

	mockAccountRepo.On("GetAccount", ctx, int64(1), mock.Anything).Return(&model.Account{
		UserID:           1,
		WalletBalance:    12050,
		DepositedBalance: 10000,
		WinningBalance:   2000,
		BonusBalance:     50,
		MatchesPlayed:    4,
	}, nil)

	svc := NewAccountService(mockAccountRepo, mockTransRepo, mocks.NewTournamentRepository(t), zerolog.Nop())
	resp, err := svc.GetBalance(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "12050.00", resp.WalletBalance)
	assert.Equal(t, "10000.00", resp.DepositedBalance)
	assert.Equal(t, "2000.00", resp.WinningBalance)
	assert.Equal(t, "50.00", resp.BonusBalance)
	assert.Equal(t, 4, resp.MatchesPlayed)
}

func TestGetBalance_UnknownUser(t *testing.T) {
	ctx := context.Background()

	mockAccountRepo := mocks.NewAccountRepository(t)
	mockAccountRepo.On("GetAccount", ctx, int64(9), mock.Anything).Return(nil, model.ErrAccountNotFound)

	svc := NewAccountService(mockAccountRepo, mocks.NewTransactionRepository(t), mocks.NewTournamentRepository(t), zerolog.Nop())
	_, err := svc.GetBalance(ctx, 9)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestGetTransactionsByUser_ClampsPaging(t *testing.T) {
	ctx := context.Background()

	mockAccountRepo := mocks.NewAccountRepository(t)
	mockTransRepo := mocks.NewTransactionRepository(t)

	mockAccountRepo.On("GetAccount", ctx, int64(1), mock.Anything).Return(&model.Account{UserID: 1}, nil)
	mockTransRepo.On("GetTransactionsByUser", ctx, int64(1), 10, 0).Return([]*model.Transaction{
		{TransactionID: "a", UserID: 1, Type: model.TypeEntryFee, Status: model.StatusCompleted},
	}, nil)

	svc := NewAccountService(mockAccountRepo, mockTransRepo, mocks.NewTournamentRepository(t), zerolog.Nop())
	transactions, err := svc.GetTransactionsByUser(ctx, 1, 1000, -5)

	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestGetContestsByUser_FormatsFees(t *testing.T) {
	ctx := context.Background()
	joined := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)

	mockAccountRepo := mocks.NewAccountRepository(t)
	mockTournamentRepo := mocks.NewTournamentRepository(t)

	mockAccountRepo.On("GetAccount", ctx, int64(1), mock.Anything).Return(&model.Account{UserID: 1}, nil)
	mockTournamentRepo.On("GetContestsByUser", ctx, int64(1), 10, 0).Return([]*model.UserContest{
		{
			TournamentID: "t-duo",
			Name:         "Duo Cup",
			MatchType:    model.MatchDuo,
			Status:       model.TournamentUpcoming,
			EntryFee:     30,
			Positions:    []model.Pick{{SlotNumber: 5, Position: "A", GameHandle: "left"}, {SlotNumber: 5, Position: "B", GameHandle: "right"}},
			JoinedAt:     joined,
		},
	}, nil)

	svc := NewAccountService(mockAccountRepo, mocks.NewTransactionRepository(t), mockTournamentRepo, zerolog.Nop())
	resp, err := svc.GetContestsByUser(ctx, 1, 0, -1)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 10, resp.Limit)
	require.Len(t, resp.Contests, 1)
	assert.Equal(t, "30.00", resp.Contests[0].EntryFee)
	assert.Equal(t, "60.00", resp.Contests[0].TotalPaid)
	assert.Equal(t, joined, resp.Contests[0].JoinedAt)
}

func TestGetContestsByUser_UnknownUser(t *testing.T) {
	ctx := context.Background()

	mockAccountRepo := mocks.NewAccountRepository(t)
	mockAccountRepo.On("GetAccount", ctx, int64(9), mock.Anything).Return(nil, model.ErrAccountNotFound)

	svc := NewAccountService(mockAccountRepo, mocks.NewTransactionRepository(t), mocks.NewTournamentRepository(t), zerolog.Nop())
	_, err := svc.GetContestsByUser(ctx, 9, 10, 0)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestGetContestsByUser_AfterBookings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	seedTournament(store, "t-solo", model.MatchSolo, intPtr(100), 50)
	seedTournament(store, "t-duo", model.MatchDuo, intPtr(40), 20)
	seedAccount(store, 1, 200, 0, 0)
	seedAccount(store, 2, 200, 0, 0)

	bookings := newMemoryBookingService(store, events.Noop{}).(*BookingServiceImpl)
	bookings.now = func() time.Time { return clock }
	_, err := bookings.BookPositions(ctx, "t-solo", 1, bookingRequest(model.Pick{SlotNumber: 4, Position: "A", GameHandle: "Ace"}))
	require.NoError(t, err)
	_, err = bookings.BookPositions(ctx, "t-solo", 2, bookingRequest(model.Pick{SlotNumber: 5, Position: "A", GameHandle: "Other"}))
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	_, err = bookings.BookPositions(ctx, "t-duo", 1, bookingRequest(
		model.Pick{SlotNumber: 2, Position: "B", GameHandle: "Right"},
		model.Pick{SlotNumber: 2, Position: "A", GameHandle: "Left"},
	))
	require.NoError(t, err)

	svc := NewAccountService(store, store, store, zerolog.Nop())
	resp, err := svc.GetContestsByUser(ctx, 1, 10, 0)
	require.NoError(t, err)

	require.Len(t, resp.Contests, 2)
	assert.Equal(t, "t-duo", resp.Contests[0].TournamentID)
	assert.Equal(t, "40.00", resp.Contests[0].TotalPaid)
	assert.Equal(t, []model.Pick{
		{SlotNumber: 2, Position: "A", GameHandle: "Left"},
		{SlotNumber: 2, Position: "B", GameHandle: "Right"},
	}, resp.Contests[0].Positions)
	assert.Equal(t, "t-solo", resp.Contests[1].TournamentID)
	assert.Equal(t, "50.00", resp.Contests[1].TotalPaid)

	page, err := svc.GetContestsByUser(ctx, 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, page.Contests, 1)
	assert.Equal(t, "t-solo", page.Contests[0].TournamentID)
}

func TestListTournaments_CachesSummaries(t *testing.T) {
	ctx := context.Background()

	mockTournamentRepo := mocks.NewTournamentRepository(t)
	mockTournamentRepo.On("ListTournaments", ctx, model.TournamentUpcoming).Return([]*model.Tournament{
		{ID: "t-1", Name: "Duo Cup", MatchType: model.MatchDuo, MaxPlayers: intPtr(9), EntryFee: 30, Status: model.TournamentUpcoming, ParticipantCount: 2},
	}, nil).Once()

	c := &mapCache{lists: map[model.TournamentStatus][]model.TournamentSummary{}}
	svc := NewTournamentService(mockTournamentRepo, c, zerolog.Nop())

	first, err := svc.ListTournaments(ctx, model.TournamentUpcoming)
	require.NoError(t, err)
	require.Len(t, first.Tournaments, 1)
	assert.Equal(t, 5, first.Tournaments[0].TotalSlots)

	// second call is served from the cache
	second, err := svc.ListTournaments(ctx, model.TournamentUpcoming)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListTournaments_RejectsUnknownStatus(t *testing.T) {
	svc := NewTournamentService(mocks.NewTournamentRepository(t), cache.Noop{}, zerolog.Nop())
	_, err := svc.ListTournaments(context.Background(), "archived")
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

type mapCache struct {
	lists map[model.TournamentStatus][]model.TournamentSummary
}

func (m *mapCache) GetList(_ context.Context, status model.TournamentStatus) ([]model.TournamentSummary, bool) {
	list, ok := m.lists[status]
	return list, ok
}

func (m *mapCache) SetList(_ context.Context, status model.TournamentStatus, list []model.TournamentSummary) {
	m.lists[status] = list
}

func (m *mapCache) Invalidate(context.Context) {
	m.lists = map[model.TournamentStatus][]model.TournamentSummary{}
}
