package service

import (
	"context"

	"slot-ledger/internal/model"
)

// BookingService defines the slot booking workflow
type BookingService interface {
	// GetSlotGrid returns the slot grid of a tournament, marking the viewer's own seats
	GetSlotGrid(ctx context.Context, tournamentID string, userID int64) (*model.SlotGridResponse, error)

	// Validate checks picks against a fresh read of the tournament without side effects
	Validate(ctx context.Context, tournamentID string, picks []model.Pick) (*model.ValidatedBooking, error)

	// Commit applies a validated booking: participants, debit and transaction record become visible together or not at all
	Commit(ctx context.Context, booking *model.ValidatedBooking, userID int64, intentID string) (*model.CommitOutcome, error)

	// BookPositions validates and commits in one call, idempotent on the request's intent id
	BookPositions(ctx context.Context, tournamentID string, userID int64, req *model.BookingRequest) (*model.BookingResponse, error)
}

// TournamentService defines read access to tournaments
type TournamentService interface {
	ListTournaments(ctx context.Context, status model.TournamentStatus) (*model.TournamentListResponse, error)
	GetTournament(ctx context.Context, id string) (*model.Tournament, error)
}

// AccountService defines read access to wallets
type AccountService interface {
	GetBalance(ctx context.Context, userID int64) (*model.BalanceResponse, error)
	GetTransactionsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.Transaction, error)
	// GetContestsByUser lists the tournaments the user has joined with their seats and fees
	GetContestsByUser(ctx context.Context, userID int64, limit, offset int) (*model.ContestListResponse, error)
}

// ReaperService settles booking intents whose commit never finished
type ReaperService interface {
	// RejectStaleIntents rejects pending entry-fee intents older than the configured age
	RejectStaleIntents(ctx context.Context) error
}
