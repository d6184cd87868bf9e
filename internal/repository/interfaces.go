package repository

import (
	"context"
	"time"

	"slot-ledger/internal/model"

	"github.com/jackc/pgx/v5"
)

// DBManager provides database transaction management
type DBManager interface {
	// WithTransaction executes a function within a database transaction
	WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// TournamentRepository defines operations on tournaments and their participants
type TournamentRepository interface {
	// GetTournament retrieves a tournament with its participants (read-only)
	GetTournament(ctx context.Context, id string, tx ...pgx.Tx) (*model.Tournament, error)

	// GetTournamentForUpdate retrieves a tournament with its participants and locks the row (must be in transaction)
	GetTournamentForUpdate(ctx context.Context, id string, tx pgx.Tx) (*model.Tournament, error)

	// ListTournaments returns tournaments without participants, optionally filtered by status
	ListTournaments(ctx context.Context, status model.TournamentStatus) ([]*model.Tournament, error)

	// AppendParticipants adds participants if the tournament is still at expectedVersion
	AppendParticipants(ctx context.Context, tournamentID string, participants []model.Participant, expectedVersion int, tx pgx.Tx) error

	// GetContestsByUser returns the tournaments a user holds seats in, most recently joined first
	GetContestsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.UserContest, error)
}

// AccountRepository defines operations for account/balance management
type AccountRepository interface {
	// GetAccount retrieves an account (read-only)
	GetAccount(ctx context.Context, userID int64, tx ...pgx.Tx) (*model.Account, error)

	// GetAccountForUpdate retrieves an account with row-level lock (must be in transaction)
	GetAccountForUpdate(ctx context.Context, userID int64, tx pgx.Tx) (*model.Account, error)

	// ApplyDebit subtracts debit from the wallet and its sub-balances if the account is still at expectedVersion
	ApplyDebit(ctx context.Context, userID int64, debit model.Debit, expectedVersion int, tx pgx.Tx) error

	// IncrementMatchesPlayed bumps the played counter
	IncrementMatchesPlayed(ctx context.Context, userID int64, tx pgx.Tx) error
}

// TransactionRepository defines operations for the transaction log
type TransactionRepository interface {
	// InsertTransaction creates a new transaction record
	InsertTransaction(ctx context.Context, trans *model.Transaction, tx pgx.Tx) error

	// GetTransaction retrieves a transaction by its transaction ID
	GetTransaction(ctx context.Context, transactionID string, tx ...pgx.Tx) (*model.Transaction, error)

	// GetTransactionForUpdate retrieves a transaction and locks the row (must be in transaction)
	GetTransactionForUpdate(ctx context.Context, transactionID string, tx pgx.Tx) (*model.Transaction, error)

	// CompleteTransaction marks a pending transaction completed
	CompleteTransaction(ctx context.Context, id int64, tx pgx.Tx) error

	// RejectTransactionIfPending marks a transaction rejected if it is still pending
	RejectTransactionIfPending(ctx context.Context, transactionID string, reason string, tx pgx.Tx) (bool, error)

	// GetTransactionsByUser retrieves paginated transactions for a user
	GetTransactionsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.Transaction, error)

	// GetStalePendingTransactions retrieves pending transactions of txType created before the cutoff, oldest first
	GetStalePendingTransactions(ctx context.Context, txType model.TransactionType, before time.Time, limit int) ([]*model.Transaction, error)
}
