package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slot-ledger/internal/model"
	"slot-ledger/internal/repository"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure implementation satisfies interface at compile time
var _ repository.TransactionRepository = (*TransactionRepositoryImpl)(nil)

// TransactionRepositoryImpl is the PostgreSQL implementation of TransactionRepository
type TransactionRepositoryImpl struct {
	*TransactionManager
}

func NewTransactionRepository(pool *pgxpool.Pool) repository.TransactionRepository {
	return &TransactionRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const transactionColumns = `id, transaction_id, user_id, type, amount, description, status, reference_id, positions,
        failure_reason, created_at, updated_at`

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	trans := &model.Transaction{}
	err := row.Scan(&trans.ID, &trans.TransactionID, &trans.UserID, &trans.Type, &trans.Amount, &trans.Description, &trans.Status,
		&trans.ReferenceID, &trans.Positions, &trans.FailureReason, &trans.CreatedAt, &trans.UpdatedAt)
	return trans, err
}

// InsertTransaction creates a new transaction record
func (r *TransactionRepositoryImpl) InsertTransaction(ctx context.Context, trans *model.Transaction, tx pgx.Tx) error {
	query := `
        INSERT INTO transactions (transaction_id, user_id, type, amount, description, status, reference_id, positions, failure_reason)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	err := tx.QueryRow(ctx, query, trans.TransactionID, trans.UserID, trans.Type, trans.Amount, trans.Description, trans.Status,
		trans.ReferenceID, trans.Positions, trans.FailureReason).
		Scan(&trans.ID, &trans.CreatedAt, &trans.UpdatedAt)

	if err != nil {
		if isCode(err, pgerrcode.UniqueViolation) {
			return model.ErrDuplicateTransaction
		}
		// transactions.user_id REFERENCES accounts
		if isCode(err, pgerrcode.ForeignKeyViolation) {
			return fmt.Errorf("%w: user %d", model.ErrAccountNotFound, trans.UserID)
		}
		return classify(err, "insert transaction")
	}
	return nil
}

// GetTransaction retrieves a transaction by its transaction ID
func (r *TransactionRepositoryImpl) GetTransaction(ctx context.Context, transactionID string, tx ...pgx.Tx) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`
	return r.get(ctx, r.getExecutor(tx...), query, transactionID)
}

// GetTransactionForUpdate retrieves a transaction by its transaction ID and locks the row
func (r *TransactionRepositoryImpl) GetTransactionForUpdate(ctx context.Context, transactionID string, tx pgx.Tx) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE`
	return r.get(ctx, tx, query, transactionID)
}

func (r *TransactionRepositoryImpl) get(ctx context.Context, q Querier, query, transactionID string) (*model.Transaction, error) {
	trans, err := scanTransaction(q.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTransactionNotFound
		}
		return nil, classify(err, "get transaction")
	}
	return trans, nil
}

// CompleteTransaction marks a pending transaction completed
func (r *TransactionRepositoryImpl) CompleteTransaction(ctx context.Context, id int64, tx pgx.Tx) error {
	query := `
        UPDATE transactions
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3`

	tag, err := tx.Exec(ctx, query, string(model.StatusCompleted), id, string(model.StatusPending))
	if err != nil {
		return classify(err, "complete transaction")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d is no longer pending", model.ErrConcurrentConflict, id)
	}
	return nil
}

// RejectTransactionIfPending marks a transaction rejected if it is still pending
func (r *TransactionRepositoryImpl) RejectTransactionIfPending(ctx context.Context, transactionID string, reason string, tx pgx.Tx) (bool, error) {
	query := `
        UPDATE transactions
        SET status = $1, failure_reason = $2, updated_at = NOW()
        WHERE transaction_id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query, string(model.StatusRejected), reason, transactionID, string(model.StatusPending))
	if err != nil {
		return false, classify(err, "reject transaction")
	}
	return tag.RowsAffected() == 1, nil
}

// GetTransactionsByUser retrieves paginated transactions for a user
func (r *TransactionRepositoryImpl) GetTransactionsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
        FROM transactions WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3`

	return r.list(ctx, query, userID, limit, offset)
}

// GetStalePendingTransactions retrieves pending transactions of one type created before the cutoff
func (r *TransactionRepositoryImpl) GetStalePendingTransactions(ctx context.Context, txType model.TransactionType, before time.Time, limit int) ([]*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
        FROM transactions
        WHERE status = 'pending' AND type = $1 AND created_at < $2
        ORDER BY created_at
        LIMIT $3`

	return r.list(ctx, query, string(txType), before, limit)
}

func (r *TransactionRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]*model.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "query transactions")
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		trans, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, trans)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "read transactions")
	}
	return transactions, nil
}
