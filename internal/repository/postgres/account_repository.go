package postgres

import (
	"context"
	"errors"
	"fmt"

	"slot-ledger/internal/model"
	"slot-ledger/internal/repository"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure implementation satisfies interface at compile time
var _ repository.AccountRepository = (*AccountRepositoryImpl)(nil)

// AccountRepositoryImpl is the PostgreSQL implementation of AccountRepository
type AccountRepositoryImpl struct {
	*TransactionManager
}

func NewAccountRepository(pool *pgxpool.Pool) repository.AccountRepository {
	return &AccountRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const accountColumns = `user_id, display_name, email, wallet_balance, deposited_balance, winning_balance, bonus_balance,
        matches_played, version, created_at, updated_at`

func scanAccount(row pgx.Row) (*model.Account, error) {
	a := &model.Account{}
	err := row.Scan(&a.UserID, &a.DisplayName, &a.Email, &a.WalletBalance, &a.DepositedBalance, &a.WinningBalance, &a.BonusBalance,
		&a.MatchesPlayed, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, classify(err, "get account")
	}
	return a, nil
}

// GetAccount retrieves an account
func (r *AccountRepositoryImpl) GetAccount(ctx context.Context, userID int64, tx ...pgx.Tx) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	return scanAccount(r.getExecutor(tx...).QueryRow(ctx, query, userID))
}

// GetAccountForUpdate retrieves an account with row-level lock
func (r *AccountRepositoryImpl) GetAccountForUpdate(ctx context.Context, userID int64, tx pgx.Tx) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 FOR UPDATE`
	return scanAccount(tx.QueryRow(ctx, query, userID))
}

// ApplyDebit subtracts the debit from the wallet and the matching sub-balances
func (r *AccountRepositoryImpl) ApplyDebit(ctx context.Context, userID int64, debit model.Debit, expectedVersion int, tx pgx.Tx) error {
	query := `
        UPDATE accounts
        SET wallet_balance = wallet_balance - $1,
            deposited_balance = deposited_balance - $2,
            winning_balance = winning_balance - $3,
            bonus_balance = bonus_balance - $4,
            version = version + 1,
            updated_at = NOW()
        WHERE user_id = $5 AND version = $6`

	tag, err := tx.Exec(ctx, query, debit.Total(), debit.Deposited, debit.Winning, debit.Bonus, userID, expectedVersion)
	if err != nil {
		// CONSTRAINT balances_non_negative / wallet_reconciled
		if isCode(err, pgerrcode.CheckViolation) {
			return model.ErrInsufficientFunds
		}
		return classify(err, "update balance")
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d moved past version %d", model.ErrConcurrentConflict, userID, expectedVersion)
	}
	return nil
}

// IncrementMatchesPlayed bumps the played counter shown on the profile
func (r *AccountRepositoryImpl) IncrementMatchesPlayed(ctx context.Context, userID int64, tx pgx.Tx) error {
	tag, err := tx.Exec(ctx, `UPDATE accounts SET matches_played = matches_played + 1 WHERE user_id = $1`, userID)
	if err != nil {
		return classify(err, "update matches played")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}
