// Package memory implements the repositories with in-process maps. It is used
// for tests and local development; nothing survives a restart.
//
// Transactions are serialized by a single mutex. Each one works on a private
// copy of the data that replaces the committed state only when it succeeds,
// so readers outside the transaction never see partial or rolled-back writes,
// as with PostgreSQL under READ COMMITTED.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"slot-ledger/internal/model"
	"slot-ledger/internal/repository"

	"github.com/jackc/pgx/v5"
)

var (
	_ repository.DBManager             = (*Store)(nil)
	_ repository.TournamentRepository  = (*Store)(nil)
	_ repository.AccountRepository     = (*Store)(nil)
	_ repository.TransactionRepository = (*Store)(nil)
)

type state struct {
	tournaments  map[string]*model.Tournament
	accounts     map[int64]*model.Account
	transactions map[string]*model.Transaction
	nextID       int64
}

func newState() *state {
	return &state{
		tournaments:  make(map[string]*model.Tournament),
		accounts:     make(map[int64]*model.Account),
		transactions: make(map[string]*model.Transaction),
	}
}

func (st *state) clone() *state {
	c := &state{
		tournaments:  make(map[string]*model.Tournament, len(st.tournaments)),
		accounts:     make(map[int64]*model.Account, len(st.accounts)),
		transactions: make(map[string]*model.Transaction, len(st.transactions)),
		nextID:       st.nextID,
	}
	for id, t := range st.tournaments {
		c.tournaments[id] = copyTournament(t)
	}
	for id, a := range st.accounts {
		acc := *a
		c.accounts[id] = &acc
	}
	for id, t := range st.transactions {
		c.transactions[id] = copyTransaction(t)
	}
	return c
}

// memTx is the pgx.Tx handed to transaction callbacks. Only the staged state
// is used; the embedded interface is nil and must not be called.
type memTx struct {
	pgx.Tx
	st *state
}

type Store struct {
	// txMu serializes transactions and writes made outside one
	txMu sync.Mutex
	// mu guards committed and now
	mu sync.RWMutex

	committed *state
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		committed: newState(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) clock() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

// PutTournament inserts or replaces a tournament.
func (s *Store) PutTournament(t *model.Tournament) {
	s.write(nil, func(st *state) error {
		c := copyTournament(t)
		c.ParticipantCount = len(c.Participants)
		st.tournaments[t.ID] = c
		return nil
	})
}

// PutAccount inserts or replaces an account.
func (s *Store) PutAccount(a *model.Account) {
	s.write(nil, func(st *state) error {
		c := *a
		st.accounts[a.UserID] = &c
		return nil
	})
}

// WithTransaction runs fn on a staged copy of the store while holding the
// transaction lock and publishes the copy only if fn succeeds.
func (s *Store) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	staged := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(&memTx{st: staged}); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = staged
	s.mu.Unlock()
	return nil
}

// read runs fn against the transaction's staged state, or the committed
// state when tx is not a store transaction.
func (s *Store) read(tx []pgx.Tx, fn func(st *state)) {
	if len(tx) > 0 {
		if mt, ok := tx[0].(*memTx); ok {
			fn(mt.st)
			return
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.committed)
}

// write runs fn against the transaction's staged state. Outside a
// transaction it is applied to a copy and committed on its own.
func (s *Store) write(tx pgx.Tx, fn func(st *state) error) error {
	if mt, ok := tx.(*memTx); ok {
		return fn(mt.st)
	}
	return s.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		return fn(tx.(*memTx).st)
	})
}

// --- tournaments ---

func (s *Store) GetTournament(_ context.Context, id string, tx ...pgx.Tx) (*model.Tournament, error) {
	var out *model.Tournament
	s.read(tx, func(st *state) {
		if t, ok := st.tournaments[id]; ok {
			out = copyTournament(t)
		}
	})
	if out == nil {
		return nil, model.ErrTournamentNotFound
	}
	return out, nil
}

func (s *Store) GetTournamentForUpdate(ctx context.Context, id string, tx pgx.Tx) (*model.Tournament, error) {
	return s.GetTournament(ctx, id, tx)
}

func (s *Store) ListTournaments(_ context.Context, status model.TournamentStatus) ([]*model.Tournament, error) {
	var out []*model.Tournament
	s.read(nil, func(st *state) {
		for _, t := range st.tournaments {
			if status != "" && t.Status != status {
				continue
			}
			c := copyTournament(t)
			c.Participants = nil
			out = append(out, c)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) AppendParticipants(_ context.Context, tournamentID string, participants []model.Participant, expectedVersion int, tx pgx.Tx) error {
	now := s.clock()
	return s.write(tx, func(st *state) error {
		t, ok := st.tournaments[tournamentID]
		if !ok {
			return model.ErrTournamentNotFound
		}
		if t.Version != expectedVersion {
			return fmt.Errorf("%w: tournament %s moved past version %d", model.ErrConcurrentConflict, tournamentID, expectedVersion)
		}
		if t.MaxPlayers != nil && t.ParticipantCount+len(participants) > *t.MaxPlayers {
			return model.ErrTournamentFull
		}

		// same unique keys as the participants table
		seats := make(map[string]struct{}, len(t.Participants))
		handles := make(map[string]struct{}, len(t.Participants))
		for _, p := range t.Participants {
			seats[fmt.Sprintf("%d-%s", p.SlotNumber, p.Position)] = struct{}{}
			handles[strings.ToLower(p.GameHandle)] = struct{}{}
		}
		for _, p := range participants {
			seat := fmt.Sprintf("%d-%s", p.SlotNumber, p.Position)
			handle := strings.ToLower(p.GameHandle)
			if _, dup := seats[seat]; dup {
				return fmt.Errorf("%w: seat %s", model.ErrConcurrentConflict, seat)
			}
			if _, dup := handles[handle]; dup {
				return fmt.Errorf("%w: handle %s", model.ErrConcurrentConflict, p.GameHandle)
			}
			seats[seat] = struct{}{}
			handles[handle] = struct{}{}
		}

		t.Participants = append(t.Participants, participants...)
		t.ParticipantCount += len(participants)
		t.Version++
		t.UpdatedAt = now
		return nil
	})
}

// GetContestsByUser groups the user's seats by tournament, most recently
// joined first.
func (s *Store) GetContestsByUser(_ context.Context, userID int64, limit, offset int) ([]*model.UserContest, error) {
	var out []*model.UserContest
	s.read(nil, func(st *state) {
		for _, t := range st.tournaments {
			var contest *model.UserContest
			for _, p := range t.Participants {
				if p.UserID != userID {
					continue
				}
				if contest == nil {
					contest = &model.UserContest{
						TournamentID: t.ID,
						Name:         t.Name,
						MatchType:    t.MatchType,
						Status:       t.Status,
						EntryFee:     t.EntryFee,
						JoinedAt:     p.JoinedAt,
					}
				}
				if p.JoinedAt.Before(contest.JoinedAt) {
					contest.JoinedAt = p.JoinedAt
				}
				contest.Positions = append(contest.Positions, model.Pick{SlotNumber: p.SlotNumber, Position: p.Position, GameHandle: p.GameHandle})
			}
			if contest != nil {
				sortPicks(contest.Positions)
				out = append(out, contest)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.After(out[j].JoinedAt)
		}
		return out[i].TournamentID < out[j].TournamentID
	})
	return paginate(out, limit, offset), nil
}

// --- accounts ---

func (s *Store) GetAccount(_ context.Context, userID int64, tx ...pgx.Tx) (*model.Account, error) {
	var out *model.Account
	s.read(tx, func(st *state) {
		if a, ok := st.accounts[userID]; ok {
			c := *a
			out = &c
		}
	})
	if out == nil {
		return nil, model.ErrAccountNotFound
	}
	return out, nil
}

func (s *Store) GetAccountForUpdate(ctx context.Context, userID int64, tx pgx.Tx) (*model.Account, error) {
	return s.GetAccount(ctx, userID, tx)
}

func (s *Store) ApplyDebit(_ context.Context, userID int64, debit model.Debit, expectedVersion int, tx pgx.Tx) error {
	now := s.clock()
	return s.write(tx, func(st *state) error {
		a, ok := st.accounts[userID]
		if !ok {
			return model.ErrAccountNotFound
		}
		if a.Version != expectedVersion {
			return fmt.Errorf("%w: account %d moved past version %d", model.ErrConcurrentConflict, userID, expectedVersion)
		}

		next := *a
		next.WalletBalance -= debit.Total()
		next.DepositedBalance -= debit.Deposited
		next.WinningBalance -= debit.Winning
		next.BonusBalance -= debit.Bonus
		if next.WalletBalance < 0 || next.DepositedBalance < 0 || next.WinningBalance < 0 || next.BonusBalance < 0 || !next.Reconciled() {
			return model.ErrInsufficientFunds
		}
		next.Version++
		next.UpdatedAt = now
		*a = next
		return nil
	})
}

func (s *Store) IncrementMatchesPlayed(_ context.Context, userID int64, tx pgx.Tx) error {
	return s.write(tx, func(st *state) error {
		a, ok := st.accounts[userID]
		if !ok {
			return model.ErrAccountNotFound
		}
		a.MatchesPlayed++
		return nil
	})
}

// --- transactions ---

func (s *Store) InsertTransaction(_ context.Context, trans *model.Transaction, tx pgx.Tx) error {
	now := s.clock()
	return s.write(tx, func(st *state) error {
		if _, exists := st.transactions[trans.TransactionID]; exists {
			return model.ErrDuplicateTransaction
		}
		if _, ok := st.accounts[trans.UserID]; !ok {
			return fmt.Errorf("%w: user %d", model.ErrAccountNotFound, trans.UserID)
		}
		st.nextID++
		trans.ID = st.nextID
		trans.CreatedAt = now
		trans.UpdatedAt = now
		st.transactions[trans.TransactionID] = copyTransaction(trans)
		return nil
	})
}

func (s *Store) GetTransaction(_ context.Context, transactionID string, tx ...pgx.Tx) (*model.Transaction, error) {
	var out *model.Transaction
	s.read(tx, func(st *state) {
		if t, ok := st.transactions[transactionID]; ok {
			out = copyTransaction(t)
		}
	})
	if out == nil {
		return nil, model.ErrTransactionNotFound
	}
	return out, nil
}

func (s *Store) GetTransactionForUpdate(ctx context.Context, transactionID string, tx pgx.Tx) (*model.Transaction, error) {
	return s.GetTransaction(ctx, transactionID, tx)
}

func (s *Store) CompleteTransaction(_ context.Context, id int64, tx pgx.Tx) error {
	now := s.clock()
	return s.write(tx, func(st *state) error {
		for _, t := range st.transactions {
			if t.ID != id {
				continue
			}
			if t.Status != model.StatusPending {
				return fmt.Errorf("%w: transaction %d is no longer pending", model.ErrConcurrentConflict, id)
			}
			t.Status = model.StatusCompleted
			t.UpdatedAt = now
			return nil
		}
		return model.ErrTransactionNotFound
	})
}

func (s *Store) RejectTransactionIfPending(_ context.Context, transactionID string, reason string, tx pgx.Tx) (bool, error) {
	now := s.clock()
	var rejected bool
	err := s.write(tx, func(st *state) error {
		t, ok := st.transactions[transactionID]
		if !ok || t.Status != model.StatusPending {
			return nil
		}
		t.Status = model.StatusRejected
		t.FailureReason = reason
		t.UpdatedAt = now
		rejected = true
		return nil
	})
	return rejected, err
}

func (s *Store) GetTransactionsByUser(_ context.Context, userID int64, limit, offset int) ([]*model.Transaction, error) {
	var out []*model.Transaction
	s.read(nil, func(st *state) {
		for _, t := range st.transactions {
			if t.UserID == userID {
				out = append(out, copyTransaction(t))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, limit, offset), nil
}

func (s *Store) GetStalePendingTransactions(_ context.Context, txType model.TransactionType, before time.Time, limit int) ([]*model.Transaction, error) {
	var out []*model.Transaction
	s.read(nil, func(st *state) {
		for _, t := range st.transactions {
			if t.Type == txType && t.Status == model.StatusPending && t.CreatedAt.Before(before) {
				out = append(out, copyTransaction(t))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, 0), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortPicks(picks []model.Pick) {
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].SlotNumber != picks[j].SlotNumber {
			return picks[i].SlotNumber < picks[j].SlotNumber
		}
		return picks[i].Position < picks[j].Position
	})
}

func copyTournament(t *model.Tournament) *model.Tournament {
	c := *t
	if t.MaxPlayers != nil {
		n := *t.MaxPlayers
		c.MaxPlayers = &n
	}
	c.Participants = append([]model.Participant(nil), t.Participants...)
	return &c
}

func copyTransaction(t *model.Transaction) *model.Transaction {
	c := *t
	c.Positions = append([]model.Pick(nil), t.Positions...)
	return &c
}
