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
var _ repository.TournamentRepository = (*TournamentRepositoryImpl)(nil)

// TournamentRepositoryImpl is the PostgreSQL implementation of TournamentRepository
type TournamentRepositoryImpl struct {
	*TransactionManager
}

func NewTournamentRepository(pool *pgxpool.Pool) repository.TournamentRepository {
	return &TournamentRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const tournamentColumns = `id, name, match_type, max_players, entry_fee, status, participant_count, version, created_at, updated_at`

func scanTournament(row pgx.Row) (*model.Tournament, error) {
	t := &model.Tournament{}
	err := row.Scan(&t.ID, &t.Name, &t.MatchType, &t.MaxPlayers, &t.EntryFee, &t.Status, &t.ParticipantCount, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// GetTournament retrieves a tournament and its participants
func (r *TournamentRepositoryImpl) GetTournament(ctx context.Context, id string, tx ...pgx.Tx) (*model.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	return r.load(ctx, r.getExecutor(tx...), query, id)
}

// GetTournamentForUpdate retrieves a tournament and its participants with a row-level lock
func (r *TournamentRepositoryImpl) GetTournamentForUpdate(ctx context.Context, id string, tx pgx.Tx) (*model.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1 FOR UPDATE`
	return r.load(ctx, tx, query, id)
}

func (r *TournamentRepositoryImpl) load(ctx context.Context, q Querier, query, id string) (*model.Tournament, error) {
	t, err := scanTournament(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTournamentNotFound
		}
		return nil, classify(err, "get tournament")
	}

	participants, err := r.participants(ctx, q, id)
	if err != nil {
		return nil, err
	}
	t.Participants = participants
	return t, nil
}

func (r *TournamentRepositoryImpl) participants(ctx context.Context, q Querier, tournamentID string) ([]model.Participant, error) {
	query := `
        SELECT participant_id, tournament_id, user_id, display_name, contact_email, game_handle,
               slot_number, position, transaction_id, joined_at
        FROM participants WHERE tournament_id = $1
        ORDER BY joined_at, id`

	rows, err := q.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, classify(err, "query participants")
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ParticipantID, &p.TournamentID, &p.UserID, &p.DisplayName, &p.ContactEmail, &p.GameHandle,
			&p.SlotNumber, &p.Position, &p.TransactionID, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "read participants")
	}
	return participants, nil
}

// ListTournaments returns tournaments without participants, newest first
func (r *TournamentRepositoryImpl) ListTournaments(ctx context.Context, status model.TournamentStatus) ([]*model.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments
        WHERE ($1 = '' OR status = $1)
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, classify(err, "query tournaments")
	}
	defer rows.Close()

	var tournaments []*model.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "read tournaments")
	}
	return tournaments, nil
}

// GetContestsByUser returns the tournaments a user holds seats in with the
// user's seats, paged by tournament, most recently joined first
func (r *TournamentRepositoryImpl) GetContestsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.UserContest, error) {
	query := `
        WITH joined AS (
            SELECT tournament_id, MIN(joined_at) AS first_joined
            FROM participants
            WHERE user_id = $1
            GROUP BY tournament_id
            ORDER BY first_joined DESC, tournament_id
            LIMIT $2 OFFSET $3
        )
        SELECT t.id, t.name, t.match_type, t.status, t.entry_fee, j.first_joined,
               p.slot_number, p.position, p.game_handle
        FROM joined j
        JOIN tournaments t ON t.id = j.tournament_id
        JOIN participants p ON p.tournament_id = j.tournament_id AND p.user_id = $1
        ORDER BY j.first_joined DESC, t.id, p.slot_number, p.position`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, classify(err, "query contests")
	}
	defer rows.Close()

	var contests []*model.UserContest
	var current *model.UserContest
	for rows.Next() {
		var c model.UserContest
		var pick model.Pick
		if err := rows.Scan(&c.TournamentID, &c.Name, &c.MatchType, &c.Status, &c.EntryFee, &c.JoinedAt,
			&pick.SlotNumber, &pick.Position, &pick.GameHandle); err != nil {
			return nil, fmt.Errorf("failed to scan contest: %w", err)
		}
		if current == nil || current.TournamentID != c.TournamentID {
			current = &c
			contests = append(contests, current)
		}
		current.Positions = append(current.Positions, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "read contests")
	}
	return contests, nil
}

// AppendParticipants bumps the tournament version and inserts the participants.
// A stale version or an occupied (slot, position) / handle is a conflict.
func (r *TournamentRepositoryImpl) AppendParticipants(ctx context.Context, tournamentID string, participants []model.Participant, expectedVersion int, tx pgx.Tx) error {
	update := `
        UPDATE tournaments
        SET participant_count = participant_count + $1,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $2 AND version = $3`

	tag, err := tx.Exec(ctx, update, len(participants), tournamentID, expectedVersion)
	if err != nil {
		// CONSTRAINT participant_cap CHECK (max_players IS NULL OR participant_count <= max_players)
		if isCode(err, pgerrcode.CheckViolation) {
			return model.ErrTournamentFull
		}
		return classify(err, "update tournament")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tournament %s moved past version %d", model.ErrConcurrentConflict, tournamentID, expectedVersion)
	}

	insert := `
        INSERT INTO participants (participant_id, tournament_id, user_id, display_name, contact_email, game_handle,
                                  slot_number, position, transaction_id, joined_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	batch := &pgx.Batch{}
	for _, p := range participants {
		batch.Queue(insert, p.ParticipantID, tournamentID, p.UserID, p.DisplayName, p.ContactEmail, p.GameHandle,
			p.SlotNumber, p.Position, p.TransactionID, p.JoinedAt)
	}

	results := tx.SendBatch(ctx, batch)
	for range participants {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			// UNIQUE (tournament_id, slot_number, position) and UNIQUE (tournament_id, lower(game_handle))
			if isCode(err, pgerrcode.UniqueViolation) {
				return fmt.Errorf("%w: participant insert: %v", model.ErrConcurrentConflict, err)
			}
			return classify(err, "insert participant")
		}
	}
	if err := results.Close(); err != nil {
		return classify(err, "insert participants")
	}
	return nil
}
