package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slot-ledger/internal/cache"
	"slot-ledger/internal/events"
	"slot-ledger/internal/metrics"
	"slot-ledger/internal/model"
	"slot-ledger/internal/repository"
	"slot-ledger/internal/slot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// returned from inside the commit transaction when the intent row is no
// longer pending; resolved after rollback
var errIntentSettled = errors.New("booking intent already settled")

type BookingServiceImpl struct {
	tournamentRepo  repository.TournamentRepository
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	dbManager       repository.DBManager
	publisher       events.Publisher
	cache           cache.TournamentCache
	uncappedSlots   int
	logger          zerolog.Logger
	now             func() time.Time
}

func NewBookingService(
	tournamentRepo repository.TournamentRepository,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	dbManager repository.DBManager,
	publisher events.Publisher,
	tournamentCache cache.TournamentCache,
	uncappedSlots int,
	logger zerolog.Logger,
) BookingService {
	return &BookingServiceImpl{
		tournamentRepo:  tournamentRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		dbManager:       dbManager,
		publisher:       publisher,
		cache:           tournamentCache,
		uncappedSlots:   uncappedSlots,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *BookingServiceImpl) GetSlotGrid(ctx context.Context, tournamentID string, userID int64) (*model.SlotGridResponse, error) {
	t, err := s.tournamentRepo.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}

	grid := slot.BuildGrid(t, userID, s.uncappedSlots)
	return &model.SlotGridResponse{
		TournamentID: t.ID,
		MatchType:    t.MatchType,
		TeamSize:     t.MatchType.TeamSize(),
		Positions:    t.MatchType.Positions(),
		EntryFee:     model.FormatAmount(t.EntryFee),
		TotalSlots:   grid.TotalSlots,
		FilledSlots:  grid.FilledSlots,
		MaxPicks:     slot.MaxPicks(t.MatchType),
		Slots:        grid.Slots,
		MySlots:      grid.MySlots,
		Version:      t.Version,
	}, nil
}

func (s *BookingServiceImpl) Validate(ctx context.Context, tournamentID string, picks []model.Pick) (*model.ValidatedBooking, error) {
	t, err := s.tournamentRepo.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	return slot.Validate(picks, t, slot.MaxPicks(t.MatchType), s.uncappedSlots)
}

func (s *BookingServiceImpl) BookPositions(ctx context.Context, tournamentID string, userID int64, req *model.BookingRequest) (*model.BookingResponse, error) {
	if _, err := uuid.Parse(req.IntentID); err != nil {
		return nil, fmt.Errorf("%w: intent_id must be a uuid", model.ErrInvalidRequest)
	}

	picks := req.Picks

	// A retried request must resolve to its first outcome before validation,
	// since its own seats now show as taken.
	existing, err := s.transactionRepo.GetTransaction(ctx, req.IntentID)
	if err != nil && !errors.Is(err, model.ErrTransactionNotFound) {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if existing != nil {
		if err := checkIntentOwner(existing, userID, tournamentID); err != nil {
			return nil, s.record(err)
		}
		if existing.Status != model.StatusPending {
			outcome, err := s.resolveSettled(ctx, existing)
			if err != nil {
				return nil, s.record(err)
			}
			return s.respond(outcome), nil
		}
		// interrupted before commit, nothing applied yet
		picks = existing.Positions
	}

	booking, err := s.Validate(ctx, tournamentID, picks)
	if err != nil {
		if existing != nil {
			// the pending attempt may have committed since it was read
			current, getErr := s.transactionRepo.GetTransaction(ctx, req.IntentID)
			if getErr == nil && current.Status == model.StatusCompleted {
				outcome, err := s.resolveSettled(ctx, current)
				if err != nil {
					return nil, s.record(err)
				}
				return s.respond(outcome), nil
			}
			s.rejectIntent(ctx, existing.TransactionID, err)
		}
		return nil, s.record(err)
	}

	outcome, err := s.Commit(ctx, booking, userID, req.IntentID)
	if err != nil {
		return nil, err
	}
	return s.respond(outcome), nil
}

// Commit writes the intent as a pending transaction, then in one database
// transaction re-reads and locks intent, tournament and account, re-validates
// and applies all effects.
func (s *BookingServiceImpl) Commit(ctx context.Context, booking *model.ValidatedBooking, userID int64, intentID string) (*model.CommitOutcome, error) {
	start := time.Now()

	intent := &model.Transaction{
		TransactionID: intentID,
		UserID:        userID,
		Type:          model.TypeEntryFee,
		Amount:        booking.TotalCost,
		Description:   fmt.Sprintf("Entry fee for %s - Positions: %s", booking.TournamentName, slot.Label(booking.Picks)),
		Status:        model.StatusPending,
		ReferenceID:   booking.TournamentID,
		Positions:     booking.Picks,
	}

	err := s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		return s.transactionRepo.InsertTransaction(ctx, intent, tx)
	})
	if errors.Is(err, model.ErrDuplicateTransaction) {
		existing, getErr := s.transactionRepo.GetTransaction(ctx, intentID)
		if getErr != nil {
			return nil, fmt.Errorf("get transaction after duplicate: %w", getErr)
		}
		if err := checkIntentOwner(existing, userID, booking.TournamentID); err != nil {
			return nil, s.record(err)
		}
		if existing.Status != model.StatusPending {
			outcome, err := s.resolveSettled(ctx, existing)
			if err != nil {
				return nil, s.record(err)
			}
			return outcome, nil
		}
	} else if err != nil {
		return nil, s.record(fmt.Errorf("write booking intent: %w", err))
	}

	var outcome *model.CommitOutcome
	err = s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.transactionRepo.GetTransactionForUpdate(ctx, intentID, tx)
		if err != nil {
			return fmt.Errorf("lock booking intent: %w", err)
		}
		if current.Status != model.StatusPending {
			return errIntentSettled
		}

		t, err := s.tournamentRepo.GetTournamentForUpdate(ctx, booking.TournamentID, tx)
		if err != nil {
			return fmt.Errorf("lock tournament: %w", err)
		}
		account, err := s.accountRepo.GetAccountForUpdate(ctx, userID, tx)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		// The stored intent is what gets applied. A booking that differs from
		// it is a different request under the same intent id.
		if !samePicks(current.Positions, booking.Picks) {
			return fmt.Errorf("%w: booking %s does not match the stored intent", model.ErrDuplicateIntent, intentID)
		}

		// Another booking may have landed since validation.
		locked, err := slot.Validate(current.Positions, t, slot.MaxPicks(t.MatchType), s.uncappedSlots)
		if err != nil {
			if errors.Is(err, model.ErrPositionAlreadyTaken) || errors.Is(err, model.ErrDuplicateGameHandle) {
				return fmt.Errorf("%w: %v", model.ErrConcurrentConflict, err)
			}
			return err
		}
		if locked.TotalCost != current.Amount {
			return fmt.Errorf("%w: entry fee changed, intent recorded %d, now %d", model.ErrConcurrentConflict, current.Amount, locked.TotalCost)
		}

		debit, err := slot.SplitDebit(account, locked.TotalCost)
		if err != nil {
			return err
		}

		joinedAt := s.now()
		participants := make([]model.Participant, len(locked.Picks))
		for i, p := range locked.Picks {
			participants[i] = model.Participant{
				ParticipantID: uuid.New().String(),
				TournamentID:  t.ID,
				UserID:        userID,
				DisplayName:   account.DisplayName,
				ContactEmail:  account.Email,
				GameHandle:    p.GameHandle,
				SlotNumber:    p.SlotNumber,
				Position:      p.Position,
				TransactionID: intentID,
				JoinedAt:      joinedAt,
			}
		}

		if err := s.tournamentRepo.AppendParticipants(ctx, t.ID, participants, t.Version, tx); err != nil {
			return fmt.Errorf("append participants: %w", err)
		}
		if err := s.accountRepo.ApplyDebit(ctx, userID, debit, account.Version, tx); err != nil {
			return fmt.Errorf("apply debit: %w", err)
		}
		if err := s.accountRepo.IncrementMatchesPlayed(ctx, userID, tx); err != nil {
			return fmt.Errorf("increment matches played: %w", err)
		}
		if err := s.transactionRepo.CompleteTransaction(ctx, current.ID, tx); err != nil {
			return fmt.Errorf("complete transaction: %w", err)
		}

		outcome = &model.CommitOutcome{
			TransactionID: intentID,
			TournamentID:  t.ID,
			UserID:        userID,
			Participants:  participants,
			TotalCost:     locked.TotalCost,
			WalletBalance: account.WalletBalance - debit.Total(),
		}
		return nil
	})
	metrics.CommitLatency.Observe(time.Since(start).Seconds())

	if errors.Is(err, errIntentSettled) {
		existing, getErr := s.transactionRepo.GetTransaction(ctx, intentID)
		if getErr != nil {
			return nil, fmt.Errorf("get transaction after settle: %w", getErr)
		}
		outcome, err := s.resolveSettled(ctx, existing)
		if err != nil {
			return nil, s.record(err)
		}
		return outcome, nil
	}
	if err != nil {
		s.rejectIntent(ctx, intentID, err)
		return nil, s.record(err)
	}

	s.afterCommit(ctx, outcome, booking.Picks)
	return outcome, nil
}

func (s *BookingServiceImpl) afterCommit(ctx context.Context, outcome *model.CommitOutcome, picks []model.Pick) {
	metrics.BookingsTotal.WithLabelValues("success").Inc()
	metrics.PositionsBooked.Add(float64(len(outcome.Participants)))
	s.cache.Invalidate(ctx)

	s.logger.Info().
		Str("transaction_id", outcome.TransactionID).
		Str("tournament_id", outcome.TournamentID).
		Int64("user_id", outcome.UserID).
		Str("positions", slot.Label(picks)).
		Int64("total_cost", outcome.TotalCost).
		Int64("new_balance", outcome.WalletBalance).
		Msg("booking committed")

	event := model.BookingEvent{
		TransactionID: outcome.TransactionID,
		TournamentID:  outcome.TournamentID,
		UserID:        outcome.UserID,
		Picks:         picks,
		TotalCost:     outcome.TotalCost,
		CommittedAt:   s.now(),
	}
	if err := s.publisher.PublishBookingCommitted(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("transaction_id", outcome.TransactionID).Msg("failed to publish booking event")
	}
}

// resolveSettled turns a completed or rejected intent into the result the
// first attempt produced.
func (s *BookingServiceImpl) resolveSettled(ctx context.Context, trans *model.Transaction) (*model.CommitOutcome, error) {
	switch trans.Status {
	case model.StatusCompleted:
		t, err := s.tournamentRepo.GetTournament(ctx, trans.ReferenceID)
		if err != nil {
			return nil, fmt.Errorf("get tournament: %w", err)
		}
		account, err := s.accountRepo.GetAccount(ctx, trans.UserID)
		if err != nil {
			return nil, fmt.Errorf("get account: %w", err)
		}

		var participants []model.Participant
		for _, p := range t.Participants {
			if p.TransactionID == trans.TransactionID {
				participants = append(participants, p)
			}
		}

		s.logger.Info().Str("transaction_id", trans.TransactionID).Int64("user_id", trans.UserID).Msg("booking already processed")
		metrics.BookingsTotal.WithLabelValues("already_processed").Inc()
		return &model.CommitOutcome{
			TransactionID:    trans.TransactionID,
			TournamentID:     t.ID,
			UserID:           trans.UserID,
			Participants:     participants,
			TotalCost:        trans.Amount,
			WalletBalance:    account.WalletBalance,
			AlreadyProcessed: true,
		}, nil
	case model.StatusRejected:
		cause := model.FailureFromCode(trans.FailureReason)
		if cause == nil {
			cause = model.ErrConcurrentConflict
		}
		return nil, fmt.Errorf("%w: booking %s was rejected", cause, trans.TransactionID)
	default:
		return nil, fmt.Errorf("%w: booking %s is still in progress", model.ErrConcurrentConflict, trans.TransactionID)
	}
}

// rejectIntent settles a pending intent after a failed commit so retries and
// the reaper see a final state. It runs even if the request was cancelled.
func (s *BookingServiceImpl) rejectIntent(ctx context.Context, intentID string, cause error) {
	code := model.FailureCode(cause)
	if code == "" {
		// storage failure: leave pending so a retry with the same intent can finish it
		return
	}

	ctx = context.WithoutCancel(ctx)
	err := s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := s.transactionRepo.RejectTransactionIfPending(ctx, intentID, code, tx)
		return err
	})
	if err != nil {
		s.logger.Error().Err(err).Str("transaction_id", intentID).Str("reason", code).Msg("failed to reject booking intent")
	}
}

func (s *BookingServiceImpl) record(err error) error {
	outcome := model.FailureCode(err)
	if outcome == "" {
		if errors.Is(err, model.ErrDuplicateIntent) {
			outcome = "DUPLICATE_INTENT"
		} else {
			outcome = "error"
		}
	}
	metrics.BookingsTotal.WithLabelValues(outcome).Inc()
	return err
}

func (s *BookingServiceImpl) respond(outcome *model.CommitOutcome) *model.BookingResponse {
	resp := &model.BookingResponse{
		Status:        "success",
		TransactionID: outcome.TransactionID,
		TournamentID:  outcome.TournamentID,
		TotalCost:     model.FormatAmount(outcome.TotalCost),
		Balance:       model.FormatAmount(outcome.WalletBalance),
		Participants:  make([]model.ParticipantResponse, len(outcome.Participants)),
		Message:       "Booking confirmed",
	}
	if outcome.AlreadyProcessed {
		resp.Status = "already_processed"
		resp.Message = "Booking already processed"
	}
	for i, p := range outcome.Participants {
		resp.Participants[i] = model.ParticipantResponse{
			ParticipantID: p.ParticipantID,
			SlotNumber:    p.SlotNumber,
			Position:      p.Position,
			GameHandle:    p.GameHandle,
		}
	}
	return resp
}

// samePicks reports whether two normalized pick lists book the same seats
// under the same handles.
func samePicks(a, b []model.Pick) bool {
	if len(a) != len(b) {
		return false
	}
	seats := make(map[model.Pick]struct{}, len(a))
	for _, p := range a {
		seats[normalizePick(p)] = struct{}{}
	}
	for _, p := range b {
		if _, ok := seats[normalizePick(p)]; !ok {
			return false
		}
	}
	return true
}

func normalizePick(p model.Pick) model.Pick {
	return model.Pick{
		SlotNumber: p.SlotNumber,
		Position:   model.Position(strings.ToUpper(strings.TrimSpace(string(p.Position)))),
		GameHandle: strings.TrimSpace(p.GameHandle),
	}
}

func checkIntentOwner(trans *model.Transaction, userID int64, tournamentID string) error {
	if trans.UserID != userID || trans.Type != model.TypeEntryFee || trans.ReferenceID != tournamentID {
		return fmt.Errorf("%w: transaction %s belongs to user %d, requested for user %d",
			model.ErrDuplicateIntent, trans.TransactionID, trans.UserID, userID)
	}
	return nil
}
