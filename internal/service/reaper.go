package service

import (
	"context"
	"fmt"
	"time"

	"slot-ledger/internal/metrics"
	"slot-ledger/internal/model"
	"slot-ledger/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const reaperBatchSize = 50

type ReaperServiceImpl struct {
	transactionRepo repository.TransactionRepository
	dbManager       repository.DBManager
	staleAfter      time.Duration
	logger          zerolog.Logger
	now             func() time.Time
}

func NewReaperService(
	transactionRepo repository.TransactionRepository,
	dbManager repository.DBManager,
	staleAfter time.Duration,
	logger zerolog.Logger,
) ReaperService {
	return &ReaperServiceImpl{
		transactionRepo: transactionRepo,
		dbManager:       dbManager,
		staleAfter:      staleAfter,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// RejectStaleIntents rejects entry-fee intents that stayed pending longer than
// staleAfter. A pending intent has applied no effects, so rejecting it only
// settles the record; a retry with the same intent id then reports the expiry.
func (s *ReaperServiceImpl) RejectStaleIntents(ctx context.Context) error {
	cutoff := s.now().Add(-s.staleAfter)

	transactions, err := s.transactionRepo.GetStalePendingTransactions(ctx, model.TypeEntryFee, cutoff, reaperBatchSize)
	if err != nil {
		return fmt.Errorf("get stale intents: %w", err)
	}

	if len(transactions) == 0 {
		s.logger.Debug().Msg("no stale booking intents")
		return nil
	}

	var rejectedCount int
	reason := model.FailureCode(model.ErrIntentExpired)

	// Each intent in its own transaction
	for _, trans := range transactions {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var rejected bool
		err = s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
			// a commit holding the row finishes first, then this is a no-op
			ok, err := s.transactionRepo.RejectTransactionIfPending(ctx, trans.TransactionID, reason, tx)
			rejected = ok
			return err
		})
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("transaction_id", trans.TransactionID).
				Int64("user_id", trans.UserID).
				Msg("failed to reject stale intent")
			continue
		}
		if !rejected {
			s.logger.Debug().Str("transaction_id", trans.TransactionID).Msg("intent settled before reaping")
			continue
		}

		s.logger.Info().
			Str("transaction_id", trans.TransactionID).
			Int64("user_id", trans.UserID).
			Str("tournament_id", trans.ReferenceID).
			Time("created_at", trans.CreatedAt).
			Msg("stale booking intent rejected")
		rejectedCount++
	}

	metrics.IntentsReaped.Add(float64(rejectedCount))
	s.logger.Info().
		Int("found", len(transactions)).
		Int("rejected", rejectedCount).
		Msg("stale intent reaping completed")

	return nil
}
