package service

import (
	"context"
	"fmt"

	"slot-ledger/internal/model"
	"slot-ledger/internal/repository"

	"github.com/rs/zerolog"
)

const maxTransactionPage = 100

type AccountServiceImpl struct {
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	tournamentRepo  repository.TournamentRepository
	logger          zerolog.Logger
}

func NewAccountService(
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	tournamentRepo repository.TournamentRepository,
	logger zerolog.Logger,
) AccountService {
	return &AccountServiceImpl{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		tournamentRepo:  tournamentRepo,
		logger:          logger,
	}
}

func (s *AccountServiceImpl) GetBalance(ctx context.Context, userID int64) (*model.BalanceResponse, error) {
	account, err := s.accountRepo.GetAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &model.BalanceResponse{
		UserID:           account.UserID,
		WalletBalance:    model.FormatAmount(account.WalletBalance),
		DepositedBalance: model.FormatAmount(account.DepositedBalance),
		WinningBalance:   model.FormatAmount(account.WinningBalance),
		BonusBalance:     model.FormatAmount(account.BonusBalance),
		MatchesPlayed:    account.MatchesPlayed,
	}, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxTransactionPage {
		limit = 10
	}
	return limit, max(offset, 0)
}

func (s *AccountServiceImpl) GetTransactionsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.Transaction, error) {
	limit, offset = clampPage(limit, offset)

	// 404 for unknown users rather than an empty page
	if _, err := s.accountRepo.GetAccount(ctx, userID); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	transactions, err := s.transactionRepo.GetTransactionsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	return transactions, nil
}

func (s *AccountServiceImpl) GetContestsByUser(ctx context.Context, userID int64, limit, offset int) (*model.ContestListResponse, error) {
	limit, offset = clampPage(limit, offset)

	if _, err := s.accountRepo.GetAccount(ctx, userID); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	contests, err := s.tournamentRepo.GetContestsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get contests: %w", err)
	}

	resp := &model.ContestListResponse{
		UserID:   userID,
		Contests: make([]model.ContestView, len(contests)),
		Total:    len(contests),
		Limit:    limit,
		Offset:   offset,
	}
	for i, c := range contests {
		resp.Contests[i] = model.ContestView{
			TournamentID: c.TournamentID,
			Name:         c.Name,
			MatchType:    c.MatchType,
			Status:       c.Status,
			EntryFee:     model.FormatAmount(c.EntryFee),
			TotalPaid:    model.FormatAmount(c.EntryFee * int64(len(c.Positions))),
			Positions:    c.Positions,
			JoinedAt:     c.JoinedAt,
		}
	}
	return resp, nil
}
