package service

import (
	"context"
	"fmt"

	"slot-ledger/internal/cache"
	"slot-ledger/internal/model"
	"slot-ledger/internal/repository"

	"github.com/rs/zerolog"
)

type TournamentServiceImpl struct {
	tournamentRepo repository.TournamentRepository
	cache          cache.TournamentCache
	logger         zerolog.Logger
}

func NewTournamentService(tournamentRepo repository.TournamentRepository, tournamentCache cache.TournamentCache, logger zerolog.Logger) TournamentService {
	return &TournamentServiceImpl{
		tournamentRepo: tournamentRepo,
		cache:          tournamentCache,
		logger:         logger,
	}
}

func (s *TournamentServiceImpl) ListTournaments(ctx context.Context, status model.TournamentStatus) (*model.TournamentListResponse, error) {
	if status != "" {
		if _, err := model.ParseTournamentStatus(string(status)); err != nil {
			return nil, err
		}
	}

	if list, ok := s.cache.GetList(ctx, status); ok {
		return &model.TournamentListResponse{Tournaments: list, Total: len(list)}, nil
	}

	tournaments, err := s.tournamentRepo.ListTournaments(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	list := make([]model.TournamentSummary, len(tournaments))
	for i, t := range tournaments {
		list[i] = model.TournamentSummary{
			ID:               t.ID,
			Name:             t.Name,
			MatchType:        t.MatchType,
			MaxPlayers:       t.MaxPlayers,
			EntryFee:         t.EntryFee,
			Status:           t.Status,
			ParticipantCount: t.ParticipantCount,
			TotalSlots:       t.TotalSlots(),
		}
	}
	s.cache.SetList(ctx, status, list)

	return &model.TournamentListResponse{Tournaments: list, Total: len(list)}, nil
}

func (s *TournamentServiceImpl) GetTournament(ctx context.Context, id string) (*model.Tournament, error) {
	t, err := s.tournamentRepo.GetTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	return t, nil
}
