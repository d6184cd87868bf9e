package memory

import (
	"fmt"

	"slot-ledger/internal/model"
)

// SeedDemo loads a few tournaments and funded accounts so the memory store is
// usable for local runs.
func SeedDemo(s *Store) {
	hundred := 100
	forty := 40
	now := s.now()

	tournaments := []*model.Tournament{
		{ID: "solo-weekly", Name: "Solo Weekly", MatchType: model.MatchSolo, MaxPlayers: &hundred, EntryFee: 50},
		{ID: "duo-cup", Name: "Duo Cup", MatchType: model.MatchDuo, MaxPlayers: &forty, EntryFee: 30},
		{ID: "squad-open", Name: "Squad Open", MatchType: model.MatchSquad, EntryFee: 20},
	}
	for _, t := range tournaments {
		t.Status = model.TournamentUpcoming
		t.Version = 1
		t.CreatedAt = now
		t.UpdatedAt = now
		s.PutTournament(t)
	}

	for id := int64(1); id <= 5; id++ {
		s.PutAccount(&model.Account{
			UserID:           id,
			DisplayName:      fmt.Sprintf("player%d", id),
			Email:            fmt.Sprintf("player%d@example.com", id),
			WalletBalance:    150,
			DepositedBalance: 100,
			WinningBalance:   30,
			BonusBalance:     20,
			Version:          1,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
}
