package slot

import (
	"fmt"
	"strings"

	"slot-ledger/internal/model"
)

// MaxPicks is how many positions one user may book in a single request.
func MaxPicks(matchType model.MatchType) int {
	return matchType.TeamSize()
}

// Validate checks picks against a freshly read tournament snapshot and prices
// the booking. It never mutates the tournament. uncappedSlots bounds slot
// numbers when the tournament has no player cap; see SlotLimit.
func Validate(picks []model.Pick, latest *model.Tournament, maxPositionsPerUser, uncappedSlots int) (*model.ValidatedBooking, error) {
	if latest.Status != model.TournamentUpcoming {
		return nil, fmt.Errorf("%w: status %s", model.ErrTournamentClosed, latest.Status)
	}
	if len(picks) == 0 {
		return nil, model.ErrEmptySelection
	}
	if len(picks) > maxPositionsPerUser {
		return nil, fmt.Errorf("%w: %d selected, at most %d allowed", model.ErrTooManyPositions, len(picks), maxPositionsPerUser)
	}

	normalized, err := normalizePicks(picks, latest, SlotLimit(latest, uncappedSlots))
	if err != nil {
		return nil, err
	}

	totalCost, err := CheckedCost(latest.EntryFee, len(normalized))
	if err != nil {
		return nil, err
	}

	if latest.MaxPlayers != nil && latest.ParticipantCount+len(normalized) > *latest.MaxPlayers {
		return nil, fmt.Errorf("%w: %d of %d places taken", model.ErrTournamentFull, latest.ParticipantCount, *latest.MaxPlayers)
	}

	if err := CheckAvailability(normalized, latest.Participants); err != nil {
		return nil, err
	}

	return &model.ValidatedBooking{
		TournamentID:    latest.ID,
		TournamentName:  latest.Name,
		Picks:           normalized,
		EntryFee:        latest.EntryFee,
		TotalCost:       totalCost,
		SnapshotVersion: latest.Version,
	}, nil
}

// CheckAvailability reports whether every pick is still free and every handle
// still unused among participants.
func CheckAvailability(picks []model.Pick, participants []model.Participant) error {
	occ := ComputeOccupancy(participants)
	for _, p := range picks {
		if occ.Taken(p.SlotNumber, p.Position) {
			return fmt.Errorf("%w: slot %d position %s", model.ErrPositionAlreadyTaken, p.SlotNumber, p.Position)
		}
	}

	handles := make(map[string]struct{}, len(participants))
	for _, existing := range participants {
		handles[handleKey(existing.GameHandle)] = struct{}{}
	}
	for _, p := range picks {
		if _, ok := handles[handleKey(p.GameHandle)]; ok {
			return fmt.Errorf("%w: %q", model.ErrDuplicateGameHandle, p.GameHandle)
		}
	}
	return nil
}

// SlotLimit is the highest bookable slot number. Capped tournaments use their
// slot count; uncapped ones use uncappedSlots, or DefaultGridSlots when that is
// not positive.
func SlotLimit(t *model.Tournament, uncappedSlots int) int {
	if total := t.TotalSlots(); total > 0 {
		return total
	}
	if uncappedSlots > 0 {
		return uncappedSlots
	}
	return DefaultGridSlots
}

func normalizePicks(picks []model.Pick, t *model.Tournament, slotLimit int) ([]model.Pick, error) {
	seen := make(map[string]struct{}, len(picks))
	handles := make(map[string]struct{}, len(picks))

	out := make([]model.Pick, 0, len(picks))
	for _, p := range picks {
		p.Position = model.Position(strings.ToUpper(strings.TrimSpace(string(p.Position))))
		p.GameHandle = strings.TrimSpace(p.GameHandle)

		if !t.MatchType.HasPosition(p.Position) {
			return nil, fmt.Errorf("%w: %q in %s match", model.ErrInvalidPosition, p.Position, t.MatchType)
		}
		if p.SlotNumber < 1 || p.SlotNumber > slotLimit {
			return nil, fmt.Errorf("%w: %d", model.ErrInvalidSlot, p.SlotNumber)
		}
		if p.GameHandle == "" {
			return nil, fmt.Errorf("%w: slot %d position %s", model.ErrMissingGameHandle, p.SlotNumber, p.Position)
		}

		key := fmt.Sprintf("%d-%s", p.SlotNumber, p.Position)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: slot %d position %s", model.ErrDuplicatePick, p.SlotNumber, p.Position)
		}
		seen[key] = struct{}{}

		hk := handleKey(p.GameHandle)
		if _, dup := handles[hk]; dup {
			return nil, fmt.Errorf("%w: %q used twice in request", model.ErrDuplicateGameHandle, p.GameHandle)
		}
		handles[hk] = struct{}{}

		out = append(out, p)
	}
	return out, nil
}

func handleKey(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Label renders picks as "3A, 3B" for transaction descriptions.
func Label(picks []model.Pick) string {
	parts := make([]string, len(picks))
	for i, p := range picks {
		parts[i] = fmt.Sprintf("%d%s", p.SlotNumber, p.Position)
	}
	return strings.Join(parts, ", ")
}
