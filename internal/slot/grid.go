package slot

import (
	"sort"

	"slot-ledger/internal/model"
)

// DefaultGridSlots is how many slots the grid shows for tournaments without a
// player cap.
const DefaultGridSlots = 100

// Grid is the slot grid of one tournament as seen by one user.
type Grid struct {
	TotalSlots  int
	FilledSlots int
	Slots       []model.SlotView
	MySlots     []model.Pick
}

// BuildGrid lays out every bookable slot of the tournament with its free and
// taken positions. userID marks the viewer's own seats; pass 0 for anonymous.
// Seats beyond SlotLimit are not rendered.
func BuildGrid(t *model.Tournament, userID int64, uncappedSlots int) Grid {
	occ := ComputeOccupancy(t.Participants)
	positions := t.MatchType.Positions()
	teamSize := t.MatchType.TeamSize()

	rendered := SlotLimit(t, uncappedSlots)

	g := Grid{TotalSlots: t.TotalSlots(), Slots: make([]model.SlotView, 0, rendered)}
	for n := 1; n <= rendered; n++ {
		view := model.SlotView{
			SlotNumber: n,
			Occupied:   make(map[model.Position]model.OccupantView, len(occ[n])),
			Available:  AvailablePositions(occ, n, positions),
			Full:       IsSlotFull(occ, n, teamSize),
		}
		for pos, p := range occ[n] {
			mine := userID != 0 && p.UserID == userID
			view.Occupied[pos] = model.OccupantView{
				GameHandle:  p.GameHandle,
				DisplayName: p.DisplayName,
				Mine:        mine,
			}
		}
		if view.Full {
			g.FilledSlots++
		}
		g.Slots = append(g.Slots, view)
	}

	if userID != 0 {
		for _, p := range t.Participants {
			if p.UserID == userID {
				g.MySlots = append(g.MySlots, model.Pick{SlotNumber: p.SlotNumber, Position: p.Position, GameHandle: p.GameHandle})
			}
		}
		sort.Slice(g.MySlots, func(i, j int) bool {
			if g.MySlots[i].SlotNumber != g.MySlots[j].SlotNumber {
				return g.MySlots[i].SlotNumber < g.MySlots[j].SlotNumber
			}
			return g.MySlots[i].Position < g.MySlots[j].Position
		})
	}
	return g
}
