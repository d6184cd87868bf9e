// Package slot models a tournament's slot grid: which (slot, position) pairs
// are taken, whether a booking request fits the current grid, and what it
// costs. Everything here is pure and works on a snapshot passed in by the
// caller; occupancy is recomputed from the participant list on every call.
package slot

import (
	"slot-ledger/internal/model"
)

// Occupancy maps slot number to the participant holding each position.
type Occupancy map[int]map[model.Position]model.Participant

// ComputeOccupancy groups participants by slot, then position.
func ComputeOccupancy(participants []model.Participant) Occupancy {
	occ := make(Occupancy)
	for _, p := range participants {
		if p.SlotNumber < 1 {
			continue
		}
		seats, ok := occ[p.SlotNumber]
		if !ok {
			seats = make(map[model.Position]model.Participant)
			occ[p.SlotNumber] = seats
		}
		seats[p.Position] = p
	}
	return occ
}

// Taken reports whether the position in the slot is occupied.
func (o Occupancy) Taken(slotNumber int, pos model.Position) bool {
	_, ok := o[slotNumber][pos]
	return ok
}

// Count returns the number of occupied positions across all slots.
func (o Occupancy) Count() int {
	n := 0
	for _, seats := range o {
		n += len(seats)
	}
	return n
}

// AvailablePositions returns the positions of the set that are free in the
// slot, in set order.
func AvailablePositions(occ Occupancy, slotNumber int, positions []model.Position) []model.Position {
	free := make([]model.Position, 0, len(positions))
	for _, pos := range positions {
		if !occ.Taken(slotNumber, pos) {
			free = append(free, pos)
		}
	}
	return free
}

func IsSlotFull(occ Occupancy, slotNumber, teamSize int) bool {
	return len(occ[slotNumber]) == teamSize
}
